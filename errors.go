package matchrouter

import "errors"

// BuildError variants are returned by AddRoute when a route's patterns
// fail to compile. They wrap the originating package's sentinel error,
// so callers may still errors.Is against e.g. pathpattern.ErrEmptyPattern.
var (
	// ErrInvalidPathPattern is returned when a Route's path fails to compile.
	ErrInvalidPathPattern = errors.New("matchrouter: invalid path pattern")
	// ErrInvalidHostPattern is returned when a Route's host fails to compile.
	ErrInvalidHostPattern = errors.New("matchrouter: invalid host pattern")
	// ErrInvalidAddressPattern is returned when a Route's remote address fails to compile.
	ErrInvalidAddressPattern = errors.New("matchrouter: invalid address pattern")
	// ErrInvalidRegex names the invalid-regular-expression build error.
	// No function in this package returns it: a Regex predicate is
	// compiled by varpredicate.NewRegex, which reports a compilation
	// failure to its own caller before the Route is built.
	ErrInvalidRegex = errors.New("matchrouter: invalid regular expression")
	// ErrUnknownMethod is returned when a Route names a method outside the supported set.
	ErrUnknownMethod = errors.New("matchrouter: unknown HTTP method")
	// ErrDuplicateRouteID is returned when AddRoute is given an ID already present in the index.
	ErrDuplicateRouteID = errors.New("matchrouter: duplicate route id")
)

// SystemError reports an internal invariant violation: an index entry
// whose payload is not a compiled route, a route present in the
// router's registry but absent from the published index, and similar
// conditions that indicate a bug in the router itself rather than a
// normal "no route matched" outcome. Match never returns
// SystemError to signal "no match" — it returns a nil result instead.
type SystemError struct {
	Reason string
}

func (e *SystemError) Error() string {
	return "matchrouter: internal invariant violation: " + e.Reason
}

func newSystemError(reason string) error {
	return &SystemError{Reason: reason}
}
