package matchrouter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/routeforge/matchrouter/hostmatch"
	"github.com/routeforge/matchrouter/pathpattern"
	"github.com/routeforge/matchrouter/varpredicate"
)

// VarExpr is a single variable predicate expression, as produced
// by the varpredicate constructors (Eq, Ne, Lt, ..., Regex, Not).
type VarExpr = varpredicate.Expr

// FilterFunc is an opaque, thread-safe predicate evaluated last in the
// matching pipeline. It receives the variables available at match time
// (the caller-supplied vars, not the path captures) together with the
// full request, so it can condition on the method, host, or remote
// address alongside vars, and reports whether the route accepts the
// request.
type FilterFunc func(vars map[string]string, req MatchRequest) bool

// Route is a single routable rule: a route is a candidate if any of
// its Paths matches the request path, and is accepted if it also
// passes every other predicate (method, host, remote address,
// variables, filter).
type Route struct {
	// ID uniquely identifies the route. If empty when passed to
	// AddRoute, one is generated.
	ID string

	// Paths lists one or more path patterns; a route with several
	// paths is indexed once per pattern but matches as a single unit.
	Paths []string

	// Methods restricts the route to the named HTTP methods. An empty
	// slice matches every method.
	Methods []string

	// Hosts restricts the route by Host header, literal or leading
	// wildcard ("*.example.com"). An empty slice matches any host.
	Hosts []string

	// RemoteAddrs restricts the route by client address, literal or
	// CIDR. An empty slice matches any address.
	RemoteAddrs []string

	// Vars is the conjunction of variable predicates that must hold.
	Vars []*VarExpr

	// Filter, if set, is evaluated last.
	Filter FilterFunc

	// Priority breaks ties between otherwise-equally-specific
	// candidates; higher values are preferred.
	Priority int

	// Metadata is opaque, caller-defined data returned verbatim in a
	// successful MatchResult.
	Metadata any
}

// compiledRoute is the immutable, validated form of a Route held
// inside the published index.
type compiledRoute struct {
	spec *Route

	id       string
	paths    []*pathpattern.Pattern
	methods  Methods
	hosts    []*hostmatch.HostPattern
	addrs    []*hostmatch.AddrPattern
	vars     []*varpredicate.Expr
	filter   FilterFunc
	priority int
	metadata any
}

func compileRoute(r *Route) (*compiledRoute, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	if len(r.Paths) == 0 {
		return nil, fmt.Errorf("%w: route %q has no paths", ErrInvalidPathPattern, id)
	}

	paths := make([]*pathpattern.Pattern, 0, len(r.Paths))
	for _, raw := range r.Paths {
		p, err := pathpattern.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: route %q path %q: %w", ErrInvalidPathPattern, id, raw, err)
		}
		paths = append(paths, p)
	}

	methods, err := parseMethods(r.Methods)
	if err != nil {
		return nil, fmt.Errorf("%w: route %q: %w", ErrUnknownMethod, id, err)
	}

	hosts := make([]*hostmatch.HostPattern, 0, len(r.Hosts))
	for _, raw := range r.Hosts {
		h, err := hostmatch.CompileHost(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: route %q host %q: %w", ErrInvalidHostPattern, id, raw, err)
		}
		hosts = append(hosts, h)
	}

	addrs := make([]*hostmatch.AddrPattern, 0, len(r.RemoteAddrs))
	for _, raw := range r.RemoteAddrs {
		a, err := hostmatch.CompileAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: route %q remote addr %q: %w", ErrInvalidAddressPattern, id, raw, err)
		}
		addrs = append(addrs, a)
	}

	return &compiledRoute{
		spec:     r,
		id:       id,
		paths:    paths,
		methods:  methods,
		hosts:    hosts,
		addrs:    addrs,
		vars:     r.Vars,
		filter:   r.Filter,
		priority: r.Priority,
		metadata: r.Metadata,
	}, nil
}
