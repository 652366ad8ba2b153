package matchrouter

import (
	"strings"

	"github.com/routeforge/matchrouter/routeindex"
	"github.com/routeforge/matchrouter/varpredicate"
)

// MatchRequest carries everything a route's predicates may be
// evaluated against.
type MatchRequest struct {
	Path       string
	Method     string
	Host       string
	RemoteAddr string

	// Vars are the variables available to variable predicates and to
	// Filter; they are independent of the path capture parameters
	// returned in MatchResult.
	Vars map[string]string
}

// MatchOpts tunes matching behavior.
type MatchOpts struct {
	// IgnoreTrailingSlash, when set, retries the match against the
	// request path with its trailing slash added or removed if no
	// route accepts the initial attempt.
	IgnoreTrailingSlash bool
}

// MatchResult is returned by a successful match.
type MatchResult struct {
	RouteID  string
	Metadata any
	Params   map[string]string
}

// matchState names the matching pipeline's state machine stages
// (§4.5): a candidate progresses through each gate in order, and the
// first predicate it fails determines where it is rejected.
type matchState int

const (
	stateCandidate matchState = iota
	statePathOK
	stateMethodOK
	stateHostOK
	stateAddrOK
	stateVarsOK
	stateFilterOK
	stateAccepted
)

// matchCandidates walks entries (already ordered by tier and
// priority/sequence) and returns the first one that clears every gate.
func matchCandidates(entries []*routeindex.Entry, req MatchRequest) (*MatchResult, error) {
	for _, e := range entries {
		route, ok := e.Payload.(*compiledRoute)
		if !ok || route == nil {
			return nil, newSystemError("index entry payload is not a compiled route")
		}

		state, params := evaluateCandidate(e, route, req)
		if state != stateAccepted {
			continue
		}

		return &MatchResult{
			RouteID:  route.id,
			Metadata: route.metadata,
			Params:   params,
		}, nil
	}
	return nil, nil
}

func evaluateCandidate(e *routeindex.Entry, route *compiledRoute, req MatchRequest) (matchState, map[string]string) {
	params, ok := e.Pattern.Match(req.Path)
	if !ok {
		return stateCandidate, nil
	}

	if !route.methods.Contains(req.Method) {
		return statePathOK, nil
	}

	if len(route.hosts) > 0 {
		matched := false
		for _, h := range route.hosts {
			if h.Match(req.Host) {
				matched = true
				break
			}
		}
		if !matched {
			return stateMethodOK, nil
		}
	}

	if len(route.addrs) > 0 {
		matched := false
		for _, a := range route.addrs {
			if a.Match(req.RemoteAddr) {
				matched = true
				break
			}
		}
		if !matched {
			return stateHostOK, nil
		}
	}

	vars := req.Vars
	if vars == nil {
		vars = map[string]string{}
	}
	if !varpredicate.EvalAll(route.vars, vars) {
		return stateAddrOK, nil
	}

	if route.filter != nil && !route.filter(vars, req) {
		return stateVarsOK, nil
	}

	return stateAccepted, params
}

// alternatePath returns path with its trailing slash toggled, for the
// IgnoreTrailingSlash retry, or "" if no alternate form applies (the
// root path "/" has no slash to strip).
func alternatePath(path string) string {
	if path == "/" {
		return ""
	}
	if strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}
	return path + "/"
}
