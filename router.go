package matchrouter

import (
	"sync"
	"sync/atomic"

	"github.com/routeforge/matchrouter/logging"
	"github.com/routeforge/matchrouter/routeindex"
)

// Option configures a Router at construction time.
type Option func(*Router)

// WithLogger sets the Router's logger. The default is a no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Router) { r.log = l }
}

// Router holds the registered route set and serves matches against it.
type Router struct {
	snapshot atomic.Value // *routeindex.Index

	mu      sync.Mutex // serializes AddRoute/DeleteRoute read-modify-publish
	seq     uint64     // incremented under mu; monotonic insertion sequence
	routes  map[string]*compiledRoute
	log     logging.Logger
	closeFn func()
}

// New constructs an empty Router.
func New(opts ...Option) *Router {
	r := &Router{
		log:    logging.Noop(),
		routes: map[string]*compiledRoute{},
	}
	r.snapshot.Store(routeindex.Empty())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) index() *routeindex.Index {
	return r.snapshot.Load().(*routeindex.Index)
}

// AddRoute compiles and inserts route, returning its (possibly
// generated) ID. Compilation failures return a BuildError without
// modifying the router's state.
func (r *Router) AddRoute(route *Route) (string, error) {
	compiled, err := compileRoute(route)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[compiled.id]; exists {
		return "", ErrDuplicateRouteID
	}

	idx := r.index()
	for _, p := range compiled.paths {
		r.seq++
		idx = idx.WithAdded(&routeindex.Entry{
			Pattern:  p,
			Priority: compiled.priority,
			Seq:      r.seq,
			RouteID:  compiled.id,
			Payload:  compiled,
		})
	}

	r.routes[compiled.id] = compiled
	r.snapshot.Store(idx)
	r.log.Infof("matchrouter: added route %s (%d paths)", compiled.id, len(compiled.paths))
	return compiled.id, nil
}

// DeleteRoute removes the route with the given ID. Deleting an absent
// ID is a no-op: the route is already gone, which is the caller's
// desired end state either way.
func (r *Router) DeleteRoute(routeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[routeID]; !exists {
		return nil
	}

	next, ok := r.index().WithRemoved(routeID)
	if !ok {
		return newSystemError("route present in registry but absent from index: " + routeID)
	}

	delete(r.routes, routeID)
	r.snapshot.Store(next)
	r.log.Infof("matchrouter: deleted route %s", routeID)
	return nil
}

// Match finds the first route accepting req, trying exact-literal
// candidates first, then patterned candidates from the deepest static
// prefix to the shallowest; within one group the highest-priority,
// earliest-inserted route is tried first. A nil result with a nil error means no route matched; a non-nil
// error indicates an internal invariant violation, never "no match".
func (r *Router) Match(req MatchRequest, opts MatchOpts) (*MatchResult, error) {
	idx := r.index()

	result, err := matchCandidates(idx.Candidates(req.Path), req)
	if err != nil || result != nil {
		return result, err
	}

	if !opts.IgnoreTrailingSlash {
		return nil, nil
	}
	alt := alternatePath(req.Path)
	if alt == "" {
		return nil, nil
	}
	altReq := req
	altReq.Path = alt
	return matchCandidates(idx.Candidates(alt), altReq)
}

// Routes returns the spec of every currently registered route. The
// returned slice is a snapshot copy; mutating it has no effect on the
// router.
func (r *Router) Routes() []*Route {
	idx := r.index()
	entries := idx.All()

	seen := make(map[string]struct{}, len(entries))
	out := make([]*Route, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.RouteID]; ok {
			continue
		}
		seen[e.RouteID] = struct{}{}
		if route, ok := e.Payload.(*compiledRoute); ok {
			out = append(out, route.spec)
		}
	}
	return out
}

// Close stops any background activity started by a configured
// DataClient poll loop. It is safe to call on a Router with no poll
// loop running.
func (r *Router) Close() error {
	if r.closeFn != nil {
		r.closeFn()
	}
	return nil
}
