package matchrouter

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"
)

// DataClient supplies a Router with its full route set. LoadAll is
// called once at WithDataClient construction time and, if a poll
// interval is configured, again on every tick thereafter; each
// successful call fully replaces the router's route set.
type DataClient interface {
	LoadAll(ctx context.Context) ([]*Route, error)
}

// StaticDataClient serves a fixed, in-memory route set. It never
// changes, so it is only useful for the initial load.
type StaticDataClient struct {
	routes []*Route
}

// NewStaticDataClient wraps a fixed route slice as a DataClient.
func NewStaticDataClient(routes []*Route) *StaticDataClient {
	return &StaticDataClient{routes: routes}
}

// LoadAll returns the configured routes.
func (s *StaticDataClient) LoadAll(context.Context) ([]*Route, error) {
	return s.routes, nil
}

// yamlRouteDoc is the on-disk shape consumed by YAMLDataClient: a flat
// list of route specs, not a Route directly, since Route.Filter and
// Route.Vars carry Go values that have no YAML encoding.
type yamlRouteDoc struct {
	Routes []yamlRouteSpec `json:"routes"`
}

type yamlRouteSpec struct {
	ID          string            `json:"id,omitempty"`
	Paths       []string          `json:"paths"`
	Methods     []string          `json:"methods,omitempty"`
	Hosts       []string          `json:"hosts,omitempty"`
	RemoteAddrs []string          `json:"remoteAddrs,omitempty"`
	Priority    int               `json:"priority,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// YAMLDataClient loads a route set from a YAML document using
// sigs.k8s.io/yaml (decoding through the JSON struct tags above, the
// same convention Kubernetes-style configuration loaders use).
type YAMLDataClient struct {
	doc []byte
}

// NewYAMLDataClient wraps a YAML document's bytes as a DataClient.
func NewYAMLDataClient(doc []byte) *YAMLDataClient {
	return &YAMLDataClient{doc: doc}
}

// LoadAll parses the wrapped document into Routes. Variable predicates
// and filter functions cannot be expressed in YAML and are always nil
// on the resulting routes; callers needing those should use
// StaticDataClient or add them after loading, keyed by route ID.
func (y *YAMLDataClient) LoadAll(context.Context) ([]*Route, error) {
	var doc yamlRouteDoc
	if err := yaml.Unmarshal(y.doc, &doc); err != nil {
		return nil, fmt.Errorf("matchrouter: decoding YAML route document: %w", err)
	}

	routes := make([]*Route, 0, len(doc.Routes))
	for _, spec := range doc.Routes {
		var metadata any
		if spec.Metadata != nil {
			metadata = spec.Metadata
		}
		routes = append(routes, &Route{
			ID:          spec.ID,
			Paths:       spec.Paths,
			Methods:     spec.Methods,
			Hosts:       spec.Hosts,
			RemoteAddrs: spec.RemoteAddrs,
			Priority:    spec.Priority,
			Metadata:    metadata,
		})
	}
	return routes, nil
}

// WithDataClient loads the initial route set from dc and, if
// pollInterval is positive, starts a background goroutine (managed by
// an errgroup.Group that Close cancels and waits for) that reloads and
// fully replaces the route set on every tick. Load failures are logged
// and do not stop the loop.
func WithDataClient(dc DataClient, pollInterval time.Duration) Option {
	return func(r *Router) {
		ctx, cancel := context.WithCancel(context.Background())
		group, gctx := errgroup.WithContext(ctx)

		r.closeFn = func() {
			cancel()
			_ = group.Wait()
		}

		if err := r.reloadFrom(gctx, dc); err != nil {
			r.log.Errorf("matchrouter: initial data client load failed: %v", err)
		}

		if pollInterval <= 0 {
			return
		}

		group.Go(func() error {
			ticker := time.NewTicker(pollInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if err := r.reloadFrom(gctx, dc); err != nil {
						r.log.Errorf("matchrouter: data client reload failed: %v", err)
					}
				}
			}
		})
	}
}

// reloadFrom replaces the router's entire route set with the result of
// a single DataClient.LoadAll call.
func (r *Router) reloadFrom(ctx context.Context, dc DataClient) error {
	routes, err := dc.LoadAll(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	existing := make([]string, 0, len(r.routes))
	for id := range r.routes {
		existing = append(existing, id)
	}
	r.mu.Unlock()

	for _, id := range existing {
		if err := r.DeleteRoute(id); err != nil {
			return err
		}
	}
	for _, route := range routes {
		if _, err := r.AddRoute(route); err != nil {
			return err
		}
	}
	return nil
}
