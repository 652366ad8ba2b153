package matchrouter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDataClientReturnsConfiguredRoutes(t *testing.T) {
	dc := NewStaticDataClient([]*Route{{Paths: []string{"/a"}}})
	routes, err := dc.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, routes, 1)
}

func TestYAMLDataClientParsesRoutes(t *testing.T) {
	doc := []byte(`
routes:
  - id: home
    paths: ["/"]
    methods: ["GET"]
  - paths: ["/api/:id"]
    priority: 5
    hosts: ["*.example.com"]
`)
	dc := NewYAMLDataClient(doc)
	routes, err := dc.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Equal(t, "home", routes[0].ID)
	assert.Equal(t, []string{"/"}, routes[0].Paths)
	assert.Equal(t, []string{"GET"}, routes[0].Methods)

	assert.Equal(t, 5, routes[1].Priority)
	assert.Equal(t, []string{"*.example.com"}, routes[1].Hosts)
}

func TestYAMLDataClientRejectsMalformedDocument(t *testing.T) {
	dc := NewYAMLDataClient([]byte("routes: [this is not a route list"))
	_, err := dc.LoadAll(context.Background())
	assert.Error(t, err)
}

func TestWithDataClientLoadsRoutesAtConstruction(t *testing.T) {
	dc := NewStaticDataClient([]*Route{{Paths: []string{"/from-data-client"}}})
	r := New(WithDataClient(dc, 0))
	defer r.Close()

	result, err := r.Match(MatchRequest{Path: "/from-data-client"}, MatchOpts{})
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestWithDataClientPollLoopStopsOnClose(t *testing.T) {
	dc := NewStaticDataClient([]*Route{{Paths: []string{"/polled"}}})
	r := New(WithDataClient(dc, 10*time.Millisecond))

	result, err := r.Match(MatchRequest{Path: "/polled"}, MatchOpts{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotPanics(t, func() { r.Close() })
}
