package matchrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRouteInvalidPathPatternIsBuildError(t *testing.T) {
	r := New()
	_, err := r.AddRoute(&Route{Paths: []string{"no-leading-slash"}})
	assert.ErrorIs(t, err, ErrInvalidPathPattern)
}

func TestAddRouteInvalidHostPatternIsBuildError(t *testing.T) {
	r := New()
	_, err := r.AddRoute(&Route{Paths: []string{"/x"}, Hosts: []string{"a.*.b"}})
	assert.ErrorIs(t, err, ErrInvalidHostPattern)
}

func TestAddRouteInvalidAddressPatternIsBuildError(t *testing.T) {
	r := New()
	_, err := r.AddRoute(&Route{Paths: []string{"/x"}, RemoteAddrs: []string{"not-an-address"}})
	assert.ErrorIs(t, err, ErrInvalidAddressPattern)
}

func TestAddRouteUnknownMethodIsBuildError(t *testing.T) {
	r := New()
	_, err := r.AddRoute(&Route{Paths: []string{"/x"}, Methods: []string{"FETCH"}})
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestAddRouteDuplicateIDRejected(t *testing.T) {
	r := New()
	_, err := r.AddRoute(&Route{ID: "fixed", Paths: []string{"/a"}})
	assert.NoError(t, err)

	_, err = r.AddRoute(&Route{ID: "fixed", Paths: []string{"/b"}})
	assert.ErrorIs(t, err, ErrDuplicateRouteID)
}

func TestSystemErrorMessageNamesTheReason(t *testing.T) {
	err := newSystemError("example invariant")
	assert.Contains(t, err.Error(), "example invariant")
}
