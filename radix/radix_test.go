package radix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetExact(t *testing.T) {
	var tr Tree
	tr.Insert("/api/users", 1)
	tr.Insert("/api/user", 2)
	tr.Insert("/api/", 3)

	v, ok := tr.Get("/api/users")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = tr.Get("/api/user")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = tr.Get("/api/use")
	assert.False(t, ok, "partial key is not an exact match")
}

func TestInsertSplitsSharedEdge(t *testing.T) {
	var tr Tree
	tr.Insert("/team", "a")
	tr.Insert("/teammate", "b")

	v, ok := tr.Get("/team")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = tr.Get("/teammate")
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = tr.Get("/tea")
	assert.False(t, ok)
}

func TestInsertOverwritesExistingKey(t *testing.T) {
	var tr Tree
	tr.Insert("/a", 1)
	tr.Insert("/a", 2)

	v, ok := tr.Get("/a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLongestPrefixWalkOrdersDeepestFirst(t *testing.T) {
	var tr Tree
	tr.Insert("/api/", "root")
	tr.Insert("/api/v1/", "v1")
	tr.Insert("/api/v1/users/", "users")

	hits := tr.LongestPrefixWalk("/api/v1/users/42")

	require.Len(t, hits, 3)
	assert.Equal(t, "/api/v1/users/", hits[0].Key)
	assert.Equal(t, "/api/v1/", hits[1].Key)
	assert.Equal(t, "/api/", hits[2].Key)
}

func TestLongestPrefixWalkNoMatch(t *testing.T) {
	var tr Tree
	tr.Insert("/api/", "root")

	hits := tr.LongestPrefixWalk("/other/path")
	assert.Empty(t, hits)
}

func TestDeleteRemovesLeaf(t *testing.T) {
	var tr Tree
	tr.Insert("/a", 1)
	tr.Insert("/ab", 2)

	removed := tr.Delete("/ab")
	assert.True(t, removed)

	_, ok := tr.Get("/ab")
	assert.False(t, ok)

	v, ok := tr.Get("/a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestDeleteMergesSingleChild(t *testing.T) {
	var tr Tree
	tr.Insert("/team", "a")
	tr.Insert("/teammate", "b")

	removed := tr.Delete("/team")
	assert.True(t, removed)

	_, ok := tr.Get("/team")
	assert.False(t, ok)

	v, ok := tr.Get("/teammate")
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestDeleteUnknownKeyIsIdempotent(t *testing.T) {
	var tr Tree
	tr.Insert("/a", 1)

	assert.False(t, tr.Delete("/missing"))
	assert.False(t, tr.Delete("/missing"), "repeated delete of an absent key stays false")
}

func TestEmptyTree(t *testing.T) {
	var tr Tree

	_, ok := tr.Get("/anything")
	assert.False(t, ok)
	assert.Empty(t, tr.LongestPrefixWalk("/anything"))
	assert.False(t, tr.Delete("/anything"))
}
