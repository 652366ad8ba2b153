package pathpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLiteral(t *testing.T) {
	p, err := Compile("/api/users")
	require.NoError(t, err)
	assert.Equal(t, Literal, p.Kind)
	assert.Equal(t, "/api/users", p.StaticPrefix)
}

func TestCompileParameterized(t *testing.T) {
	p, err := Compile("/user/:id/post/:pid")
	require.NoError(t, err)
	assert.Equal(t, Parameterized, p.Kind)
	assert.Equal(t, "/user/", p.StaticPrefix)

	params, ok := p.Match("/user/123/post/456")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "123", "pid": "456"}, params)
}

func TestCompileNamedCatchAllIsParameterized(t *testing.T) {
	p, err := Compile("/files/*path")
	require.NoError(t, err)
	assert.Equal(t, Parameterized, p.Kind)

	params, ok := p.Match("/files/docs/readme.txt")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"path": "docs/readme.txt"}, params)
}

func TestCompileAnonymousCatchAll(t *testing.T) {
	p, err := Compile("/assets/*_")
	require.NoError(t, err)
	assert.Equal(t, PrefixWildcard, p.Kind)

	params, ok := p.Match("/assets/css/site.css")
	require.True(t, ok)
	assert.Empty(t, params)
}

func TestCompileErrors(t *testing.T) {
	for _, tt := range []struct {
		name    string
		pattern string
		wantErr error
	}{
		{"empty", "", ErrEmptyPattern},
		{"missing slash", "api/users", ErrMissingLeadingSlash},
		{"empty segment name", "/api/:", ErrEmptyIdentifier},
		{"duplicate segment name", "/api/:id/:id", ErrDuplicateIdentifier},
		{"catch-all not terminal", "/api/*rest/more", ErrCatchAllNotTerminal},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMatchRejectsEmptySegment(t *testing.T) {
	p, err := Compile("/user/:id")
	require.NoError(t, err)

	_, ok := p.Match("/user/")
	assert.False(t, ok, "empty segment capture must be rejected")
}

func TestMatchCatchAllAcceptsEmptyAtRoot(t *testing.T) {
	p, err := Compile("/prefix/*name")
	require.NoError(t, err)

	params, ok := p.Match("/prefix")
	require.True(t, ok, "catch-all must accept an empty remainder at the prefix root")
	assert.Equal(t, "", params["name"])
}

func TestMatchManySegments(t *testing.T) {
	pattern := "/a/:p0/:p1/:p2/:p3/:p4/:p5/:p6/:p7/:p8/:p9/:p10/:p11/:p12/:p13/:p14/:p15/:p16/:p17/:p18/:p19"
	p, err := Compile(pattern)
	require.NoError(t, err)

	path := "/a"
	want := map[string]string{}
	for i := 0; i < 20; i++ {
		name := string(rune('a' + i))
		path += "/" + name
		want[namef(i)] = name
	}

	params, ok := p.Match(path)
	require.True(t, ok)
	assert.Equal(t, want, params)
}

func namef(i int) string {
	return "p" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}

func TestTrailingSegmentDiffersFromPrefix(t *testing.T) {
	user, err := Compile("/api/user")
	require.NoError(t, err)
	users, err := Compile("/api/users")
	require.NoError(t, err)

	_, ok := user.Match("/api/users")
	assert.False(t, ok)
	_, ok = users.Match("/api/user")
	assert.False(t, ok)
}
