// Package pathpattern compiles route path strings into one of three
// shapes (literal, parameterized, prefix-wildcard) and matches compiled
// patterns against request paths, capturing named parameters along the
// way.
package pathpattern

import (
	"errors"
	"strings"
)

// Kind identifies the shape of a compiled Pattern.
type Kind int

const (
	// Literal patterns contain no parameter or wildcard token.
	Literal Kind = iota
	// Parameterized patterns contain one or more named capture tokens,
	// optionally terminated by a catch-all.
	Parameterized
	// PrefixWildcard patterns end in an unnamed terminal catch-all and
	// are indexed purely by their static prefix.
	PrefixWildcard
)

// tokenKind distinguishes literal text from capture tokens within a
// compiled pattern.
type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokSegment            // :name
	tokCatchAll           // *name (always last)
)

type token struct {
	kind tokenKind
	text string // literal text, or the capture name
}

// Pattern is a compiled path pattern plus its static prefix.
type Pattern struct {
	Kind Kind

	// Raw is the original pattern string, kept for diagnostics.
	Raw string

	// Literal holds the full path when Kind == Literal.
	Literal string

	// StaticPrefix is the longest leading literal fragment before the
	// first capture token. For Literal patterns it equals Literal.
	StaticPrefix string

	tokens []token // only meaningful for Parameterized/PrefixWildcard
}

var (
	// ErrEmptyPattern is returned for an empty path pattern.
	ErrEmptyPattern = errors.New("pathpattern: empty pattern")
	// ErrMissingLeadingSlash is returned when a pattern does not start with '/'.
	ErrMissingLeadingSlash = errors.New("pathpattern: pattern must start with '/'")
	// ErrEmptyIdentifier is returned for a ':' or '*' with no following name where one is required.
	ErrEmptyIdentifier = errors.New("pathpattern: empty capture identifier")
	// ErrDuplicateIdentifier is returned when two captures in one pattern share a name.
	ErrDuplicateIdentifier = errors.New("pathpattern: duplicate capture identifier")
	// ErrCatchAllNotTerminal is returned when '*' is not the final token of a pattern.
	ErrCatchAllNotTerminal = errors.New("pathpattern: '*' capture must be terminal")
	// ErrInvalidIdentifierChar is returned for a name with disallowed characters.
	ErrInvalidIdentifierChar = errors.New("pathpattern: invalid character in capture identifier")
)

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9')
}

// Compile parses a path pattern string into a Pattern.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if pattern[0] != '/' {
		return nil, ErrMissingLeadingSlash
	}

	var (
		tokens       []token
		names        = make(map[string]struct{})
		literalStart = 0
		staticPrefix string
		haveCapture  bool
	)

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		atSegmentStart := i == 0 || pattern[i-1] == '/'

		if !atSegmentStart || (c != ':' && c != '*') {
			i++
			continue
		}

		// flush preceding literal
		if i > literalStart {
			lit := pattern[literalStart:i]
			tokens = append(tokens, token{kind: tokLiteral, text: lit})
		}
		if !haveCapture {
			staticPrefix = pattern[:i]
		}

		isCatchAll := c == '*'
		j := i + 1
		for j < len(pattern) && isIdentChar(pattern[j]) {
			j++
		}
		name := pattern[i+1 : j]

		if isCatchAll {
			if name == "" {
				name = "_"
			}
			if j != len(pattern) {
				return nil, ErrCatchAllNotTerminal
			}
			if _, dup := names[name]; dup && name != "_" {
				return nil, ErrDuplicateIdentifier
			}
			names[name] = struct{}{}
			tokens = append(tokens, token{kind: tokCatchAll, text: name})
			haveCapture = true
			literalStart = j
			i = j
			break
		}

		if name == "" {
			return nil, ErrEmptyIdentifier
		}
		if _, dup := names[name]; dup {
			return nil, ErrDuplicateIdentifier
		}
		names[name] = struct{}{}
		tokens = append(tokens, token{kind: tokSegment, text: name})
		haveCapture = true
		literalStart = j
		i = j
	}

	if i > literalStart {
		tokens = append(tokens, token{kind: tokLiteral, text: pattern[literalStart:i]})
	}

	if !haveCapture {
		return &Pattern{
			Kind:         Literal,
			Raw:          pattern,
			Literal:      pattern,
			StaticPrefix: pattern,
		}, nil
	}

	kind := Parameterized
	if len(tokens) > 0 && tokens[len(tokens)-1].kind == tokCatchAll && tokens[len(tokens)-1].text == "_" {
		kind = PrefixWildcard
	}

	return &Pattern{
		Kind:         kind,
		Raw:          pattern,
		StaticPrefix: staticPrefix,
		tokens:       tokens,
	}, nil
}

// HasTerminalCatchAll reports whether the pattern ends in a *name token.
func (p *Pattern) HasTerminalCatchAll() bool {
	return len(p.tokens) > 0 && p.tokens[len(p.tokens)-1].kind == tokCatchAll
}

// Match attempts to match path against the pattern. On success it
// returns the captured parameters (for named tokens only; the
// unnamed "_" catch-all's value is discarded, matching §6's rule that
// an anonymous *name token's capture is not surfaced) and true.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	switch p.Kind {
	case Literal:
		if path == p.Literal {
			return nil, true
		}
		return nil, false
	default:
		return matchTokens(p.tokens, path)
	}
}

func matchTokens(tokens []token, path string) (map[string]string, bool) {
	var captures map[string]string
	rest := path

	for idx, tok := range tokens {
		switch tok.kind {
		case tokLiteral:
			if strings.HasPrefix(rest, tok.text) {
				rest = rest[len(tok.text):]
				break
			}

			// A literal segment immediately preceding a terminal
			// catch-all may also match when the request path ends
			// exactly at the slash-stripped prefix, e.g. pattern
			// "/prefix/*name" accepts request "/prefix" with an
			// empty capture (§9 Open Question: accepted).
			if idx == len(tokens)-2 && tokens[idx+1].kind == tokCatchAll &&
				strings.HasSuffix(tok.text, "/") && rest == tok.text[:len(tok.text)-1] {
				rest = ""
				break
			}

			return nil, false

		case tokSegment:
			end := strings.IndexByte(rest, '/')
			var seg string
			if end < 0 {
				seg = rest
				rest = ""
			} else {
				seg = rest[:end]
				rest = rest[end:]
			}
			if seg == "" {
				// a capture must consume at least one character (§9 Open Question)
				return nil, false
			}
			if captures == nil {
				captures = make(map[string]string)
			}
			captures[tok.text] = seg

		case tokCatchAll:
			// terminal; consumes the remainder, possibly empty (§9 Open Question)
			if tok.text != "_" {
				if captures == nil {
					captures = make(map[string]string)
				}
				captures[tok.text] = rest
			}
			rest = ""
		}
	}

	if rest != "" {
		return nil, false
	}
	return captures, true
}
