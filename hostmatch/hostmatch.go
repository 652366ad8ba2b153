// Package hostmatch compiles the host and remote-address patterns used
// by route predicates into compact, allocation-free matchers: host
// patterns are literal or leading-wildcard ("*.suffix"), address
// patterns are literal IPv4/IPv6 addresses or CIDR blocks.
package hostmatch

import (
	"errors"
	"net/netip"
	"strings"
)

var (
	// ErrEmptyHostPattern is returned for an empty host pattern.
	ErrEmptyHostPattern = errors.New("hostmatch: empty host pattern")
	// ErrWildcardNotLeading is returned when '*' appears anywhere but the leading label.
	ErrWildcardNotLeading = errors.New("hostmatch: wildcard must be the leading label")
	// ErrEmptyWildcardSuffix is returned for "*." with no following suffix.
	ErrEmptyWildcardSuffix = errors.New("hostmatch: wildcard host pattern has an empty suffix")
	// ErrInvalidAddressPattern is returned for an address pattern that is neither a literal IP nor a CIDR.
	ErrInvalidAddressPattern = errors.New("hostmatch: invalid address pattern")
)

// HostPattern is a compiled host matcher: either a literal host name or
// a leading-wildcard suffix match, both compared ASCII-case-insensitively.
type HostPattern struct {
	wildcard bool
	// literal is the full lower-cased host for non-wildcard patterns.
	literal string
	// suffix is the lower-cased ".suffix" (including the leading dot)
	// for wildcard patterns.
	suffix string
}

// CompileHost compiles a single host pattern.
func CompileHost(pattern string) (*HostPattern, error) {
	if pattern == "" {
		return nil, ErrEmptyHostPattern
	}

	lower := strings.ToLower(pattern)
	if strings.Contains(lower, "*") {
		if !strings.HasPrefix(lower, "*.") {
			return nil, ErrWildcardNotLeading
		}
		suffix := lower[1:] // keep the leading dot, e.g. ".example.com"
		if suffix == "." {
			return nil, ErrEmptyWildcardSuffix
		}
		if strings.Contains(suffix[1:], "*") {
			return nil, ErrWildcardNotLeading
		}
		if len(suffix) <= 1 {
			return nil, ErrEmptyWildcardSuffix
		}
		return &HostPattern{wildcard: true, suffix: suffix}, nil
	}

	return &HostPattern{literal: lower}, nil
}

// Match reports whether host (as received on the request, possibly
// carrying a ":port" suffix) satisfies the pattern.
func (h *HostPattern) Match(host string) bool {
	host = stripPort(host)
	host = strings.ToLower(host)

	if !h.wildcard {
		return host == h.literal
	}

	if !strings.HasSuffix(host, h.suffix) {
		return false
	}
	// the wildcard must consume one or more non-empty labels before the suffix
	return len(host) > len(h.suffix)
}

func stripPort(host string) string {
	if host == "" {
		return host
	}
	if host[0] == '[' {
		// IPv6 literal, optionally with a zone id, optionally with a port:
		// "[::1]:8080", "[fe80::1%eth0]"
		if end := strings.IndexByte(host, ']'); end >= 0 {
			return host[:end+1]
		}
		return host
	}
	if idx := strings.LastIndexByte(host, ':'); idx >= 0 && !strings.Contains(host[idx+1:], ":") {
		return host[:idx]
	}
	return host
}

// AnyHost reports whether any of the given patterns match host (logical OR).
func AnyHost(patterns []*HostPattern, host string) bool {
	for _, p := range patterns {
		if p.Match(host) {
			return true
		}
	}
	return false
}

// AddrPattern is a compiled remote-address matcher: a literal address or
// a CIDR block, matched over the canonical numeric form.
type AddrPattern struct {
	prefix netip.Prefix
}

// CompileAddr compiles a literal IPv4/IPv6 address or a "addr/prefixlen" CIDR.
func CompileAddr(pattern string) (*AddrPattern, error) {
	if strings.Contains(pattern, "/") {
		p, err := netip.ParsePrefix(pattern)
		if err != nil {
			return nil, errors.Join(ErrInvalidAddressPattern, err)
		}
		return &AddrPattern{prefix: p.Masked()}, nil
	}

	addr, err := netip.ParseAddr(stripZone(pattern))
	if err != nil {
		return nil, errors.Join(ErrInvalidAddressPattern, err)
	}
	return &AddrPattern{prefix: netip.PrefixFrom(addr, addr.BitLen())}, nil
}

func stripZone(addr string) string {
	if idx := strings.IndexByte(addr, '%'); idx >= 0 {
		return addr[:idx]
	}
	return addr
}

// Match reports whether remoteAddr (a literal IPv4/IPv6 address, with an
// optional zone id, and an optional ":port" suffix) is contained in the
// pattern. Family mismatches (e.g. an IPv4 request against an IPv6
// pattern) never match.
func (a *AddrPattern) Match(remoteAddr string) bool {
	host := remoteAddr
	if len(host) > 0 && host[0] == '[' {
		// "[addr]" or "[addr]:port": trimBrackets also drops the port
		host = trimBrackets(host)
	} else if strings.Count(host, ":") == 1 {
		// "ipv4:port"; a bare IPv6 address has two or more colons
		host = stripPort(host)
	}
	addr, err := netip.ParseAddr(stripZone(host))
	if err != nil {
		return false
	}

	addr = addr.WithZone("")
	if addr.Is4In6() {
		addr = addr.Unmap()
	}

	target := a.prefix.Addr()
	if target.Is4() != addr.Is4() {
		return false
	}

	return a.prefix.Contains(addr)
}

func trimBrackets(host string) string {
	if len(host) >= 2 && host[0] == '[' {
		if end := strings.IndexByte(host, ']'); end >= 0 {
			return host[1:end]
		}
	}
	return host
}

// AnyAddr reports whether any of the given patterns contain addr (logical OR).
func AnyAddr(patterns []*AddrPattern, addr string) bool {
	for _, p := range patterns {
		if p.Match(addr) {
			return true
		}
	}
	return false
}
