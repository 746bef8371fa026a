// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package egress

import (
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

// Decision is the outcome of evaluating a [Destination] against a [Policy].
type Decision int

const (
	// Denied means the destination must never be dialed.
	Denied Decision = iota
	// Allowed means the destination is local and may be dialed directly.
	Allowed
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Destination is a (host, port) pair extracted from an outbound connection
// attempt. Host is the literal hostname or IP the caller supplied; no DNS
// resolution is ever performed on it.
type Destination struct {
	Host string
	Port string
}

// String returns the destination in host:port form, or just the host when no
// port is known.
func (d Destination) String() string {
	if d.Port == "" {
		return d.Host
	}
	return net.JoinHostPort(d.Host, d.Port)
}

var (
	defaultLocalHosts = []string{"localhost", "127.0.0.1", "::1", "0.0.0.0"}

	defaultPrivateRanges = []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("172.16.0.0/12"),
		netip.MustParsePrefix("192.168.0.0/16"),
	}
)

// Policy is an immutable allowlist of local destinations. A destination is
// allowed iff its host literally equals one of the exact hosts or is an IP
// literal inside one of the private prefixes. Everything else, including
// empty and malformed hosts, is denied.
type Policy struct {
	hosts    map[string]struct{}
	prefixes []netip.Prefix
}

// DefaultPolicy returns the local-only policy: localhost, 127.0.0.1, ::1,
// 0.0.0.0 and the three RFC 1918 IPv4 ranges.
func DefaultPolicy() *Policy {
	return NewPolicy()
}

// NewPolicy returns the default policy extended with extraHosts. Extra hosts
// are matched exactly like the built-in ones (case-insensitive literal
// comparison after port stripping).
func NewPolicy(extraHosts ...string) *Policy {
	p := &Policy{
		hosts:    make(map[string]struct{}, len(defaultLocalHosts)+len(extraHosts)),
		prefixes: append([]netip.Prefix(nil), defaultPrivateRanges...),
	}
	for _, h := range defaultLocalHosts {
		p.hosts[h] = struct{}{}
	}
	for _, h := range extraHosts {
		if host, ok := canonicalHost(h); ok {
			p.hosts[host] = struct{}{}
		}
	}
	return p
}

// Evaluate decides whether d may be dialed. It is a pure function of the
// policy and d and is safe for concurrent use.
func (p *Policy) Evaluate(d Destination) Decision {
	if p.AllowsHost(d.Host) {
		return Allowed
	}
	return Denied
}

// AllowsHost reports whether the literal host (optionally carrying a port)
// matches the policy.
func (p *Policy) AllowsHost(rawHost string) bool {
	host, ok := canonicalHost(rawHost)
	if !ok {
		return false
	}
	if _, found := p.hosts[host]; found {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	for _, prefix := range p.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// canonicalHost lowercases raw, strips a trailing port segment, IPv6
// brackets and a trailing root dot. IP literals are rendered in their
// canonical form with IPv4-mapped IPv6 addresses unmapped. It reports false
// for empty or malformed input.
func canonicalHost(raw string) (string, bool) {
	host := strings.ToLower(strings.TrimSpace(raw))
	if host == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(host, "["):
		end := strings.Index(host, "]")
		if end < 0 {
			return "", false
		}
		rest := host[end+1:]
		if rest != "" && !strings.HasPrefix(rest, ":") {
			return "", false
		}
		host = host[1:end]
	case strings.Count(host, ":") == 1:
		h, _, err := net.SplitHostPort(host)
		if err != nil {
			return "", false
		}
		host = h
	}

	host = strings.TrimSuffix(host, ".")
	if host == "" || strings.ContainsAny(host, "/ @?#") {
		return "", false
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String(), true
	}
	return host, true
}

// ParseDestination normalizes the target of an outbound call to a
// [Destination]. target may be a dial address ("host:port", "[::1]:80"), a
// bare host, or an absolute URL ("https://example.com/path").
func ParseDestination(target string) (Destination, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Destination{}, ErrMalformedDestination
	}

	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return Destination{}, ErrMalformedDestination
		}
		return DestinationFromURL(u)
	}

	host, port, err := net.SplitHostPort(target)
	if err != nil {
		return Destination{Host: target}, nil
	}
	return Destination{Host: host, Port: port}, nil
}

// DestinationFromURL extracts the destination of an absolute URL. When the
// URL has no explicit port the scheme default is used.
func DestinationFromURL(u *url.URL) (Destination, error) {
	if u == nil || u.Host == "" {
		return Destination{}, ErrMalformedDestination
	}
	port := u.Port()
	if port == "" {
		port = defaultPort(u.Scheme)
	}
	return Destination{Host: u.Hostname(), Port: port}, nil
}

// DestinationFromRequest extracts the destination of an outgoing request,
// preferring req.URL.Host and falling back to req.Host.
func DestinationFromRequest(req *http.Request) (Destination, error) {
	if req == nil {
		return Destination{}, ErrMalformedDestination
	}
	if req.URL != nil && req.URL.Host != "" {
		return DestinationFromURL(req.URL)
	}
	if req.Host == "" {
		return Destination{}, ErrMalformedDestination
	}
	return ParseDestination(req.Host)
}

func defaultPort(scheme string) string {
	switch strings.ToLower(scheme) {
	case "http", "ws":
		return "80"
	case "https", "wss":
		return "443"
	case "socks5", "socks5h":
		return "1080"
	default:
		return ""
	}
}
