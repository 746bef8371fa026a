// Package egress implements the network isolation layer of the sidecar.
//
// Instead of patching process-wide primitives, the package hands out a
// constructed [Guard]. Every network-capable component receives the guard,
// or a dialer, transport or HTTP client derived from it, at construction
// time. The guard classifies each destination lexically against an
// immutable local-only [Policy] and fails closed: unknown, empty and
// malformed destinations are denied, and denied destinations are never
// dialed.
//
// Child processes that cannot be given a Go dialer are pointed at a
// forward [Proxy] that applies the same guard. Remote destinations are
// reachable only through an explicit anonymity transport ([NewTorDialer])
// and only for hosts explicitly listed as anonymized.
//
// The guard performs no DNS resolution: a remote name that happens to
// resolve to a private address is still denied.
package egress
