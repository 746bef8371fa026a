// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package egress

import (
	"context"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
)

// Dialer opens network connections. *net.Dialer, *Guard and the SOCKS dialer
// returned by [NewTorDialer] all satisfy it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Guard is the single connection factory of the process. Every component
// that can talk to the network is constructed with the guard (or with a
// transport/client derived from it), so there is no dial path that skips
// [Guard.Check].
//
// A Guard is safe for concurrent use. Decisions are not cached: the same
// target is re-evaluated on every attempt.
type Guard struct {
	policy *Policy
	base   Dialer
	logger *logger.Logger

	blocked atomic.Uint64
}

// NewGuard builds a guard enforcing policy on top of base. A nil policy means
// [DefaultPolicy]; a nil base means a plain net.Dialer.
func NewGuard(policy *Policy, base Dialer, log *logger.Logger) *Guard {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if base == nil {
		base = &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
	}
	if log == nil {
		log = logger.Nop()
	}

	log.Info().Msg("network isolation layer installed: only local destinations may be dialed")

	return &Guard{policy: policy, base: base, logger: log}
}

// Policy returns the policy the guard enforces.
func (g *Guard) Policy() *Policy {
	return g.policy
}

// Blocked returns how many attempts the guard has rejected so far.
func (g *Guard) Blocked() uint64 {
	return g.blocked.Load()
}

// Check normalizes target and evaluates it. It returns the parsed
// destination and a *BlockedError when the target is denied or malformed.
func (g *Guard) Check(network, target string) (Destination, error) {
	dest, err := ParseDestination(target)
	if err != nil {
		return Destination{}, g.deny(network, target, err)
	}
	return dest, g.CheckDestination(network, target, dest)
}

// CheckDestination evaluates an already parsed destination. target is only
// used for diagnostics.
func (g *Guard) CheckDestination(network, target string, dest Destination) error {
	if g.policy.Evaluate(dest) != Allowed {
		return g.deny(network, target, nil)
	}
	return nil
}

func (g *Guard) deny(network, target string, cause error) error {
	g.blocked.Add(1)
	g.logger.Warn().
		Str("network", network).
		Str("target", target).
		AnErr("cause", cause).
		Msg("BLOCKED: outgoing request to clearnet blocked for privacy")
	return &BlockedError{Network: network, Target: target, Cause: cause}
}

// DialContext evaluates address and, when allowed, delegates to the base
// dialer. Denied addresses fail immediately without touching the network.
func (g *Guard) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if !supportedNetwork(network) {
		return nil, g.deny(network, address, ErrUnsupportedNetwork)
	}
	if _, err := g.Check(network, address); err != nil {
		return nil, err
	}
	return g.base.DialContext(ctx, network, address)
}

// Dial is the context-free variant of DialContext. It lets the guard act as
// a forward dialer for golang.org/x/net/proxy.
func (g *Guard) Dial(network, address string) (net.Conn, error) {
	return g.DialContext(context.Background(), network, address)
}

func supportedNetwork(network string) bool {
	return strings.HasPrefix(network, "tcp") || strings.HasPrefix(network, "udp")
}
