// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package egress

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrBlockedEgress classifies every connection attempt rejected by the
	// guard. Callers match it with [errors.Is].
	ErrBlockedEgress = errors.New("outgoing request to clearnet blocked for privacy")

	// ErrMalformedDestination is returned when no host can be extracted
	// from a connection target. The guard treats it as a denial.
	ErrMalformedDestination = errors.New("malformed destination")

	// ErrUnsupportedNetwork is returned for dial networks the guard cannot
	// classify (anything other than tcp and udp families).
	ErrUnsupportedNetwork = errors.New("unsupported network")
)

// BlockedError is returned synchronously by every guarded entry point when
// a destination is denied. The underlying connection is never attempted.
//
// It unwraps to both [ErrBlockedEgress] and syscall.ENETUNREACH so code that
// only knows about network-unreachable errors still sees a failure it
// understands.
type BlockedError struct {
	// Network is the dial network ("tcp", "udp") or the request scheme.
	Network string
	// Target is the original, unnormalized target kept for diagnostics.
	Target string
	// Cause is set when the target could not be classified at all.
	Cause error
}

// Error implements error.
func (e *BlockedError) Error() string {
	msg := fmt.Sprintf("blocked: outgoing %s request to clearnet blocked for privacy (target: %q)", e.Network, e.Target)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the classification errors to errors.Is / errors.As.
func (e *BlockedError) Unwrap() []error {
	errs := []error{ErrBlockedEgress, syscall.ENETUNREACH}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Timeout implements net.Error. A policy denial is never a timeout.
func (e *BlockedError) Timeout() bool { return false }

// Temporary implements net.Error. A policy denial is permanent.
func (e *BlockedError) Temporary() bool { return false }
