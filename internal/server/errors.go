// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrNonLocalBind is returned for a listen address that is not on
	// loopback. The sidecar API and proxy are inside the trust boundary of
	// the egress guard and must never be reachable from the network.
	ErrNonLocalBind = errors.New("refusing to bind to a non-local address")

	errNoServersAreCreated = errors.New("no servers are created")
)
