// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNonLocalClient is logged when a request arrives from an address
	// outside loopback.
	ErrNonLocalClient = errors.New("request from non-local client")

	// ErrForbiddenOrigin is returned for browser requests from an origin
	// that is not allowed to use the API.
	ErrForbiddenOrigin = errors.New("request from forbidden origin")

	// ErrInvalidJSON wraps body decoding failures.
	ErrInvalidJSON = errors.New("invalid JSON body")
)
