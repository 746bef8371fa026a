// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
)

// withLoopbackOnly rejects requests whose peer is not a loopback address.
// The server already binds to loopback; this guards against the listener
// being exposed by a misconfiguration or a port forward.
func (h *Handler) withLoopbackOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isLoopbackPeer(r.RemoteAddr) {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Str("path", r.URL.Path).Msg("rejected non-local client")
			writeError(w, r, fmt.Errorf("%w: %s", ErrNonLocalClient, r.RemoteAddr))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isLoopbackPeer(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	return addr.Unmap().IsLoopback()
}
