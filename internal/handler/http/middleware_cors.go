// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
)

// withCORS lets the desktop shell's webview call the API. A loopback peer
// can still be a browser showing any page, so a request that carries an
// Origin outside h.allowedOrigins is refused before it reaches a handler,
// preflight or not. Requests without an Origin (walletctl, the engine)
// pass through.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := h.allowedOrigins[origin]; !ok {
			h.logger.Warn().Str("origin", origin).Str("method", r.Method).Str("path", r.URL.Path).Msg("rejected foreign origin")
			writeError(w, r, fmt.Errorf("%w: %s", ErrForbiddenOrigin, origin))
			return
		}

		header.Set("Access-Control-Allow-Origin", origin)
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			header.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,POST,OPTIONS")
			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				header.Set("Access-Control-Allow-Headers", reqHeaders)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
