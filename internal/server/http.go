package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
)

type httpServer struct {
	name     string
	addr     string
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(name, addr string, handler http.Handler, writeTimeout time.Duration, logger *logger.Logger) *httpServer {
	return &httpServer{
		name: name,
		addr: addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       2 * time.Minute,
		},
		logger: logger.WithComponent(name),
	}
}

func (h *httpServer) listen() error {
	if h.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("%s: listen on %s: %w", h.name, h.addr, err)
	}
	h.listener = ln
	h.logger.Info().Str("address", ln.Addr().String()).Msg("listening")
	return nil
}

func (h *httpServer) RunServer() error {
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: serve: %w", h.name, err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("shutting down")
	if err := h.server.Shutdown(ctx); err != nil {
		h.server.Close()
		return fmt.Errorf("%s: shutdown: %w", h.name, err)
	}
	return nil
}

// checkLocalBind accepts "localhost" and loopback IP literals only. An
// empty host would bind every interface.
func checkLocalBind(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrNonLocalBind, addr, err)
	}
	if strings.EqualFold(host, "localhost") {
		return nil
	}
	ip, err := netip.ParseAddr(host)
	if err != nil || !ip.Unmap().IsLoopback() {
		return fmt.Errorf("%w: %q", ErrNonLocalBind, addr)
	}
	return nil
}
