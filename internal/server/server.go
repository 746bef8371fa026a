package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/handler"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds the graceful drain of open requests.
const shutdownTimeout = 10 * time.Second

type server struct {
	mu      sync.Mutex
	servers []*httpServer
	logger  *logger.Logger

	shutdownOnce sync.Once
	shutdownErr  error
	closed       chan struct{}
}

// NewServer creates the API listener for handlers.API on cfg.HTTPAddress and
// the forward proxy listener for handlers.Proxy on egress.ProxyAddress. Both
// addresses must be on loopback.
func NewServer(handlers *handler.Handlers, cfg config.Server, egress config.Egress, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger, closed: make(chan struct{})}

	if handlers.API != nil {
		if err := checkLocalBind(cfg.HTTPAddress); err != nil {
			return nil, err
		}
		writeTimeout := time.Duration(0)
		if cfg.RequestTimeout > 0 {
			writeTimeout = cfg.RequestTimeout + 5*time.Second
		}
		s.servers = append(s.servers, newHTTPServer("api", cfg.HTTPAddress, handlers.API.Init(), writeTimeout, logger))
	}
	if handlers.Proxy != nil {
		if err := checkLocalBind(egress.ProxyAddress); err != nil {
			return nil, err
		}
		// tunnels are long-lived, so the proxy has no write deadline
		s.servers = append(s.servers, newHTTPServer("proxy", egress.ProxyAddress, handlers.Proxy, 0, logger))
	}

	if len(s.servers) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, srv := range s.servers {
		if err := srv.listen(); err != nil {
			for _, opened := range s.servers[:i] {
				opened.listener.Close()
				opened.listener = nil
			}
			return err
		}
	}
	return nil
}

func (s *server) Addrs() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs := make(map[string]string, len(s.servers))
	for _, srv := range s.servers {
		if srv.listener != nil {
			addrs[srv.name] = srv.listener.Addr().String()
		}
	}
	return addrs
}

func (s *server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range s.servers {
		s.logger.Info().Str("server", srv.name).Msg("launching server")
		g.Go(srv.RunServer)
	}
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.closed:
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		var errs []error
		for _, srv := range s.servers {
			if err := srv.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		s.shutdownErr = errors.Join(errs...)
		close(s.closed)
	})
	return s.shutdownErr
}
