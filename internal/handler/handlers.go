package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/handler/http"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/service"
)

// Handlers groups the transports the sidecar serves: the local API and the
// forward proxy handed to child processes.
type Handlers struct {
	API   *http.Handler
	Proxy nethttp.Handler
}

// NewHandlers builds the API handler when an API address is configured and
// keeps proxy as the forward-proxy handler. proxy may be nil when no child
// process needs one.
func NewHandlers(services *service.Services, proxy nethttp.Handler, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{Proxy: proxy}

	if cfg.HTTPAddress != "" {
		handlers.API = http.NewHandler(services, cfg, logger)
	}

	if handlers.API == nil && handlers.Proxy == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
