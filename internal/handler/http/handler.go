package http

import (
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/service"
)

// maxArtifactSize bounds the body of PUT /engine/artifacts/*.
const maxArtifactSize = 512 << 20

type Handler struct {
	services       *service.Services
	requestTimeout time.Duration
	allowedOrigins map[string]struct{}

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	allowedOrigins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	logger.Info().Strs("allowed_origins", cfg.AllowedOrigins).Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}
