package http

import (
	"net/http"

	"github.com/MKhiriev/freedom-sidecar/internal/app"
	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLoopbackOnly)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/health", h.health)
	router.Get("/version", h.getVersion)

	router.Route("/wallet", func(r chi.Router) {
		r.Get("/exists", h.walletExists)
		r.Post("/create", h.createWallet)
		r.Post("/unlock", h.unlockWallet)
		r.Post("/lock", h.lockWallet)
		r.Post("/password", h.changePassword)
		r.Get("/address", h.walletAddress)
		r.Get("/balance", h.walletBalance)
	})

	router.Route("/engine", func(r chi.Router) {
		r.Get("/status", h.engineStatus)
		r.Get("/artifacts/*", h.getArtifact)
		r.Put("/artifacts/*", h.putArtifact)
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgNotFound}, http.StatusNotFound)
	})

	return router
}
