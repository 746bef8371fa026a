package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) engineStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.EngineService.Status(r.Context()), http.StatusOK)
}

func (h *Handler) getArtifact(w http.ResponseWriter, r *http.Request) {
	data, err := h.services.EngineService.GetArtifact(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) putArtifact(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArtifactSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusRequestEntityTooLarge)}, http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, r, fmt.Errorf("reading artifact body: %w", err))
		return
	}

	if err = h.services.EngineService.StoreArtifact(r.Context(), chi.URLParam(r, "*"), data); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
