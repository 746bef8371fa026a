package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/MKhiriev/freedom-sidecar/models"
)

// isoMillis renders UTC timestamps with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(isoMillis),
	}, http.StatusOK)
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteText(w, version, http.StatusOK)
}
