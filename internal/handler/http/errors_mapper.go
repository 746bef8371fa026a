package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/freedom-sidecar/internal/app"
	"github.com/MKhiriev/freedom-sidecar/internal/artifact"
	"github.com/MKhiriev/freedom-sidecar/internal/egress"
	"github.com/MKhiriev/freedom-sidecar/internal/engine"
	"github.com/MKhiriev/freedom-sidecar/internal/lifecycle"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/service"
	"github.com/MKhiriev/freedom-sidecar/internal/session"
	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/MKhiriev/freedom-sidecar/internal/vault"
	"github.com/MKhiriev/freedom-sidecar/models"
)

type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatusTable is matched in order with errors.Is.
var errorStatusTable = []errorStatus{
	{ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidJSON},
	{service.ErrPasswordRequired, http.StatusBadRequest, app.MsgPasswordRequired},
	{service.ErrInvalidPassword, http.StatusBadRequest, app.MsgPasswordTooShort},
	{artifact.ErrInvalidArtifactPath, http.StatusBadRequest, app.MsgInvalidArtifactPath},

	{session.ErrLocked, http.StatusUnauthorized, app.MsgWalletLocked},
	{vault.ErrInvalidPasswordOrCorrupted, http.StatusUnauthorized, app.MsgInvalidPassword},

	{egress.ErrBlockedEgress, http.StatusForbidden, app.MsgBlockedEgress},
	{ErrNonLocalClient, http.StatusForbidden, app.MsgLocalClientsOnly},
	{ErrForbiddenOrigin, http.StatusForbidden, app.MsgForbiddenOrigin},

	{vault.ErrVaultNotFound, http.StatusNotFound, app.MsgNoWalletFound},
	{artifact.ErrArtifactNotFound, http.StatusNotFound, app.MsgArtifactNotFound},

	{vault.ErrVaultAlreadyExists, http.StatusConflict, app.MsgWalletAlreadyExists},

	{engine.ErrEngineRequest, http.StatusBadGateway, app.MsgEngineRequestFailed},

	{lifecycle.ErrEngineNotInitialized, http.StatusServiceUnavailable, app.MsgEngineNotReady},
	{lifecycle.ErrCoordinatorStopped, http.StatusServiceUnavailable, app.MsgEngineNotReady},
	{engine.ErrEngineUnavailable, http.StatusServiceUnavailable, app.MsgEngineUnavailable},

	{vault.ErrVaultIOTimeout, http.StatusGatewayTimeout, app.MsgWalletIOTimeout},
}

// statusFromError returns the HTTP status and client-facing message for err.
// Unknown errors map to 500 and never leak their text.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and answers with the mapped status and an
// [models.ErrorResponse] body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
