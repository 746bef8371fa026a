package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/MKhiriev/freedom-sidecar/models"
)

// maxJSONBody bounds the JSON bodies of the wallet routes.
const maxJSONBody = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) walletExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.services.WalletService.Exists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ExistsResponse{Exists: exists}, http.StatusOK)
}

func (h *Handler) createWallet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Msg("creating new wallet...")
	address, err := h.services.WalletService.Create(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("address", address).Msg("wallet created successfully")
	utils.WriteJSON(w, models.AddressResponse{Address: address}, http.StatusOK)
}

func (h *Handler) unlockWallet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Msg("unlocking wallet...")
	address, err := h.services.WalletService.Unlock(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("address", address).Msg("wallet unlocked successfully")
	utils.WriteJSON(w, models.AddressResponse{Address: address}, http.StatusOK)
}

func (h *Handler) lockWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.services.WalletService.Lock(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Msg("wallet locked")
	utils.WriteJSON(w, models.StatusResponse{Status: "locked"}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.WalletService.ChangePassword(r.Context(), req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Msg("wallet password changed")
	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) walletAddress(w http.ResponseWriter, r *http.Request) {
	address, err := h.services.WalletService.Address(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AddressResponse{Address: address}, http.StatusOK)
}

func (h *Handler) walletBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.services.WalletService.Balance(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, balance, http.StatusOK)
}
