// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/MKhiriev/freedom-sidecar/internal/egress"
	"github.com/MKhiriev/freedom-sidecar/internal/engine"
	"github.com/MKhiriev/freedom-sidecar/internal/lifecycle"
	"github.com/MKhiriev/freedom-sidecar/internal/service"
	"github.com/MKhiriev/freedom-sidecar/internal/session"
	"github.com/MKhiriev/freedom-sidecar/internal/vault"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAddress = "0zk1qyk9nn28x0u3rwn5pknglda68wrn7gw6anjw8gg94mcj6eq5u48tlrv7j6fe3z53lama02nutwtcqc979wnce0qwly4y7w4rls5cq040g7z8eagshxrw5ajy990"

// ─────────────────────────────────────────────
// exists
// ─────────────────────────────────────────────

func TestWalletExists(t *testing.T) {
	for _, exists := range []bool{true, false} {
		t.Run(fmt.Sprint(exists), func(t *testing.T) {
			d := newTestDeps(t)
			d.wallet.EXPECT().Exists(gomock.Any()).Return(exists, nil)

			rec := d.serve(http.MethodGet, "/wallet/exists", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"exists":%t}`, exists), rec.Body.String())
		})
	}
}

func TestWalletExists_Error(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Exists(gomock.Any()).Return(false, errors.New("permission denied"))

	rec := d.serve(http.MethodGet, "/wallet/exists", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec), "internal error text must not leak")
}

// ─────────────────────────────────────────────
// create
// ─────────────────────────────────────────────

func TestCreateWallet_Success(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Create(gomock.Any(), "correcthorse1").Return(testAddress, nil)

	rec := d.serve(http.MethodPost, "/wallet/create", jsonBody(t, models.PasswordRequest{Password: "correcthorse1"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AddressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testAddress, resp.Address)
}

func TestCreateWallet_InvalidJSON(t *testing.T) {
	d := newTestDeps(t)

	rec := d.serve(http.MethodPost, "/wallet/create", strings.NewReader(`{"password":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON was passed", decodeError(t, rec))
}

func TestCreateWallet_EmptyBody(t *testing.T) {
	d := newTestDeps(t)

	rec := d.serve(http.MethodPost, "/wallet/create", strings.NewReader(""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateWallet_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"short password", service.ErrInvalidPassword, http.StatusBadRequest, "Password must be at least 8 characters"},
		{"already exists", vault.ErrVaultAlreadyExists, http.StatusConflict, "Wallet already exists"},
		{"wrapped already exists", fmt.Errorf("create: %w", vault.ErrVaultAlreadyExists), http.StatusConflict, "Wallet already exists"},
		{"engine booting", lifecycle.ErrEngineNotInitialized, http.StatusServiceUnavailable, "Wallet engine is not initialized"},
		{"engine unreachable", fmt.Errorf("create wallet: %w", engine.ErrEngineUnavailable), http.StatusServiceUnavailable, "Wallet engine is unavailable"},
		{"engine rejected", engine.ErrEngineRequest, http.StatusBadGateway, "Wallet engine request failed"},
		{"vault io timeout", vault.ErrVaultIOTimeout, http.StatusGatewayTimeout, "Wallet file operation timed out"},
		{"blocked egress", &egress.BlockedError{Network: "https", Target: "https://example.com/"}, http.StatusForbidden, "Outgoing request to clearnet blocked for privacy"},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			d.wallet.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", tt.err)

			rec := d.serve(http.MethodPost, "/wallet/create", jsonBody(t, models.PasswordRequest{Password: "whatever1"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
		})
	}
}

// ─────────────────────────────────────────────
// unlock
// ─────────────────────────────────────────────

func TestUnlockWallet_Success(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Unlock(gomock.Any(), "correcthorse1").Return(testAddress, nil)

	rec := d.serve(http.MethodPost, "/wallet/unlock", jsonBody(t, models.PasswordRequest{Password: "correcthorse1"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":"`+testAddress+`"}`, rec.Body.String())
}

func TestUnlockWallet_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"password required", service.ErrPasswordRequired, http.StatusBadRequest, "Password is required"},
		{"no wallet", vault.ErrVaultNotFound, http.StatusNotFound, "No wallet found"},
		{"wrong password", vault.ErrInvalidPasswordOrCorrupted, http.StatusUnauthorized, "Invalid password"},
		{"engine booting", lifecycle.ErrEngineNotInitialized, http.StatusServiceUnavailable, "Wallet engine is not initialized"},
		{"coordinator stopped", lifecycle.ErrCoordinatorStopped, http.StatusServiceUnavailable, "Wallet engine is not initialized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			d.wallet.EXPECT().Unlock(gomock.Any(), gomock.Any()).Return("", tt.err)

			rec := d.serve(http.MethodPost, "/wallet/unlock", jsonBody(t, models.PasswordRequest{Password: "wrong"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
		})
	}
}

// ─────────────────────────────────────────────
// lock / password
// ─────────────────────────────────────────────

func TestLockWallet(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Lock(gomock.Any()).Return(nil)

	rec := d.serve(http.MethodPost, "/wallet/lock", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"locked"}`, rec.Body.String())
}

func TestChangePassword_Success(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().ChangePassword(gomock.Any(), "correcthorse1", "batterystaple2").Return(nil)

	rec := d.serve(http.MethodPost, "/wallet/password", jsonBody(t, models.ChangePasswordRequest{
		OldPassword: "correcthorse1",
		NewPassword: "batterystaple2",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("rekey: %w", vault.ErrInvalidPasswordOrCorrupted))

	rec := d.serve(http.MethodPost, "/wallet/password", strings.NewReader(`{"oldPassword":"nope","newPassword":"batterystaple2"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// address / balance
// ─────────────────────────────────────────────

func TestWalletAddress(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Address(gomock.Any()).Return(testAddress, nil)

	rec := d.serve(http.MethodGet, "/wallet/address", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":"`+testAddress+`"}`, rec.Body.String())
}

func TestWalletAddress_Locked(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Address(gomock.Any()).Return("", session.ErrLocked)

	rec := d.serve(http.MethodGet, "/wallet/address", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Wallet is locked", decodeError(t, rec))
}

func TestWalletBalance(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Balance(gomock.Any()).Return(models.BalanceResponse{
		Balance:    "1.5",
		BalanceWei: "1500000000000000000",
	}, nil)

	rec := d.serve(http.MethodGet, "/wallet/balance", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":"1.5","balanceWei":"1500000000000000000"}`, rec.Body.String())
}

func TestWalletBalance_Locked(t *testing.T) {
	d := newTestDeps(t)
	d.wallet.EXPECT().Balance(gomock.Any()).Return(models.BalanceResponse{}, session.ErrLocked)

	rec := d.serve(http.MethodGet, "/wallet/balance", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
