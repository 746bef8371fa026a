// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the sidecar API.
//
// [SidecarAdapter] hides the HTTP transport from walletctl. Non-2xx
// answers come back as [*APIError], which unwraps to one of the status
// sentinels in errors.go so callers can use [errors.Is] (e.g. [ErrNotFound]
// before a wallet exists, [ErrUnauthorized] for a wrong password).
package adapter

import (
	"context"

	"github.com/MKhiriev/freedom-sidecar/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sidecar_adapter_mock.go -package=mock

// SidecarAdapter calls the sidecar API.
type SidecarAdapter interface {
	// Health returns the liveness answer of GET /health.
	Health(ctx context.Context) (models.HealthResponse, error)
	// Version returns the build description of GET /version.
	Version(ctx context.Context) (string, error)
	// EngineStatus returns GET /engine/status.
	EngineStatus(ctx context.Context) (models.EngineStatus, error)

	// WalletExists reports whether a wallet file has been created.
	WalletExists(ctx context.Context) (bool, error)
	// CreateWallet creates and unlocks a new wallet, returning its address.
	CreateWallet(ctx context.Context, password string) (string, error)
	// UnlockWallet opens the wallet and returns its address.
	UnlockWallet(ctx context.Context, password string) (string, error)
	// LockWallet drops the in-memory wallet session.
	LockWallet(ctx context.Context) error
	// ChangePassword re-encrypts the wallet file under newPassword.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	// Address returns the address of the unlocked wallet.
	Address(ctx context.Context) (string, error)
	// Balance returns the last observed balance of the unlocked wallet.
	Balance(ctx context.Context) (models.BalanceResponse, error)
}
