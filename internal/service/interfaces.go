//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

package service

import (
	"context"

	"github.com/MKhiriev/freedom-sidecar/internal/artifact"
	"github.com/MKhiriev/freedom-sidecar/models"
)

// WalletService is the password-protected wallet of the installation.
type WalletService interface {
	Exists(ctx context.Context) (bool, error)
	// Create generates a new wallet sealed under password, unlocks it and
	// returns its address.
	Create(ctx context.Context, password string) (string, error)
	// Unlock opens the existing wallet and returns its address.
	Unlock(ctx context.Context, password string) (string, error)
	// Lock forgets the unlocked wallet.
	Lock(ctx context.Context) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Address(ctx context.Context) (string, error)
	Balance(ctx context.Context) (models.BalanceResponse, error)
}

// EngineService exposes engine state and the engine's artifact store.
type EngineService interface {
	Status(ctx context.Context) models.EngineStatus
	GetArtifact(ctx context.Context, path string) ([]byte, error)
	StoreArtifact(ctx context.Context, path string, data []byte) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Coordinator is the part of the engine lifecycle the services depend on.
// *lifecycle.Coordinator implements it.
type Coordinator interface {
	EngineReady() bool
	Status() models.EngineStatus
	StartWalletTracking(ctx context.Context, wallet models.WalletInfo) error
	StopWalletTracking()
	LatestBalance(ctx context.Context, walletID string) (models.BalanceSnapshot, error)
	Artifacts() (artifact.Store, error)
}
