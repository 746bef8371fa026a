//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

package engine

import (
	"context"
	"math/big"

	"github.com/MKhiriev/freedom-sidecar/models"
)

// Engine is the wallet engine capability. The engine owns the wallet
// cryptography and chain scanning; the sidecar only drives its lifecycle
// and hands it keys after the user authenticated.
type Engine interface {
	// Init bootstraps the engine and returns the relayer fee table.
	Init(ctx context.Context, params models.EngineInitParams) (models.FeeTable, error)
	// CreateWallet creates an engine wallet from mnemonic, encrypted by the
	// engine under encryptionKey (hex).
	CreateWallet(ctx context.Context, encryptionKey, mnemonic string) (models.WalletInfo, error)
	// LoadWallet opens a previously created engine wallet.
	LoadWallet(ctx context.Context, encryptionKey, walletID string) (models.WalletInfo, error)
	// ShareableViewingKey returns the wallet's shareable viewing key.
	ShareableViewingKey(ctx context.Context, walletID string) (string, error)
	// SpendableBalance returns the wallet's spendable balance in wei.
	SpendableBalance(ctx context.Context, walletID string) (*big.Int, error)
	// Shutdown stops the engine.
	Shutdown(ctx context.Context) error
}
