//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"

	"github.com/MKhiriev/freedom-sidecar/models"
)

// WalletRepository records the engine wallets this installation created or
// opened.
type WalletRepository interface {
	Register(ctx context.Context, wallet models.WalletInfo) error
	Find(ctx context.Context, walletID string) (models.WalletInfo, error)
}

// BalanceRepository stores spendable balance observations.
type BalanceRepository interface {
	Save(ctx context.Context, snapshot models.BalanceSnapshot) error
	Latest(ctx context.Context, walletID string) (models.BalanceSnapshot, error)
}
