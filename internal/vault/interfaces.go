//go:generate mockgen -source=interfaces.go -destination=../mock/vault_mock.go -package=mock

package vault

import (
	"context"

	"github.com/MKhiriev/freedom-sidecar/models"
)

// Vault stores the single wallet secret of the installation.
type Vault interface {
	// Exists reports whether a vault file is present.
	Exists(ctx context.Context) (bool, error)
	// Create seals secret under password. It never overwrites an existing
	// vault. On ErrVaultIOTimeout the write may still complete afterwards;
	// callers that care check Exists.
	Create(ctx context.Context, secret models.WalletSecret, password string) error
	// Unlock decrypts the vault with password.
	Unlock(ctx context.Context, password string) (models.WalletSecret, error)
	// Rekey re-seals the vault under newPassword. The engine key derived
	// from the password the wallet was created with is pinned in the
	// payload so the engine wallet keeps opening.
	Rekey(ctx context.Context, oldPassword, newPassword string) error
}
