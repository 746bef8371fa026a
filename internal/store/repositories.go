package store

import "github.com/MKhiriev/freedom-sidecar/internal/logger"

// Repositories groups the repositories of the engine state database.
type Repositories struct {
	Wallets  WalletRepository
	Balances BalanceRepository
}

// NewRepositories builds every repository over db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Wallets:  NewWalletRepository(db, log),
		Balances: NewBalanceRepository(db, log),
	}
}
