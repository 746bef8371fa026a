// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/models"
)

// walletRepository is the SQLite-backed implementation of [WalletRepository].
type walletRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewWalletRepository constructs a [WalletRepository] over db.
func NewWalletRepository(db *DB, logger *logger.Logger) WalletRepository {
	logger.Debug().Msg("creating wallet repository")
	return &walletRepository{
		db:     db,
		logger: logger,
	}
}

// Register implements [WalletRepository]. Registering a known wallet
// updates its address and keeps its creation time.
func (r *walletRepository) Register(ctx context.Context, wallet models.WalletInfo) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertWalletQuery(wallet)
	if err != nil {
		log.Err(err).Str("func", "*walletRepository.Register").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*walletRepository.Register").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Find implements [WalletRepository].
func (r *walletRepository) Find(ctx context.Context, walletID string) (models.WalletInfo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindWalletQuery(walletID)
	if err != nil {
		return models.WalletInfo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var wallet models.WalletInfo
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&wallet.ID, &wallet.Address, &wallet.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.WalletInfo{}, ErrWalletNotRegistered
	case err != nil:
		log.Err(err).Str("func", "*walletRepository.Find").Msg("error scanning wallet")
		return models.WalletInfo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return wallet, nil
}
