package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/models"
)

const saveRetryDelay = 50 * time.Millisecond

// balanceRepository is the SQLite-backed implementation of [BalanceRepository].
type balanceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBalanceRepository constructs a [BalanceRepository] over db.
func NewBalanceRepository(db *DB, logger *logger.Logger) BalanceRepository {
	logger.Debug().Msg("creating balance repository")
	return &balanceRepository{
		db:     db,
		logger: logger,
	}
}

// Save implements [BalanceRepository]. A statement failing on lock
// contention is retried once.
func (r *balanceRepository) Save(ctx context.Context, snapshot models.BalanceSnapshot) error {
	log := logger.FromContext(ctx)

	if snapshot.BalanceWei == nil {
		return fmt.Errorf("%w: balance is nil", ErrBuildingSQLQuery)
	}

	query, args, err := buildInsertBalanceQuery(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil && classify(err) == Retryable {
		log.Debug().Err(err).Str("func", "*balanceRepository.Save").Msg("database busy, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(saveRetryDelay):
		}
		_, err = r.db.ExecContext(ctx, query, args...)
	}

	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return ErrWalletNotRegistered
	default:
		log.Err(err).Str("func", "*balanceRepository.Save").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

// Latest implements [BalanceRepository].
func (r *balanceRepository) Latest(ctx context.Context, walletID string) (models.BalanceSnapshot, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLatestBalanceQuery(walletID)
	if err != nil {
		return models.BalanceSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		snapshot models.BalanceSnapshot
		rawWei   string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&snapshot.WalletID, &rawWei, &snapshot.ObservedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.BalanceSnapshot{}, ErrNoBalanceObserved
	case err != nil:
		log.Err(err).Str("func", "*balanceRepository.Latest").Msg("error scanning balance")
		return models.BalanceSnapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	wei, ok := new(big.Int).SetString(rawWei, 10)
	if !ok {
		return models.BalanceSnapshot{}, fmt.Errorf("%w: stored balance %q", ErrScanningRow, rawWei)
	}
	snapshot.BalanceWei = wei

	return snapshot, nil
}
