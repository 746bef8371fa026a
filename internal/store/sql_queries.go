// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/freedom-sidecar/models"
)

// psql builds SQLite statements (? placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildUpsertWalletQuery(wallet models.WalletInfo) (string, []any, error) {
	createdAt := wallet.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return psql.
		Insert("engine_wallets").
		Columns("wallet_id", "address", "created_at").
		Values(wallet.ID, wallet.Address, createdAt.UTC()).
		Suffix("ON CONFLICT (wallet_id) DO UPDATE SET address = excluded.address").
		ToSql()
}

func buildFindWalletQuery(walletID string) (string, []any, error) {
	return psql.
		Select("wallet_id", "address", "created_at").
		From("engine_wallets").
		Where(sq.Eq{"wallet_id": walletID}).
		ToSql()
}

func buildInsertBalanceQuery(snapshot models.BalanceSnapshot) (string, []any, error) {
	return psql.
		Insert("balance_snapshots").
		Columns("wallet_id", "balance_wei", "observed_at").
		Values(snapshot.WalletID, snapshot.BalanceWei.String(), snapshot.ObservedAt.UTC()).
		ToSql()
}

func buildLatestBalanceQuery(walletID string) (string, []any, error) {
	return psql.
		Select("wallet_id", "balance_wei", "observed_at").
		From("balance_snapshots").
		Where(sq.Eq{"wallet_id": walletID}).
		OrderBy("observed_at DESC", "id DESC").
		Limit(1).
		ToSql()
}
