package repository

import (
	"context"
	"database/sql"
	"fmt"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
)

// ClickHouseTickStore persists one row per asset per tick.
type ClickHouseTickStore struct {
	db    *sql.DB
	table string
}

func NewClickHouseTickStore(db *sql.DB, table string) *ClickHouseTickStore {
	return &ClickHouseTickStore{db: db, table: table}
}

// StoreBatch inserts all rows of one tick in a single transaction.
func (s *ClickHouseTickStore) StoreBatch(ctx context.Context, rows []*models.TickRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (ts, symbol, price, chg_pct, volume, vol_spike, regime) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.table,
	))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		spike := uint8(0)
		if r.VolSpike {
			spike = 1
		}
		if _, err := stmt.ExecContext(ctx, r.Ts, r.Symbol, r.Price, r.ChgPct, r.Volume, spike, r.Regime); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert row %s: %w", r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// History returns the latest n rows for a symbol, newest first.
func (s *ClickHouseTickStore) History(ctx context.Context, symbol string, n int) ([]*models.TickRow, error) {
	q := fmt.Sprintf(
		"SELECT ts, symbol, price, chg_pct, volume, vol_spike, regime FROM %s WHERE symbol = ? ORDER BY ts DESC LIMIT ?",
		s.table,
	)
	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*models.TickRow
	for rows.Next() {
		var r models.TickRow
		var spike uint8
		if err := rows.Scan(&r.Ts, &r.Symbol, &r.Price, &r.ChgPct, &r.Volume, &spike, &r.Regime); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.VolSpike = spike != 0
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Health pings the database.
func (s *ClickHouseTickStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op: the connection pool is owned by the clickhouse client.
func (s *ClickHouseTickStore) Close() error { return nil }

var _ domrepo.TickStore = (*ClickHouseTickStore)(nil)
