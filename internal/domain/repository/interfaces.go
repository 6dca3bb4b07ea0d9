package repository

import (
	"context"

	"MacroPulse/internal/domain/models"
)

// TickStore persists per-asset tick rows and serves history queries.
type TickStore interface {
	StoreBatch(ctx context.Context, rows []*models.TickRow) error
	History(ctx context.Context, symbol string, n int) ([]*models.TickRow, error)
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits produced snapshots to an external broker.
type Publisher interface {
	Publish(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

// Metrics records operational metrics for the tick pipeline.
type Metrics interface {
	RecordTick(seconds float64)
	RecordLastPrice(symbol string, price float64)
	RecordRegime(label string)
	RecordSignal(action string)
	RecordError(kind string)
}
