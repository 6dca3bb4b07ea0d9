package usecase

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	xlogger "MacroPulse/pkg/logger"
)

// SnapshotSink routes a produced snapshot to the configured backends.
// Sinks are best-effort: a broker or storage failure is logged and counted
// but never fails the tick that produced the snapshot.
type SnapshotSink struct {
	pub     domrepo.Publisher
	store   domrepo.TickStore
	metrics domrepo.Metrics
	logger  *xlogger.Logger
	timeout time.Duration
}

func NewSnapshotSink(pub domrepo.Publisher, store domrepo.TickStore, metrics domrepo.Metrics, logger *xlogger.Logger) *SnapshotSink {
	return &SnapshotSink{
		pub:     pub,
		store:   store,
		metrics: metrics,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Consume forwards one tick's snapshot and rows to the enabled backends.
func (s *SnapshotSink) Consume(ctx context.Context, snap *models.Snapshot, rows []*models.TickRow) {
	if snap == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.pub != nil {
		if err := s.pub.Publish(ctx, snap); err != nil {
			s.recordError("publish")
			if s.logger != nil {
				s.logger.Warn("snapshot publish failed", xlogger.Error(err))
			}
		}
	}

	if s.store != nil {
		if err := s.store.StoreBatch(ctx, rows); err != nil {
			s.recordError("store")
			if s.logger != nil {
				s.logger.Warn("tick store failed", xlogger.Error(err))
			}
		}
	}
}

func (s *SnapshotSink) recordError(kind string) {
	if s.metrics != nil {
		s.metrics.RecordError(kind)
	}
}

// Close closes underlying resources if available.
func (s *SnapshotSink) Close() {
	if s.pub != nil {
		_ = s.pub.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}
}
