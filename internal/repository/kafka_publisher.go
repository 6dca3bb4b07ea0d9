package repository

import (
	"context"
	"fmt"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
)

// KafkaSnapshotPublisher publishes produced snapshots to a Kafka topic.
type KafkaSnapshotPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaSnapshotPublisher(producer *pkgkafka.Producer, topic string) *KafkaSnapshotPublisher {
	return &KafkaSnapshotPublisher{producer: producer, topic: topic}
}

// Publish sends the snapshot as JSON, keyed by its regime label so
// consumers can partition by regime.
func (p *KafkaSnapshotPublisher) Publish(ctx context.Context, snap *models.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if err := p.producer.Publish(ctx, p.topic, []byte(snap.Regime.Label), snap); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying producer.
func (p *KafkaSnapshotPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.Publisher = (*KafkaSnapshotPublisher)(nil)
