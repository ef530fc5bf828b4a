package repository

import (
	"context"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/domain/repository"
	pkgkafka "AgriPulse/pkg/kafka"
)

// KafkaAlertNotifier implements AlertNotifier for Kafka. Events are keyed
// by user id so one user's notifications stay ordered on one partition.
type KafkaAlertNotifier struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAlertNotifier creates a Kafka alert notifier.
func NewKafkaAlertNotifier(producer *pkgkafka.Producer, topic string) repository.AlertNotifier {
	return &KafkaAlertNotifier{producer: producer, topic: topic}
}

func (n *KafkaAlertNotifier) NotifyTriggered(ctx context.Context, ev models.AlertTriggerEvent) error {
	return n.producer.Publish(ctx, n.topic, []byte(ev.UserID), ev)
}

func (n *KafkaAlertNotifier) Close() error {
	if n.producer != nil {
		return n.producer.Close()
	}
	return nil
}
