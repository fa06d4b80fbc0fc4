// Package kafka publishes change notifications to a Kafka topic so consumers
// outside the process can follow the ledger.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/DevLabStudio/goldquest-ledger/internal/notify"
)

// Publisher writes one message per change. The message key is the change
// scope (entityType/id) so records keep their ordering within a partition.
type Publisher struct {
	writer *kafka.Writer
}

var _ notify.Publisher = (*Publisher)(nil)

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, change notify.Change) error {
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.EntityType + "/" + change.ID),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
