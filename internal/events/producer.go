package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

const (
	TopicCart     = "cart"
	TopicOrders   = "orders"
	TopicProducts = "products"
	TopicUsers    = "users"
)

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher delivers domain events. Failures are reported, not retried.
type Publisher interface {
	Publish(ctx context.Context, topic, key, eventType string, data any) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
	prefix string
}

func NewKafkaPublisher(brokers []string, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
		prefix: topicPrefix,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key, eventType string, data any) error {
	payload, err := json.Marshal(Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("kafka: marshal %s: %w", eventType, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.prefix + topic,
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("kafka: write %s: %w", eventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type Nop struct{}

func (Nop) Publish(context.Context, string, string, string, any) error { return nil }
func (Nop) Close() error                                               { return nil }
