package kafka

import (
	"context"
	"strings"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	w *kafka.Writer
}

// NewProducer builds one writer for all topics; the topic travels on each
// message. The Hash balancer keeps every key (entity id) on one partition,
// which is what gives per-entity ordering.
func NewProducer(brokersSTR string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
