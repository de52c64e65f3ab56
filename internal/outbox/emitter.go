package outbox

import (
	"context"

	"github.com/quickcommerce/order-payment-service/internal/logger"
	"github.com/quickcommerce/order-payment-service/internal/metrics"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}

// Emitter performs the post-commit publish attempt on the request path. A
// failure here never reaches the caller: the state change is already
// committed, and the record stays pending for the relay.
type Emitter struct {
	producer Publisher
	store    RecordStore
	metrics  *metrics.EventMetrics
}

func NewEmitter(producer Publisher, store RecordStore, m *metrics.EventMetrics) *Emitter {
	return &Emitter{producer: producer, store: store, metrics: m}
}

func (e *Emitter) Emit(ctx context.Context, rec *Record) {
	if err := e.producer.Publish(ctx, rec.Topic, rec.Key, rec.Payload); err != nil {
		logger.Warn("event publish failed, left for relay", "topic", rec.Topic, "key", rec.Key, "err", err)
		e.metrics.PublishFailures.WithLabelValues(rec.Topic).Inc()
		if err := e.store.MarkFailed(ctx, rec.ID); err != nil {
			logger.Warn("outbox mark failed error", "id", rec.ID, "err", err)
		}
		return
	}

	e.metrics.Published.WithLabelValues(rec.Topic).Inc()
	if err := e.store.MarkSent(ctx, rec.ID); err != nil {
		// Worst case the relay publishes the record again; consumers must
		// already tolerate at-least-once delivery.
		logger.Warn("outbox mark sent error", "id", rec.ID, "err", err)
	}
}
