package outbox

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/quickcommerce/order-payment-service/internal/logger"
	"github.com/quickcommerce/order-payment-service/internal/metrics"
)

const relayBatchSize = 100

// Relay drains records the request path failed to publish. It retries each
// record with capped exponential backoff and leaves it pending for the next
// sweep if the channel stays down.
type Relay struct {
	store    RecordStore
	producer Publisher
	interval time.Duration
	metrics  *metrics.EventMetrics
}

func NewRelay(store RecordStore, producer Publisher, interval time.Duration, m *metrics.EventMetrics) *Relay {
	return &Relay{store: store, producer: producer, interval: interval, metrics: m}
}

func (r *Relay) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweep(ctx)
		}
	}
}

func (r *Relay) sweep(ctx context.Context) {
	pending, err := r.store.FetchPending(ctx, relayBatchSize)
	if err != nil {
		logger.Warn("outbox fetch pending failed", "err", err)
		return
	}

	for _, rec := range pending {
		if err := r.publish(ctx, rec); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("relay publish failed, will retry next sweep", "id", rec.ID, "topic", rec.Topic, "err", err)
			if err := r.store.MarkFailed(ctx, rec.ID); err != nil {
				logger.Warn("outbox mark failed error", "id", rec.ID, "err", err)
			}
			continue
		}
		r.metrics.RelayRecovered.Inc()
		r.metrics.Published.WithLabelValues(rec.Topic).Inc()
		if err := r.store.MarkSent(ctx, rec.ID); err != nil {
			logger.Warn("outbox mark sent error", "id", rec.ID, "err", err)
		}
	}
}

func (r *Relay) publish(ctx context.Context, rec Record) error {
	backoff := retry.WithMaxRetries(3, retry.WithCappedDuration(2*time.Second, retry.NewExponential(200*time.Millisecond)))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.producer.Publish(ctx, rec.Topic, rec.Key, rec.Payload); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
