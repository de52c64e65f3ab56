package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelaySweepPublishesPending(t *testing.T) {
	prod := &fakeProducer{}
	store := &fakeStore{pending: []Record{
		{ID: 1, Topic: "order-events", Key: "1", Payload: []byte(`{}`)},
		{ID: 2, Topic: "payment-events", Key: "2", Payload: []byte(`{}`)},
	}}
	r := NewRelay(store, prod, 0, testMetrics)

	r.sweep(context.Background())

	assert.Len(t, prod.published, 2)
	assert.Equal(t, []int64{1, 2}, store.sent)
	assert.Empty(t, store.failed)
}

func TestRelaySweepLeavesRecordOnFailure(t *testing.T) {
	prod := &fakeProducer{err: errors.New("broker down")}
	store := &fakeStore{pending: []Record{
		{ID: 5, Topic: "order-events", Key: "5", Payload: []byte(`{}`)},
	}}
	r := NewRelay(store, prod, 0, testMetrics)

	r.sweep(context.Background())

	assert.Empty(t, store.sent)
	assert.Equal(t, []int64{5}, store.failed)
}

type flakyProducer struct {
	failures  int
	published []Record
}

func (f *flakyProducer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("transient")
	}
	f.published = append(f.published, Record{Topic: topic, Key: key, Payload: payload})
	return nil
}

func TestRelayRetriesTransientFailures(t *testing.T) {
	prod := &flakyProducer{failures: 2}
	store := &fakeStore{pending: []Record{
		{ID: 9, Topic: "order-events", Key: "9", Payload: []byte(`{}`)},
	}}
	r := NewRelay(store, prod, 0, testMetrics)

	r.sweep(context.Background())

	assert.Len(t, prod.published, 1)
	assert.Equal(t, []int64{9}, store.sent)
}

func TestRelayStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRelay(&fakeStore{}, &fakeProducer{}, 1, testMetrics)
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	<-done
}
