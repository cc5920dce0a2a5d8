package mq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lokma/internal/event"

	"github.com/segmentio/kafka-go"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	closed    bool
	drained   chan struct{}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	select {
	case r.drained <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

type recordingHandler struct {
	mu      sync.Mutex
	changes []*event.OrderChange
	err     error
}

func (h *recordingHandler) HandleOrderUpdate(_ context.Context, change *event.OrderChange) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.changes = append(h.changes, change)
	return h.err
}

func TestOrderEventConsumerRun(t *testing.T) {
	reader := &fakeReader{
		drained: make(chan struct{}, 1),
		msgs: []kafka.Message{
			{Offset: 1, Value: []byte(`{"orderId":"o1","before":{"status":"preparing"},"after":{"status":"ready","butcherId":"b1"}}`),
				Headers: []kafka.Header{{Key: "traceparent", Value: []byte("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")}}},
			{Offset: 2, Value: []byte(`garbage`)},
			{Offset: 3, Value: []byte(`{"orderId":"o2","before":{"status":"ready"},"after":{"status":"served"}}`)},
		},
	}
	handler := &recordingHandler{err: errors.New("handler failed")}
	consumer := NewOrderEventConsumer(reader, handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	select {
	case <-reader.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(handler.changes) != 2 {
		t.Fatalf("handled = %d, want 2", len(handler.changes))
	}
	if handler.changes[0].After.BusinessID != "b1" {
		t.Errorf("BusinessID = %q, want b1", handler.changes[0].After.BusinessID)
	}
	if len(reader.committed) != 3 {
		t.Errorf("committed = %v, want all three offsets", reader.committed)
	}
	if !reader.closed {
		t.Error("reader not closed")
	}
}

func TestKafkaHeaderCarrier(t *testing.T) {
	c := KafkaHeaderCarrier{{Key: "a", Value: []byte("1")}}
	c.Set("b", "2")
	c.Set("a", "3")
	if c.Get("a") != "3" || c.Get("b") != "2" || c.Get("missing") != "" {
		t.Errorf("carrier = %+v", c)
	}
	if keys := c.Keys(); len(keys) != 2 {
		t.Errorf("Keys = %v, want 2 keys", keys)
	}
}
