package kafka

import (
	"context"
	"errors"
	"testing"

	"hostel/internal/events"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w, topic: "ledger"}

	e := events.Event{ID: "e1", Type: events.ResidentPayment, Name: "A", Amount: decimal.NewFromInt(5000)}
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("wrote %d messages, want 1", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "resident.payment" {
		t.Errorf("Key = %q", w.msgs[0].Key)
	}
	got, err := events.FromJSON(w.msgs[0].Value)
	if err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if got.ID != "e1" || got.Name != "A" || !got.Amount.Equal(e.Amount) {
		t.Errorf("decoded %+v", got)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Errorf("Close() = %v, closed = %v", err, w.closed)
	}
}

func TestPublisher_PublishError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := &Publisher{writer: &fakeWriter{err: boom}, topic: "ledger"}

	err := p.Publish(context.Background(), events.Event{Type: events.ExpenseRecorded})
	if !errors.Is(err, boom) {
		t.Fatalf("Publish() = %v, want wrapped %v", err, boom)
	}
}
