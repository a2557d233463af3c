package amqp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{15, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("connection refused"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("broken pipe"), true},
		{"closed network connection", errors.New("use of closed network connection"), true},
		{"other error", errors.New("invalid input"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestClient_CircuitBreaker(t *testing.T) {
	client := &Client{exchangeName: "renteasy", queueName: "renteasy_events"}

	if client.isCircuitOpen() {
		t.Fatal("circuit should start closed")
	}

	for i := 0; i < maxFailures; i++ {
		client.recordFailure()
	}
	if !client.isCircuitOpen() {
		t.Fatal("circuit should open after max failures")
	}

	client.lastFailure = time.Now().Add(-openTimeout - time.Second)
	if client.isCircuitOpen() {
		t.Fatal("circuit should half-open after timeout")
	}
	if atomic.LoadInt32(&client.state) != StateHalfOpen {
		t.Fatalf("state = %d, want half-open", client.state)
	}

	client.recordFailure()
	if atomic.LoadInt32(&client.state) != StateOpen {
		t.Fatal("a failure while half-open should reopen the circuit")
	}

	client.recordSuccess()
	if client.isCircuitOpen() || atomic.LoadInt64(&client.failureCount) != 0 {
		t.Fatal("success should close the circuit and reset failures")
	}
}

func TestClient_PublishGuards(t *testing.T) {
	client := &Client{exchangeName: "renteasy", queueName: "renteasy_events"}

	atomic.StoreInt32(&client.state, StateOpen)
	client.lastFailure = time.Now()
	err := client.PublishPaymentRecorded(context.Background(), "p1")
	if err == nil || !strings.Contains(err.Error(), "circuit breaker is open") {
		t.Fatalf("expected circuit breaker error, got %v", err)
	}

	client.recordSuccess()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.PublishBillPaid(ctx, "b1"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEventMessageJSON(t *testing.T) {
	msg := &EventMessage{Type: EventPaymentRecorded, ID: "0190a1b2", Timestamp: time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)}
	b, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := EventMessageFromJSON(b)
	if err != nil {
		t.Fatalf("EventMessageFromJSON: %v", err)
	}
	if got.Type != msg.Type || got.ID != msg.ID || !got.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("unexpected message %+v", got)
	}

	for _, raw := range []string{`{"type":"expense.sync","id":"1"}`, `{"type":"bill.paid"}`, `not json`} {
		if _, err := EventMessageFromJSON([]byte(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(_, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func TestSettle(t *testing.T) {
	ctx := context.Background()
	body, _ := NewEventMessage(EventBillPaid, "b1").ToJSON()

	ok := &fakeAck{}
	var seen string
	settle(ctx, body, ok, func(_ context.Context, m *EventMessage) error {
		seen = m.ID
		return nil
	})
	if !ok.acked || seen != "b1" {
		t.Fatalf("expected ack for handled message, got %+v", ok)
	}

	failing := &fakeAck{}
	settle(ctx, body, failing, func(context.Context, *EventMessage) error { return errors.New("boom") })
	if !failing.nacked || !failing.requeued {
		t.Fatalf("handler error should requeue, got %+v", failing)
	}

	bad := &fakeAck{}
	settle(ctx, []byte("{"), bad, func(context.Context, *EventMessage) error { return nil })
	if !bad.nacked || bad.requeued {
		t.Fatalf("malformed message should be dropped, got %+v", bad)
	}
}
