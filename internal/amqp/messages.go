package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types carried on the exchange.
const (
	EventPaymentRecorded = "payment.recorded"
	EventBillPaid        = "bill.paid"
)

// EventMessage announces a ledger change. It carries only the record id; the
// consumer loads the record from its own store.
type EventMessage struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEventMessage(eventType, id string) *EventMessage {
	return &EventMessage{
		Type:      eventType,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *EventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EventMessageFromJSON decodes a message and rejects unknown event types.
func EventMessageFromJSON(data []byte) (*EventMessage, error) {
	var msg EventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Type {
	case EventPaymentRecorded, EventBillPaid:
	default:
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("event %s without id", msg.Type)
	}
	return &msg, nil
}
