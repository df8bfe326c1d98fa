package amqp

import (
	"encoding/json"
	"time"
)

type EventKind string

const (
	EventExpenseCreated EventKind = "expense_created"
	EventExpenseUpdated EventKind = "expense_updated"
	EventExpenseDeleted EventKind = "expense_deleted"
	EventIncomeCreated  EventKind = "income_created"
	EventIncomeUpdated  EventKind = "income_updated"
	EventIncomeDeleted  EventKind = "income_deleted"
)

// LedgerEvent is a lightweight notification that the ledger changed.
// Consumers re-read whatever they need from the store; the event only
// says which month was touched so exports can be scoped.
type LedgerEvent struct {
	Kind      EventKind `json:"kind"`
	EntityID  int64     `json:"entity_id,omitempty"`
	GroupID   string    `json:"group_id,omitempty"`
	Count     int64     `json:"count,omitempty"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(kind EventKind, year, month int) LedgerEvent {
	return LedgerEvent{
		Kind:      kind,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return LedgerEvent{}, err
	}
	return e, nil
}
