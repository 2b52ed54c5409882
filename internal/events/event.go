// Package events describes the notifications emitted after ledger mutations
// and the publishers that deliver them.
package events

import (
	"context"
	"encoding/json"
	"time"

	"hostel/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	RevenueRecorded    Type = "revenue.recorded"
	ExpenseRecorded    Type = "expense.recorded"
	ResidentRegistered Type = "resident.registered"
	ResidentUpdated    Type = "resident.updated"
	ResidentPayment    Type = "resident.payment"
	StaffRegistered    Type = "staff.registered"
	StaffUpdated       Type = "staff.updated"
	StaffPayment       Type = "staff.payment"
	TaskScheduled      Type = "task.scheduled"
	TaskCompleted      Type = "task.completed"
)

// Event is a lightweight record of one ledger mutation. Amount is the entry
// amount for entries and payments, and the rent or expected payment for
// registrations.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Session    string          `json:"session,omitempty"`
	Name       string          `json:"name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date,omitempty"`
	Category   core.Category   `json:"category,omitempty"`
	Assignee   string          `json:"assignee,omitempty"`
}

// Publisher delivers events to an external collaborator.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func newEvent(t Type) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
	}
}

func RevenueEvent(e core.RevenueEntry) Event {
	ev := newEvent(RevenueRecorded)
	ev.Name = e.Description
	ev.Amount = e.Amount
	ev.Date = e.Date.String()
	return ev
}

func ExpenseEvent(e core.ExpenseEntry) Event {
	ev := newEvent(ExpenseRecorded)
	ev.Name = e.Description
	ev.Amount = e.Amount
	ev.Date = e.Date.String()
	ev.Category = e.Category
	return ev
}

// ResidentEvent is used for registration and update; t selects which.
func ResidentEvent(t Type, r core.Resident) Event {
	ev := newEvent(t)
	ev.Name = r.Name
	ev.Amount = r.Rent
	return ev
}

func ResidentPaymentEvent(e core.RevenueEntry) Event {
	ev := newEvent(ResidentPayment)
	ev.Name = e.Resident
	ev.Amount = e.Amount
	ev.Date = e.Date.String()
	return ev
}

func StaffEvent(t Type, s core.StaffMember) Event {
	ev := newEvent(t)
	ev.Name = s.Name
	ev.Amount = s.Expected
	return ev
}

func StaffPaymentEvent(e core.ExpenseEntry) Event {
	ev := newEvent(StaffPayment)
	ev.Name = e.Staff
	ev.Amount = e.Amount
	ev.Date = e.Date.String()
	ev.Category = e.Category
	return ev
}

// TaskEvent carries the task description as Name. Date is the due date for
// a scheduled task and the completion date for a completed one.
func TaskEvent(t Type, task core.Task) Event {
	ev := newEvent(t)
	ev.Name = task.Description
	ev.Assignee = task.AssignedTo
	ev.Amount = decimal.Zero
	ev.Date = task.Due.String()
	if t == TaskCompleted {
		ev.Date = task.LastDone.String()
	}
	return ev
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event produced by ToJSON.
func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}
