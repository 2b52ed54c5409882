package events

import (
	"context"
	"testing"
	"time"

	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

func TestEventConstructors(t *testing.T) {
	day := core.NewDate(2025, 4, 2)
	amount := decimal.RequireFromString("4500.50")

	tests := []struct {
		name     string
		event    Event
		wantType Type
		wantName string
		wantDate string
		wantCat  core.Category
	}{
		{
			name:     "revenue",
			event:    RevenueEvent(core.RevenueEntry{Date: day, Description: "Vending", Amount: amount}),
			wantType: RevenueRecorded,
			wantName: "Vending",
			wantDate: "2025-04-02",
		},
		{
			name:     "expense",
			event:    ExpenseEvent(core.ExpenseEntry{Date: day, Category: core.CategoryMess, Description: "Rice", Amount: amount}),
			wantType: ExpenseRecorded,
			wantName: "Rice",
			wantDate: "2025-04-02",
			wantCat:  core.CategoryMess,
		},
		{
			name:     "resident registered",
			event:    ResidentEvent(ResidentRegistered, core.Resident{Name: "A", Rent: amount}),
			wantType: ResidentRegistered,
			wantName: "A",
		},
		{
			name:     "resident payment",
			event:    ResidentPaymentEvent(core.RevenueEntry{Date: day, Resident: "A", Amount: amount}),
			wantType: ResidentPayment,
			wantName: "A",
			wantDate: "2025-04-02",
		},
		{
			name:     "staff payment",
			event:    StaffPaymentEvent(core.ExpenseEntry{Date: day, Category: core.CategorySalary, Staff: "Cook", Amount: amount}),
			wantType: StaffPayment,
			wantName: "Cook",
			wantDate: "2025-04-02",
			wantCat:  core.CategorySalary,
		},
		{
			name:     "task scheduled",
			event:    TaskEvent(TaskScheduled, core.Task{Description: "Fix boiler", AssignedTo: "Cook", Due: day}),
			wantType: TaskScheduled,
			wantName: "Fix boiler",
			wantDate: "2025-04-02",
		},
		{
			name: "task completed",
			event: TaskEvent(TaskCompleted, core.Task{
				Description: "Fix boiler",
				Due:         day,
				LastDone:    core.NewDate(2025, 4, 5),
			}),
			wantType: TaskCompleted,
			wantName: "Fix boiler",
			wantDate: "2025-04-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.event
			if e.ID == "" {
				t.Error("event ID should be set")
			}
			if time.Since(e.OccurredAt) > time.Minute {
				t.Error("OccurredAt should be recent")
			}
			if e.Type != tt.wantType || e.Name != tt.wantName || e.Date != tt.wantDate || e.Category != tt.wantCat {
				t.Errorf("got %+v", e)
			}
			if !e.Amount.Equal(amount) {
				t.Errorf("Amount = %s, want %s", e.Amount, amount)
			}
		})
	}
}

func TestEvent_JSON(t *testing.T) {
	e := Event{
		ID:         "abc",
		Type:       StaffPayment,
		OccurredAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Name:       "Cook",
		Amount:     decimal.RequireFromString("20000.25"),
		Date:       "2025-01-01",
		Category:   core.CategorySalary,
	}

	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if got.ID != e.ID || got.Type != e.Type || !got.OccurredAt.Equal(e.OccurredAt) ||
		!got.Amount.Equal(e.Amount) || got.Category != e.Category {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}

	if _, err := FromJSON([]byte(`{"amount": "not a number"}`)); err == nil {
		t.Error("FromJSON() should fail with invalid amount")
	}
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("Nop.Publish() = %v", err)
	}
}
