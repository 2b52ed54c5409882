package ledger

import (
	"context"

	"hostel/internal/core"
)

// Ports for storage adapters.
type (
	// EntryStore keeps revenue and expense entries in insertion order.
	EntryStore interface {
		AppendRevenue(ctx context.Context, e core.RevenueEntry) error
		AppendExpense(ctx context.Context, e core.ExpenseEntry) error
		Revenue(ctx context.Context) ([]core.RevenueEntry, error)
		Expenses(ctx context.Context) ([]core.ExpenseEntry, error)
	}

	// ResidentRegistry keys residents by name.
	ResidentRegistry interface {
		// InsertResident fails with core.ErrDuplicateKey when the name exists.
		InsertResident(ctx context.Context, r core.Resident) error
		// UpdateResident replaces room and rent of the resident named r.Name.
		// Paid is left untouched.
		UpdateResident(ctx context.Context, r core.Resident) error
		// Resident fails with core.ErrUnknownResident when absent.
		Resident(ctx context.Context, name string) (core.Resident, error)
		Residents(ctx context.Context) ([]core.Resident, error)
		// CreditResident adds payment.Amount to the resident's paid total and
		// appends payment as a revenue entry in one step.
		CreditResident(ctx context.Context, name string, payment core.RevenueEntry) (core.Resident, error)
	}

	// StaffRegistry keys staff members by name.
	StaffRegistry interface {
		InsertStaff(ctx context.Context, s core.StaffMember) error
		UpdateStaff(ctx context.Context, s core.StaffMember) error
		StaffMember(ctx context.Context, name string) (core.StaffMember, error)
		Staff(ctx context.Context) ([]core.StaffMember, error)
		// CreditStaff adds payout.Amount to the member's paid total and
		// appends payout as an expense entry in one step.
		CreditStaff(ctx context.Context, name string, payout core.ExpenseEntry) (core.StaffMember, error)
	}

	// HistoryStore holds forecaster training data.
	HistoryStore interface {
		AppendHistory(ctx context.Context, p core.HistoryPoint) error
		ReplaceHistory(ctx context.Context, points []core.HistoryPoint) error
		History(ctx context.Context) ([]core.HistoryPoint, error)
	}

	// TaskStore keeps scheduled tasks in insertion order.
	TaskStore interface {
		InsertTask(ctx context.Context, t core.Task) error
		Tasks(ctx context.Context) ([]core.Task, error)
		// MarkTaskDone sets LastDone and fails with core.ErrUnknownTask
		// when no task has the id.
		MarkTaskDone(ctx context.Context, id string, on core.Date) (core.Task, error)
	}

	// Repository is everything a Ledger needs from storage.
	Repository interface {
		EntryStore
		ResidentRegistry
		StaffRegistry
		HistoryStore
		TaskStore
	}
)
