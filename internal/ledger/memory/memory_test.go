package memory

import (
	"context"
	"errors"
	"testing"

	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

func TestMemoryStoreEntriesKeepOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, desc := range []string{"a", "b", "c"} {
		if err := s.AppendRevenue(ctx, core.RevenueEntry{Description: desc, Amount: decimal.NewFromInt(1)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	rev, _ := s.Revenue(ctx)
	if len(rev) != 3 || rev[0].Description != "a" || rev[2].Description != "c" {
		t.Fatalf("unexpected revenue %+v", rev)
	}

	// returned slices are copies
	rev[0].Description = "mutated"
	again, _ := s.Revenue(ctx)
	if again[0].Description != "a" {
		t.Fatalf("store leaked its backing slice")
	}
}

func TestMemoryStoreResidents(t *testing.T) {
	ctx := context.Background()
	s := New()
	r := core.Resident{Name: "A", Room: "101", Rent: decimal.NewFromInt(5000), Paid: decimal.Zero}
	if err := s.InsertResident(ctx, r); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertResident(ctx, r); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	got, err := s.CreditResident(ctx, "A", core.RevenueEntry{Amount: decimal.NewFromInt(700), Resident: "A"})
	if err != nil || !got.Paid.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("credit: %+v, %v", got, err)
	}
	rev, _ := s.Revenue(ctx)
	if len(rev) != 1 || rev[0].Resident != "A" {
		t.Fatalf("payment not booked as revenue: %+v", rev)
	}

	if err := s.UpdateResident(ctx, core.Resident{Name: "A", Room: "202", Rent: decimal.NewFromInt(6000)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.Resident(ctx, "A")
	if got.Room != "202" || !got.Paid.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("update lost paid or room: %+v", got)
	}

	if _, err := s.CreditResident(ctx, "Z", core.RevenueEntry{}); !errors.Is(err, core.ErrUnknownResident) {
		t.Fatalf("expected ErrUnknownResident, got %v", err)
	}
	if rev, _ := s.Revenue(ctx); len(rev) != 1 {
		t.Fatalf("failed credit appended revenue")
	}
}

func TestMemoryStoreStaffAndHistory(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.InsertStaff(ctx, core.StaffMember{Name: "Cook", Expected: decimal.NewFromInt(20000), Paid: decimal.Zero}); err != nil {
		t.Fatalf("insert staff: %v", err)
	}
	if _, err := s.CreditStaff(ctx, "Cook", core.ExpenseEntry{Amount: decimal.NewFromInt(5000), Staff: "Cook"}); err != nil {
		t.Fatalf("credit staff: %v", err)
	}
	if _, err := s.StaffMember(ctx, "Maid"); !errors.Is(err, core.ErrUnknownStaff) {
		t.Fatalf("expected ErrUnknownStaff, got %v", err)
	}

	_ = s.AppendHistory(ctx, core.HistoryPoint{Month: 1, Rent: decimal.NewFromInt(1)})
	_ = s.ReplaceHistory(ctx, []core.HistoryPoint{{Month: 2}, {Month: 3}})
	h, _ := s.History(ctx)
	if len(h) != 2 || h[0].Month != 2 {
		t.Fatalf("unexpected history %+v", h)
	}
}

func TestMemoryStoreTasks(t *testing.T) {
	ctx := context.Background()
	s := New()
	task := core.Task{ID: "t1", Description: "Fix boiler", Due: core.NewDate(2025, 3, 1)}
	if err := s.InsertTask(ctx, task); err != nil {
		t.Fatalf("insert task: %v", err)
	}
	if err := s.InsertTask(ctx, task); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	done, err := s.MarkTaskDone(ctx, "t1", core.NewDate(2025, 3, 4))
	if err != nil || done.LastDone.String() != "2025-03-04" {
		t.Fatalf("mark done: %+v, %v", done, err)
	}
	if _, err := s.MarkTaskDone(ctx, "t9", core.NewDate(2025, 3, 4)); !errors.Is(err, core.ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}

	tasks, _ := s.Tasks(ctx)
	tasks[0].Description = "mutated"
	again, _ := s.Tasks(ctx)
	if len(again) != 1 || again[0].Description != "Fix boiler" || !again[0].Done() {
		t.Fatalf("unexpected tasks %+v", again)
	}
}
