package storage

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"hostel/internal/core"
	"hostel/internal/ledger"
	"hostel/internal/ledger/memory"

	"github.com/shopspring/decimal"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(context.Background())
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMigrationsCreateSchema(t *testing.T) {
	repo := newTestRepo(t)
	for _, table := range []string{"revenue", "expenses", "residents", "staff", "rent_history", "tasks"} {
		var name string
		err := repo.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
	// running again is a no-op
	if err := RunMigrations(repo.db); err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}
}

func TestRoundTripEntries(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rev := core.RevenueEntry{
		ID:          "r1",
		Date:        core.NewDate(2025, 3, 1),
		Description: "Rent March",
		Amount:      d("5000.50"),
		Resident:    "A",
		Method:      core.MethodTransfer,
	}
	exp := core.ExpenseEntry{
		ID:          "e1",
		Date:        core.NewDate(2025, 3, 2),
		Category:    core.CategoryInternet,
		Description: "Fibre",
		Amount:      d("1200"),
	}
	if err := repo.AppendRevenue(ctx, rev); err != nil {
		t.Fatalf("AppendRevenue: %v", err)
	}
	if err := repo.AppendExpense(ctx, exp); err != nil {
		t.Fatalf("AppendExpense: %v", err)
	}

	gotRev, err := repo.Revenue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotRev) != 1 || gotRev[0].ID != "r1" || !gotRev[0].Amount.Equal(rev.Amount) ||
		gotRev[0].Date.String() != "2025-03-01" || gotRev[0].Method != core.MethodTransfer {
		t.Fatalf("revenue round trip: %+v", gotRev)
	}
	gotExp, err := repo.Expenses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotExp) != 1 || gotExp[0].Category != core.CategoryInternet || !gotExp[0].Amount.Equal(exp.Amount) {
		t.Fatalf("expense round trip: %+v", gotExp)
	}
}

func TestRegistryErrors(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.InsertResident(ctx, core.Resident{Name: "A", Room: "101", Rent: d("5000")}); err != nil {
		t.Fatal(err)
	}
	if err := repo.InsertResident(ctx, core.Resident{Name: "A", Room: "102", Rent: d("1")}); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if _, err := repo.Resident(ctx, "B"); !errors.Is(err, core.ErrUnknownResident) {
		t.Fatalf("expected ErrUnknownResident, got %v", err)
	}
	if err := repo.UpdateResident(ctx, core.Resident{Name: "B"}); !errors.Is(err, core.ErrUnknownResident) {
		t.Fatalf("expected ErrUnknownResident, got %v", err)
	}
	payment := core.RevenueEntry{ID: "p1", Date: core.NewDate(2025, 1, 1), Amount: d("10")}
	if _, err := repo.CreditResident(ctx, "B", payment); !errors.Is(err, core.ErrUnknownResident) {
		t.Fatalf("expected ErrUnknownResident, got %v", err)
	}
	if rev, _ := repo.Revenue(ctx); len(rev) != 0 {
		t.Fatalf("failed credit left %d revenue entries", len(rev))
	}

	if _, err := repo.CreditStaff(ctx, "Cook", core.ExpenseEntry{ID: "x"}); !errors.Is(err, core.ErrUnknownStaff) {
		t.Fatalf("expected ErrUnknownStaff, got %v", err)
	}
	if err := repo.InsertStaff(ctx, core.StaffMember{Name: "Cook", Expected: d("1")}); err != nil {
		t.Fatal(err)
	}
	if err := repo.InsertStaff(ctx, core.StaffMember{Name: "Cook", Expected: d("2")}); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

// replay drives the same operations through a ledger over repo.
func replay(t *testing.T, repo ledger.Repository) *ledger.Ledger {
	t.Helper()
	ctx := context.Background()
	n := 0
	l := ledger.New(repo, ledger.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	day := core.NewDate(2025, 2, 10)

	must := func(_ any, err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(l.RegisterResident(ctx, "A", "101", d("5000")))
	must(l.RegisterResident(ctx, "B", "102", d("4500")))
	must(l.RegisterStaff(ctx, "Cook", "Chef", d("20000")))
	must(l.RecordRevenue(ctx, day, "Vending", d("120.25")))
	must(l.RecordExpense(ctx, day, core.CategoryMess, "Groceries", d("125"), ""))
	must(l.RecordExpense(ctx, day, core.CategoryLaundry, "Sheets", d("50"), "A"))
	must(l.RecordResidentPayment(ctx, "A", d("6000"), day, ledger.WithMethod(core.MethodCash)))
	must(l.RecordResidentPayment(ctx, "B", d("1000"), day))
	must(l.RecordStaffPayment(ctx, "Cook", d("20000"), day))
	must(l.UpdateResident(ctx, "B", "201", d("4000")))
	boiler, err := l.ScheduleTask(ctx, "Fix boiler", "Cook", day, core.RepeatNone)
	must(boiler, err)
	must(l.ScheduleTask(ctx, "Internet renewal", "", core.NewDate(2025, 6, 1), core.RepeatYearly))
	must(l.CompleteTask(ctx, boiler.ID, day))
	if err := l.ReplaceRentHistory(ctx, []core.HistoryPoint{{Month: 1, Rent: d("102")}, {Month: 2, Rent: d("104")}}); err != nil {
		t.Fatal(err)
	}
	if err := l.AppendRentHistory(ctx, core.HistoryPoint{Month: 3, Rent: d("106")}); err != nil {
		t.Fatal(err)
	}
	_, err = l.RegisterResident(ctx, "A", "999", d("1"))
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	return l
}

func TestMatchesMemoryRepository(t *testing.T) {
	ctx := context.Background()
	sqlLedger := replay(t, newTestRepo(t))
	memLedger := replay(t, memory.New())

	type snapshot struct {
		Revenue   []string
		Expenses  []string
		Residents []string
		Staff     []string
		History   []string
		Tasks     []string
		Sheet     string
	}
	take := func(l *ledger.Ledger) snapshot {
		var s snapshot
		rev, _ := l.Revenue(ctx)
		for _, e := range rev {
			s.Revenue = append(s.Revenue, fmt.Sprintf("%s|%s|%s|%s|%s|%s", e.ID, e.Date, e.Description, e.Amount.StringFixed(2), e.Resident, e.Method))
		}
		exp, _ := l.Expenses(ctx)
		for _, e := range exp {
			s.Expenses = append(s.Expenses, fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s", e.ID, e.Date, e.Category, e.Description, e.Amount.StringFixed(2), e.Resident, e.Staff))
		}
		statuses, _ := l.ResidentStatuses(ctx)
		for _, r := range statuses {
			s.Residents = append(s.Residents, fmt.Sprintf("%s|%s|%s|%s|%s", r.Name, r.Room, r.Rent.StringFixed(2), r.Paid.StringFixed(2), r.State))
		}
		staff, _ := l.StaffStatuses(ctx)
		for _, m := range staff {
			s.Staff = append(s.Staff, fmt.Sprintf("%s|%s|%s|%s", m.Name, m.Expected.StringFixed(2), m.Paid.StringFixed(2), m.State))
		}
		hist, _ := l.RentHistory(ctx)
		for _, p := range hist {
			s.History = append(s.History, fmt.Sprintf("%d|%s", p.Month, p.Rent.StringFixed(2)))
		}
		tasks, _ := l.Tasks(ctx)
		for _, tk := range tasks {
			s.Tasks = append(s.Tasks, fmt.Sprintf("%s|%s|%s|%s|%s|%s", tk.ID, tk.Description, tk.AssignedTo, tk.Due, tk.Repeat, tk.LastDone))
		}
		bs, _ := l.BalanceSheet(ctx)
		s.Sheet = fmt.Sprintf("%s|%s|%s", bs.Assets.StringFixed(2), bs.Liabilities.StringFixed(2), bs.Equity.StringFixed(2))
		return s
	}

	got, want := take(sqlLedger), take(memLedger)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sqlite and memory diverge\nsqlite: %+v\nmemory: %+v", got, want)
	}
	if len(want.Tasks) != 2 || !strings.HasSuffix(want.Tasks[0], "|Fix boiler|Cook|2025-02-10|once|2025-02-10") {
		t.Fatalf("unexpected tasks %v", want.Tasks)
	}
	if want.Sheet != "7120.25|20175.00|-13054.75" {
		t.Fatalf("unexpected balance sheet %s", want.Sheet)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	task := core.Task{
		ID:          "t1",
		Description: "Water tank cleaning",
		AssignedTo:  "Cook",
		Due:         core.NewDate(2025, 4, 30),
		Repeat:      core.RepeatMonthly,
	}
	if err := repo.InsertTask(ctx, task); err != nil {
		t.Fatalf("InsertTask: %v", err)
	}
	if err := repo.InsertTask(ctx, task); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	got, err := repo.Tasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Repeat != core.RepeatMonthly || got[0].Due.String() != "2025-04-30" || !got[0].LastDone.IsZero() {
		t.Fatalf("task round trip: %+v", got)
	}

	done, err := repo.MarkTaskDone(ctx, "t1", core.NewDate(2025, 5, 2))
	if err != nil {
		t.Fatalf("MarkTaskDone: %v", err)
	}
	if done.LastDone.String() != "2025-05-02" || done.AssignedTo != "Cook" {
		t.Fatalf("MarkTaskDone returned %+v", done)
	}
	if _, err := repo.MarkTaskDone(ctx, "t2", core.NewDate(2025, 5, 2)); !errors.Is(err, core.ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
}
