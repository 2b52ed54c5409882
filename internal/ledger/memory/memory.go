package memory

import (
	"context"
	"fmt"
	"sync"

	"hostel/internal/core"
	"hostel/internal/ledger"
)

// Store keeps one session's ledger in process memory.
type Store struct {
	mu       sync.Mutex
	revenue  []core.RevenueEntry
	expenses []core.ExpenseEntry
	history  []core.HistoryPoint
	tasks    []core.Task

	residents     map[string]*core.Resident
	residentOrder []string
	staff         map[string]*core.StaffMember
	staffOrder    []string
}

var _ ledger.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		residents: make(map[string]*core.Resident),
		staff:     make(map[string]*core.StaffMember),
	}
}

func (s *Store) AppendRevenue(_ context.Context, e core.RevenueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revenue = append(s.revenue, e)
	return nil
}

func (s *Store) AppendExpense(_ context.Context, e core.ExpenseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return nil
}

// Revenue returns a copy of the revenue entries in insertion order.
func (s *Store) Revenue(_ context.Context) ([]core.RevenueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RevenueEntry(nil), s.revenue...), nil
}

// Expenses returns a copy of the expense entries in insertion order.
func (s *Store) Expenses(_ context.Context) ([]core.ExpenseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseEntry(nil), s.expenses...), nil
}

func (s *Store) InsertResident(_ context.Context, r core.Resident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.residents[r.Name]; ok {
		return fmt.Errorf("%w: resident %q", core.ErrDuplicateKey, r.Name)
	}
	s.residents[r.Name] = &r
	s.residentOrder = append(s.residentOrder, r.Name)
	return nil
}

func (s *Store) UpdateResident(_ context.Context, r core.Resident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.residents[r.Name]
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownResident, r.Name)
	}
	cur.Room = r.Room
	cur.Rent = r.Rent
	return nil
}

func (s *Store) Resident(_ context.Context, name string) (core.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.residents[name]
	if !ok {
		return core.Resident{}, fmt.Errorf("%w: %q", core.ErrUnknownResident, name)
	}
	return *r, nil
}

func (s *Store) Residents(_ context.Context) ([]core.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Resident, 0, len(s.residentOrder))
	for _, name := range s.residentOrder {
		out = append(out, *s.residents[name])
	}
	return out, nil
}

func (s *Store) CreditResident(_ context.Context, name string, payment core.RevenueEntry) (core.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.residents[name]
	if !ok {
		return core.Resident{}, fmt.Errorf("%w: %q", core.ErrUnknownResident, name)
	}
	r.Paid = r.Paid.Add(payment.Amount)
	s.revenue = append(s.revenue, payment)
	return *r, nil
}

func (s *Store) InsertStaff(_ context.Context, m core.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[m.Name]; ok {
		return fmt.Errorf("%w: staff member %q", core.ErrDuplicateKey, m.Name)
	}
	s.staff[m.Name] = &m
	s.staffOrder = append(s.staffOrder, m.Name)
	return nil
}

func (s *Store) UpdateStaff(_ context.Context, m core.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.staff[m.Name]
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownStaff, m.Name)
	}
	cur.Position = m.Position
	cur.Expected = m.Expected
	return nil
}

func (s *Store) StaffMember(_ context.Context, name string) (core.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.staff[name]
	if !ok {
		return core.StaffMember{}, fmt.Errorf("%w: %q", core.ErrUnknownStaff, name)
	}
	return *m, nil
}

func (s *Store) Staff(_ context.Context) ([]core.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.StaffMember, 0, len(s.staffOrder))
	for _, name := range s.staffOrder {
		out = append(out, *s.staff[name])
	}
	return out, nil
}

func (s *Store) CreditStaff(_ context.Context, name string, payout core.ExpenseEntry) (core.StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.staff[name]
	if !ok {
		return core.StaffMember{}, fmt.Errorf("%w: %q", core.ErrUnknownStaff, name)
	}
	m.Paid = m.Paid.Add(payout.Amount)
	s.expenses = append(s.expenses, payout)
	return *m, nil
}

func (s *Store) AppendHistory(_ context.Context, p core.HistoryPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, p)
	return nil
}

func (s *Store) ReplaceHistory(_ context.Context, points []core.HistoryPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]core.HistoryPoint(nil), points...)
	return nil
}

func (s *Store) History(_ context.Context) ([]core.HistoryPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.HistoryPoint(nil), s.history...), nil
}

func (s *Store) InsertTask(_ context.Context, t core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.tasks {
		if cur.ID == t.ID {
			return fmt.Errorf("%w: task %q", core.ErrDuplicateKey, t.ID)
		}
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// Tasks returns a copy of the tasks in insertion order.
func (s *Store) Tasks(_ context.Context) ([]core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Task(nil), s.tasks...), nil
}

func (s *Store) MarkTaskDone(_ context.Context, id string, on core.Date) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].LastDone = on
			return s.tasks[i], nil
		}
	}
	return core.Task{}, fmt.Errorf("%w: %q", core.ErrUnknownTask, id)
}
