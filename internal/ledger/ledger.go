// Package ledger is the authoritative store of one session's finances.
//
// A Ledger validates every mutation before handing it to a Repository and
// never edits or deletes recorded entries. Derived figures (totals, balance
// sheet, payment status) are recomputed from the repository on every call.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"hostel/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is one session's books over a Repository.
type Ledger struct {
	repo  Repository
	newID func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator replaces the UUID generator used for entry ids.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		l.newID = fn
	}
}

// New returns a Ledger over repo. Entry ids are random UUIDs unless
// WithIDGenerator says otherwise.
func New(repo Repository, opts ...Option) *Ledger {
	l := &Ledger{
		repo:  repo,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PaymentOption customises the revenue entry written for a resident payment.
type PaymentOption func(*core.RevenueEntry)

// WithMethod records how the resident paid.
func WithMethod(m core.PaymentMethod) PaymentOption {
	return func(e *core.RevenueEntry) {
		e.Method = m
	}
}

// WithDescription replaces the default "Rent payment from <name>" text.
func WithDescription(desc string) PaymentOption {
	return func(e *core.RevenueEntry) {
		e.Description = desc
	}
}

// RecordRevenue appends a revenue entry.
func (l *Ledger) RecordRevenue(ctx context.Context, date core.Date, description string, amount decimal.Decimal) (core.RevenueEntry, error) {
	e := core.RevenueEntry{
		ID:          l.newID(),
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}
	if err := e.Validate(); err != nil {
		return core.RevenueEntry{}, fmt.Errorf("record revenue: %w", err)
	}
	if err := l.repo.AppendRevenue(ctx, e); err != nil {
		return core.RevenueEntry{}, fmt.Errorf("record revenue: %w", err)
	}
	return e, nil
}

// RecordExpense appends an expense entry. residentRef may be empty; when set
// it must name a registered resident.
func (l *Ledger) RecordExpense(ctx context.Context, date core.Date, category core.Category, description string, amount decimal.Decimal, residentRef string) (core.ExpenseEntry, error) {
	e := core.ExpenseEntry{
		ID:          l.newID(),
		Date:        date,
		Category:    category,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Resident:    strings.TrimSpace(residentRef),
	}
	if err := e.Validate(); err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("record expense: %w", err)
	}
	if e.Resident != "" {
		if _, err := l.repo.Resident(ctx, e.Resident); err != nil {
			return core.ExpenseEntry{}, fmt.Errorf("record expense: %w", err)
		}
	}
	if err := l.repo.AppendExpense(ctx, e); err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("record expense: %w", err)
	}
	return e, nil
}

// RegisterResident adds a new resident with nothing paid. Registering an
// existing name fails with core.ErrDuplicateKey; use UpdateResident instead.
func (l *Ledger) RegisterResident(ctx context.Context, name, room string, rent decimal.Decimal) (core.Resident, error) {
	r := core.Resident{
		Name: strings.TrimSpace(name),
		Room: strings.TrimSpace(room),
		Rent: rent,
		Paid: decimal.Zero,
	}
	if err := r.Validate(); err != nil {
		return core.Resident{}, fmt.Errorf("register resident: %w", err)
	}
	if err := l.repo.InsertResident(ctx, r); err != nil {
		return core.Resident{}, fmt.Errorf("register resident %q: %w", r.Name, err)
	}
	return r, nil
}

// UpdateResident changes room and rent and keeps the payment history.
func (l *Ledger) UpdateResident(ctx context.Context, name, room string, rent decimal.Decimal) (core.Resident, error) {
	r := core.Resident{Name: strings.TrimSpace(name), Room: strings.TrimSpace(room), Rent: rent}
	if err := r.Validate(); err != nil {
		return core.Resident{}, fmt.Errorf("update resident: %w", err)
	}
	if err := l.repo.UpdateResident(ctx, r); err != nil {
		return core.Resident{}, fmt.Errorf("update resident %q: %w", r.Name, err)
	}
	return l.repo.Resident(ctx, r.Name)
}

// RecordResidentPayment credits a resident and books the payment as revenue
// tagged with the resident's name. The payment is recorded once, as revenue.
func (l *Ledger) RecordResidentPayment(ctx context.Context, name string, amount decimal.Decimal, date core.Date, opts ...PaymentOption) (core.RevenueEntry, error) {
	name = strings.TrimSpace(name)
	e := core.RevenueEntry{
		ID:          l.newID(),
		Date:        date,
		Description: "Rent payment from " + name,
		Amount:      amount,
		Resident:    name,
	}
	for _, opt := range opts {
		opt(&e)
	}
	method, err := core.ParsePaymentMethod(string(e.Method))
	if err != nil {
		return core.RevenueEntry{}, fmt.Errorf("record resident payment: %w", err)
	}
	e.Method = method
	if err := e.Validate(); err != nil {
		return core.RevenueEntry{}, fmt.Errorf("record resident payment: %w", err)
	}
	if _, err := l.repo.CreditResident(ctx, name, e); err != nil {
		return core.RevenueEntry{}, fmt.Errorf("record resident payment %q: %w", name, err)
	}
	return e, nil
}

// RegisterStaff adds a staff member with nothing paid.
func (l *Ledger) RegisterStaff(ctx context.Context, name, position string, expected decimal.Decimal) (core.StaffMember, error) {
	s := core.StaffMember{
		Name:     strings.TrimSpace(name),
		Position: strings.TrimSpace(position),
		Expected: expected,
		Paid:     decimal.Zero,
	}
	if err := s.Validate(); err != nil {
		return core.StaffMember{}, fmt.Errorf("register staff: %w", err)
	}
	if err := l.repo.InsertStaff(ctx, s); err != nil {
		return core.StaffMember{}, fmt.Errorf("register staff %q: %w", s.Name, err)
	}
	return s, nil
}

// UpdateStaff changes position and expected payment and keeps paid.
func (l *Ledger) UpdateStaff(ctx context.Context, name, position string, expected decimal.Decimal) (core.StaffMember, error) {
	s := core.StaffMember{Name: strings.TrimSpace(name), Position: strings.TrimSpace(position), Expected: expected}
	if err := s.Validate(); err != nil {
		return core.StaffMember{}, fmt.Errorf("update staff: %w", err)
	}
	if err := l.repo.UpdateStaff(ctx, s); err != nil {
		return core.StaffMember{}, fmt.Errorf("update staff %q: %w", s.Name, err)
	}
	return l.repo.StaffMember(ctx, s.Name)
}

// RecordStaffPayment credits a staff member and books the payout as a Salary
// expense tagged with the member's name.
func (l *Ledger) RecordStaffPayment(ctx context.Context, name string, amount decimal.Decimal, date core.Date) (core.ExpenseEntry, error) {
	name = strings.TrimSpace(name)
	e := core.ExpenseEntry{
		ID:          l.newID(),
		Date:        date,
		Category:    core.CategorySalary,
		Description: "Salary payment to " + name,
		Amount:      amount,
		Staff:       name,
	}
	if err := e.Validate(); err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("record staff payment: %w", err)
	}
	if _, err := l.repo.CreditStaff(ctx, name, e); err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("record staff payment %q: %w", name, err)
	}
	return e, nil
}

// AppendRentHistory adds one observed month to the forecaster history.
func (l *Ledger) AppendRentHistory(ctx context.Context, p core.HistoryPoint) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("append rent history: %w", err)
	}
	return l.repo.AppendHistory(ctx, p)
}

// ReplaceRentHistory swaps the whole history batch. Nothing is written when
// any point is invalid.
func (l *Ledger) ReplaceRentHistory(ctx context.Context, points []core.HistoryPoint) error {
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("replace rent history: %w", err)
		}
	}
	return l.repo.ReplaceHistory(ctx, points)
}

// RentHistory returns the forecaster history in month order as stored.
func (l *Ledger) RentHistory(ctx context.Context) ([]core.HistoryPoint, error) {
	return l.repo.History(ctx)
}

// Revenue returns every revenue entry in the order it was recorded.
func (l *Ledger) Revenue(ctx context.Context) ([]core.RevenueEntry, error) {
	return l.repo.Revenue(ctx)
}

// Expenses returns every expense entry in the order it was recorded.
func (l *Ledger) Expenses(ctx context.Context) ([]core.ExpenseEntry, error) {
	return l.repo.Expenses(ctx)
}

// Residents returns the registered residents in registration order.
func (l *Ledger) Residents(ctx context.Context) ([]core.Resident, error) {
	return l.repo.Residents(ctx)
}

// Staff returns the registered staff in registration order.
func (l *Ledger) Staff(ctx context.Context) ([]core.StaffMember, error) {
	return l.repo.Staff(ctx)
}
