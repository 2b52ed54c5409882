package ledger

import (
	"context"
	"fmt"
	"strings"

	"hostel/internal/balance"
	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

// TotalRevenue sums every revenue entry.
func (l *Ledger) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	rev, err := l.repo.Revenue(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list revenue: %w", err)
	}
	return balance.Sum(rev), nil
}

// TotalExpenses sums every expense entry.
func (l *Ledger) TotalExpenses(ctx context.Context) (decimal.Decimal, error) {
	exp, err := l.repo.Expenses(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list expenses: %w", err)
	}
	return balance.Sum(exp), nil
}

// BalanceSheet recomputes assets, liabilities and equity from the current
// entries.
func (l *Ledger) BalanceSheet(ctx context.Context) (core.BalanceSheet, error) {
	rev, err := l.repo.Revenue(ctx)
	if err != nil {
		return core.BalanceSheet{}, fmt.Errorf("list revenue: %w", err)
	}
	exp, err := l.repo.Expenses(ctx)
	if err != nil {
		return core.BalanceSheet{}, fmt.Errorf("list expenses: %w", err)
	}
	return balance.Sheet(rev, exp), nil
}

// ResidentStatus classifies one resident's payments against rent.
func (l *Ledger) ResidentStatus(ctx context.Context, name string) (core.ResidentStatus, error) {
	r, err := l.repo.Resident(ctx, strings.TrimSpace(name))
	if err != nil {
		return core.ResidentStatus{}, err
	}
	return balance.ResidentStatus(r), nil
}

// StaffStatus classifies one staff member's payouts against expected.
func (l *Ledger) StaffStatus(ctx context.Context, name string) (core.StaffStatus, error) {
	s, err := l.repo.StaffMember(ctx, strings.TrimSpace(name))
	if err != nil {
		return core.StaffStatus{}, err
	}
	return balance.StaffStatus(s), nil
}

// ResidentStatuses returns every resident's status in registration order.
func (l *Ledger) ResidentStatuses(ctx context.Context) ([]core.ResidentStatus, error) {
	residents, err := l.repo.Residents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	out := make([]core.ResidentStatus, len(residents))
	for i, r := range residents {
		out[i] = balance.ResidentStatus(r)
	}
	return out, nil
}

// StaffStatuses returns every staff member's status in registration order.
func (l *Ledger) StaffStatuses(ctx context.Context) ([]core.StaffStatus, error) {
	staff, err := l.repo.Staff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	out := make([]core.StaffStatus, len(staff))
	for i, s := range staff {
		out[i] = balance.StaffStatus(s)
	}
	return out, nil
}

// ResidentsByState returns the residents whose status is state.
func (l *Ledger) ResidentsByState(ctx context.Context, state core.PaymentState) ([]core.ResidentStatus, error) {
	residents, err := l.repo.Residents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	return balance.ResidentsByState(residents, state), nil
}

// RentRoll totals rent due against rent collected.
func (l *Ledger) RentRoll(ctx context.Context) (core.RentRoll, error) {
	residents, err := l.repo.Residents(ctx)
	if err != nil {
		return core.RentRoll{}, fmt.Errorf("list residents: %w", err)
	}
	return balance.Roll(residents), nil
}

// EstimatedTax applies rate to total revenue.
func (l *Ledger) EstimatedTax(ctx context.Context, rate decimal.Decimal) (decimal.Decimal, error) {
	rev, err := l.repo.Revenue(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list revenue: %w", err)
	}
	return balance.EstimatedTax(rev, rate), nil
}
