// Package balance derives due/overpaid positions and balance-sheet figures
// from ledger snapshots. Every function is pure: the same inputs always give
// the same outputs and nothing is cached.
package balance

import (
	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat income tax estimate applied to total revenue.
var DefaultTaxRate = decimal.RequireFromString("0.15")

// Sum adds up the amounts of any entry kind.
func Sum[E core.Entry](entries []E) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.EntryAmount())
	}
	return total
}

// Sheet builds the derived balance sheet. Equity is always
// Sum(revenue) - Sum(expenses).
func Sheet(revenue []core.RevenueEntry, expenses []core.ExpenseEntry) core.BalanceSheet {
	assets := Sum(revenue)
	liabilities := Sum(expenses)
	return core.BalanceSheet{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      assets.Sub(liabilities),
	}
}

// StatusOf classifies paid against required.
//
// Unpaid when nothing was paid, Partial when 0 < paid < required, Paid when
// they are equal and Overpaid when paid exceeds required. Due and Overpaid
// come from the same subtraction so at most one of them is nonzero.
func StatusOf(required, paid decimal.Decimal) core.Status {
	diff := required.Sub(paid)
	st := core.Status{
		Due:      decimal.Max(diff, decimal.Zero),
		Overpaid: decimal.Max(diff.Neg(), decimal.Zero),
	}
	switch {
	case paid.IsZero():
		st.State = core.StateUnpaid
	case paid.LessThan(required):
		st.State = core.StatePartial
	case paid.Equal(required):
		st.State = core.StatePaid
	default:
		st.State = core.StateOverpaid
	}
	return st
}

func ResidentStatus(r core.Resident) core.ResidentStatus {
	return core.ResidentStatus{Resident: r, Status: StatusOf(r.Rent, r.Paid)}
}

func StaffStatus(s core.StaffMember) core.StaffStatus {
	return core.StaffStatus{StaffMember: s, Status: StatusOf(s.Expected, s.Paid)}
}

// ResidentsByState keeps the residents whose status is state, in input order.
func ResidentsByState(residents []core.Resident, state core.PaymentState) []core.ResidentStatus {
	var out []core.ResidentStatus
	for _, r := range residents {
		if st := ResidentStatus(r); st.State == state {
			out = append(out, st)
		}
	}
	return out
}

// Roll totals rent obligations and collections across residents.
func Roll(residents []core.Resident) core.RentRoll {
	roll := core.RentRoll{RentDue: decimal.Zero, Collected: decimal.Zero}
	for _, r := range residents {
		roll.RentDue = roll.RentDue.Add(r.Rent)
		roll.Collected = roll.Collected.Add(r.Paid)
	}
	roll.Balance = roll.Collected.Sub(roll.RentDue)
	return roll
}

// EstimatedTax applies rate to total revenue, rounded to two decimals.
func EstimatedTax(revenue []core.RevenueEntry, rate decimal.Decimal) decimal.Decimal {
	return Sum(revenue).Mul(rate).Round(2)
}
