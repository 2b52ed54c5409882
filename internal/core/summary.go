package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StateUnpaid   PaymentState = "Unpaid"
	StatePartial  PaymentState = "Partial"
	StatePaid     PaymentState = "Paid"
	StateOverpaid PaymentState = "Overpaid"
)

const (
	TypeRevenue EntryType = "Revenue"
	TypeExpense EntryType = "Expense"
)

type (
	PaymentState string
	EntryType    string

	// BalanceSheet is derived from the entry collections on every call.
	// Assets and Liabilities are cash-flow totals, not double-entry balances.
	BalanceSheet struct {
		Assets      decimal.Decimal
		Liabilities decimal.Decimal
		Equity      decimal.Decimal
	}

	// Status is the due/overpaid position of one obligation.
	// At most one of Due and Overpaid is nonzero.
	Status struct {
		Due      decimal.Decimal
		Overpaid decimal.Decimal
		State    PaymentState
	}

	ResidentStatus struct {
		Resident
		Status
	}

	StaffStatus struct {
		StaffMember
		Status
	}

	// RentRoll summarises rent obligations across all residents.
	RentRoll struct {
		RentDue   decimal.Decimal
		Collected decimal.Decimal
		Balance   decimal.Decimal // Collected - RentDue
	}

	// CategoryAmount represents an amount aggregated by category name.
	CategoryAmount struct {
		Category Category
		Amount   decimal.Decimal
	}

	// PartyAmount is an amount aggregated by resident or staff name.
	PartyAmount struct {
		Name   string
		Amount decimal.Decimal
	}

	// MonthAmount is a fixed-label calendar month bucket.
	MonthAmount struct {
		Month  time.Month
		Label  string
		Amount decimal.Decimal
	}

	ReportLine struct {
		Amount      decimal.Decimal
		Type        EntryType
		Date        Date
		Description string
		Category    Category // empty for revenue lines
	}
)

// ParsePaymentState matches the four states case-insensitively.
func ParsePaymentState(s string) (PaymentState, bool) {
	for _, st := range []PaymentState{StateUnpaid, StatePartial, StatePaid, StateOverpaid} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}
