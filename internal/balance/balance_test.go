package balance

import (
	"testing"

	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		required string
		paid     string
		due      string
		overpaid string
		state    core.PaymentState
	}{
		{"nothing paid", "5000", "0", "5000", "0", core.StateUnpaid},
		{"partial", "5000", "1200", "3800", "0", core.StatePartial},
		{"exact", "5000", "5000", "0", "0", core.StatePaid},
		{"overpaid", "5000", "6000", "0", "1000", core.StateOverpaid},
		{"zero rent nothing paid", "0", "0", "0", "0", core.StateUnpaid},
		{"zero rent something paid", "0", "10", "0", "10", core.StateOverpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusOf(d(tt.required), d(tt.paid))
			if !got.Due.Equal(d(tt.due)) || !got.Overpaid.Equal(d(tt.overpaid)) || got.State != tt.state {
				t.Errorf("StatusOf(%s, %s) = {due %s, overpaid %s, %s}, want {due %s, overpaid %s, %s}",
					tt.required, tt.paid, got.Due, got.Overpaid, got.State, tt.due, tt.overpaid, tt.state)
			}
			if got.Due.IsPositive() && got.Overpaid.IsPositive() {
				t.Errorf("due and overpaid both positive: %+v", got)
			}
		})
	}
}

func TestSheetEquityIdentity(t *testing.T) {
	rev := []core.RevenueEntry{{Amount: d("100.10")}, {Amount: d("0")}, {Amount: d("2500")}}
	exp := []core.ExpenseEntry{{Amount: d("40.05")}, {Amount: d("3000")}}

	bs := Sheet(rev, exp)
	if !bs.Assets.Equal(d("2600.10")) || !bs.Liabilities.Equal(d("3040.05")) {
		t.Fatalf("unexpected totals: %+v", bs)
	}
	if !bs.Equity.Equal(Sum(rev).Sub(Sum(exp))) {
		t.Fatalf("equity %s != revenue - expenses", bs.Equity)
	}
	if !bs.Equity.Equal(d("-439.95")) {
		t.Fatalf("equity = %s", bs.Equity)
	}

	again := Sheet(rev, exp)
	if !again.Assets.Equal(bs.Assets) || !again.Liabilities.Equal(bs.Liabilities) || !again.Equity.Equal(bs.Equity) {
		t.Fatalf("balance sheet not idempotent: %+v vs %+v", bs, again)
	}
}

func TestSheetEmpty(t *testing.T) {
	bs := Sheet(nil, nil)
	if !bs.Assets.IsZero() || !bs.Liabilities.IsZero() || !bs.Equity.IsZero() {
		t.Fatalf("expected zero sheet, got %+v", bs)
	}
}

func TestResidentsByStateAndRoll(t *testing.T) {
	residents := []core.Resident{
		{Name: "A", Rent: d("5000"), Paid: d("0")},
		{Name: "B", Rent: d("5000"), Paid: d("5000")},
		{Name: "C", Rent: d("4000"), Paid: d("4500")},
		{Name: "D", Rent: d("4000"), Paid: d("1000")},
	}

	if got := ResidentsByState(residents, core.StatePaid); len(got) != 1 || got[0].Name != "B" {
		t.Fatalf("paid filter = %+v", got)
	}
	if got := ResidentsByState(residents, core.StateOverpaid); len(got) != 1 || !got[0].Overpaid.Equal(d("500")) {
		t.Fatalf("overpaid filter = %+v", got)
	}

	roll := Roll(residents)
	if !roll.RentDue.Equal(d("18000")) || !roll.Collected.Equal(d("10500")) || !roll.Balance.Equal(d("-7500")) {
		t.Fatalf("unexpected roll %+v", roll)
	}
}

func TestEstimatedTax(t *testing.T) {
	rev := []core.RevenueEntry{{Amount: d("1000")}, {Amount: d("333.33")}}
	if got := EstimatedTax(rev, DefaultTaxRate); !got.Equal(d("200")) {
		t.Fatalf("EstimatedTax = %s, want 200", got)
	}
}
