// Package report groups ledger entries into the summary views shown by the
// dashboards: per-category and per-party totals, a fixed six month trend and
// a combined revenue/expense listing.
package report

import (
	"time"

	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

// DefaultTrendMonths is the fixed Jan..Jun window used by the dashboards.
// It is not a rolling window relative to today.
var DefaultTrendMonths = []time.Month{
	time.January, time.February, time.March, time.April, time.May, time.June,
}

// GroupByCategory sums expense amounts per category. Categories appear in the
// order they are first seen.
func GroupByCategory(expenses []core.ExpenseEntry) []core.CategoryAmount {
	index := make(map[core.Category]int)
	var out []core.CategoryAmount
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, core.CategoryAmount{Category: e.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// GroupByResident sums resident payments per resident, first-seen order.
// Revenue entries without a resident tag are skipped.
func GroupByResident(revenue []core.RevenueEntry) []core.PartyAmount {
	return groupByParty(revenue, func(e core.RevenueEntry) string { return e.Resident })
}

// GroupByStaff sums staff payouts per staff member, first-seen order.
func GroupByStaff(expenses []core.ExpenseEntry) []core.PartyAmount {
	return groupByParty(expenses, func(e core.ExpenseEntry) string { return e.Staff })
}

func groupByParty[E core.Entry](entries []E, party func(E) string) []core.PartyAmount {
	index := make(map[string]int)
	var out []core.PartyAmount
	for _, e := range entries {
		name := party(e)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, core.PartyAmount{Name: name, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(e.EntryAmount())
	}
	return out
}

// MonthlyTrend returns one bucket per label in months. An entry counts towards
// a bucket when its calendar month matches, whatever the year. Buckets with no
// entries are zero.
func MonthlyTrend[E core.Entry](entries []E, months []time.Month) []core.MonthAmount {
	if months == nil {
		months = DefaultTrendMonths
	}
	sums := make(map[time.Month]decimal.Decimal, 12)
	for _, e := range entries {
		m := e.EntryDate().Time.Month()
		sums[m] = sums[m].Add(e.EntryAmount())
	}
	out := make([]core.MonthAmount, len(months))
	for i, m := range months {
		amount, ok := sums[m]
		if !ok {
			amount = decimal.Zero
		}
		out[i] = core.MonthAmount{Month: m, Label: m.String()[:3], Amount: amount}
	}
	return out
}

// CombinedReport lists revenue entries followed by expense entries, each in
// insertion order, tagged with their type.
func CombinedReport(revenue []core.RevenueEntry, expenses []core.ExpenseEntry) []core.ReportLine {
	out := make([]core.ReportLine, 0, len(revenue)+len(expenses))
	for _, e := range revenue {
		out = append(out, core.ReportLine{
			Amount:      e.Amount,
			Type:        core.TypeRevenue,
			Date:        e.Date,
			Description: e.Description,
		})
	}
	for _, e := range expenses {
		out = append(out, core.ReportLine{
			Amount:      e.Amount,
			Type:        core.TypeExpense,
			Date:        e.Date,
			Description: e.Description,
			Category:    e.Category,
		})
	}
	return out
}

// RentHistoryFromPayments turns resident payments into forecaster input: one
// point per calendar month that saw at least one payment, month index 1..12,
// ordered by month.
func RentHistoryFromPayments(revenue []core.RevenueEntry) []core.HistoryPoint {
	var sums [13]decimal.Decimal
	var seen [13]bool
	for _, e := range revenue {
		if e.Resident == "" {
			continue
		}
		m := e.Date.Month()
		sums[m] = sums[m].Add(e.Amount)
		seen[m] = true
	}
	var out []core.HistoryPoint
	for m := 1; m <= 12; m++ {
		if seen[m] {
			out = append(out, core.HistoryPoint{Month: m, Rent: sums[m]})
		}
	}
	return out
}
