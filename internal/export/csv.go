// Package export renders ledger entries as tables for CSV files and
// spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"hostel/internal/core"
)

var (
	RevenueHeader  = []string{"Date", "Description", "Amount"}
	ExpenseHeader  = []string{"Date", "Category", "Description", "Amount"}
	CombinedHeader = []string{"Date", "Type", "Description", "Amount"}
)

// RevenueRows returns the revenue table, header first.
func RevenueRows(revenue []core.RevenueEntry) [][]string {
	rows := make([][]string, 0, len(revenue)+1)
	rows = append(rows, RevenueHeader)
	for _, e := range revenue {
		rows = append(rows, []string{e.Date.String(), e.Description, e.Amount.StringFixed(2)})
	}
	return rows
}

// ExpenseRows returns the expense table, header first.
func ExpenseRows(expenses []core.ExpenseEntry) [][]string {
	rows := make([][]string, 0, len(expenses)+1)
	rows = append(rows, ExpenseHeader)
	for _, e := range expenses {
		rows = append(rows, []string{e.Date.String(), string(e.Category), e.Description, e.Amount.StringFixed(2)})
	}
	return rows
}

// CombinedRows returns the combined report table, header first.
func CombinedRows(lines []core.ReportLine) [][]string {
	rows := make([][]string, 0, len(lines)+1)
	rows = append(rows, CombinedHeader)
	for _, l := range lines {
		rows = append(rows, []string{l.Date.String(), string(l.Type), l.Description, l.Amount.StringFixed(2)})
	}
	return rows
}

func WriteRevenueCSV(w io.Writer, revenue []core.RevenueEntry) error {
	return writeCSV(w, RevenueRows(revenue))
}

func WriteExpensesCSV(w io.Writer, expenses []core.ExpenseEntry) error {
	return writeCSV(w, ExpenseRows(expenses))
}

func WriteCombinedCSV(w io.Writer, lines []core.ReportLine) error {
	return writeCSV(w, CombinedRows(lines))
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
