package main

import (
	"context"
	"os"

	"hostel/internal/core"
	"hostel/internal/report"
	"hostel/internal/services"

	"github.com/spf13/cobra"
)

var flagCombined bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show expense breakdowns and monthly trends",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagCombined, "entries", false, "Also list every revenue and expense entry")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(ctx context.Context, svc *services.LedgerService) error {
		d, err := svc.Dashboard(ctx)
		if err != nil {
			return err
		}
		out := os.Stdout

		tables := []table{
			partyTable("Expenses by category", categoryRows(d.ByCategory)),
			partyTable("Revenue by resident", partyRows(d.ByResident)),
			partyTable("Payouts by staff member", partyRows(d.ByStaff)),
			trendTable(d.RevenueTrend, d.ExpenseTrend),
		}
		for _, t := range tables {
			if err := renderTable(out, t); err != nil {
				return err
			}
		}
		if !flagCombined {
			return nil
		}

		revenue, err := svc.Ledger().Revenue(ctx)
		if err != nil {
			return err
		}
		expenses, err := svc.Ledger().Expenses(ctx)
		if err != nil {
			return err
		}
		return renderTable(out, combinedTable(report.CombinedReport(revenue, expenses)))
	})
}

func partyTable(title string, rows [][]string) table {
	return table{Title: title, Headers: []string{"Name", "Amount"}, Rows: rows}
}

func categoryRows(groups []core.CategoryAmount) [][]string {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{string(g.Category), core.FormatAmount(g.Amount)}
	}
	return rows
}

func partyRows(groups []core.PartyAmount) [][]string {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{g.Name, core.FormatAmount(g.Amount)}
	}
	return rows
}

// trendTable puts revenue and expense buckets side by side. Both slices are
// built from the same month list.
func trendTable(revenue, expenses []core.MonthAmount) table {
	t := table{Title: "Monthly trend", Headers: []string{"Month", "Revenue", "Expenses"}}
	for i, r := range revenue {
		exp := "0.00"
		if i < len(expenses) {
			exp = core.FormatAmount(expenses[i].Amount)
		}
		t.Rows = append(t.Rows, []string{r.Label, core.FormatAmount(r.Amount), exp})
	}
	return t
}

func combinedTable(lines []core.ReportLine) table {
	t := table{Title: "Entries", Headers: []string{"Date", "Type", "Category", "Description", "Amount"}}
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{
			l.Date.String(),
			string(l.Type),
			string(l.Category),
			l.Description,
			core.FormatAmount(l.Amount),
		})
	}
	return t
}
