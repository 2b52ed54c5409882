package main

import (
	"context"
	"fmt"
	"os"

	"hostel/internal/core"
	"hostel/internal/services"

	"github.com/spf13/cobra"
)

var flagState string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the balance sheet and resident and staff payment status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&flagState, "state", "", "Only list residents in this state (unpaid, partial, paid, overpaid)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	var filter core.PaymentState
	if flagState != "" {
		st, ok := core.ParsePaymentState(flagState)
		if !ok {
			return fmt.Errorf("unknown payment state %q", flagState)
		}
		filter = st
	}

	return withSession(cmd, func(ctx context.Context, svc *services.LedgerService) error {
		d, err := svc.Dashboard(ctx)
		if err != nil {
			return err
		}
		out := os.Stdout

		if err := renderPairs(out, "Balance sheet", [][2]string{
			{"Assets", core.FormatAmount(d.Sheet.Assets)},
			{"Liabilities", core.FormatAmount(d.Sheet.Liabilities)},
			{"Equity", core.FormatAmount(d.Sheet.Equity)},
			{"Estimated tax (" + d.TaxRate.Shift(2).String() + "%)", core.FormatAmount(d.EstimatedTax)},
		}); err != nil {
			return err
		}

		if err := renderPairs(out, "Rent roll", [][2]string{
			{"Rent due", core.FormatAmount(d.Roll.RentDue)},
			{"Collected", core.FormatAmount(d.Roll.Collected)},
			{"Balance", core.FormatAmount(d.Roll.Balance)},
		}); err != nil {
			return err
		}

		residents := d.Residents
		if filter != "" {
			residents, err = svc.Ledger().ResidentsByState(ctx, filter)
			if err != nil {
				return err
			}
		}
		if err := renderTable(out, residentTable(residents)); err != nil {
			return err
		}
		return renderTable(out, staffTable(d.Staff))
	})
}

func residentTable(residents []core.ResidentStatus) table {
	t := table{
		Title:   "Residents",
		Headers: []string{"Name", "Room", "Rent", "Paid", "Due", "Overpaid", "State"},
	}
	for _, r := range residents {
		t.Rows = append(t.Rows, []string{
			r.Name,
			r.Room,
			core.FormatAmount(r.Rent),
			core.FormatAmount(r.Paid),
			core.FormatAmount(r.Due),
			core.FormatAmount(r.Overpaid),
			string(r.State),
		})
	}
	return t
}

func staffTable(staff []core.StaffStatus) table {
	t := table{
		Title:   "Staff",
		Headers: []string{"Name", "Position", "Expected", "Paid", "Due", "Overpaid", "State"},
	}
	for _, s := range staff {
		t.Rows = append(t.Rows, []string{
			s.Name,
			s.Position,
			core.FormatAmount(s.Expected),
			core.FormatAmount(s.Paid),
			core.FormatAmount(s.Due),
			core.FormatAmount(s.Overpaid),
			string(s.State),
		})
	}
	return t
}
