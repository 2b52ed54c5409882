package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hostel/internal/core"
	"hostel/internal/export"
	"hostel/internal/export/sheets"
	"hostel/internal/log"
	"hostel/internal/report"
	"hostel/internal/services"

	"github.com/spf13/cobra"
)

var (
	flagExportDir    string
	flagExportSheets bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ledger entries as CSV or to Google Sheets",
	Long: "Without --dir the combined report is written to stdout as CSV. With --dir, " +
		"revenue.csv, expenses.csv and report.csv are written there. --sheets " +
		"additionally replaces the configured spreadsheet tabs.",
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportDir, "dir", "o", "", "Directory receiving revenue.csv, expenses.csv and report.csv")
	exportCmd.Flags().BoolVar(&flagExportSheets, "sheets", false, "Also write revenue and expenses to Google Sheets")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if flagExportSheets && !appConfig.SheetsConfigured() {
		return errors.New("--sheets needs GOOGLE_SPREADSHEET_ID and service account credentials")
	}

	return withSession(cmd, func(ctx context.Context, svc *services.LedgerService) error {
		revenue, err := svc.Ledger().Revenue(ctx)
		if err != nil {
			return err
		}
		expenses, err := svc.Ledger().Expenses(ctx)
		if err != nil {
			return err
		}
		lines := report.CombinedReport(revenue, expenses)

		if flagExportDir == "" {
			if err := export.WriteCombinedCSV(os.Stdout, lines); err != nil {
				return err
			}
		} else if err := exportDir(flagExportDir, revenue, expenses, lines); err != nil {
			return err
		}

		if !flagExportSheets {
			return nil
		}
		exporter, err := sheets.NewExporter(ctx, sheets.Config{
			SpreadsheetID:   appConfig.GoogleSpreadsheetID,
			RevenueSheet:    appConfig.GoogleRevenueSheet,
			ExpenseSheet:    appConfig.GoogleExpenseSheet,
			CredentialsJSON: appConfig.GoogleServiceAccountJSON,
			CredentialsFile: appConfig.GoogleServiceAccountFile,
		})
		if err != nil {
			return err
		}
		return exporter.Export(ctx, revenue, expenses)
	})
}

func exportDir(dir string, revenue []core.RevenueEntry, expenses []core.ExpenseEntry, lines []core.ReportLine) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"revenue.csv", func(w io.Writer) error { return export.WriteRevenueCSV(w, revenue) }},
		{"expenses.csv", func(w io.Writer) error { return export.WriteExpensesCSV(w, expenses) }},
		{"report.csv", func(w io.Writer) error { return export.WriteCombinedCSV(w, lines) }},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return err
		}
		logger.Info("Wrote export", log.FieldOperation, log.OpExport, "path", path)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
