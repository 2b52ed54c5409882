// Package sheets writes the ledger tables into a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"hostel/internal/core"
	"hostel/internal/export"
	"hostel/internal/log"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Config struct {
	SpreadsheetID   string
	RevenueSheet    string
	ExpenseSheet    string
	CredentialsJSON string
	CredentialsFile string
}

// tableWriter replaces the contents of one tab with rows.
type tableWriter interface {
	WriteTable(ctx context.Context, sheet string, rows [][]any) error
}

type Exporter struct {
	writer       tableWriter
	revenueSheet string
	expenseSheet string
}

func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return newExporter(&serviceWriter{svc: svc, spreadsheetID: cfg.SpreadsheetID}, cfg), nil
}

func newExporter(w tableWriter, cfg Config) *Exporter {
	e := &Exporter{
		writer:       w,
		revenueSheet: cfg.RevenueSheet,
		expenseSheet: cfg.ExpenseSheet,
	}
	if e.revenueSheet == "" {
		e.revenueSheet = "Revenue"
	}
	if e.expenseSheet == "" {
		e.expenseSheet = "Expenses"
	}
	return e
}

// Export writes the revenue and expense tables into their tabs concurrently.
// The first failure cancels the other write.
func (e *Exporter) Export(ctx context.Context, revenue []core.RevenueEntry, expenses []core.ExpenseEntry) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.writer.WriteTable(gctx, e.revenueSheet, toValues(export.RevenueRows(revenue))); err != nil {
			return fmt.Errorf("write %s: %w", e.revenueSheet, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := e.writer.WriteTable(gctx, e.expenseSheet, toValues(export.ExpenseRows(expenses))); err != nil {
			return fmt.Errorf("write %s: %w", e.expenseSheet, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Exported ledger to Google Sheets",
		log.FieldComponent, log.ComponentExport,
		log.FieldOperation, log.OpExport,
		"revenue_rows", len(revenue),
		"expense_rows", len(expenses))
	return nil
}

func toValues(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		out[i] = vals
	}
	return out
}

type serviceWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
}

func (w *serviceWriter) WriteTable(ctx context.Context, sheet string, rows [][]any) error {
	_, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, sheet+"!A:Z", &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", sheet, err)
	}
	rng := fmt.Sprintf("%s!A1", sheet)
	_, err = w.svc.Spreadsheets.Values.Update(w.spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

// newSheetsService authenticates with a service account, from inline JSON or
// a key file.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		var err error
		credentialsJSON, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	slog.DebugContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}
