package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"hostel/internal/core"
	"hostel/internal/services"

	"github.com/spf13/cobra"
)

var flagHorizon int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project monthly rent collections with a least-squares trend",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().IntVar(&flagHorizon, "months", 0, "Months to project (default FORECAST_HORIZON)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	horizon := flagHorizon
	if horizon <= 0 {
		horizon = appConfig.ForecastHorizon
	}

	return withSession(cmd, func(ctx context.Context, svc *services.LedgerService) error {
		res, err := svc.Forecast(ctx, horizon)
		if errors.Is(err, core.ErrInsufficientData) {
			fmt.Fprintf(os.Stdout, "\n  Need rent for at least two distinct months to forecast (have %d).\n", len(res.History))
			return nil
		}
		if err != nil {
			return err
		}

		source := "Rent history"
		if res.FromLedger {
			source = "Rent history (from resident payments)"
		}
		history := table{Title: source, Headers: []string{"Month", "Rent"}}
		for _, p := range res.History {
			history.Rows = append(history.Rows, []string{strconv.Itoa(p.Month), core.FormatAmount(p.Rent)})
		}
		if err := renderTable(os.Stdout, history); err != nil {
			return err
		}

		projections := table{
			Title:   fmt.Sprintf("Forecast: rent = %.2f * month + %.2f", res.Model.Slope, res.Model.Intercept),
			Headers: []string{"Month", "Rent"},
		}
		for _, p := range res.Projections {
			projections.Rows = append(projections.Rows, []string{strconv.Itoa(p.Month), core.FormatAmount(p.Rent)})
		}
		return renderTable(os.Stdout, projections)
	})
}
