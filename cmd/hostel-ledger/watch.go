package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hostel/internal/cli"
	"hostel/internal/events"
	"hostel/internal/events/amqp"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print ledger events from the AMQP queue as they arrive",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if appConfig.AMQPURL == "" {
		return errors.New("watch needs AMQP_URL")
	}

	ctx, stop := cli.SignalContext(cmd.Context(), logger)
	defer stop()

	client, err := amqp.NewClient(appConfig.AMQPURL, appConfig.AMQPExchange, appConfig.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect to AMQP: %w", err)
	}
	defer client.Close()

	err = client.Consume(ctx, func(e events.Event) error {
		_, err := fmt.Fprintf(os.Stdout, "%s  %-20s  %-10s  %-12s  %s\n",
			e.OccurredAt.Format("2006-01-02 15:04:05"), e.Type, e.Session, e.Name, e.Amount.StringFixed(2))
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
