package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"hostel/internal/core"
	"hostel/internal/services"

	"github.com/spf13/cobra"
)

var flagTasksDate string

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List scheduled chores and renewals, and the ones due",
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().StringVar(&flagTasksDate, "date", "", "Check dueness on this YYYY-MM-DD day (default today)")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	if flagTasksDate != "" {
		d, err := core.ParseDate(flagTasksDate)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		now = d.Time
	}

	return withSession(cmd, func(ctx context.Context, svc *services.LedgerService) error {
		all, err := svc.Ledger().Tasks(ctx)
		if err != nil {
			return err
		}
		due, err := svc.DueTasks(ctx, now)
		if err != nil {
			return err
		}

		if err := renderTable(os.Stdout, taskTable("Tasks", all)); err != nil {
			return err
		}
		return renderTable(os.Stdout, taskTable("Due on "+core.DateOf(now).String(), due))
	})
}

func taskTable(title string, tasks []core.Task) table {
	t := table{Title: title, Headers: []string{"Task", "Assigned To", "Due", "Repeat", "Last Done"}}
	for _, task := range tasks {
		assignee := task.AssignedTo
		if assignee == "" {
			assignee = "-"
		}
		last := task.LastDone.String()
		if last == "" {
			last = "-"
		}
		t.Rows = append(t.Rows, []string{task.Description, assignee, task.Due.String(), task.Repeat.String(), last})
	}
	return t
}
