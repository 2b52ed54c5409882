package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"hostel/internal/core"

	"github.com/shopspring/decimal"
)

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name  string
		in    table
		wants []string
	}{
		{
			name:  "empty table prints placeholder",
			in:    table{Title: "Staff"},
			wants: []string{"  Staff\n", "(none)"},
		},
		{
			name: "rows are aligned under headers",
			in: table{
				Title:   "Residents",
				Headers: []string{"Name", "Rent"},
				Rows:    [][]string{{"A", "5,000.00"}, {"Bea", "700.00"}},
			},
			wants: []string{
				"╭──────┬──────────╮",
				"│ Name │ Rent     │",
				"├──────┼──────────┤",
				"│ A    │ 5,000.00 │",
				"│ Bea  │   700.00 │",
				"╰──────┴──────────╯",
			},
		},
		{
			name: "pairs without headers",
			in: table{
				Rows: [][]string{{"Assets", "7,120.25"}, {"Equity", "-13,054.75"}},
			},
			wants: []string{
				"│ Assets │   7,120.25 │",
				"│ Equity │ -13,054.75 │",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := renderTable(&buf, tt.in); err != nil {
				t.Fatalf("renderTable: %v", err)
			}
			if strings.Contains(buf.String(), "\x1b[") {
				t.Errorf("non-terminal output carries escape codes:\n%q", buf.String())
			}
			for _, want := range tt.wants {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestTaskTable(t *testing.T) {
	tasks := []core.Task{
		{Description: "Fix boiler", AssignedTo: "Cook", Due: core.NewDate(2025, 3, 1), LastDone: core.NewDate(2025, 3, 4)},
		{Description: "Internet renewal", Due: core.NewDate(2025, 6, 1), Repeat: core.RepeatYearly},
	}
	got := taskTable("Tasks", tasks)
	want := [][]string{
		{"Fix boiler", "Cook", "2025-03-01", "once", "2025-03-04"},
		{"Internet renewal", "-", "2025-06-01", "yearly", "-"},
	}
	if len(got.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got.Rows), len(want))
	}
	for i := range want {
		if strings.Join(got.Rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, got.Rows[i], want[i])
		}
	}
}

func TestTrendTable(t *testing.T) {
	revenue := []core.MonthAmount{
		{Month: time.January, Label: "Jan", Amount: decimal.NewFromInt(1200)},
		{Month: time.February, Label: "Feb", Amount: decimal.Zero},
	}
	expenses := []core.MonthAmount{
		{Month: time.January, Label: "Jan", Amount: decimal.NewFromInt(300)},
		{Month: time.February, Label: "Feb", Amount: decimal.NewFromInt(50)},
	}

	got := trendTable(revenue, expenses)
	want := [][]string{
		{"Jan", "1,200.00", "300.00"},
		{"Feb", "0.00", "50.00"},
	}
	if len(got.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got.Rows), len(want))
	}
	for i := range want {
		if strings.Join(got.Rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, got.Rows[i], want[i])
		}
	}
}
