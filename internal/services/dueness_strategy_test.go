package services

import (
	"errors"
	"testing"
	"time"

	"hostel/internal/core"
)

func TestOnceChecker_IsDue(t *testing.T) {
	checker := OnceChecker{}
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	due := core.NewDate(2024, 1, 10)

	if !checker.IsDue(time.Time{}, now, due) {
		t.Error("never done - want due")
	}
	if checker.IsDue(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), now, due) {
		t.Error("done once - want not due")
	}
}

func TestDailyChecker_IsDue(t *testing.T) {
	checker := DailyChecker{}
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	due := core.NewDate(2024, 1, 1)

	tests := []struct {
		name     string
		lastDone time.Time
		want     bool
	}{
		{"never done - is due", time.Time{}, true},
		{"done today - not due", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"done yesterday - is due", time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastDone, now, due); got != tt.want {
				t.Errorf("DailyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyChecker_IsDue(t *testing.T) {
	checker := WeeklyChecker{}
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	due := core.NewDate(2024, 1, 1)

	tests := []struct {
		name     string
		lastDone time.Time
		want     bool
	}{
		{"never done - is due", time.Time{}, true},
		{"done 3 days ago - not due", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), false},
		{"done 7 days ago - is due", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastDone, now, due); got != tt.want {
				t.Errorf("WeeklyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyChecker_IsDue(t *testing.T) {
	checker := MonthlyChecker{}

	tests := []struct {
		name     string
		lastDone time.Time
		now      time.Time
		due      core.Date
		want     bool
	}{
		{
			name: "never done - is due",
			now:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			due:  core.NewDate(2024, 1, 10),
			want: true,
		},
		{
			name:     "done this month - not due",
			lastDone: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			due:      core.NewDate(2023, 12, 10),
			want:     false,
		},
		{
			name:     "new month before due day - not due",
			lastDone: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			due:      core.NewDate(2023, 12, 10),
			want:     false,
		},
		{
			name:     "new month on due day - is due",
			lastDone: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			due:      core.NewDate(2023, 12, 10),
			want:     true,
		},
		{
			name:     "due on 31st falls on last day of february",
			lastDone: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			due:      core.NewDate(2024, 1, 31),
			want:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastDone, tt.now, tt.due); got != tt.want {
				t.Errorf("MonthlyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyChecker_IsDue(t *testing.T) {
	checker := YearlyChecker{}
	due := core.NewDate(2023, 6, 15)

	tests := []struct {
		name     string
		lastDone time.Time
		now      time.Time
		want     bool
	}{
		{"never done - is due", time.Time{}, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), true},
		{"done this year - not due", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), false},
		{"new year before due month - not due", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"new year due month before day - not due", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), false},
		{"new year on renewal day - is due", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"new year past due month - is due", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsDue(tt.lastDone, tt.now, due); got != tt.want {
				t.Errorf("YearlyChecker.IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetDuenessChecker(t *testing.T) {
	for _, r := range []core.Repetition{core.RepeatNone, core.RepeatDaily, core.RepeatWeekly, core.RepeatMonthly, core.RepeatYearly} {
		if _, err := GetDuenessChecker(r); err != nil {
			t.Errorf("GetDuenessChecker(%q) error = %v", r, err)
		}
	}
	if _, err := GetDuenessChecker("hourly"); !errors.Is(err, core.ErrInvalidRepetition) {
		t.Errorf("GetDuenessChecker(hourly) error = %v, want ErrInvalidRepetition", err)
	}
}

func TestTaskDue(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		task core.Task
		want bool
	}{
		{"one-off not yet due", core.Task{Due: core.NewDate(2025, 3, 11)}, false},
		{"one-off due today", core.Task{Due: core.NewDate(2025, 3, 10)}, true},
		{"one-off overdue", core.Task{Due: core.NewDate(2025, 2, 1)}, true},
		{"one-off done", core.Task{Due: core.NewDate(2025, 2, 1), LastDone: core.NewDate(2025, 2, 2)}, false},
		{"monthly done last month", core.Task{
			Due: core.NewDate(2025, 1, 5), Repeat: core.RepeatMonthly, LastDone: core.NewDate(2025, 2, 5),
		}, true},
		{"yearly renewal not reached", core.Task{Due: core.NewDate(2025, 6, 1), Repeat: core.RepeatYearly}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TaskDue(tt.task, now)
			if err != nil {
				t.Fatalf("TaskDue: %v", err)
			}
			if got != tt.want {
				t.Errorf("TaskDue() = %v, want %v", got, tt.want)
			}
		})
	}
}
