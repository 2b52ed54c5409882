// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for scheduled task dueness.
// Each repetition (once, daily, weekly, monthly, yearly) has its own strategy
// that encapsulates the logic for determining if a task needs doing.

package services

import (
	"fmt"
	"time"

	"hostel/internal/core"
)

// DuenessChecker is the strategy interface for checking if a task is due.
// Each implementation encapsulates the algorithm for a specific repetition.
type DuenessChecker interface {
	// IsDue returns true if the task needs doing at now, given when it was
	// last done and its first due date. now is never before due.
	IsDue(lastDone, now time.Time, due core.Date) bool
}

// OnceChecker implements DuenessChecker for one-off tasks.
type OnceChecker struct{}

// IsDue returns true until the task has been done once.
func (OnceChecker) IsDue(lastDone, _ time.Time, _ core.Date) bool {
	return lastDone.IsZero()
}

// DailyChecker implements DuenessChecker for daily tasks.
type DailyChecker struct{}

// IsDue returns true if the task was last done before today.
func (DailyChecker) IsDue(lastDone, now time.Time, _ core.Date) bool {
	if lastDone.IsZero() {
		return true
	}
	return lastDone.Format(time.DateOnly) != now.Format(time.DateOnly)
}

// WeeklyChecker implements DuenessChecker for weekly tasks.
type WeeklyChecker struct{}

// IsDue returns true if 7 or more days have passed since the task was done.
func (WeeklyChecker) IsDue(lastDone, now time.Time, _ core.Date) bool {
	if lastDone.IsZero() {
		return true
	}
	daysSince := now.Sub(lastDone).Hours() / 24
	return daysSince >= 7
}

// MonthlyChecker implements DuenessChecker for monthly tasks.
type MonthlyChecker struct{}

// IsDue returns true if the task was not done this month and the due day
// of the month has been reached.
func (MonthlyChecker) IsDue(lastDone, now time.Time, due core.Date) bool {
	if lastDone.IsZero() {
		return true
	}

	// Already done this month?
	if lastDone.Year() == now.Year() && lastDone.Month() == now.Month() {
		return false
	}

	return now.Day() >= clampDay(now.Year(), now.Month(), due.Day())
}

// YearlyChecker implements DuenessChecker for yearly tasks such as
// subscription renewals.
type YearlyChecker struct{}

// IsDue returns true if the task was not done this year and the due month
// and day have been reached.
func (YearlyChecker) IsDue(lastDone, now time.Time, due core.Date) bool {
	if lastDone.IsZero() {
		return true
	}

	// Already done this year?
	if lastDone.Year() == now.Year() {
		return false
	}

	targetMonth := time.Month(due.Month())
	if now.Month() < targetMonth {
		return false
	}
	if now.Month() == targetMonth {
		return now.Day() >= clampDay(now.Year(), now.Month(), due.Day())
	}

	// We're past the target month
	return true
}

// clampDay caps day at the last day of the given month, so a task due on
// the 31st falls due on the 30th of shorter months.
func clampDay(year int, month time.Month, day int) int {
	lastDayOfMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDayOfMonth {
		return lastDayOfMonth
	}
	return day
}

// duenessStrategies maps repetitions to their corresponding checkers.
var duenessStrategies = map[core.Repetition]DuenessChecker{
	core.RepeatNone:    OnceChecker{},
	core.RepeatDaily:   DailyChecker{},
	core.RepeatWeekly:  WeeklyChecker{},
	core.RepeatMonthly: MonthlyChecker{},
	core.RepeatYearly:  YearlyChecker{},
}

// GetDuenessChecker returns the appropriate dueness checker for a repetition.
// Returns an error if the repetition is not supported.
func GetDuenessChecker(repeat core.Repetition) (DuenessChecker, error) {
	checker, ok := duenessStrategies[repeat]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidRepetition, string(repeat))
	}
	return checker, nil
}

// TaskDue reports whether t needs doing on the calendar day of now. Nothing
// is due before its first due date.
func TaskDue(t core.Task, now time.Time) (bool, error) {
	checker, err := GetDuenessChecker(t.Repeat)
	if err != nil {
		return false, err
	}
	today := core.DateOf(now)
	if today.Before(t.Due.Time) {
		return false, nil
	}
	return checker.IsDue(t.LastDone.Time, today.Time, t.Due), nil
}
