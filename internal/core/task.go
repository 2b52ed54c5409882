package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RepeatNone    Repetition = ""
	RepeatDaily   Repetition = "daily"
	RepeatWeekly  Repetition = "weekly"
	RepeatMonthly Repetition = "monthly"
	RepeatYearly  Repetition = "yearly"
)

type (
	// Repetition is how often a scheduled task comes back. RepeatNone means
	// the task is done after its first completion.
	Repetition string

	// Task is a scheduled chore, maintenance job or renewal reminder.
	// AssignedTo names a registered staff member or is empty.
	Task struct {
		ID          string
		Description string
		AssignedTo  string
		Due         Date
		Repeat      Repetition
		LastDone    Date // zero until first completed
	}
)

var (
	ErrUnknownTask       = errors.New("unknown task")
	ErrInvalidRepetition = errors.New("invalid repetition")
	ErrEmptyDescription  = errors.New("empty description")
)

// ParseRepetition accepts an empty string (one-off) or one of the known
// repetitions, case-insensitively. "once" is an alias for one-off.
func ParseRepetition(s string) (Repetition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Repetition(s) {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return Repetition(s), nil
	}
	if s == "once" {
		return RepeatNone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRepetition, s)
}

func (r Repetition) String() string {
	if r == RepeatNone {
		return "once"
	}
	return string(r)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Due.Validate(); err != nil {
		return fmt.Errorf("due: %w", err)
	}
	if _, err := ParseRepetition(string(t.Repeat)); err != nil {
		return err
	}
	return nil
}

// Done reports whether a one-off task has been completed. Repeating tasks
// are never done.
func (t Task) Done() bool {
	return t.Repeat == RepeatNone && !t.LastDone.IsZero()
}
