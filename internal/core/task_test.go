package core

import (
	"errors"
	"testing"
)

func TestParseRepetition(t *testing.T) {
	tests := []struct {
		in      string
		want    Repetition
		wantErr bool
	}{
		{"", RepeatNone, false},
		{"once", RepeatNone, false},
		{"Monthly", RepeatMonthly, false},
		{" yearly ", RepeatYearly, false},
		{"fortnightly", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepetition(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRepetition) {
					t.Fatalf("ParseRepetition(%q) error = %v, want ErrInvalidRepetition", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseRepetition(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestTaskValidate(t *testing.T) {
	due := NewDate(2025, 4, 1)
	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"valid one-off", Task{Description: "Fix boiler", Due: due}, nil},
		{"valid repeating", Task{Description: "Internet renewal", Due: due, Repeat: RepeatYearly}, nil},
		{"blank description", Task{Description: "  ", Due: due}, ErrEmptyDescription},
		{"zero due date", Task{Description: "Clean tanks"}, ErrInvalidDate},
		{"bad repetition", Task{Description: "Clean tanks", Due: due, Repeat: "hourly"}, ErrInvalidRepetition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskDone(t *testing.T) {
	done := NewDate(2025, 4, 2)
	if (Task{}).Done() {
		t.Error("new task reported done")
	}
	if !(Task{LastDone: done}).Done() {
		t.Error("completed one-off task not done")
	}
	if (Task{Repeat: RepeatMonthly, LastDone: done}).Done() {
		t.Error("repeating task reported done")
	}
}
