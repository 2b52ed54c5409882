package ledger

import (
	"context"
	"fmt"
	"strings"

	"hostel/internal/core"
)

// ScheduleTask adds a task due on due. assignedTo may be empty; when set it
// must name a registered staff member.
func (l *Ledger) ScheduleTask(ctx context.Context, description, assignedTo string, due core.Date, repeat core.Repetition) (core.Task, error) {
	t := core.Task{
		ID:          l.newID(),
		Description: strings.TrimSpace(description),
		AssignedTo:  strings.TrimSpace(assignedTo),
		Due:         due,
		Repeat:      repeat,
	}
	if err := t.Validate(); err != nil {
		return core.Task{}, fmt.Errorf("schedule task: %w", err)
	}
	if t.AssignedTo != "" {
		if _, err := l.repo.StaffMember(ctx, t.AssignedTo); err != nil {
			return core.Task{}, fmt.Errorf("schedule task: %w", err)
		}
	}
	if err := l.repo.InsertTask(ctx, t); err != nil {
		return core.Task{}, fmt.Errorf("schedule task: %w", err)
	}
	return t, nil
}

// CompleteTask records that the task was done on the given date. Repeating
// tasks become due again on their next occurrence.
func (l *Ledger) CompleteTask(ctx context.Context, id string, on core.Date) (core.Task, error) {
	if err := on.Validate(); err != nil {
		return core.Task{}, fmt.Errorf("complete task: %w", err)
	}
	t, err := l.repo.MarkTaskDone(ctx, strings.TrimSpace(id), on)
	if err != nil {
		return core.Task{}, fmt.Errorf("complete task %q: %w", id, err)
	}
	return t, nil
}

// Tasks returns every scheduled task in the order it was added.
func (l *Ledger) Tasks(ctx context.Context) ([]core.Task, error) {
	return l.repo.Tasks(ctx)
}
