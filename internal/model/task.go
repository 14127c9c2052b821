package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInterval    = errors.New("model: invalid task interval")
	ErrIntervalOutOfRange = errors.New("model: interval must be between 1 and 30 days")
	ErrUnknownAssignee    = errors.New("model: assignee is not on the roster")
)

// Bounds for user-facing interval edits only. Programmatic task creation
// accepts any positive interval.
const (
	MinEditableInterval = 24 * time.Hour
	MaxEditableInterval = 30 * 24 * time.Hour
)

// RecurringTask is an activity with a repeat interval and a next-due time.
// There is no terminal state: completing a task rolls NextDue forward and
// reassigns the task to whoever completed it.
type RecurringTask struct {
	ID       string
	Name     string
	Icon     string
	Interval time.Duration
	NextDue  time.Time
	Assignee string
}

func (t RecurringTask) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if t.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, t.Interval)
	}
	if t.NextDue.IsZero() {
		return errors.New("model: task next_due is required")
	}
	return nil
}

// ValidateEditedInterval enforces the 1-30 day range used by the settings
// surface. Seeded tasks are not bound by it.
func ValidateEditedInterval(interval time.Duration) error {
	if interval < MinEditableInterval || interval > MaxEditableInterval {
		return fmt.Errorf("%w: got %s", ErrIntervalOutOfRange, interval)
	}
	return nil
}

// Roster is the fixed, ordered list of participants eligible to be assigned
// or credited. It is configuration, never mutated at runtime.
type Roster []string

func (r Roster) Contains(name string) bool {
	for _, member := range r {
		if member == name {
			return true
		}
	}
	return false
}

// MemberAt wraps around the roster, used for round-robin seeding.
func (r Roster) MemberAt(i int) string {
	if len(r) == 0 {
		return ""
	}
	return r[i%len(r)]
}
