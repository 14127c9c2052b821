package model

import (
	"sort"
	"time"
)

type Urgency string

const (
	// UrgencyOverdue means the due time has passed.
	UrgencyOverdue Urgency = "Overdue"
	// UrgencyImminent means the due time is inside the policy's Soon window.
	UrgencyImminent Urgency = "Imminent"
	// UrgencyApproaching means the due time is inside the wider Prepare
	// window. Only reported by two-tier policies.
	UrgencyApproaching Urgency = "Approaching"
	UrgencyNormal      Urgency = "Normal"
)

// UrgencyPolicy classifies how close a due time is. The chore board runs a
// single 12-hour Soon window; the walk countdown runs a 15/30 minute
// two-tier policy. Both are configuration, not constants.
type UrgencyPolicy struct {
	Soon    time.Duration
	Prepare time.Duration
}

func (p UrgencyPolicy) Classify(nextDue, now time.Time) Urgency {
	remaining := nextDue.Sub(now)
	switch {
	case remaining < 0:
		return UrgencyOverdue
	case remaining < p.Soon:
		return UrgencyImminent
	case p.Prepare > 0 && remaining < p.Prepare:
		return UrgencyApproaching
	default:
		return UrgencyNormal
	}
}

// NextDue computes the due time after a completion at anchor. Callers
// guarantee interval > 0.
func NextDue(anchor time.Time, interval time.Duration) time.Time {
	return anchor.Add(interval)
}

// DefaultHorizon is the display window for upcoming tasks.
const DefaultHorizon = 7 * 24 * time.Hour

// Visible filters tasks to those due within horizon, including every
// overdue task no matter how old. The input slice is not modified.
func Visible(tasks []RecurringTask, now time.Time, horizon time.Duration) []RecurringTask {
	out := make([]RecurringTask, 0, len(tasks))
	for _, t := range tasks {
		if t.NextDue.Sub(now) <= horizon {
			out = append(out, t)
		}
	}
	return out
}

// SortByDue orders tasks soonest (or most overdue) first. The sort is
// stable so tasks sharing a due time keep their insertion order.
func SortByDue(tasks []RecurringTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].NextDue.Before(tasks[j].NextDue)
	})
}
