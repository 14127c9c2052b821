package model

import (
	"testing"
	"time"
)

func TestUrgencySingleTierPolicy(t *testing.T) {
	policy := UrgencyPolicy{Soon: 12 * time.Hour}
	due := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want Urgency
	}{
		{"a day before", due.Add(-24 * time.Hour), UrgencyNormal},
		{"an hour before", due.Add(-time.Hour), UrgencyImminent},
		{"a minute after", due.Add(time.Minute), UrgencyOverdue},
		{"exactly due", due, UrgencyImminent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Classify(due, tc.now); got != tc.want {
				t.Fatalf("urgency mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestUrgencyTwoTierPolicy(t *testing.T) {
	policy := UrgencyPolicy{Soon: 15 * time.Minute, Prepare: 30 * time.Minute}
	due := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want Urgency
	}{
		{"an hour out", due.Add(-time.Hour), UrgencyNormal},
		{"20 minutes out", due.Add(-20 * time.Minute), UrgencyApproaching},
		{"10 minutes out", due.Add(-10 * time.Minute), UrgencyImminent},
		{"past due", due.Add(time.Second), UrgencyOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Classify(due, tc.now); got != tc.want {
				t.Fatalf("urgency mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNextDue(t *testing.T) {
	anchor := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := NextDue(anchor, 5*time.Hour)
	if !got.Equal(anchor.Add(5 * time.Hour)) {
		t.Fatalf("unexpected next due: %s", got)
	}
}

func TestVisibleIncludesOverdueAndWindow(t *testing.T) {
	now := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
	tasks := []RecurringTask{
		{ID: "ancient", NextDue: now.AddDate(0, -2, 0)},
		{ID: "today", NextDue: now.Add(2 * time.Hour)},
		{ID: "in-six-days", NextDue: now.Add(6 * 24 * time.Hour)},
		{ID: "in-ten-days", NextDue: now.Add(10 * 24 * time.Hour)},
	}

	visible := Visible(tasks, now, DefaultHorizon)
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible tasks, got %d", len(visible))
	}
	for _, task := range visible {
		if task.ID == "in-ten-days" {
			t.Fatal("task beyond the horizon should be hidden")
		}
	}
}

func TestSortByDueIsStable(t *testing.T) {
	due := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)
	tasks := []RecurringTask{
		{ID: "later", NextDue: due.Add(time.Hour)},
		{ID: "first", NextDue: due},
		{ID: "second", NextDue: due},
	}

	SortByDue(tasks)

	want := []string{"first", "second", "later"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("position %d: got %q want %q", i, tasks[i].ID, id)
		}
	}
}
