package model

import (
	"errors"
	"testing"
	"time"
)

func validTask() RecurringTask {
	return RecurringTask{
		ID:       "task-1",
		Name:     "Vacuum downstairs",
		Icon:     "🧹",
		Interval: 7 * 24 * time.Hour,
		NextDue:  time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		Assignee: "Ann",
	}
}

func TestTaskValidate(t *testing.T) {
	if err := validTask().Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*RecurringTask)
	}{
		{"missing id", func(task *RecurringTask) { task.ID = " " }},
		{"missing name", func(task *RecurringTask) { task.Name = "" }},
		{"zero interval", func(task *RecurringTask) { task.Interval = 0 }},
		{"negative interval", func(task *RecurringTask) { task.Interval = -time.Hour }},
		{"zero next due", func(task *RecurringTask) { task.NextDue = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := validTask()
			tc.mutate(&task)
			if err := task.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidateEditedInterval(t *testing.T) {
	if err := ValidateEditedInterval(24 * time.Hour); err != nil {
		t.Fatalf("1 day should be accepted: %v", err)
	}
	if err := ValidateEditedInterval(30 * 24 * time.Hour); err != nil {
		t.Fatalf("30 days should be accepted: %v", err)
	}
	if err := ValidateEditedInterval(12 * time.Hour); !errors.Is(err, ErrIntervalOutOfRange) {
		t.Fatalf("expected ErrIntervalOutOfRange, got %v", err)
	}
	if err := ValidateEditedInterval(31 * 24 * time.Hour); !errors.Is(err, ErrIntervalOutOfRange) {
		t.Fatalf("expected ErrIntervalOutOfRange, got %v", err)
	}
}

func TestRosterLookup(t *testing.T) {
	roster := Roster{"Ann", "Bo"}
	if !roster.Contains("Ann") {
		t.Fatal("expected Ann on the roster")
	}
	if roster.Contains("Cleo") {
		t.Fatal("Cleo should not be on the roster")
	}
	if got := roster.MemberAt(3); got != "Bo" {
		t.Fatalf("round-robin member mismatch: got %q", got)
	}
	if got := Roster(nil).MemberAt(0); got != "" {
		t.Fatalf("empty roster should yield empty member, got %q", got)
	}
}

func TestParseMealSlot(t *testing.T) {
	slot, err := ParseMealSlot(" Morning ")
	if err != nil || slot != MealMorning {
		t.Fatalf("parse morning failed: %v %v", slot, err)
	}
	if _, err := ParseMealSlot("brunch"); !errors.Is(err, ErrInvalidMealSlot) {
		t.Fatalf("expected ErrInvalidMealSlot, got %v", err)
	}
}

func TestFeedingStateSlots(t *testing.T) {
	at := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)
	var state FeedingState
	state.SetSlot(MealEvening, FeedingMark{Fed: true, At: at})

	if state.Slot(MealMorning).Fed {
		t.Fatal("morning slot should be unfed")
	}
	evening := state.Slot(MealEvening)
	if !evening.Fed || !evening.At.Equal(at) {
		t.Fatalf("evening slot mismatch: %+v", evening)
	}
}
