package storage

import (
	"testing"
	"time"

	"hemma/internal/model"
)

func TestTaskRecordRoundTrip(t *testing.T) {
	tasks := []model.RecurringTask{
		{
			ID:       "task-1",
			Name:     "Clean the kitchen",
			Icon:     "🍳",
			Interval: 7 * 24 * time.Hour,
			NextDue:  time.UnixMilli(1770000000000),
			Assignee: "Ann",
		},
		{
			ID:       "task-2",
			Name:     "Empty the litter box",
			Icon:     "🐱",
			Interval: 24 * time.Hour,
			NextDue:  time.UnixMilli(1770086400123),
			Assignee: "Bo",
		},
	}

	encoded, err := EncodeTasks(tasks)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeTasks(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(tasks) {
		t.Fatalf("length mismatch: %d", len(decoded))
	}
	for i, task := range tasks {
		got := decoded[i]
		if got.ID != task.ID || got.Name != task.Name || got.Icon != task.Icon ||
			got.Interval != task.Interval || !got.NextDue.Equal(task.NextDue) ||
			got.Assignee != task.Assignee {
			t.Fatalf("task %d mismatch: %+v vs %+v", i, got, task)
		}
	}
}

func TestEventRecordRoundTrip(t *testing.T) {
	events := []model.CompletionEvent{
		{Subject: "walk", Icon: "🐾", Actor: "Ann", At: time.UnixMilli(1770000000456)},
		{Subject: "Vacuum downstairs", Icon: "🧹", Actor: "Bo", At: time.UnixMilli(1770000100000)},
	}

	encoded, err := EncodeEvents(events)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeEvents(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i, event := range events {
		got := decoded[i]
		if got.Subject != event.Subject || got.Icon != event.Icon ||
			got.Actor != event.Actor || !got.At.Equal(event.At) {
			t.Fatalf("event %d mismatch: %+v vs %+v", i, got, event)
		}
	}
}

func TestFeedingRecordRoundTrip(t *testing.T) {
	state := model.FeedingState{
		DateLabel: "2026-03-05",
		Morning:   model.FeedingMark{Fed: true, At: time.UnixMilli(1770010000000)},
	}

	encoded, err := EncodeFeeding(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeFeeding(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.DateLabel != state.DateLabel {
		t.Fatalf("date label mismatch: %q", decoded.DateLabel)
	}
	if !decoded.Morning.Fed || !decoded.Morning.At.Equal(state.Morning.At) {
		t.Fatalf("morning mark mismatch: %+v", decoded.Morning)
	}
	if decoded.Evening.Fed {
		t.Fatal("evening slot should be unfed")
	}
}

func TestBoundaryEncoding(t *testing.T) {
	boundary := time.UnixMilli(1770000000000)
	decoded, err := DecodeBoundary(EncodeBoundary(boundary))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.Equal(boundary) {
		t.Fatalf("boundary mismatch: %s vs %s", decoded, boundary)
	}

	if _, err := DecodeBoundary("not-a-number"); err == nil {
		t.Fatal("malformed boundary must be rejected")
	}
}

func TestDecodeRejectsCorruptValues(t *testing.T) {
	if _, err := DecodeTasks("{broken"); err == nil {
		t.Fatal("corrupt task list must be rejected")
	}
	if _, err := DecodeEvents(`{"not":"a list"}`); err == nil {
		t.Fatal("corrupt event list must be rejected")
	}
	if _, err := DecodeFeeding("[]"); err == nil {
		t.Fatal("corrupt feeding state must be rejected")
	}
}
