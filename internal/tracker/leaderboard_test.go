package tracker

import (
	"testing"
	"time"

	"hemma/internal/model"
)

func event(actor string, at int64) model.CompletionEvent {
	return model.CompletionEvent{Subject: "walk", Actor: actor, At: time.UnixMilli(at)}
}

func TestAggregateEmptyLogKeepsRosterOrder(t *testing.T) {
	got := Aggregate(nil, model.Roster{"Ann", "Bo"})
	want := []Entry{{Name: "Ann"}, {Name: "Bo"}}
	if len(got) != len(want) {
		t.Fatalf("entry count mismatch: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d mismatch: %+v", i, got[i])
		}
	}
}

func TestAggregateCountsAndRanks(t *testing.T) {
	events := []model.CompletionEvent{
		event("Bo", 1), event("Ann", 2), event("Bo", 3),
		event("Stranger", 4), // not on the roster, ignored for ranking
	}
	roster := model.Roster{"Ann", "Bo", "Cleo"}

	got := Aggregate(events, roster)
	if got[0].Name != "Bo" || got[0].Count != 2 {
		t.Fatalf("rank 1 mismatch: %+v", got[0])
	}
	if got[1].Name != "Ann" || got[1].Count != 1 {
		t.Fatalf("rank 2 mismatch: %+v", got[1])
	}
	if got[2].Name != "Cleo" || got[2].Count != 0 {
		t.Fatalf("rank 3 mismatch: %+v", got[2])
	}
}

func TestAggregateIsPure(t *testing.T) {
	events := []model.CompletionEvent{event("Ann", 1), event("Bo", 2)}
	roster := model.Roster{"Ann", "Bo"}

	first := Aggregate(events, roster)
	second := Aggregate(events, roster)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("aggregate not idempotent at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLastEvent(t *testing.T) {
	if _, ok := LastEvent(nil); ok {
		t.Fatal("empty log must report absence")
	}
	events := []model.CompletionEvent{event("Ann", 1), event("Bo", 2)}
	last, ok := LastEvent(events)
	if !ok || last.Actor != "Bo" {
		t.Fatalf("last event mismatch: %+v ok=%v", last, ok)
	}
}

func TestRemoveLastBy(t *testing.T) {
	events := []model.CompletionEvent{event("Ann", 1), event("Bo", 2), event("Ann", 3)}

	trimmed, removed := RemoveLastBy(events, "Ann")
	if !removed || len(trimmed) != 2 {
		t.Fatalf("expected removal of one event, got %d", len(trimmed))
	}
	// The most recent Ann event goes, the older one stays.
	if trimmed[0].Actor != "Ann" || trimmed[0].At.UnixMilli() != 1 {
		t.Fatalf("wrong event removed: %+v", trimmed)
	}
	if trimmed[1].Actor != "Bo" {
		t.Fatalf("unrelated event disturbed: %+v", trimmed)
	}

	same, removed := RemoveLastBy(trimmed, "Cleo")
	if removed || len(same) != 2 {
		t.Fatal("removing an absent actor must be a no-op")
	}
}

func TestRemoveLastByThenAggregateDropsExactlyOne(t *testing.T) {
	roster := model.Roster{"Ann", "Bo"}
	events := []model.CompletionEvent{event("Ann", 1), event("Ann", 2), event("Bo", 3)}

	before := Aggregate(events, roster)
	trimmed, _ := RemoveLastBy(events, "Ann")
	after := Aggregate(trimmed, roster)

	var annBefore, annAfter int
	for _, e := range before {
		if e.Name == "Ann" {
			annBefore = e.Count
		}
	}
	for _, e := range after {
		if e.Name == "Ann" {
			annAfter = e.Count
		}
	}
	if annAfter != annBefore-1 {
		t.Fatalf("Ann's count should drop by one: %d -> %d", annBefore, annAfter)
	}
}
