package tracker

import (
	"sort"

	"hemma/internal/model"
)

// Entry is one leaderboard row.
type Entry struct {
	Name  string
	Count int
}

// Aggregate derives the ranked completion counts for a roster. Every
// roster member appears, zero or not, and events from actors outside the
// roster are ignored for ranking. The descending sort is stable, so ties
// keep roster order.
func Aggregate(events []model.CompletionEvent, roster model.Roster) []Entry {
	index := make(map[string]int, len(roster))
	entries := make([]Entry, len(roster))
	for i, member := range roster {
		index[member] = i
		entries[i] = Entry{Name: member}
	}

	for _, event := range events {
		if i, ok := index[event.Actor]; ok {
			entries[i].Count++
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// LastEvent returns the most recently appended event, distinguishing
// "no events yet" from a real event.
func LastEvent(events []model.CompletionEvent) (model.CompletionEvent, bool) {
	if len(events) == 0 {
		return model.CompletionEvent{}, false
	}
	return events[len(events)-1], true
}

// RemoveLastBy deletes the actor's most recent event, scanning from the
// end. This is the manual point decrement: an undo of the latest credit,
// never arbitrary deletion. Returns the log unchanged when the actor has
// no events.
func RemoveLastBy(events []model.CompletionEvent, actor string) ([]model.CompletionEvent, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Actor == actor {
			out := make([]model.CompletionEvent, 0, len(events)-1)
			out = append(out, events[:i]...)
			out = append(out, events[i+1:]...)
			return out, true
		}
	}
	return events, false
}
