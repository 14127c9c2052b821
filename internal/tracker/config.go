package tracker

import (
	"time"

	"hemma/internal/model"
	"hemma/internal/schedule"
)

// Keys names the stored collections for one tracker instance. Instances
// must not share keys.
type Keys struct {
	Tasks    string
	Events   string
	Boundary string
	Feeding  string
}

// Seed describes a default task created on first run.
type Seed struct {
	Name     string
	Icon     string
	Interval time.Duration
}

// Config parameterizes one tracker instance. The chore board and the dog
// tracker run the same core with different rosters, thresholds and reset
// times; the differences live here, not in the code.
type Config struct {
	Name         string
	Roster       model.Roster
	Urgency      model.UrgencyPolicy
	Horizon      time.Duration
	ResetWeekday time.Weekday
	ResetHour    int
	ResetMinute  int
	Seeds        []Seed

	// Subject labels the implicit event recorded by quick actions, e.g.
	// "walk" for the dog tracker.
	Subject     string
	SubjectIcon string

	// ClampPastDueOnLoad pulls a stale stored due time forward to
	// now+interval at startup. The walk countdown wants a fresh timer
	// after the page has been away; chores stay overdue instead.
	ClampPastDueOnLoad bool

	// TracksFeeding enables the daily morning/evening feeding slots.
	TracksFeeding bool

	Keys Keys
}

func (c Config) nextBoundary(now time.Time) time.Time {
	return schedule.NextWeeklyBoundary(now, c.ResetWeekday, c.ResetHour, c.ResetMinute)
}

const day = 24 * time.Hour

// Cleaning is the chore-board variant: weekly leaderboard reset Sunday
// 23:50, a 12-hour due-soon window, and a seeded set of household chores.
func Cleaning(roster model.Roster) Config {
	if len(roster) == 0 {
		roster = model.Roster{"Alexandra", "Jimmy", "Emmy", "Tilde"}
	}
	return Config{
		Name:         "cleaning",
		Roster:       roster,
		Urgency:      model.UrgencyPolicy{Soon: 12 * time.Hour},
		Horizon:      model.DefaultHorizon,
		ResetWeekday: time.Sunday,
		ResetHour:    23,
		ResetMinute:  50,
		Seeds: []Seed{
			{Name: "Vacuum floor 1", Icon: "🧹", Interval: 7 * day},
			{Name: "Vacuum floor 2", Icon: "🧹", Interval: 7 * day},
			{Name: "Clean the kitchen", Icon: "🍳", Interval: 7 * day},
			{Name: "Scrub the bathroom", Icon: "🛁", Interval: 7 * day},
			{Name: "Mop the floors", Icon: "🧽", Interval: 7 * day},
			{Name: "Empty the litter box", Icon: "🐱", Interval: day},
			{Name: "Wipe kitchen surfaces", Icon: "✨", Interval: 7 * day},
			{Name: "Sort the recycling", Icon: "🗑️", Interval: 7 * day},
		},
		Keys: Keys{
			Tasks:    "cleaning.tasks",
			Events:   "cleaning.events",
			Boundary: "cleaning.reset",
		},
	}
}

// DogWalk is the walk/feeding variant: one recurring walk on a 5-hour
// interval, weekly reset Sunday 23:00, a 15/30 minute two-tier countdown
// policy, and daily feeding slots.
func DogWalk(roster model.Roster) Config {
	if len(roster) == 0 {
		roster = model.Roster{"Rasmus", "Maria", "Melwin", "Elliot"}
	}
	return Config{
		Name:         "walk",
		Roster:       roster,
		Urgency:      model.UrgencyPolicy{Soon: 15 * time.Minute, Prepare: 30 * time.Minute},
		Horizon:      model.DefaultHorizon,
		ResetWeekday: time.Sunday,
		ResetHour:    23,
		ResetMinute:  0,
		Subject:      "walk",
		SubjectIcon:  "🐾",
		Seeds: []Seed{
			{Name: "Walk", Icon: "🐾", Interval: 5 * time.Hour},
		},
		ClampPastDueOnLoad: true,
		TracksFeeding:      true,
		Keys: Keys{
			Tasks:    "walk.tasks",
			Events:   "walk.events",
			Boundary: "walk.reset",
			Feeding:  "walk.feeding",
		},
	}
}
