package schedule

import "time"

// DayLabelLayout is the calendar-date label used for daily rollovers.
// Comparing labels instead of timestamps makes the daily reset immune to
// clock drift within a day.
const DayLabelLayout = "2006-01-02"

// NextWeeklyBoundary returns the next occurrence of weekday at hour:minute
// in now's location. If today is the target weekday and the time of day has
// not yet passed, the boundary is today; a boundary equal to now counts as
// passed and rolls a full week forward.
func NextWeeklyBoundary(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		if now.Before(target) {
			return target
		}
		return target.AddDate(0, 0, 7)
	}
	return target.AddDate(0, 0, days)
}

// CheckWeekly advances a stored weekly boundary. An absent boundary is
// initialized without firing onRollover; a crossed boundary fires it once
// and advances. Calling again with the same now is a no-op, so the check is
// safe on every refresh tick. The fired result reports whether onRollover
// ran.
func CheckWeekly(stored time.Time, present bool, now time.Time, next func(time.Time) time.Time, onRollover func()) (boundary time.Time, fired bool) {
	if !present || stored.IsZero() {
		return next(now), false
	}
	if now.Before(stored) {
		return stored, false
	}
	if onRollover != nil {
		onRollover()
	}
	return next(now), true
}

// DayLabel names the calendar day of now.
func DayLabel(now time.Time) string {
	return now.Format(DayLabelLayout)
}

// CheckDaily compares the stored day label against today. On mismatch
// (including a missing label) it fires onRollover and returns today's
// label.
func CheckDaily(storedLabel string, now time.Time, onRollover func()) (label string, fired bool) {
	today := DayLabel(now)
	if storedLabel == today {
		return storedLabel, false
	}
	if onRollover != nil {
		onRollover()
	}
	return today, true
}
