package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMealSlot = errors.New("model: invalid meal slot")

// CompletionEvent records a single completion: who did what, and when.
// Events are immutable once appended; the only correction supported is
// removing an actor's most recent event (manual point decrement).
type CompletionEvent struct {
	Subject string
	Icon    string
	Actor   string
	At      time.Time
}

func (e CompletionEvent) Validate() error {
	if strings.TrimSpace(e.Subject) == "" {
		return errors.New("model: event subject is required")
	}
	if strings.TrimSpace(e.Actor) == "" {
		return errors.New("model: event actor is required")
	}
	if e.At.IsZero() {
		return errors.New("model: event timestamp is required")
	}
	return nil
}

// Display returns the icon-prefixed subject used in notifications and the
// "last completed" line.
func (e CompletionEvent) Display() string {
	if e.Icon == "" {
		return e.Subject
	}
	return e.Icon + " " + e.Subject
}

type MealSlot string

const (
	MealMorning MealSlot = "morning"
	MealEvening MealSlot = "evening"
)

func (m MealSlot) IsValid() bool {
	switch m {
	case MealMorning, MealEvening:
		return true
	default:
		return false
	}
}

func ParseMealSlot(input string) (MealSlot, error) {
	m := MealSlot(strings.ToLower(strings.TrimSpace(input)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMealSlot, input)
	}
	return m, nil
}

// FeedingMark is one daily boolean-and-timestamp slot.
type FeedingMark struct {
	Fed bool
	At  time.Time
}

// FeedingState holds both meal slots for the day named by DateLabel.
// When the label no longer matches today the whole state is discarded.
type FeedingState struct {
	DateLabel string
	Morning   FeedingMark
	Evening   FeedingMark
}

func (f FeedingState) Slot(slot MealSlot) FeedingMark {
	if slot == MealEvening {
		return f.Evening
	}
	return f.Morning
}

func (f *FeedingState) SetSlot(slot MealSlot, mark FeedingMark) {
	if slot == MealEvening {
		f.Evening = mark
		return
	}
	f.Morning = mark
}
