package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hemma/internal/model"
	"hemma/internal/schedule"
	"hemma/internal/storage"
)

var (
	ErrEmptyTaskName = errors.New("tracker: task name is required")
	ErrNoTasks       = errors.New("tracker: no tasks registered")
	ErrNoFeeding     = errors.New("tracker: feeding is not tracked by this instance")
)

// Clock supplies wall-clock time, overridable in tests.
type Clock func() time.Time

// Notifier receives fire-and-forget user-facing messages after
// completions, resets and validation failures. Rendering is the caller's
// concern.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// NopNotifier drops all messages.
var NopNotifier Notifier = NotifierFunc(func(string) {})

// TaskStatus pairs a task with its derived display classification.
type TaskStatus struct {
	model.RecurringTask
	Urgency   model.Urgency
	Remaining time.Duration
}

// Service owns one tracker instance's state: the task registry, the
// completion log, the reset boundary and (optionally) the feeding slots.
// Every mutation goes through the store synchronously, so reads always
// see the latest write. Safe for concurrent use.
type Service struct {
	mu     sync.Mutex
	cfg    Config
	kv     storage.KV
	clock  Clock
	notify Notifier
}

func NewService(cfg Config, kv storage.KV, clock Clock, notifier Notifier) *Service {
	if clock == nil {
		clock = time.Now
	}
	if notifier == nil {
		notifier = NopNotifier
	}
	return &Service{cfg: cfg, kv: kv, clock: clock, notify: notifier}
}

func (s *Service) Config() Config { return s.cfg }

// Init brings stored state up to date: runs the rollover checks, seeds the
// default tasks on first run (staggered one day apart, round-robin
// assignees) and, for variants that want it, clamps stale due times
// forward to now+interval.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if _, _, err := s.checkResetsLocked(ctx, now); err != nil {
		return err
	}

	tasks, present, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}
	if !present {
		tasks = make([]model.RecurringTask, 0, len(s.cfg.Seeds))
		for i, seed := range s.cfg.Seeds {
			// Chore seeds are staggered a day apart so the board does not
			// open with everything due at once; countdown-style variants
			// start one full interval out instead.
			nextDue := now.Add(time.Duration(i) * day)
			if s.cfg.ClampPastDueOnLoad {
				nextDue = now.Add(seed.Interval)
			}
			tasks = append(tasks, model.RecurringTask{
				ID:       uuid.NewString(),
				Name:     seed.Name,
				Icon:     seed.Icon,
				Interval: seed.Interval,
				NextDue:  nextDue,
				Assignee: s.cfg.Roster.MemberAt(i),
			})
		}
		if err := s.saveTasks(ctx, tasks); err != nil {
			return err
		}
	}

	if s.cfg.ClampPastDueOnLoad {
		changed := false
		for i, task := range tasks {
			if task.NextDue.Before(now) {
				tasks[i].NextDue = now.Add(task.Interval)
				changed = true
			}
		}
		if changed {
			if err := s.saveTasks(ctx, tasks); err != nil {
				return err
			}
		}
	}

	if _, present, err := s.loadEvents(ctx); err != nil {
		return err
	} else if !present {
		if err := s.saveEvents(ctx, []model.CompletionEvent{}); err != nil {
			return err
		}
	}
	return nil
}

// Upcoming returns the tasks due within the horizon (all overdue tasks
// included), soonest first, classified by the instance's urgency policy.
func (s *Service) Upcoming(ctx context.Context) ([]TaskStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, _, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	visible := model.Visible(tasks, now, s.cfg.Horizon)
	model.SortByDue(visible)

	out := make([]TaskStatus, 0, len(visible))
	for _, task := range visible {
		out = append(out, TaskStatus{
			RecurringTask: task,
			Urgency:       s.cfg.Urgency.Classify(task.NextDue, now),
			Remaining:     task.NextDue.Sub(now),
		})
	}
	return out, nil
}

// Tasks returns every registered task in insertion order.
func (s *Service) Tasks(ctx context.Context) ([]model.RecurringTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, _, err := s.loadTasks(ctx)
	return tasks, err
}

// AddTask registers a new recurring task. Creation accepts any positive
// interval; the 1-30 day rule binds edits only.
func (s *Service) AddTask(ctx context.Context, name, icon string, interval time.Duration, assignee string) (model.RecurringTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		s.notify.Notify("⚠️ The task needs a name")
		return model.RecurringTask{}, ErrEmptyTaskName
	}
	if icon == "" {
		icon = "📝"
	}
	if interval <= 0 {
		interval = 7 * day
	}
	if !s.cfg.Roster.Contains(assignee) {
		s.notify.Notify("⚠️ " + assignee + " is not on the roster")
		return model.RecurringTask{}, model.ErrUnknownAssignee
	}

	now := s.clock()
	task := model.RecurringTask{
		ID:       uuid.NewString(),
		Name:     name,
		Icon:     icon,
		Interval: interval,
		NextDue:  now.Add(interval),
		Assignee: assignee,
	}
	if err := task.Validate(); err != nil {
		return model.RecurringTask{}, err
	}

	tasks, _, err := s.loadTasks(ctx)
	if err != nil {
		return model.RecurringTask{}, err
	}
	tasks = append(tasks, task)
	if err := s.saveTasks(ctx, tasks); err != nil {
		return model.RecurringTask{}, err
	}
	s.notify.Notify(fmt.Sprintf("✅ %s %s added for %s!", icon, name, assignee))
	return task, nil
}

// QuickRegister is the "what did you do?" flow: it registers a brand-new
// recurring task on the default one-week cadence, assigned to whoever just
// did it. No completion event is recorded for the act itself.
func (s *Service) QuickRegister(ctx context.Context, name, icon, actor string) (model.RecurringTask, error) {
	return s.AddTask(ctx, name, icon, 7*day, actor)
}

// UpdateInterval changes a task's repeat interval. Values outside 1-30
// days are rejected without mutating anything; an unknown id is a lenient
// no-op.
func (s *Service) UpdateInterval(ctx context.Context, id string, interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := model.ValidateEditedInterval(interval); err != nil {
		s.notify.Notify("⚠️ The interval must be between 1 and 30 days")
		return err
	}

	tasks, _, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}
	for i, task := range tasks {
		if task.ID == id {
			tasks[i].Interval = interval
			if err := s.saveTasks(ctx, tasks); err != nil {
				return err
			}
			s.notify.Notify(fmt.Sprintf("✅ %s %s now repeats every %d days", task.Icon, task.Name, int(interval/day)))
			return nil
		}
	}
	return nil
}

// UpdateAssignee reassigns a task. Unknown ids are a lenient no-op.
func (s *Service) UpdateAssignee(ctx context.Context, id string, assignee string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Roster.Contains(assignee) {
		s.notify.Notify("⚠️ " + assignee + " is not on the roster")
		return model.ErrUnknownAssignee
	}

	tasks, _, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}
	for i, task := range tasks {
		if task.ID == id {
			tasks[i].Assignee = assignee
			if err := s.saveTasks(ctx, tasks); err != nil {
				return err
			}
			s.notify.Notify(fmt.Sprintf("✅ %s %s assigned to %s", task.Icon, task.Name, assignee))
			return nil
		}
	}
	return nil
}

// RemoveTask deletes a task permanently. Removing an unknown id is a
// no-op.
func (s *Service) RemoveTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, _, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}
	for i, task := range tasks {
		if task.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := s.saveTasks(ctx, tasks); err != nil {
				return err
			}
			s.notify.Notify(fmt.Sprintf("🗑️ %s %s removed", task.Icon, task.Name))
			return nil
		}
	}
	return nil
}

// Complete records a completion event for the task and reschedules it:
// NextDue becomes now+interval and the task is reassigned to the actor,
// whoever was responsible before. An unknown id is a lenient no-op so a
// stale button press never errors.
func (s *Service) Complete(ctx context.Context, id string, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeLocked(ctx, id, actor)
}

// CompleteNext completes the soonest-due task; the walk tracker's single
// button maps here.
func (s *Service) CompleteNext(ctx context.Context, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, _, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return ErrNoTasks
	}
	next := tasks[0]
	for _, task := range tasks[1:] {
		if task.NextDue.Before(next.NextDue) {
			next = task
		}
	}
	return s.completeLocked(ctx, next.ID, actor)
}

func (s *Service) completeLocked(ctx context.Context, id string, actor string) error {
	tasks, _, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}
	for i, task := range tasks {
		if task.ID != id {
			continue
		}
		now := s.clock()

		events, _, err := s.loadEvents(ctx)
		if err != nil {
			return err
		}
		subject := task.Name
		if s.cfg.Subject != "" {
			subject = s.cfg.Subject
		}
		events = append(events, model.CompletionEvent{
			Subject: subject,
			Icon:    task.Icon,
			Actor:   actor,
			At:      now,
		})
		if err := s.saveEvents(ctx, events); err != nil {
			return err
		}

		tasks[i].NextDue = now.Add(task.Interval)
		tasks[i].Assignee = actor
		if err := s.saveTasks(ctx, tasks); err != nil {
			return err
		}
		s.notify.Notify(fmt.Sprintf("%s finished %s %s! 🎉", actor, task.Icon, task.Name))
		return nil
	}
	return nil
}

// AdjustPoints is the manual leaderboard correction: +1 appends a marker
// event, -1 removes the member's most recent event. Decrementing a member
// with no events never goes negative.
func (s *Service) AdjustPoints(ctx context.Context, member string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Roster.Contains(member) {
		s.notify.Notify("⚠️ " + member + " is not on the roster")
		return model.ErrUnknownAssignee
	}
	if delta == 0 {
		return nil
	}

	events, _, err := s.loadEvents(ctx)
	if err != nil {
		return err
	}
	if delta > 0 {
		events = append(events, model.CompletionEvent{
			Subject: "Manual adjustment",
			Icon:    "⭐",
			Actor:   member,
			At:      s.clock(),
		})
		s.notify.Notify("+1 point for " + member)
	} else {
		var removed bool
		events, removed = RemoveLastBy(events, member)
		if !removed {
			return nil
		}
		s.notify.Notify("-1 point for " + member)
	}
	return s.saveEvents(ctx, events)
}

// Leaderboard returns the ranked completion counts for this week.
func (s *Service) Leaderboard(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, _, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(events, s.cfg.Roster), nil
}

// LastCompleted returns the most recent completion, if any.
func (s *Service) LastCompleted(ctx context.Context) (model.CompletionEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, _, err := s.loadEvents(ctx)
	if err != nil {
		return model.CompletionEvent{}, false, err
	}
	event, ok := LastEvent(events)
	return event, ok, nil
}

// CompletedCount is the number of completions since the last weekly reset.
func (s *Service) CompletedCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, _, err := s.loadEvents(ctx)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// Events returns the full completion log, oldest first.
func (s *Service) Events(ctx context.Context) ([]model.CompletionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events, _, err := s.loadEvents(ctx)
	return events, err
}

// ResetScores is the explicit user-confirmed reset: the log is emptied and
// the stored boundary removed so the next check re-initializes it.
func (s *Service) ResetScores(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveEvents(ctx, []model.CompletionEvent{}); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, s.cfg.Keys.Boundary); err != nil {
		return err
	}
	s.notify.Notify("🔄 The leaderboard has been reset!")
	return nil
}

// CheckResets runs the weekly and, when tracked, daily rollover checks.
// It is idempotent between boundary crossings and safe to call on every
// refresh tick.
func (s *Service) CheckResets(ctx context.Context, now time.Time) (weeklyFired, dailyFired bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkResetsLocked(ctx, now)
}

func (s *Service) checkResetsLocked(ctx context.Context, now time.Time) (weeklyFired, dailyFired bool, err error) {
	stored, present, err := s.loadBoundary(ctx)
	if err != nil {
		return false, false, err
	}

	var clearErr error
	boundary, fired := schedule.CheckWeekly(stored, present, now, s.cfg.nextBoundary, func() {
		clearErr = s.saveEvents(ctx, []model.CompletionEvent{})
	})
	if clearErr != nil {
		return false, false, clearErr
	}
	if !present || fired {
		if err := s.kv.Set(ctx, s.cfg.Keys.Boundary, storage.EncodeBoundary(boundary)); err != nil {
			return false, false, err
		}
	}
	if fired {
		s.notify.Notify("🏆 New week! The leaderboard starts over!")
	}
	weeklyFired = fired

	if s.cfg.TracksFeeding {
		state, _, err := s.loadFeeding(ctx)
		if err != nil {
			return weeklyFired, false, err
		}
		label, firedDaily := schedule.CheckDaily(state.DateLabel, now, nil)
		if firedDaily {
			fresh := model.FeedingState{DateLabel: label}
			if err := s.saveFeeding(ctx, fresh); err != nil {
				return weeklyFired, false, err
			}
			dailyFired = true
		}
	}
	return weeklyFired, dailyFired, nil
}

// Feeding returns today's feeding slots.
func (s *Service) Feeding(ctx context.Context) (model.FeedingState, error) {
	if !s.cfg.TracksFeeding {
		return model.FeedingState{}, ErrNoFeeding
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state, _, err := s.loadFeeding(ctx)
	return state, err
}

// ToggleFeeding marks an unfed slot as fed (with timestamp) or clears an
// already-fed slot, the tap-again-to-undo behavior. Returns the slot's new
// fed state.
func (s *Service) ToggleFeeding(ctx context.Context, slot model.MealSlot) (bool, error) {
	if !s.cfg.TracksFeeding {
		return false, ErrNoFeeding
	}
	if !slot.IsValid() {
		return false, model.ErrInvalidMealSlot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	state, _, err := s.loadFeeding(ctx)
	if err != nil {
		return false, err
	}
	if state.DateLabel != schedule.DayLabel(now) {
		state = model.FeedingState{DateLabel: schedule.DayLabel(now)}
	}

	mark := state.Slot(slot)
	if mark.Fed {
		state.SetSlot(slot, model.FeedingMark{})
		if err := s.saveFeeding(ctx, state); err != nil {
			return false, err
		}
		s.notify.Notify(fmt.Sprintf("Unmarked the %s feeding", slot))
		return false, nil
	}

	state.SetSlot(slot, model.FeedingMark{Fed: true, At: now})
	if err := s.saveFeeding(ctx, state); err != nil {
		return false, err
	}
	if slot == model.MealMorning {
		s.notify.Notify("🌅 Morning feeding done!")
	} else {
		s.notify.Notify("🌙 Evening feeding done!")
	}
	return true, nil
}

// Stored collections decode leniently: a missing or corrupt value reads as
// absent and the collection reinitializes, never crashes.

func (s *Service) loadTasks(ctx context.Context) ([]model.RecurringTask, bool, error) {
	value, ok, err := s.kv.Get(ctx, s.cfg.Keys.Tasks)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	tasks, err := storage.DecodeTasks(value)
	if err != nil {
		return nil, false, nil
	}
	return tasks, true, nil
}

func (s *Service) saveTasks(ctx context.Context, tasks []model.RecurringTask) error {
	value, err := storage.EncodeTasks(tasks)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.cfg.Keys.Tasks, value)
}

func (s *Service) loadEvents(ctx context.Context) ([]model.CompletionEvent, bool, error) {
	value, ok, err := s.kv.Get(ctx, s.cfg.Keys.Events)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	events, err := storage.DecodeEvents(value)
	if err != nil {
		return nil, false, nil
	}
	return events, true, nil
}

func (s *Service) saveEvents(ctx context.Context, events []model.CompletionEvent) error {
	value, err := storage.EncodeEvents(events)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.cfg.Keys.Events, value)
}

func (s *Service) loadBoundary(ctx context.Context) (time.Time, bool, error) {
	value, ok, err := s.kv.Get(ctx, s.cfg.Keys.Boundary)
	if err != nil {
		return time.Time{}, false, err
	}
	if !ok {
		return time.Time{}, false, nil
	}
	boundary, err := storage.DecodeBoundary(value)
	if err != nil {
		return time.Time{}, false, nil
	}
	return boundary, true, nil
}

func (s *Service) loadFeeding(ctx context.Context) (model.FeedingState, bool, error) {
	value, ok, err := s.kv.Get(ctx, s.cfg.Keys.Feeding)
	if err != nil {
		return model.FeedingState{}, false, err
	}
	if !ok {
		return model.FeedingState{}, false, nil
	}
	state, err := storage.DecodeFeeding(value)
	if err != nil {
		return model.FeedingState{}, false, nil
	}
	return state, true, nil
}

func (s *Service) saveFeeding(ctx context.Context, state model.FeedingState) error {
	value, err := storage.EncodeFeeding(state)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.cfg.Keys.Feeding, value)
}
