package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hemma/internal/model"
	"hemma/internal/tracker"
	"hemma/internal/weather"
)

// Handlers serves the JSON API for every tracker instance, keyed by the
// {app} path segment ("cleaning", "walk"), plus the shared weather badge.
type Handlers struct {
	services map[string]*tracker.Service
	weather  *weather.Client
	location weather.Location
}

func NewHandlers(services map[string]*tracker.Service, wc *weather.Client, loc weather.Location) *Handlers {
	return &Handlers{services: services, weather: wc, location: loc}
}

func (h *Handlers) service(w http.ResponseWriter, r *http.Request) (*tracker.Service, bool) {
	app := r.PathValue("app")
	svc, ok := h.services[app]
	if !ok {
		ErrorResponse(w, http.StatusNotFound, "unknown tracker: "+app)
		return nil, false
	}
	return svc, true
}

type taskPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	IntervalMs int64  `json:"intervalMs"`
	NextDueMs  int64  `json:"nextDueMs"`
	Assignee   string `json:"assignee"`
}

type taskStatusPayload struct {
	taskPayload
	Urgency     string `json:"urgency"`
	RemainingMs int64  `json:"remainingMs"`
}

type eventPayload struct {
	Subject     string `json:"subject"`
	Icon        string `json:"icon"`
	Actor       string `json:"actor"`
	TimestampMs int64  `json:"timestampMs"`
}

type feedingMarkPayload struct {
	Fed  bool  `json:"fed"`
	AtMs int64 `json:"atMs,omitempty"`
}

type feedingPayload struct {
	Date    string             `json:"date"`
	Morning feedingMarkPayload `json:"morning"`
	Evening feedingMarkPayload `json:"evening"`
}

type weatherPayload struct {
	Kind         string  `json:"kind"`
	Label        string  `json:"label"`
	Emoji        string  `json:"emoji"`
	TemperatureC float64 `json:"temperatureC"`
	Location     string  `json:"location,omitempty"`
}

func toTaskPayload(t model.RecurringTask) taskPayload {
	return taskPayload{
		ID:         t.ID,
		Name:       t.Name,
		Icon:       t.Icon,
		IntervalMs: t.Interval.Milliseconds(),
		NextDueMs:  t.NextDue.UnixMilli(),
		Assignee:   t.Assignee,
	}
}

func toFeedingPayload(state model.FeedingState) feedingPayload {
	p := feedingPayload{Date: state.DateLabel}
	if state.Morning.Fed {
		p.Morning = feedingMarkPayload{Fed: true, AtMs: state.Morning.At.UnixMilli()}
	}
	if state.Evening.Fed {
		p.Evening = feedingMarkPayload{Fed: true, AtMs: state.Evening.At.UnixMilli()}
	}
	return p
}

// ListTasks handles GET /api/{app}/tasks
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	tasks, err := svc.Tasks(r.Context())
	if err != nil {
		slog.Error("failed to load tasks", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	out := make([]taskPayload, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskPayload(t))
	}
	JSONResponse(w, http.StatusOK, out)
}

// Upcoming handles GET /api/{app}/upcoming
func (h *Handlers) Upcoming(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	statuses, err := svc.Upcoming(r.Context())
	if err != nil {
		slog.Error("failed to load upcoming tasks", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	out := make([]taskStatusPayload, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, taskStatusPayload{
			taskPayload: toTaskPayload(st.RecurringTask),
			Urgency:     string(st.Urgency),
			RemainingMs: st.Remaining.Milliseconds(),
		})
	}
	JSONResponse(w, http.StatusOK, out)
}

type addTaskRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Days     int    `json:"days"`
	Assignee string `json:"assignee"`
}

// AddTask handles POST /api/{app}/tasks
func (h *Handlers) AddTask(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	var req addTaskRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	task, err := svc.AddTask(r.Context(), req.Name, req.Icon, time.Duration(req.Days)*24*time.Hour, req.Assignee)
	switch {
	case errors.Is(err, tracker.ErrEmptyTaskName), errors.Is(err, model.ErrUnknownAssignee):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to add task", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to add task")
		return
	}
	slog.Info("task added", "id", task.ID, "name", task.Name, "assignee", task.Assignee)
	JSONResponse(w, http.StatusCreated, toTaskPayload(task))
}

type updateTaskRequest struct {
	Days     *int    `json:"days,omitempty"`
	Assignee *string `json:"assignee,omitempty"`
}

// UpdateTask handles PATCH /api/{app}/tasks/{id}
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	var req updateTaskRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Days != nil {
		err := svc.UpdateInterval(r.Context(), id, time.Duration(*req.Days)*24*time.Hour)
		switch {
		case errors.Is(err, model.ErrIntervalOutOfRange):
			ErrorResponse(w, http.StatusBadRequest, "interval must be between 1 and 30 days")
			return
		case err != nil:
			slog.Error("failed to update interval", "error", err, "id", id)
			ErrorResponse(w, http.StatusInternalServerError, "Failed to update task")
			return
		}
	}
	if req.Assignee != nil {
		err := svc.UpdateAssignee(r.Context(), id, *req.Assignee)
		switch {
		case errors.Is(err, model.ErrUnknownAssignee):
			ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			slog.Error("failed to update assignee", "error", err, "id", id)
			ErrorResponse(w, http.StatusInternalServerError, "Failed to update task")
			return
		}
	}
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RemoveTask handles DELETE /api/{app}/tasks/{id}
func (h *Handlers) RemoveTask(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := svc.RemoveTask(r.Context(), id); err != nil {
		slog.Error("failed to remove task", "error", err, "id", id)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to remove task")
		return
	}
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

type completeRequest struct {
	Actor string `json:"actor"`
}

// CompleteTask handles POST /api/{app}/tasks/{id}/complete
func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	var req completeRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Actor == "" {
		ErrorResponse(w, http.StatusBadRequest, "actor is required")
		return
	}
	if err := svc.Complete(r.Context(), r.PathValue("id"), req.Actor); err != nil {
		slog.Error("failed to complete task", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to complete task")
		return
	}
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CompleteNext handles POST /api/{app}/complete-next
func (h *Handlers) CompleteNext(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	var req completeRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Actor == "" {
		ErrorResponse(w, http.StatusBadRequest, "actor is required")
		return
	}
	err := svc.CompleteNext(r.Context(), req.Actor)
	switch {
	case errors.Is(err, tracker.ErrNoTasks):
		ErrorResponse(w, http.StatusConflict, "no tasks registered")
		return
	case err != nil:
		slog.Error("failed to complete next task", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to complete task")
		return
	}
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

type quickRegisterRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Actor string `json:"actor"`
}

// QuickRegister handles POST /api/{app}/quick-register
func (h *Handlers) QuickRegister(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	var req quickRegisterRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	task, err := svc.QuickRegister(r.Context(), req.Name, req.Icon, req.Actor)
	switch {
	case errors.Is(err, tracker.ErrEmptyTaskName), errors.Is(err, model.ErrUnknownAssignee):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to quick-register task", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to register task")
		return
	}
	JSONResponse(w, http.StatusCreated, toTaskPayload(task))
}

type leaderboardEntryPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Leaderboard handles GET /api/{app}/leaderboard
func (h *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	entries, err := svc.Leaderboard(r.Context())
	if err != nil {
		slog.Error("failed to load leaderboard", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}
	out := make([]leaderboardEntryPayload, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryPayload{Name: e.Name, Count: e.Count})
	}
	JSONResponse(w, http.StatusOK, out)
}

// Events handles GET /api/{app}/events
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	events, err := svc.Events(r.Context())
	if err != nil {
		slog.Error("failed to load events", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to load events")
		return
	}
	out := make([]eventPayload, 0, len(events))
	for _, e := range events {
		out = append(out, eventPayload{
			Subject:     e.Subject,
			Icon:        e.Icon,
			Actor:       e.Actor,
			TimestampMs: e.At.UnixMilli(),
		})
	}
	JSONResponse(w, http.StatusOK, out)
}

type pointsRequest struct {
	Member string `json:"member"`
	Delta  int    `json:"delta"`
}

// AdjustPoints handles POST /api/{app}/points
func (h *Handlers) AdjustPoints(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	var req pointsRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	err := svc.AdjustPoints(r.Context(), req.Member, req.Delta)
	switch {
	case errors.Is(err, model.ErrUnknownAssignee):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to adjust points", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to adjust points")
		return
	}
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetScores handles POST /api/{app}/reset
func (h *Handlers) ResetScores(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	if err := svc.ResetScores(r.Context()); err != nil {
		slog.Error("failed to reset scores", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to reset scores")
		return
	}
	slog.Info("leaderboard reset", "app", r.PathValue("app"))
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Feeding handles GET /api/{app}/feeding
func (h *Handlers) Feeding(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	state, err := svc.Feeding(r.Context())
	switch {
	case errors.Is(err, tracker.ErrNoFeeding):
		ErrorResponse(w, http.StatusNotFound, "feeding is not tracked here")
		return
	case err != nil:
		slog.Error("failed to load feeding state", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to load feeding state")
		return
	}
	JSONResponse(w, http.StatusOK, toFeedingPayload(state))
}

// ToggleFeeding handles POST /api/{app}/feeding/{slot}
func (h *Handlers) ToggleFeeding(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	slot, err := model.ParseMealSlot(r.PathValue("slot"))
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, "slot must be morning or evening")
		return
	}
	fed, err := svc.ToggleFeeding(r.Context(), slot)
	switch {
	case errors.Is(err, tracker.ErrNoFeeding):
		ErrorResponse(w, http.StatusNotFound, "feeding is not tracked here")
		return
	case err != nil:
		slog.Error("failed to toggle feeding", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to update feeding state")
		return
	}
	JSONResponse(w, http.StatusOK, map[string]bool{"fed": fed})
}

// Weather handles GET /api/weather. Lookup failures degrade to the
// neutral report instead of an error status.
func (h *Handlers) Weather(w http.ResponseWriter, r *http.Request) {
	report, err := h.weather.Current(r.Context(), h.location)
	if err != nil {
		slog.Warn("weather lookup failed", "error", err)
		report = weather.Fallback()
	}
	JSONResponse(w, http.StatusOK, weatherPayload{
		Kind:         string(report.Kind),
		Label:        report.Label,
		Emoji:        report.Emoji,
		TemperatureC: report.TemperatureC,
		Location:     report.Location,
	})
}
