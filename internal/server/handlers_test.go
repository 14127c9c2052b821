package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hemma/internal/storage"
	"hemma/internal/tracker"
	"hemma/internal/weather"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	kv := storage.NewMemoryStore()
	clock := func() time.Time { return time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC) }

	cleaning := tracker.NewService(tracker.Cleaning(nil), kv, clock, nil)
	walk := tracker.NewService(tracker.DogWalk(nil), kv, clock, nil)
	for _, svc := range []*tracker.Service{cleaning, walk} {
		if err := svc.Init(context.Background()); err != nil {
			t.Fatalf("init service: %v", err)
		}
	}

	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current_weather":{"temperature":3.5,"weathercode":61}}`)
	}))
	t.Cleanup(weatherSrv.Close)

	h := NewHandlers(
		map[string]*tracker.Service{"cleaning": cleaning, "walk": walk},
		weather.NewClientWithBaseURL(weatherSrv.URL, time.Second),
		weather.DefaultLocation,
	)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestListTasksSeeded(t *testing.T) {
	srv := newTestServer(t)

	var tasks []taskPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/tasks", nil), &tasks)
	if len(tasks) != 8 {
		t.Fatalf("seeded cleaning tasks = %d, want 8", len(tasks))
	}
	for _, task := range tasks {
		if task.ID == "" || task.Name == "" || task.Assignee == "" {
			t.Errorf("task missing fields: %+v", task)
		}
	}

	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/walk/tasks", nil), &tasks)
	if len(tasks) != 1 {
		t.Fatalf("seeded walk tasks = %d, want 1", len(tasks))
	}
}

func TestUnknownTracker(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/gardening/tasks", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestAddCompleteAndLeaderboard(t *testing.T) {
	srv := newTestServer(t)

	var task taskPayload
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/cleaning/tasks", addTaskRequest{
		Name: "Water the plants", Icon: "🪴", Days: 3, Assignee: "Emmy",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add task status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	decodeInto(t, resp, &task)
	if task.IntervalMs != (3 * 24 * time.Hour).Milliseconds() {
		t.Errorf("IntervalMs = %d, want 3 days", task.IntervalMs)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/cleaning/tasks/"+task.ID+"/complete", completeRequest{Actor: "Tilde"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var entries []leaderboardEntryPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/leaderboard", nil), &entries)
	if len(entries) != 4 {
		t.Fatalf("leaderboard entries = %d, want 4", len(entries))
	}
	if entries[0].Name != "Tilde" || entries[0].Count != 1 {
		t.Errorf("top entry = %+v, want Tilde with 1", entries[0])
	}
}

func TestAddTaskValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		req  addTaskRequest
	}{
		{"empty name", addTaskRequest{Assignee: "Emmy"}},
		{"unknown assignee", addTaskRequest{Name: "Dust shelves", Assignee: "Nobody"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/cleaning/tasks", tt.req)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestUpdateIntervalOutOfRange(t *testing.T) {
	srv := newTestServer(t)

	var tasks []taskPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/tasks", nil), &tasks)

	days := 45
	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/cleaning/tasks/"+tasks[0].ID, updateTaskRequest{Days: &days})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestRemoveTask(t *testing.T) {
	srv := newTestServer(t)

	var tasks []taskPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/tasks", nil), &tasks)
	before := len(tasks)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/cleaning/tasks/"+tasks[0].ID, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/tasks", nil), &tasks)
	if len(tasks) != before-1 {
		t.Errorf("tasks after delete = %d, want %d", len(tasks), before-1)
	}
}

func TestCompleteNextWalk(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/walk/complete-next", completeRequest{Actor: "Maria"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete-next status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var events []eventPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/walk/events", nil), &events)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Subject != "walk" || events[0].Actor != "Maria" {
		t.Errorf("event = %+v, want walk by Maria", events[0])
	}
}

func TestAdjustPointsAndReset(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/cleaning/points", pointsRequest{Member: "Jimmy", Delta: 1})
	resp.Body.Close()

	var entries []leaderboardEntryPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/leaderboard", nil), &entries)
	if entries[0].Name != "Jimmy" || entries[0].Count != 1 {
		t.Fatalf("after +1, top entry = %+v, want Jimmy with 1", entries[0])
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/cleaning/points", pointsRequest{Member: "Unknown", Delta: 1})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown member status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/cleaning/reset", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d", resp.StatusCode)
	}
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/leaderboard", nil), &entries)
	for _, e := range entries {
		if e.Count != 0 {
			t.Errorf("after reset, %s count = %d, want 0", e.Name, e.Count)
		}
	}
}

func TestFeedingLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var state feedingPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/walk/feeding", nil), &state)
	if state.Morning.Fed || state.Evening.Fed {
		t.Fatalf("fresh feeding state should be unfed: %+v", state)
	}

	var toggled map[string]bool
	decodeInto(t, doJSON(t, http.MethodPost, srv.URL+"/api/walk/feeding/morning", nil), &toggled)
	if !toggled["fed"] {
		t.Error("first toggle should mark slot fed")
	}

	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/walk/feeding", nil), &state)
	if !state.Morning.Fed || state.Morning.AtMs == 0 {
		t.Errorf("morning slot = %+v, want fed with timestamp", state.Morning)
	}

	decodeInto(t, doJSON(t, http.MethodPost, srv.URL+"/api/walk/feeding/morning", nil), &toggled)
	if toggled["fed"] {
		t.Error("second toggle should undo the mark")
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/walk/feeding/brunch", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid slot status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestFeedingNotTrackedByCleaning(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/cleaning/feeding", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestWeatherEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var report weatherPayload
	decodeInto(t, doJSON(t, http.MethodGet, srv.URL+"/api/weather", nil), &report)
	if report.Kind != "rain" {
		t.Errorf("Kind = %q, want rain", report.Kind)
	}
	if report.TemperatureC != 3.5 {
		t.Errorf("TemperatureC = %v, want 3.5", report.TemperatureC)
	}
}
