package storage

import (
	"encoding/json"
	"strconv"
	"time"

	"hemma/internal/model"
)

// Serialized records mirror the model structs with integer millisecond
// timestamps so every field round-trips losslessly. Decode errors are
// surfaced to callers, who treat corrupt values the same as absent ones
// and reinitialize the collection.

type TaskRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	IntervalMs int64  `json:"intervalMs"`
	NextDueMs  int64  `json:"nextDueMs"`
	Assignee   string `json:"assignee"`
}

type EventRecord struct {
	Subject     string `json:"subject"`
	Icon        string `json:"icon"`
	Actor       string `json:"actor"`
	TimestampMs int64  `json:"timestampMs"`
}

type FeedingRecord struct {
	Date         string `json:"date"`
	MorningFed   bool   `json:"morningFed"`
	MorningFedMs int64  `json:"morningFedMs,omitempty"`
	EveningFed   bool   `json:"eveningFed"`
	EveningFedMs int64  `json:"eveningFedMs,omitempty"`
}

func taskToRecord(t model.RecurringTask) TaskRecord {
	return TaskRecord{
		ID:         t.ID,
		Name:       t.Name,
		Icon:       t.Icon,
		IntervalMs: t.Interval.Milliseconds(),
		NextDueMs:  t.NextDue.UnixMilli(),
		Assignee:   t.Assignee,
	}
}

func taskFromRecord(r TaskRecord) model.RecurringTask {
	return model.RecurringTask{
		ID:       r.ID,
		Name:     r.Name,
		Icon:     r.Icon,
		Interval: time.Duration(r.IntervalMs) * time.Millisecond,
		NextDue:  time.UnixMilli(r.NextDueMs),
		Assignee: r.Assignee,
	}
}

func eventToRecord(e model.CompletionEvent) EventRecord {
	return EventRecord{
		Subject:     e.Subject,
		Icon:        e.Icon,
		Actor:       e.Actor,
		TimestampMs: e.At.UnixMilli(),
	}
}

func eventFromRecord(r EventRecord) model.CompletionEvent {
	return model.CompletionEvent{
		Subject: r.Subject,
		Icon:    r.Icon,
		Actor:   r.Actor,
		At:      time.UnixMilli(r.TimestampMs),
	}
}

func EncodeTasks(tasks []model.RecurringTask) (string, error) {
	records := make([]TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskToRecord(t))
	}
	return encodeJSON(records)
}

func DecodeTasks(value string) ([]model.RecurringTask, error) {
	var records []TaskRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, err
	}
	tasks := make([]model.RecurringTask, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, taskFromRecord(r))
	}
	return tasks, nil
}

func EncodeEvents(events []model.CompletionEvent) (string, error) {
	records := make([]EventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, eventToRecord(e))
	}
	return encodeJSON(records)
}

func DecodeEvents(value string) ([]model.CompletionEvent, error) {
	var records []EventRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, err
	}
	events := make([]model.CompletionEvent, 0, len(records))
	for _, r := range records {
		events = append(events, eventFromRecord(r))
	}
	return events, nil
}

func EncodeFeeding(state model.FeedingState) (string, error) {
	record := FeedingRecord{
		Date:       state.DateLabel,
		MorningFed: state.Morning.Fed,
		EveningFed: state.Evening.Fed,
	}
	if state.Morning.Fed {
		record.MorningFedMs = state.Morning.At.UnixMilli()
	}
	if state.Evening.Fed {
		record.EveningFedMs = state.Evening.At.UnixMilli()
	}
	return encodeJSON(record)
}

func DecodeFeeding(value string) (model.FeedingState, error) {
	var record FeedingRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return model.FeedingState{}, err
	}
	state := model.FeedingState{DateLabel: record.Date}
	if record.MorningFed {
		state.Morning = model.FeedingMark{Fed: true, At: time.UnixMilli(record.MorningFedMs)}
	}
	if record.EveningFed {
		state.Evening = model.FeedingMark{Fed: true, At: time.UnixMilli(record.EveningFedMs)}
	}
	return state, nil
}

// Boundary timestamps are stored as a bare millisecond integer, the same
// shape the value has always had on disk.
func EncodeBoundary(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func DecodeBoundary(value string) (time.Time, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
