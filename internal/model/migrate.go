package model

import (
	"encoding/json"
	"time"
)

// rawTask is the loosest shape a persisted record can take. Fields the
// current schema requires may be absent or carry a legacy type, so
// everything polymorphic stays a RawMessage until probed.
type rawTask struct {
	ID          json.RawMessage `json:"id"`
	Text        string          `json:"text"`
	Done        bool            `json:"done"`
	Date        string          `json:"date"`
	Notes       json.RawMessage `json:"notes"`
	CompletedAt json.RawMessage `json:"completedAt"`
	ParentID    json.RawMessage `json:"parentId"`
}

// MigrateTasks upgrades a persisted task collection to the current
// schema. Records that are not JSON objects are dropped; within a
// record, any field that cannot be interpreted becomes its schema
// default. today supplies the date for records written before tasks
// carried one. The result round-trips: migrating already-migrated data
// is a no-op.
func MigrateTasks(data []byte, today string) []Task {
	if len(data) == 0 {
		return []Task{}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return []Task{}
	}
	out := make([]Task, 0, len(records))
	for _, rec := range records {
		t, ok := MigrateRecord(rec, today)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MigrateRecord normalizes a single record. ok is false only when the
// record is not a JSON object at all.
func MigrateRecord(rec json.RawMessage, today string) (Task, bool) {
	var raw rawTask
	if err := json.Unmarshal(rec, &raw); err != nil {
		return Task{}, false
	}

	t := Task{
		Text:     raw.Text,
		Done:     raw.Done,
		Date:     raw.Date,
		Notes:    migrateNotes(raw.Notes),
		Subtasks: []int64{},
	}
	if t.Date == "" {
		t.Date = today
	}
	if id, ok := probeInt(raw.ID); ok {
		t.ID = id
	}
	if ts, ok := probeTime(raw.CompletedAt); ok {
		t.CompletedAt = &ts
	}
	if pid, ok := probeInt(raw.ParentID); ok {
		t.ParentID = &pid
	}
	return t, true
}

// migrateNotes handles the legacy single-string notes representation:
// a non-empty string becomes a one-element list, an empty or missing
// value an empty list.
func migrateNotes(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return []string{}
}

func probeInt(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var v *int64
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return 0, false
	}
	return *v, true
}

func probeTime(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
