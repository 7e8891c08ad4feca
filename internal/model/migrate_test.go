package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

const migrateToday = "2024-01-10"

func migrateRoundTrip(t *testing.T, tasks []Task) []Task {
	t.Helper()
	data, err := json.Marshal(tasks)
	if err != nil {
		t.Fatalf("marshal tasks: %v", err)
	}
	return MigrateTasks(data, migrateToday)
}

func TestMigrateFillsDefaults(t *testing.T) {
	legacy := `[{"text":"old record","done":false,"id":42}]`
	tasks := MigrateTasks([]byte(legacy), migrateToday)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Date != migrateToday {
		t.Fatalf("expected date defaulted to today, got %q", got.Date)
	}
	if got.Notes == nil || len(got.Notes) != 0 {
		t.Fatalf("expected empty notes slice, got %#v", got.Notes)
	}
	if got.CompletedAt != nil {
		t.Fatalf("expected nil completedAt, got %v", got.CompletedAt)
	}
	if got.ParentID != nil {
		t.Fatalf("expected nil parentId, got %v", got.ParentID)
	}
	if got.Subtasks == nil || len(got.Subtasks) != 0 {
		t.Fatalf("expected empty subtasks slice, got %#v", got.Subtasks)
	}
}

func TestMigrateLegacyStringNotes(t *testing.T) {
	legacy := `[
		{"id":1,"text":"a","date":"2024-01-02","notes":"remember this"},
		{"id":2,"text":"b","date":"2024-01-02","notes":""},
		{"id":3,"text":"c","date":"2024-01-02","notes":["x","y"]}
	]`
	tasks := MigrateTasks([]byte(legacy), migrateToday)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if !reflect.DeepEqual(tasks[0].Notes, []string{"remember this"}) {
		t.Fatalf("string note should wrap: %#v", tasks[0].Notes)
	}
	if len(tasks[1].Notes) != 0 {
		t.Fatalf("empty string note should become empty slice: %#v", tasks[1].Notes)
	}
	if !reflect.DeepEqual(tasks[2].Notes, []string{"x", "y"}) {
		t.Fatalf("note list should pass through: %#v", tasks[2].Notes)
	}
}

func TestMigratePreservesExplicitNullParent(t *testing.T) {
	legacy := `[
		{"id":1,"text":"explicit","date":"2024-01-02","parentId":null},
		{"id":2,"text":"absent","date":"2024-01-02"},
		{"id":3,"text":"child","date":"2024-01-02","parentId":1}
	]`
	tasks := MigrateTasks([]byte(legacy), migrateToday)
	if tasks[0].ParentID != nil || tasks[1].ParentID != nil {
		t.Fatalf("expected nil parent for both spellings: %#v, %#v", tasks[0].ParentID, tasks[1].ParentID)
	}
	if tasks[2].ParentID == nil || *tasks[2].ParentID != 1 {
		t.Fatalf("expected parent 1, got %#v", tasks[2].ParentID)
	}
}

func TestMigrateCompletedAt(t *testing.T) {
	legacy := `[
		{"id":1,"text":"a","date":"2024-01-02","done":true,"completedAt":"2024-01-03T09:30:00.000Z"},
		{"id":2,"text":"b","date":"2024-01-02","completedAt":null},
		{"id":3,"text":"c","date":"2024-01-02","completedAt":"not a time"}
	]`
	tasks := MigrateTasks([]byte(legacy), migrateToday)
	if tasks[0].CompletedAt == nil || tasks[0].CompletedAt.UTC().Hour() != 9 {
		t.Fatalf("expected parsed completion time, got %v", tasks[0].CompletedAt)
	}
	if tasks[1].CompletedAt != nil || tasks[2].CompletedAt != nil {
		t.Fatalf("expected nil completedAt for null and malformed values")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	legacy := `[
		{"text":"no date","notes":"single"},
		{"id":7,"text":"full","date":"2024-01-05","notes":["n1"],"done":true,"completedAt":"2024-01-05T20:00:00Z","parentId":null,"subtasks":[]},
		{"id":8,"text":"child","date":"2024-01-05","parentId":7}
	]`
	once := MigrateTasks([]byte(legacy), migrateToday)
	twice := migrateRoundTrip(t, once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("migration not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestMigrateNeverPanicsOnGarbage(t *testing.T) {
	cases := []string{
		``,
		`not json`,
		`{"id":1}`,
		`[]`,
		`[null, 17, "str", {"id":"weird","notes":{"a":1},"parentId":"x"}]`,
	}
	for _, c := range cases {
		tasks := MigrateTasks([]byte(c), migrateToday)
		if tasks == nil {
			t.Fatalf("expected non-nil result for %q", c)
		}
	}
}
