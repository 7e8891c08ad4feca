package storage

import (
	"path/filepath"
	"testing"
)

func roundTrip(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Load(KeyTasks)
	if err != nil {
		t.Fatalf("load missing key: %v", err)
	}
	if ok {
		t.Fatal("expected missing key before first save")
	}

	if err := kv.Save(KeyTasks, `[{"id":1}]`); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := kv.Save(KeySelectedDate, "2024-01-10"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := kv.Load(KeyTasks)
	if err != nil || !ok {
		t.Fatalf("load after save: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":1}]` {
		t.Fatalf("unexpected value: %q", got)
	}

	if err := kv.Save(KeySelectedDate, "2024-01-11"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err = kv.Load(KeySelectedDate)
	if err != nil || !ok || got != "2024-01-11" {
		t.Fatalf("overwrite readback: got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	roundTrip(t, NewMemory())
}

func TestFileRoundTrip(t *testing.T) {
	kv, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("open file kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	roundTrip(t, kv)
}

func TestFileLockExcludesSecondOpen(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("open file kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	if _, err := OpenFile(dir); err != ErrLocked {
		t.Fatalf("expected ErrLocked, got: %v", err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "studytrack.db"))
	if err != nil {
		t.Fatalf("open sqlite kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	roundTrip(t, kv)
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studytrack.db")
	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := kv.Save(KeyStartDate, "2024-01-01"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	got, ok, err := kv.Load(KeyStartDate)
	if err != nil || !ok || got != "2024-01-01" {
		t.Fatalf("reopen readback: got=%q ok=%v err=%v", got, ok, err)
	}
}
