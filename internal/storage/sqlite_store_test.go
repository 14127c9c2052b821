package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "kv-test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := t.Context()

	if _, ok, err := store.Get(ctx, "cleaning.tasks"); err != nil || ok {
		t.Fatalf("missing key should be absent, ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "cleaning.tasks", `[{"id":"t1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, "cleaning.tasks")
	if err != nil || !ok || value != `[{"id":"t1"}]` {
		t.Fatalf("get after set: %q ok=%v err=%v", value, ok, err)
	}

	// Overwrite via upsert.
	if err := store.Set(ctx, "cleaning.tasks", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = store.Get(ctx, "cleaning.tasks")
	if value != `[]` {
		t.Fatalf("overwrite not visible: %q", value)
	}

	if err := store.Delete(ctx, "cleaning.tasks"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "cleaning.tasks"); ok {
		t.Fatal("deleted key still present")
	}
	// Deleting an absent key is a no-op.
	if err := store.Delete(ctx, "cleaning.tasks"); err != nil {
		t.Fatalf("delete absent key: %v", err)
	}
}

func TestSQLiteStoreKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := t.Context()

	for _, key := range []string{"walk.events", "cleaning.tasks", "walk.feeding"} {
		if err := store.Set(ctx, key, "{}"); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"cleaning.tasks", "walk.events", "walk.feeding"}
	if len(keys) != len(want) {
		t.Fatalf("key count mismatch: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}

func TestMigrateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Set(t.Context(), "boundary", "1770000000000"); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}
	value, ok, err := store.Get(t.Context(), "boundary")
	if err != nil || !ok || value != "1770000000000" {
		t.Fatalf("get after roundtrip: %q ok=%v err=%v", value, ok, err)
	}
}
