package recordstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLStore("sqlite", filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("NewSQLStore failed: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestSQLStore_SaveAndGet(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	payload := []byte(`{"id":"task-1","status":"pending"}`)
	if err := store.Save(ctx, "task-1", payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}

func TestSQLStore_Get_NotFound(t *testing.T) {
	store := newTestSQLStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLStore_SaveOverwrites(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "task-1", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "task-1", []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("payload = %q, want %q", got, "second")
	}
}

func TestSQLStore_Delete(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "task-1", []byte("data")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "task-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := store.Get(ctx, "task-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}

	// Deleting an absent id is not an error.
	if err := store.Delete(ctx, "task-1"); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete of unknown id failed: %v", err)
	}
}

func TestSQLStore_CloseAndReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLStore("sqlite", filepath.Join(dir, "records.db"))
	if err != nil {
		t.Fatalf("NewSQLStore failed: %v", err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, "task-1", []byte("durable")); err != nil {
		t.Fatal(err)
	}

	store.Close()
	store.Close() // idempotent

	// Reads after Close reopen transparently.
	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get after Close failed: %v", err)
	}
	if string(got) != "durable" {
		t.Errorf("payload = %q, want %q", got, "durable")
	}
	store.Close()

	// A fresh store on the same file sees the record.
	fresh, err := NewSQLStore("sqlite", filepath.Join(dir, "records.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer fresh.Close()

	got, err = fresh.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get on fresh store failed: %v", err)
	}
	if string(got) != "durable" {
		t.Errorf("payload = %q, want %q", got, "durable")
	}
}

func TestSQLStore_LazyOpen(t *testing.T) {
	// No explicit Open call; first Save opens the store.
	store := newTestSQLStore(t)

	if err := store.Save(context.Background(), "task-1", []byte("x")); err != nil {
		t.Fatalf("Save without Open failed: %v", err)
	}
}

func TestSQLStore_Open_BadParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := NewSQLStore("sqlite", filepath.Join(blocker, "sub", "records.db"))
	if err != nil {
		t.Fatalf("NewSQLStore failed: %v", err)
	}

	err = store.Open(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestSQLStore_ExpiredContext(t *testing.T) {
	store := newTestSQLStore(t)
	if err := store.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := store.Save(ctx, "task-1", []byte("late"))
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestSQLStore_TaskRecordLifecycle(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	pending := []byte(`{"id":"task-1","status":"pending"}`)
	if err := store.Save(ctx, "task-1", pending); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(pending) {
		t.Errorf("payload = %q, want %q", got, pending)
	}

	done := []byte(`{"id":"task-1","status":"done"}`)
	if err := store.Save(ctx, "task-1", done); err != nil {
		t.Fatal(err)
	}

	got, err = store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if string(got) != string(done) {
		t.Errorf("payload = %q, want %q", got, done)
	}

	if err := store.Delete(ctx, "task-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "task-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
}

func TestNewSQLStore_Validation(t *testing.T) {
	if _, err := NewSQLStore("oracle", "somewhere"); err == nil {
		t.Error("expected error for unsupported dialect")
	}
	if _, err := NewSQLStore("sqlite", ""); err == nil {
		t.Error("expected error for empty location")
	}

	// sqlite3 is accepted as an alias.
	store, err := NewSQLStore("sqlite3", "records.db")
	if err != nil {
		t.Fatalf("NewSQLStore with sqlite3 alias failed: %v", err)
	}
	if store.dialect != "sqlite" {
		t.Errorf("dialect = %q, want %q", store.dialect, "sqlite")
	}
}
