package recordstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "task-1", []byte("payload")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("payload = %q, want %q", got, "payload")
	}

	_, err = store.Get(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_CopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("original")
	if err := store.Save(ctx, "task-1", payload); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slice must not affect the stored record.
	payload[0] = 'X'

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Errorf("payload = %q, want %q", got, "original")
	}

	// Mutating the returned slice must not affect later reads.
	got[0] = 'Y'
	again, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != "original" {
		t.Errorf("payload = %q, want %q", again, "original")
	}
}

func TestMemoryStore_SurvivesClose(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "task-1", []byte("kept")); err != nil {
		t.Fatal(err)
	}

	store.Close()
	store.Close()

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get after Close failed: %v", err)
	}
	if string(got) != "kept" {
		t.Errorf("payload = %q, want %q", got, "kept")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "task-1", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "task-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "task-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}

	// Absent id is fine.
	if err := store.Delete(ctx, "task-1"); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}
