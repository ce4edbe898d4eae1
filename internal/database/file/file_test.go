package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/photo-selector/internal/database"
)

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "selections.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, "sel", []byte(`{"0":{"print":true}}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "sel")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"0":{"print":true}}` {
		t.Errorf("unexpected value %s", got)
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store, _ := Open(filepath.Join(t.TempDir(), "s.json"))

	store.Put(ctx, "a", []byte(`1`))
	store.Put(ctx, "b", []byte(`2`))

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "a"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected a to be deleted, got %v", err)
	}
	if v, err := store.Get(ctx, "b"); err != nil || string(v) != "2" {
		t.Errorf("expected b=2, got %s (%v)", v, err)
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	store, _ := Open(filepath.Join(t.TempDir(), "s.json"))
	if err := store.Delete(context.Background(), "nothing"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
}

func TestStore_RejectsInvalidJSON(t *testing.T) {
	store, _ := Open(filepath.Join(t.TempDir(), "s.json"))
	if err := store.Put(context.Background(), "k", []byte("not json")); err == nil {
		t.Error("expected error for non-JSON value")
	}
}

func TestStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, _ := Open(path)

	_, err := store.Get(context.Background(), "k")
	if err == nil || errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "s.json")

	first, _ := Open(path)
	if err := first.Put(ctx, "k", []byte(`{"x":1}`)); err != nil {
		t.Fatal(err)
	}

	second, _ := Open(path)
	got, err := second.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"x":1}` {
		t.Errorf("unexpected value %s", got)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}
