package badgerkv

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/jotterhq/jotter/pkg/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Set(ctx, "notes", []byte(`[{"id":"n1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "notes")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"n1"}]` {
		t.Errorf("Get returned %q", got)
	}

	if err := s.Set(ctx, "notes", []byte(`[]`)); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}
	got, _ = s.Get(ctx, "notes")
	if string(got) != `[]` {
		t.Errorf("overwrite not visible, got %q", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "absent")
	if !errors.Is(err, core.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestStoreDeleteAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete(context.Background(), "absent"); err != nil {
		t.Errorf("deleting an absent key should not fail: %v", err)
	}
}

func TestStoreKeysPrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, key := range []string{"notes", "auto_backup_1", "auto_backup_2", "app_stats"} {
		if err := s.Set(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	keys, err := s.Keys(ctx, "auto_backup_")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "auto_backup_1" || keys[1] != "auto_backup_2" {
		t.Errorf("Keys(auto_backup_) = %v", keys)
	}
}

func TestStoreDeleteRemoves(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Set(ctx, "gone", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "gone"); !errors.Is(err, core.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "durable", []byte("value")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, "durable")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get after reopen = %q", got)
	}
}
