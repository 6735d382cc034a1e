package memkv

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/jotterhq/jotter/pkg/core"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Set(ctx, "notes", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx, "notes")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get returned %q", got)
	}

	// The store must copy values, not alias caller slices.
	payload := []byte("original")
	if err := s.Set(ctx, "aliased", payload); err != nil {
		t.Fatal(err)
	}
	payload[0] = 'X'
	got, _ = s.Get(ctx, "aliased")
	if string(got) != "original" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := New()
	_, err := s.Get(context.Background(), "absent")
	if !errors.Is(err, core.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestStoreKeysPrefix(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, key := range []string{"notes", "auto_backup_1", "auto_backup_2"} {
		if err := s.Set(ctx, key, []byte("{}")); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := s.Keys(ctx, "auto_backup_")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "auto_backup_1" || keys[1] != "auto_backup_2" {
		t.Errorf("Keys(auto_backup_) = %v", keys)
	}
}

func TestStoreQuota(t *testing.T) {
	ctx := context.Background()
	s := New(WithQuota(16))

	if err := s.Set(ctx, "a", []byte("0123456789")); err != nil {
		t.Fatalf("Set within quota failed: %v", err)
	}
	if err := s.Set(ctx, "b", []byte("0123456789")); !errors.Is(err, core.ErrStoreFull) {
		t.Errorf("expected ErrStoreFull, got %v", err)
	}
	// Replacing key "a" counts only the replacement size.
	if err := s.Set(ctx, "a", []byte("0123456789abcdef")); err != nil {
		t.Errorf("replace within quota failed: %v", err)
	}
}

func TestWatchDeliversMutations(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New()

	events, err := s.Watch(ctx, "notes")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Set(ctx, "notes", []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "other", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "notes"); err != nil {
		t.Fatal(err)
	}

	want := []core.EventType{core.EventCreate, core.EventDelete}
	for i, wantType := range want {
		select {
		case e := <-events:
			if e.Key != "notes" || e.Type != wantType {
				t.Errorf("event %d = %+v, want notes/%s", i, e, wantType)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestWatchChannelClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New()

	events, err := s.Watch(ctx, "**")
	if err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected closed channel, got an event")
		}
	case <-time.After(time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestWatchSlowConsumerDoesNotBlockWriters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New()

	if _, err := s.Watch(ctx, "**"); err != nil {
		t.Fatal(err)
	}

	// Nobody drains the subscription; writes must still complete.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 64; i++ {
			_ = s.Set(ctx, "burst", []byte("x"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer blocked on a slow subscriber")
	}
}
