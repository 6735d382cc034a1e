// Package memkv implements the core.KV contract in memory. It backs
// ephemeral sessions and tests, and doubles as the reference Watchable:
// every mutation fans out to subscribers, so cache-invalidation paths can be
// exercised without a filesystem.
package memkv

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jotterhq/jotter/pkg/core"
)

// Store is a map-backed implementation of core.KV.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	quota  int64
	closed bool

	subMu  sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

type subscriber struct {
	pattern string
	ch      chan core.Event
	done    <-chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithQuota bounds the total stored value bytes; Set returns
// core.ErrStoreFull beyond it. 0 means unlimited.
func WithQuota(bytes int64) Option {
	return func(s *Store) { s.quota = bytes }
}

// New creates an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		data: make(map[string][]byte),
		subs: make(map[int]*subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves the raw value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}
	return append([]byte(nil), value...), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	if s.quota > 0 {
		var used int64
		for k, v := range s.data {
			if k == key {
				continue
			}
			used += int64(len(v))
		}
		if used+int64(len(value)) > s.quota {
			s.mu.Unlock()
			return fmt.Errorf("set %s: %w", key, core.ErrStoreFull)
		}
	}
	_, existed := s.data[key]
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()

	eType := core.EventCreate
	if existed {
		eType = core.EventModify
	}
	s.publish(core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

// Delete removes a key. Absent keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed {
		s.publish(core.Event{Type: core.EventDelete, Key: key, Timestamp: time.Now().Unix()})
	}
	return nil
}

// Keys returns all keys starting with prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Close drops all subscribers. The data stays readable; ephemeral stores
// have nothing durable to release.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, sub := range s.subs {
		close(sub.ch)
		delete(s.subs, id)
	}
	return nil
}

// Watch emits an event for every mutation whose key matches pattern.
// The channel is buffered so producers never block on slow consumers; it
// closes when ctx is done or the store closes.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	sub := &subscriber{
		pattern: pattern,
		ch:      make(chan core.Event, 16),
		done:    ctx.Done(),
	}

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub.ch)
		}
	}()

	return sub.ch, nil
}

func (s *Store) publish(event core.Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, sub := range s.subs {
		if match, err := doublestar.Match(sub.pattern, event.Key); err != nil || !match {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// Drop rather than block: subscribers that stop draining must
			// not stall writers.
		}
	}
}

var _ core.KV = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
