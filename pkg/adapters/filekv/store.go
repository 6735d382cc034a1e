// Package filekv implements the core.KV contract on a flat directory of
// JSON files, one file per key. Writes are atomic (temp file + rename) and
// external changes are observable through a supervised fsnotify worker.
package filekv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/lifecycle"

	"github.com/jotterhq/jotter/pkg/core"
)

const keyExt = ".json"

// Config holds the configuration for the file-backed store.
type Config struct {
	Path      string
	MustExist bool  // fail Initialize instead of creating the directory
	ReadOnly  bool  // Set/Delete return core.ErrReadOnly
	Quota     int64 // total value bytes allowed; 0 = unlimited
	Logger    *slog.Logger
	// ErrorHandler receives asynchronous watcher errors. Optional.
	ErrorHandler func(error)
}

// Store is a file-per-key implementation of core.KV.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	closed        bool
}

// New creates a file-backed store. Call Initialize before first use.
func New(config Config) *Store {
	return &Store{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the backing directory is ready.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
		return nil
	}
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// validKey rejects keys that would escape the directory or collide with the
// store's own temp files.
func validKey(key string) error {
	if key == "" {
		return errors.New("key is empty")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid key: %q", key)
	}
	if strings.HasPrefix(key, ".") || strings.HasPrefix(key, TempFilePrefix) {
		return fmt.Errorf("invalid key: %q", key)
	}
	return nil
}

func (s *Store) filename(key string) string {
	return filepath.Join(s.Path, key+keyExt)
}

// Get retrieves the raw value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.filename(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set stores a value, creating or replacing the key's file atomically.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if s.config.ReadOnly {
		return fmt.Errorf("set %s: %w", key, core.ErrReadOnly)
	}
	if s.config.Quota > 0 {
		used, err := s.usedBytes(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.config.Quota {
			return fmt.Errorf("set %s: %w", key, core.ErrStoreFull)
		}
	}
	if err := writeFileAtomic(s.filename(key), value, 0644); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("set %s: %w", key, core.ErrStoreFull)
		}
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// usedBytes sums the sizes of all stored values except the one being
// replaced.
func (s *Store) usedBytes(replacing string) (int64, error) {
	var total int64
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to scan store directory: %w", err)
	}
	for _, e := range entries {
		key, ok := entryKey(e)
		if !ok || key == replacing {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// Delete removes a key. Absent keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if s.config.ReadOnly {
		return fmt.Errorf("delete %s: %w", key, core.ErrReadOnly)
	}
	if err := os.Remove(s.filename(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys returns all keys starting with prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan store directory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		key, ok := entryKey(e)
		if !ok {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// entryKey maps a directory entry back to its key, skipping directories,
// temp files, hidden files and foreign extensions.
func entryKey(e fs.DirEntry) (string, bool) {
	if e.IsDir() {
		return "", false
	}
	name := e.Name()
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, TempFilePrefix) {
		return "", false
	}
	if filepath.Ext(name) != keyExt {
		return "", false
	}
	return strings.TrimSuffix(name, keyExt), true
}

// Close marks the store closed. Watch workers stop with their context; the
// files need no teardown.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Watch emits events for external changes to keys matching pattern
// (doublestar glob). The channel closes when ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	// Supervised teardown: once ctx is cancelled, stop the worker (which
	// drains its debouncer) and only then close the channel.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		_ = w.Stop(stopCtx)
		close(events)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(err)
		} else if s.config.Logger != nil {
			s.config.Logger.Error("watch teardown panic", "error", err)
		}
	}))

	return events, nil
}

var _ core.KV = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
