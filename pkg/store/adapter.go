// Package store layers the typed persisted layout over a raw core.KV: the
// note collection, backup ledger map, template usage counters, app stats and
// achievement tags. It caches the decoded note collection in memory; the
// cache can be cleared at any time without touching persisted data.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jotterhq/jotter/pkg/core"
)

// Keys of the persisted layout.
const (
	KeyNotes         = "notes"
	KeyBackups       = "note_backups"
	KeyTemplateUsage = "template_usage"
	KeyStats         = "app_stats"
	KeyAchievements  = "achievements"

	// AutoBackupPrefix precedes an epoch-milliseconds suffix.
	AutoBackupPrefix = "auto_backup_"
)

// Adapter is the storage adapter for the note lifecycle engine.
type Adapter struct {
	kv     core.KV
	logger *slog.Logger

	mu            sync.RWMutex
	cached        []core.Note // nil = cold
	hits          int
	misses        int
	invalidations int
	watching      bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger attaches a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// New wraps a KV backend.
func New(kv core.KV, opts ...Option) *Adapter {
	a := &Adapter{kv: kv}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// KV exposes the underlying backend.
func (a *Adapter) KV() core.KV { return a.kv }

// Notes returns the persisted note collection. The first read decodes from
// the backend; later reads serve from cache until it is invalidated. The
// returned slice is a deep copy, safe for callers to mutate.
func (a *Adapter) Notes(ctx context.Context) ([]core.Note, error) {
	a.mu.Lock()
	if a.cached != nil {
		a.hits++
		notes := cloneNotes(a.cached)
		a.mu.Unlock()
		return notes, nil
	}
	a.mu.Unlock()

	notes, err := Get[[]core.Note](ctx, a, KeyNotes)
	if err != nil {
		return nil, fmt.Errorf("load note collection: %w", err)
	}

	a.mu.Lock()
	a.misses++
	a.cached = cloneNotes(notes)
	a.mu.Unlock()
	return notes, nil
}

// SaveNotes atomically replaces the persisted note collection and refreshes
// the cache.
func (a *Adapter) SaveNotes(ctx context.Context, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	if err := Put(ctx, a, KeyNotes, notes); err != nil {
		return fmt.Errorf("persist note collection: %w", err)
	}
	a.mu.Lock()
	a.cached = cloneNotes(notes)
	a.mu.Unlock()
	return nil
}

// ClearCache drops the in-memory note cache. Persisted data is untouched:
// cache-clear is never data-clear.
func (a *Adapter) ClearCache() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cached = nil
	a.invalidations++
	if a.logger != nil {
		a.logger.Debug("note cache cleared")
	}
}

// Backups returns the backup ledger map, empty when none exist yet.
func (a *Adapter) Backups(ctx context.Context) (map[string]core.BackupRecord, error) {
	backups, err := Get[map[string]core.BackupRecord](ctx, a, KeyBackups)
	if err != nil {
		return nil, fmt.Errorf("load backup ledger: %w", err)
	}
	if backups == nil {
		backups = make(map[string]core.BackupRecord)
	}
	return backups, nil
}

// SaveBackups replaces the backup ledger map.
func (a *Adapter) SaveBackups(ctx context.Context, backups map[string]core.BackupRecord) error {
	if err := Put(ctx, a, KeyBackups, backups); err != nil {
		return fmt.Errorf("persist backup ledger: %w", err)
	}
	return nil
}

// Stats returns the app counters, zero-valued when none were recorded yet.
func (a *Adapter) Stats(ctx context.Context) (core.Stats, error) {
	stats, err := Get[core.Stats](ctx, a, KeyStats)
	if err != nil {
		return core.Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}

// SaveStats replaces the app counters.
func (a *Adapter) SaveStats(ctx context.Context, stats core.Stats) error {
	if err := Put(ctx, a, KeyStats, stats); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	return nil
}

// TemplateUsage returns per-template use counts.
func (a *Adapter) TemplateUsage(ctx context.Context) (map[string]int, error) {
	usage, err := Get[map[string]int](ctx, a, KeyTemplateUsage)
	if err != nil {
		return nil, fmt.Errorf("load template usage: %w", err)
	}
	if usage == nil {
		usage = make(map[string]int)
	}
	return usage, nil
}

// IncrementTemplateUsage bumps the counter for one template.
func (a *Adapter) IncrementTemplateUsage(ctx context.Context, templateID string) error {
	usage, err := a.TemplateUsage(ctx)
	if err != nil {
		return err
	}
	usage[templateID]++
	if err := Put(ctx, a, KeyTemplateUsage, usage); err != nil {
		return fmt.Errorf("persist template usage: %w", err)
	}
	return nil
}

// Achievements returns the earned achievement tags.
func (a *Adapter) Achievements(ctx context.Context) ([]string, error) {
	tags, err := Get[[]string](ctx, a, KeyAchievements)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	return tags, nil
}

// AddAchievement records a tag once. Returns true when the tag was newly
// earned, false when it was already present.
func (a *Adapter) AddAchievement(ctx context.Context, tag string) (bool, error) {
	tags, err := a.Achievements(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range tags {
		if existing == tag {
			return false, nil
		}
	}
	tags = append(tags, tag)
	if err := Put(ctx, a, KeyAchievements, tags); err != nil {
		return false, fmt.Errorf("persist achievements: %w", err)
	}
	return true, nil
}

// AutoBackupKeys returns all auto-backup keys sorted ascending, so the
// oldest snapshot comes first.
func (a *Adapter) AutoBackupKeys(ctx context.Context) ([]string, error) {
	keys, err := a.kv.Keys(ctx, AutoBackupPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan auto-backups: %w", err)
	}
	sort.Slice(keys, func(i, j int) bool {
		return autoBackupLess(keys[i], keys[j])
	})
	return keys, nil
}

// autoBackupLess orders auto-backup keys by their numeric epoch suffix;
// plain string order would put auto_backup_999 after auto_backup_1000.
func autoBackupLess(a, b string) bool {
	sa := strings.TrimPrefix(a, AutoBackupPrefix)
	sb := strings.TrimPrefix(b, AutoBackupPrefix)
	if len(sa) != len(sb) {
		return len(sa) < len(sb)
	}
	return sa < sb
}

// DeleteKey removes a raw key, for ledger pruning.
func (a *Adapter) DeleteKey(ctx context.Context, key string) error {
	return a.kv.Delete(ctx, key)
}

func cloneNotes(notes []core.Note) []core.Note {
	out := make([]core.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
