// Package backup implements the backup/recovery ledger: pre-mutation note
// snapshots keyed by fresh ids, and whole-collection auto-backups with a
// keep-most-recent retention sweep. The ledger is write-only from the
// engine's perspective; restoration stays a manual affair.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/store"
)

// keepAutoBackups is the number of auto-backup snapshots retained; older
// snapshots are deleted on each new one.
const keepAutoBackups = 5

// Ledger owns the backup records in the store.
type Ledger struct {
	store     *store.Adapter
	retention int // per-note backup bound; 0 = unbounded
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRetention bounds how many per-note backup records are kept, pruning
// oldest first. 0 keeps everything.
func WithRetention(n int) Option {
	return func(l *Ledger) { l.retention = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger attaches a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New creates a ledger over the given store.
func New(st *store.Adapter, opts ...Option) *Ledger {
	l := &Ledger{
		store: st,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Backup snapshots one note into the ledger before a destructive mutation
// and returns the new backup id.
func (l *Ledger) Backup(ctx context.Context, note core.Note, typ core.BackupType) (string, error) {
	backups, err := l.store.Backups(ctx)
	if err != nil {
		return "", err
	}

	backupID := uuid.NewString()
	backups[backupID] = core.BackupRecord{
		BackupID:  backupID,
		Note:      note.Clone(),
		Timestamp: l.now(),
		Type:      typ,
	}

	if l.retention > 0 {
		pruneOldest(backups, l.retention)
	}

	if err := l.store.SaveBackups(ctx, backups); err != nil {
		return "", err
	}

	if l.logger != nil {
		l.logger.Debug("backup recorded", "backup_id", backupID, "note_id", note.ID, "type", string(typ))
	}
	return backupID, nil
}

// pruneOldest trims the ledger map down to limit entries by timestamp,
// oldest first.
func pruneOldest(backups map[string]core.BackupRecord, limit int) {
	if len(backups) <= limit {
		return
	}
	ids := make([]string, 0, len(backups))
	for id := range backups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return backups[ids[i]].Timestamp.Before(backups[ids[j]].Timestamp)
	})
	for _, id := range ids[:len(backups)-limit] {
		delete(backups, id)
	}
}

// AutoBackup snapshots the full note collection under a timestamped key and
// deletes all but the most recent snapshots.
func (l *Ledger) AutoBackup(ctx context.Context) (string, error) {
	notes, err := l.store.Notes(ctx)
	if err != nil {
		return "", err
	}

	key := store.AutoBackupPrefix + strconv.FormatInt(l.now().UnixMilli(), 10)
	if err := store.Put(ctx, l.store, key, notes); err != nil {
		return "", fmt.Errorf("write auto-backup: %w", err)
	}

	keys, err := l.store.AutoBackupKeys(ctx)
	if err != nil {
		return "", err
	}
	for len(keys) > keepAutoBackups {
		oldest := keys[0]
		if err := l.store.DeleteKey(ctx, oldest); err != nil {
			return "", fmt.Errorf("prune auto-backup %s: %w", oldest, err)
		}
		if l.logger != nil {
			l.logger.Debug("auto-backup pruned", "key", oldest)
		}
		keys = keys[1:]
	}

	return key, nil
}
