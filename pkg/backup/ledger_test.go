package backup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/pkg/adapters/memkv"
	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/store"
)

func TestBackupAppendsRecord(t *testing.T) {
	ctx := context.Background()
	st := store.New(memkv.New())
	ledger := New(st)

	note := core.Note{ID: "n1", Title: "Before delete", Content: "body"}
	backupID, err := ledger.Backup(ctx, note, core.BackupDeletion)
	require.NoError(t, err)
	require.NotEmpty(t, backupID)

	backups, err := st.Backups(ctx)
	require.NoError(t, err)
	record, ok := backups[backupID]
	require.True(t, ok, "record must be stored under the returned id")
	assert.Equal(t, core.BackupDeletion, record.Type)
	assert.Equal(t, "Before delete", record.Note.Title)
	assert.Equal(t, backupID, record.BackupID)

	// Distinct ids per call.
	secondID, err := ledger.Backup(ctx, note, core.BackupEdit)
	require.NoError(t, err)
	assert.NotEqual(t, backupID, secondID)
}

func TestBackupRetentionPrunesOldest(t *testing.T) {
	ctx := context.Background()
	st := store.New(memkv.New())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ledger := New(st, WithRetention(3), WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := ledger.Backup(ctx, core.Note{ID: "n1"}, core.BackupEdit)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	backups, err := st.Backups(ctx)
	require.NoError(t, err)
	assert.Len(t, backups, 3)
	assert.NotContains(t, backups, ids[0], "oldest records are pruned first")
	assert.NotContains(t, backups, ids[1])
	assert.Contains(t, backups, ids[4])
}

func TestBackupUnboundedByDefault(t *testing.T) {
	ctx := context.Background()
	st := store.New(memkv.New())
	ledger := New(st)

	for i := 0; i < 8; i++ {
		_, err := ledger.Backup(ctx, core.Note{ID: "n1"}, core.BackupEdit)
		require.NoError(t, err)
	}

	backups, err := st.Backups(ctx)
	require.NoError(t, err)
	assert.Len(t, backups, 8, "default retention keeps everything")
}

func TestAutoBackupKeepsFiveNewest(t *testing.T) {
	ctx := context.Background()
	st := store.New(memkv.New())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	ledger := New(st, WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))

	require.NoError(t, st.SaveNotes(ctx, []core.Note{{ID: "n1", Title: "kept"}}))

	var keys []string
	for i := 0; i < 7; i++ {
		key, err := ledger.AutoBackup(ctx)
		require.NoError(t, err)
		keys = append(keys, key)
	}

	remaining, err := st.AutoBackupKeys(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 5)
	assert.Equal(t, keys[2:], remaining, "the five newest snapshots survive, oldest removed first")

	// The snapshot payload is the full collection.
	snapshot, err := store.Get[[]core.Note](ctx, st, remaining[len(remaining)-1])
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "kept", snapshot[0].Title)
}
