package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/pkg/adapters/memkv"
	"github.com/jotterhq/jotter/pkg/core"
)

func TestNotesRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := New(memkv.New())

	notes, err := a.Notes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes, "fresh store starts with no notes")

	saved := []core.Note{{ID: "n1", Title: "First", Tags: []string{"a"}}}
	require.NoError(t, a.SaveNotes(ctx, saved))

	got, err := a.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "First", got[0].Title)

	// Mutating the returned slice must not corrupt the cache.
	got[0].Title = "mutated"
	got[0].Tags[0] = "mutated"
	again, err := a.Notes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First", again[0].Title)
	assert.Equal(t, "a", again[0].Tags[0])
}

func TestCacheServesStaleUntilCleared(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	a := New(kv)

	require.NoError(t, a.SaveNotes(ctx, []core.Note{{ID: "n1"}}))

	// Bypass the adapter: simulate another writer replacing the collection.
	require.NoError(t, kv.Set(ctx, KeyNotes, []byte(`[{"id":"n1"},{"id":"n2"}]`)))

	cached, err := a.Notes(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1, "cache still serves the old collection")

	a.ClearCache()

	fresh, err := a.Notes(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2, "cleared cache reloads from the backend")
}

func TestClearCacheIsNotDataClear(t *testing.T) {
	ctx := context.Background()
	a := New(memkv.New())

	require.NoError(t, a.SaveNotes(ctx, []core.Note{{ID: "n1"}, {ID: "n2"}}))
	a.ClearCache()

	notes, err := a.Notes(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 2, "persisted data survives a cache clear")
}

func TestAchievementsDedup(t *testing.T) {
	ctx := context.Background()
	a := New(memkv.New())

	added, err := a.AddAchievement(ctx, core.AchievementFirstNote)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = a.AddAchievement(ctx, core.AchievementFirstNote)
	require.NoError(t, err)
	assert.False(t, added, "second grant of the same tag is a no-op")

	tags, err := a.Achievements(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{core.AchievementFirstNote}, tags)
}

func TestTemplateUsageCounts(t *testing.T) {
	ctx := context.Background()
	a := New(memkv.New())

	require.NoError(t, a.IncrementTemplateUsage(ctx, "meeting"))
	require.NoError(t, a.IncrementTemplateUsage(ctx, "meeting"))
	require.NoError(t, a.IncrementTemplateUsage(ctx, "journal"))

	usage, err := a.TemplateUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, usage["meeting"])
	assert.Equal(t, 1, usage["journal"])
}

func TestStatsRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := New(memkv.New())

	stats, err := a.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalNotesCreated)

	stats.TotalNotesCreated = 3
	stats.NotesWithAudio = 1
	stats.LastNoteCreated = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, a.SaveStats(ctx, stats))

	got, err := a.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalNotesCreated)
	assert.Equal(t, 1, got.NotesWithAudio)
	assert.True(t, got.LastNoteCreated.Equal(stats.LastNoteCreated))
}

func TestBackupsRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := New(memkv.New())

	backups, err := a.Backups(ctx)
	require.NoError(t, err)
	assert.Empty(t, backups)

	backups["b1"] = core.BackupRecord{
		BackupID:  "b1",
		Note:      core.Note{ID: "n1", Title: "snapshotted"},
		Timestamp: time.Now().UTC(),
		Type:      core.BackupDeletion,
	}
	require.NoError(t, a.SaveBackups(ctx, backups))

	got, err := a.Backups(ctx)
	require.NoError(t, err)
	require.Contains(t, got, "b1")
	assert.Equal(t, core.BackupDeletion, got["b1"].Type)
	assert.Equal(t, "snapshotted", got["b1"].Note.Title)
}

func TestAutoBackupKeysNumericOrder(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	a := New(kv)

	// String order would sort 999 after 1000; numeric order must not.
	for _, key := range []string{
		AutoBackupPrefix + "1000",
		AutoBackupPrefix + "999",
		AutoBackupPrefix + "1002",
	} {
		require.NoError(t, kv.Set(ctx, key, []byte("[]")))
	}

	keys, err := a.AutoBackupKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		AutoBackupPrefix + "999",
		AutoBackupPrefix + "1000",
		AutoBackupPrefix + "1002",
	}, keys)
}

func TestStartInvalidation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv := memkv.New()
	a := New(kv)
	require.NoError(t, a.StartInvalidation(ctx))

	require.NoError(t, a.SaveNotes(ctx, []core.Note{{ID: "n1"}}))

	// External write to the collection key must eventually invalidate the
	// cache so the next read sees two notes.
	require.NoError(t, kv.Set(ctx, KeyNotes, []byte(`[{"id":"n1"},{"id":"n2"}]`)))

	require.Eventually(t, func() bool {
		notes, err := a.Notes(ctx)
		return err == nil && len(notes) == 2
	}, 2*time.Second, 20*time.Millisecond, "cache was not invalidated by the external write")
}
