package workflow

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryKeepsNewestFifty(t *testing.T) {
	ctx := context.Background()
	// Spread creations across days so the daily quota never trips.
	clock := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	rig := newRig(t, rigConfig{engOpts: []Option{WithClock(func() time.Time { return clock })}})

	var recordIDs []string
	for i := 0; i < historyLimit+1; i++ {
		res, err := rig.engine.Create(ctx, validParams(fmt.Sprintf("note %d", i)))
		require.NoError(t, err)
		recordIDs = append(recordIDs, res.Record.ID)
		clock = clock.Add(24 * time.Hour)
	}

	got := rig.engine.History()
	require.Len(t, got, historyLimit)
	// Strict FIFO: the very first record fell off, everything else is in order.
	for i, rec := range got {
		assert.Equal(t, recordIDs[i+1], rec.ID)
	}
}

func TestHistoryRecordsCarryTiming(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	rig := newRig(t, rigConfig{engOpts: []Option{WithClock(func() time.Time { return now })}})

	res, err := rig.engine.Create(ctx, validParams("timed"))
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, OpCreate, rec.Type)
	assert.Equal(t, now, rec.StartTime)
	assert.Equal(t, now, rec.EndTime)
	assert.Equal(t, rec.EndTime.Sub(rec.StartTime), rec.Duration)
	assert.NotEmpty(t, rec.ID)
}

func TestHistorySnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	rig := newRig(t, rigConfig{})

	_, err := rig.engine.Create(ctx, validParams("one"))
	require.NoError(t, err)

	snap := rig.engine.History()
	require.Len(t, snap, 1)
	snap[0].ID = "tampered"

	again := rig.engine.History()
	assert.NotEqual(t, "tampered", again[0].ID)
}

func TestStateCountsDispositions(t *testing.T) {
	ctx := context.Background()
	notifier := &scriptNotifier{confirms: []bool{false}}
	rig := newRig(t, rigConfig{engOpts: []Option{WithNotifier(notifier)}})

	// Success.
	res, err := rig.engine.Create(ctx, validParams("ok"))
	require.NoError(t, err)
	noteID := res.Note.ID

	// Error: empty content fails validation.
	bad := validParams("")
	bad.Content = ""
	_, err = rig.engine.Create(ctx, bad)
	require.Error(t, err)

	// Cancelled: decline the delete confirmation.
	_, err = rig.engine.Delete(ctx, noteID)
	require.NoError(t, err)

	state := rig.engine.State().(EngineState)
	assert.Equal(t, 1, state.Succeeded)
	assert.Equal(t, 1, state.Failed)
	assert.Equal(t, 1, state.Cancelled)
	assert.Equal(t, 3, state.HistorySize)
	assert.Equal(t, "workflow", rig.engine.ComponentType())
}

func TestRecordMarksFailedStep(t *testing.T) {
	ctx := context.Background()
	rig := newRig(t, rigConfig{})

	bad := validParams("broken")
	bad.Content = strings.Repeat("x", 50001)
	res, err := rig.engine.Create(ctx, bad)
	require.Error(t, err)
	assert.Equal(t, StatusError, res.Record.Status)

	last := res.Record.Steps[len(res.Record.Steps)-1]
	assert.Equal(t, "validate", last.Step)
	assert.Equal(t, resultFailed, last.Result)
	assert.NotEmpty(t, res.Record.Err)
}
