package workflow

import (
	"context"
	"slices"
	"strings"

	"github.com/jotterhq/jotter/pkg/core"
)

const cancelEdit = "User cancelled edit"

// EditSession is the result of EditStart: a deep copy for the caller to
// mutate and hand back to EditComplete, plus the id of the pre-edit backup.
type EditSession struct {
	Record   Record
	Note     core.Note
	BackupID string
}

// EditStart prepares a note for editing: load, permission check, pre-edit
// backup. The actual field editing happens outside the engine.
func (e *Engine) EditStart(ctx context.Context, id string) (EditSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.begin(OpEditStart)

	notes, i, err := e.loadNote(ctx, id)
	if err != nil {
		_, ferr := e.fail(ctx, r, "load", err)
		return EditSession{}, ferr
	}
	r.step("load", resultOK)

	// Always permitted today. Hook point for lock or ownership rules.
	r.step("permission", "allowed")

	backupID, err := e.ledger.Backup(ctx, notes[i], core.BackupEdit)
	if err != nil {
		_, ferr := e.fail(ctx, r, "backup", err)
		return EditSession{}, ferr
	}
	r.step("backup", resultOK)

	rec := e.finish(r, StatusSuccess, "", nil)
	return EditSession{Record: rec, Note: notes[i].Clone(), BackupID: backupID}, nil
}

// EditResult reports a completed edit. Changed lists the field names that
// actually differed; an empty list still appends an (empty) history record.
type EditResult struct {
	Outcome
	Note    core.Note
	Changed []string
}

// EditComplete validates the edited copy, diffs it against the stored
// original, merges with a fresh history record and persists in place.
func (e *Engine) EditComplete(ctx context.Context, updated core.Note) (EditResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.begin(OpEditComplete)

	// validate the incoming field values
	res, err := e.rules.Check(ctx, updated)
	if err != nil {
		o, ferr := e.fail(ctx, r, "validate", err)
		return EditResult{Outcome: o}, ferr
	}
	if len(res.Warnings) > 0 {
		e.notify(ctx, issueText(res.Warnings), core.SeverityWarning)
	}
	if !res.Valid {
		o, ferr := e.fail(ctx, r, "validate", res.Err())
		return EditResult{Outcome: o}, ferr
	}
	r.step("validate", resultOK)

	// load the stored original
	notes, i, err := e.loadNote(ctx, updated.ID)
	if err != nil {
		o, ferr := e.fail(ctx, r, "load", err)
		return EditResult{Outcome: o}, ferr
	}
	original := notes[i]
	r.step("load", resultOK)

	changes := diffNotes(original, updated)
	r.step("diff", resultOK)

	// merge: the edited copy becomes the new state, but identity, creation
	// time, protection and history always come from the stored original
	now := e.now()
	base := original.Clone()
	merged := updated.Clone()
	merged.ID = original.ID
	merged.CreatedAt = original.CreatedAt
	merged.IsProtected = original.IsProtected
	merged.EditHistory = append(base.EditHistory, core.EditRecord{Timestamp: now, Changes: changes})
	if limit := e.limits.EditHistoryLimit; limit > 0 && len(merged.EditHistory) > limit {
		merged.EditHistory = merged.EditHistory[len(merged.EditHistory)-limit:]
	}
	merged.LastModified = now
	r.step("merge", resultOK)

	notes[i] = merged
	cancelled, err := e.saveCollection(ctx, notes)
	if err != nil {
		o, ferr := e.fail(ctx, r, "persist", err)
		return EditResult{Outcome: o}, ferr
	}
	if cancelled {
		return EditResult{Outcome: e.cancel(ctx, r, cancelEdit)}, nil
	}
	r.step("persist", resultOK)

	// post-update: summarize what changed; audio gained through an edit
	// still counts toward the monotonic audio counter
	changed := changedFields(changes)
	if len(changed) > 0 {
		e.notify(ctx, "Note updated: "+strings.Join(changed, ", "), core.SeveritySuccess)
	} else {
		e.notify(ctx, "Note saved with no field changes", core.SeverityInfo)
	}
	if !original.HasAudio() && merged.HasAudio() {
		stats, serr := e.store.Stats(ctx)
		if serr != nil {
			o, ferr := e.fail(ctx, r, "post-update", serr)
			return EditResult{Outcome: o}, ferr
		}
		stats.NotesWithAudio++
		if serr := e.store.SaveStats(ctx, stats); serr != nil {
			o, ferr := e.fail(ctx, r, "post-update", serr)
			return EditResult{Outcome: o}, ferr
		}
		if serr := e.unlock(ctx, core.AchievementFirstAudio); serr != nil {
			o, ferr := e.fail(ctx, r, "post-update", serr)
			return EditResult{Outcome: o}, ferr
		}
	}
	r.step("post-update", resultOK)

	return EditResult{Outcome: e.succeed(r), Note: merged, Changed: changed}, nil
}

// diffNotes compares the editable fields. Tags compare by array equality;
// audio compares by presence only.
func diffNotes(prev, next core.Note) []core.FieldChange {
	var changes []core.FieldChange
	str := func(field, from, to string) {
		if from != to {
			changes = append(changes, core.FieldChange{Field: field, From: from, To: to})
		}
	}
	str("title", prev.Title, next.Title)
	str("content", prev.Content, next.Content)
	str("category", prev.Category, next.Category)
	if !slices.Equal(prev.Tags, next.Tags) {
		changes = append(changes, core.FieldChange{
			Field: "tags",
			From:  strings.Join(prev.Tags, ", "),
			To:    strings.Join(next.Tags, ", "),
		})
	}
	str("priority", string(prev.Priority), string(next.Priority))
	if prev.HasAudio() != next.HasAudio() {
		changes = append(changes, core.FieldChange{
			Field: "audio",
			From:  audioFlag(prev),
			To:    audioFlag(next),
		})
	}
	return changes
}

func audioFlag(n core.Note) string {
	if n.HasAudio() {
		return "present"
	}
	return "none"
}

func changedFields(changes []core.FieldChange) []string {
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = c.Field
	}
	return out
}
