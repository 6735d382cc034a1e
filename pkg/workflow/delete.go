package workflow

import (
	"context"
	"fmt"

	"github.com/jotterhq/jotter/pkg/core"
)

const (
	cancelDelete    = "User cancelled deletion"
	protectedReason = "Note is protected from deletion"
)

// DeleteResult reports a delete run. BackupID names the deletion backup
// written before removal; it is empty unless the run succeeded.
type DeleteResult struct {
	Outcome
	BackupID string
}

// Delete runs the deletion workflow: load, permission check, interactive
// confirmation, deletion backup, removal. Declining the confirmation
// cancels the run; it is never an error.
func (e *Engine) Delete(ctx context.Context, id string) (DeleteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.begin(OpDelete)

	notes, i, err := e.loadNote(ctx, id)
	if err != nil {
		o, ferr := e.fail(ctx, r, "load", err)
		return DeleteResult{Outcome: o}, ferr
	}
	note := notes[i]
	r.step("load", resultOK)

	if note.IsProtected {
		r.step("permission", resultFailed)
		rec := e.finish(r, StatusError, protectedReason, core.ErrProtected)
		e.notify(ctx, protectedReason, core.SeverityWarning)
		return DeleteResult{Outcome: Outcome{Success: false, Reason: protectedReason, Record: rec}}, core.ErrProtected
	}
	r.step("permission", "allowed")

	ok, err := e.confirm(ctx, fmt.Sprintf("Delete %q? This cannot be undone.", note.Title))
	if err != nil {
		o, ferr := e.fail(ctx, r, "confirm", err)
		return DeleteResult{Outcome: o}, ferr
	}
	if !ok {
		return DeleteResult{Outcome: e.cancel(ctx, r, cancelDelete)}, nil
	}
	r.step("confirm", resultOK)

	backupID, err := e.ledger.Backup(ctx, note, core.BackupDeletion)
	if err != nil {
		o, ferr := e.fail(ctx, r, "backup", err)
		return DeleteResult{Outcome: o}, ferr
	}
	r.step("backup", resultOK)

	remaining := append(notes[:i], notes[i+1:]...)
	if err := e.store.SaveNotes(ctx, remaining); err != nil {
		o, ferr := e.fail(ctx, r, "remove", err)
		return DeleteResult{Outcome: o}, ferr
	}
	r.step("remove", resultOK)

	// The creation counters are monotonic, so deletion only notifies.
	e.notify(ctx, "Note deleted: "+note.Title, core.SeveritySuccess)
	r.step("post-delete", resultOK)

	return DeleteResult{Outcome: e.succeed(r), BackupID: backupID}, nil
}
