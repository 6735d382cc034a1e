package workflow

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jotterhq/jotter/pkg/backup"
	"github.com/jotterhq/jotter/pkg/config"
	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/rules"
	"github.com/jotterhq/jotter/pkg/store"
)

// Storage-full recovery choices offered when a persist step hits the quota.
const (
	ChoiceClearCache  = "clear_cache"
	ChoiceExportFirst = "export_first"
	ChoiceContinue    = "continue_anyway"
)

// Engine drives the note lifecycle. Mutating operations serialize on an
// internal mutex so the load-mutate-persist sequence never interleaves;
// prompts run inside that window, matching the one-operation-at-a-time
// model of the app.
type Engine struct {
	store    *store.Adapter
	rules    *rules.Engine
	ledger   *backup.Ledger
	catalog  *config.Catalog
	limits   config.Limits
	notifier core.Notifier
	recorder core.Recorder
	logger   *slog.Logger

	mu      sync.Mutex
	history history

	statsMu   sync.Mutex
	completed map[Status]int

	now   func() time.Time
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier attaches the interactive capability. Without one the engine
// runs non-interactively: confirmations pass and selections fall back to
// catalog defaults.
func WithNotifier(n core.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithRecorder attaches the audio capability used to encode captured
// payloads. Without one, payloads are base64-encoded directly.
func WithRecorder(r core.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock overrides the time source, for deterministic records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New assembles the engine over its collaborators. The catalog's limits
// become the engine's operating bounds.
func New(st *store.Adapter, rl *rules.Engine, ledger *backup.Ledger, cat *config.Catalog, opts ...Option) *Engine {
	e := &Engine{
		store:     st,
		rules:     rl,
		ledger:    ledger,
		catalog:   cat,
		limits:    cat.Limits,
		completed: make(map[Status]int),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// History returns a snapshot of the retained workflow records, oldest first.
func (e *Engine) History() []Record {
	return e.history.snapshot()
}

// Catalog exposes the seed data the engine was assembled with.
func (e *Engine) Catalog() *config.Catalog { return e.catalog }

// Store exposes the storage adapter for read paths (listing, stats).
func (e *Engine) Store() *store.Adapter { return e.store }

// --- run bookkeeping ---

type run struct {
	rec Record
}

func (e *Engine) begin(op string) *run {
	return &run{rec: Record{
		ID:        e.newID(),
		Type:      op,
		StartTime: e.now(),
	}}
}

func (r *run) step(name, result string) {
	r.rec.Steps = append(r.rec.Steps, StepResult{Step: name, Result: result})
}

func (e *Engine) finish(r *run, status Status, reason string, err error) Record {
	r.rec.EndTime = e.now()
	r.rec.Duration = r.rec.EndTime.Sub(r.rec.StartTime)
	r.rec.Status = status
	r.rec.Reason = reason
	if err != nil {
		r.rec.Err = err.Error()
	}
	e.history.add(r.rec)

	e.statsMu.Lock()
	e.completed[status]++
	e.statsMu.Unlock()

	if e.logger != nil {
		switch status {
		case StatusError:
			e.logger.Error("workflow failed", "op", r.rec.Type, "error", err, "category", core.Classify(err))
		case StatusCancelled:
			e.logger.Debug("workflow cancelled", "op", r.rec.Type, "reason", reason)
		default:
			e.logger.Debug("workflow completed", "op", r.rec.Type, "duration", r.rec.Duration)
		}
	}
	return r.rec
}

// succeed finalizes a successful run.
func (e *Engine) succeed(r *run) Outcome {
	return Outcome{Success: true, Record: e.finish(r, StatusSuccess, "", nil)}
}

// cancel finalizes a declined run. Cancellations are not errors: the reason
// is surfaced as an informational notice only.
func (e *Engine) cancel(ctx context.Context, r *run, reason string) Outcome {
	r.step("cancel", resultCancelled)
	rec := e.finish(r, StatusCancelled, reason, nil)
	e.notify(ctx, reason, core.SeverityInfo)
	return Outcome{Success: false, Reason: reason, Record: rec}
}

// fail finalizes a failed run and presents the category's generic message
// plus suggested actions to the user. The raw error is kept on the record.
func (e *Engine) fail(ctx context.Context, r *run, step string, err error) (Outcome, error) {
	r.step(step, resultFailed)
	rec := e.finish(r, StatusError, "", err)
	diag := core.Diagnose(err)
	e.notify(ctx, diag.Message, core.SeverityError)
	return Outcome{Success: false, Record: rec}, err
}

// --- capability plumbing ---

func (e *Engine) notify(ctx context.Context, message string, severity core.Severity) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(ctx, message, severity)
}

// confirm asks the notifier; without one the engine is non-interactive and
// confirmations pass.
func (e *Engine) confirm(ctx context.Context, prompt string) (bool, error) {
	if e.notifier == nil {
		return true, nil
	}
	return e.notifier.Confirm(ctx, prompt)
}

// encodeAudio turns a captured payload into its storable text form.
func (e *Engine) encodeAudio(payload []byte) string {
	if e.recorder != nil {
		return e.recorder.Encode(payload)
	}
	return base64.StdEncoding.EncodeToString(payload)
}

// --- persistence helpers ---

// saveCollection persists the collection, recovering from a storage-quota
// condition by offering the user a way out. Returns cancelled=true when the
// user declined the recovery choice.
func (e *Engine) saveCollection(ctx context.Context, notes []core.Note) (cancelled bool, err error) {
	err = e.store.SaveNotes(ctx, notes)
	if err == nil || !errors.Is(err, core.ErrStoreFull) {
		return false, err
	}

	if e.notifier == nil {
		return false, err
	}
	choice, ok, cerr := e.notifier.ChooseOne(ctx, "Storage is full. How do you want to continue?",
		[]string{ChoiceClearCache, ChoiceExportFirst, ChoiceContinue})
	if cerr != nil {
		return false, cerr
	}
	if !ok {
		return true, nil
	}

	switch choice {
	case ChoiceClearCache:
		e.store.ClearCache()
		return false, e.store.SaveNotes(ctx, notes)
	case ChoiceExportFirst:
		return false, fmt.Errorf("storage full: export your notes and free up space, then retry: %w", err)
	case ChoiceContinue:
		return false, e.store.SaveNotes(ctx, notes)
	default:
		return false, err
	}
}

// loadNote finds a note by id in the persisted collection.
func (e *Engine) loadNote(ctx context.Context, id string) ([]core.Note, int, error) {
	notes, err := e.store.Notes(ctx)
	if err != nil {
		return nil, 0, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return notes, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %s", core.ErrNoteNotFound, id)
}

// recordCreated applies the post-creation counters for n new notes (of
// which withAudio carry a recording) and unlocks any achievements crossed.
func (e *Engine) recordCreated(ctx context.Context, added, withAudio int) error {
	stats, err := e.store.Stats(ctx)
	if err != nil {
		return err
	}
	stats.TotalNotesCreated += added
	stats.NotesWithAudio += withAudio
	stats.LastNoteCreated = e.now()
	if err := e.store.SaveStats(ctx, stats); err != nil {
		return err
	}

	if stats.TotalNotesCreated >= 1 {
		if err := e.unlock(ctx, core.AchievementFirstNote); err != nil {
			return err
		}
	}
	if stats.TotalNotesCreated >= 10 {
		if err := e.unlock(ctx, core.AchievementTenNotes); err != nil {
			return err
		}
	}
	if stats.NotesWithAudio >= 1 {
		if err := e.unlock(ctx, core.AchievementFirstAudio); err != nil {
			return err
		}
	}
	return nil
}

// unlock grants an achievement once, announcing it the first time.
func (e *Engine) unlock(ctx context.Context, tag string) error {
	added, err := e.store.AddAchievement(ctx, tag)
	if err != nil {
		return err
	}
	if added {
		e.notify(ctx, "Achievement unlocked: "+tag, core.SeveritySuccess)
	}
	return nil
}
