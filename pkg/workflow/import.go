package workflow

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jotterhq/jotter/pkg/codec"
	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/rules"
)

const cancelImport = "User cancelled import"

// ImportParams is an uploaded file: its name, declared content type and raw
// bytes.
type ImportParams struct {
	Filename string
	MIME     string
	Data     []byte
}

// ImportResult reports per-note counts. Errors lists the notes that were
// rejected during the append phase, one message each.
type ImportResult struct {
	Outcome
	Imported int
	Skipped  int
	Errors   []string
}

// Import runs the import workflow: file constraints, parse, warning review,
// count preview, append. Every imported note gets a new id and fresh
// timestamps so source ids can never collide with the collection.
func (e *Engine) Import(ctx context.Context, params ImportParams) (ImportResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.begin(OpImport)

	if err := codec.CheckImport(params.Filename, params.MIME, int64(len(params.Data))); err != nil {
		o, ferr := e.fail(ctx, r, "constraints", err)
		return ImportResult{Outcome: o}, ferr
	}
	r.step("constraints", resultOK)

	parsed, err := codec.Parse(params.Data, params.MIME)
	if err != nil {
		o, ferr := e.fail(ctx, r, "parse", err)
		return ImportResult{Outcome: o}, ferr
	}
	r.step("parse", resultOK)

	// structural warnings need an explicit go-ahead
	if len(parsed.Warnings) > 0 {
		e.notify(ctx, strings.Join(parsed.Warnings, "; "), core.SeverityWarning)
		ok, cerr := e.confirm(ctx, fmt.Sprintf("%d issues found. Import anyway?", len(parsed.Warnings)))
		if cerr != nil {
			o, ferr := e.fail(ctx, r, "review-warnings", cerr)
			return ImportResult{Outcome: o}, ferr
		}
		if !ok {
			return ImportResult{Outcome: e.cancel(ctx, r, cancelImport)}, nil
		}
		r.step("review-warnings", resultOK)
	} else {
		r.step("review-warnings", resultSkipped)
	}

	// count-based preview
	ok, cerr := e.confirm(ctx, fmt.Sprintf("Import %d notes?", len(parsed.Notes)))
	if cerr != nil {
		o, ferr := e.fail(ctx, r, "preview", cerr)
		return ImportResult{Outcome: o}, ferr
	}
	if !ok {
		return ImportResult{Outcome: e.cancel(ctx, r, cancelImport)}, nil
	}
	r.step("preview", resultOK)

	// append with fresh identity
	notes, err := e.store.Notes(ctx)
	if err != nil {
		o, ferr := e.fail(ctx, r, "append", err)
		return ImportResult{Outcome: o}, ferr
	}

	fallbackCategory := ""
	if actives := core.ActiveCategories(e.catalog.Categories); len(actives) > 0 {
		fallbackCategory = defaultCategory(actives).ID
	}

	now := e.now()
	var result ImportResult
	withAudio := 0
	for idx, in := range parsed.Notes {
		if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Content) == "" {
			result.Skipped++
			continue
		}
		if utf8.RuneCountInString(in.Title) > rules.MaxTitleLength {
			result.Errors = append(result.Errors,
				fmt.Sprintf("note %d: title exceeds %d characters", idx+1, rules.MaxTitleLength))
			continue
		}
		if utf8.RuneCountInString(in.Content) > rules.MaxContentLength {
			result.Errors = append(result.Errors,
				fmt.Sprintf("note %d: content exceeds %d characters", idx+1, rules.MaxContentLength))
			continue
		}

		n := in.Clone()
		n.ID = e.newID()
		n.CreatedAt = now
		n.LastModified = now
		if n.Category == "" {
			n.Category = fallbackCategory
		}
		if n.Priority == "" {
			n.Priority = core.PriorityMedium
		}
		if n.HasAudio() {
			withAudio++
		}
		notes = append(notes, n)
		result.Imported++
	}

	if result.Imported > 0 {
		cancelled, err := e.saveCollection(ctx, notes)
		if err != nil {
			o, ferr := e.fail(ctx, r, "append", err)
			return ImportResult{Outcome: o}, ferr
		}
		if cancelled {
			return ImportResult{Outcome: e.cancel(ctx, r, cancelImport)}, nil
		}
		if err := e.recordCreated(ctx, result.Imported, withAudio); err != nil {
			o, ferr := e.fail(ctx, r, "append", err)
			return ImportResult{Outcome: o}, ferr
		}
		r.step("append", resultOK)
	} else {
		r.step("append", resultSkipped)
	}

	e.notify(ctx, fmt.Sprintf("Imported %d notes from %s", result.Imported, params.Filename), core.SeveritySuccess)
	if len(result.Errors) > 0 {
		e.notify(ctx, fmt.Sprintf("%d notes could not be imported", len(result.Errors)), core.SeverityWarning)
	}
	r.step("report", resultOK)

	result.Outcome = e.succeed(r)
	return result, nil
}
