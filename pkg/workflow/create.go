package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/rules"
)

const cancelCreate = "User cancelled creation"

// CreateParams seeds a create run. Empty Category and TemplateID are
// resolved interactively through the notifier, or from catalog defaults
// when the engine has none.
type CreateParams struct {
	Title      string
	Content    string
	Category   string
	TemplateID string
	Tags       []string
	Priority   core.Priority
	IsPublic   bool
	Audio      []byte
}

// CreateResult reports a create run. Note is only meaningful on success.
type CreateResult struct {
	Outcome
	Note core.Note
}

// Create runs the creation workflow: select-template, select-category,
// assemble, validate, persist, post-create side effects.
func (e *Engine) Create(ctx context.Context, params CreateParams) (CreateResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.begin(OpCreate)

	// select-template
	tpl, outcome, ok, err := e.selectTemplate(ctx, r, params.TemplateID)
	if err != nil {
		o, ferr := e.fail(ctx, r, "select-template", err)
		return CreateResult{Outcome: o}, ferr
	}
	if !ok {
		return CreateResult{Outcome: outcome}, nil
	}

	// select-category
	categoryID, outcome, ok, err := e.selectCategory(ctx, r, params.Category)
	if err != nil {
		o, ferr := e.fail(ctx, r, "select-category", err)
		return CreateResult{Outcome: o}, ferr
	}
	if !ok {
		return CreateResult{Outcome: outcome}, nil
	}

	// assemble: explicit params win, template seeds fill the gaps
	now := e.now()
	note := core.Note{
		ID:           e.newID(),
		Title:        params.Title,
		Content:      params.Content,
		Category:     categoryID,
		Tags:         append([]string(nil), params.Tags...),
		Priority:     params.Priority,
		IsPublic:     params.IsPublic,
		CreatedAt:    now,
		LastModified: now,
	}
	if note.Title == "" {
		note.Title = tpl.Title
	}
	if note.Content == "" {
		note.Content = tpl.Content
	}
	if len(note.Tags) == 0 && len(tpl.Tags) > 0 {
		note.Tags = append([]string(nil), tpl.Tags...)
	}
	if note.Priority == "" {
		note.Priority = core.PriorityMedium
	}
	if len(params.Audio) > 0 {
		note.Audio = e.encodeAudio(params.Audio)
	}
	r.step("assemble", resultOK)

	// validate
	res, err := e.rules.Check(ctx, note)
	if err != nil {
		o, ferr := e.fail(ctx, r, "validate", err)
		return CreateResult{Outcome: o}, ferr
	}
	if len(res.Warnings) > 0 {
		e.notify(ctx, issueText(res.Warnings), core.SeverityWarning)
	}
	if !res.Valid {
		o, ferr := e.fail(ctx, r, "validate", res.Err())
		return CreateResult{Outcome: o}, ferr
	}
	r.step("validate", resultOK)

	// persist-append
	notes, err := e.store.Notes(ctx)
	if err != nil {
		o, ferr := e.fail(ctx, r, "persist", err)
		return CreateResult{Outcome: o}, ferr
	}
	cancelled, err := e.saveCollection(ctx, append(notes, note))
	if err != nil {
		o, ferr := e.fail(ctx, r, "persist", err)
		return CreateResult{Outcome: o}, ferr
	}
	if cancelled {
		return CreateResult{Outcome: e.cancel(ctx, r, cancelCreate)}, nil
	}
	r.step("persist", resultOK)

	// post-create side effects
	e.notify(ctx, "Note created: "+note.Title, core.SeveritySuccess)
	withAudio := 0
	if note.HasAudio() {
		withAudio = 1
	}
	if err := e.recordCreated(ctx, 1, withAudio); err != nil {
		o, ferr := e.fail(ctx, r, "post-create", err)
		return CreateResult{Outcome: o}, ferr
	}
	if tpl.ID != "" {
		if err := e.store.IncrementTemplateUsage(ctx, tpl.ID); err != nil {
			o, ferr := e.fail(ctx, r, "post-create", err)
			return CreateResult{Outcome: o}, ferr
		}
	}
	if e.limits.AutoBackup {
		if _, err := e.ledger.AutoBackup(ctx); err != nil {
			o, ferr := e.fail(ctx, r, "post-create", err)
			return CreateResult{Outcome: o}, ferr
		}
	}
	r.step("post-create", resultOK)

	return CreateResult{Outcome: e.succeed(r), Note: note}, nil
}

// selectTemplate resolves the seed template. ok=false with a nil error means
// the run was cancelled and outcome is final. An empty catalog is not an
// error: the step records none_available and the note starts blank.
func (e *Engine) selectTemplate(ctx context.Context, r *run, pre string) (core.Template, Outcome, bool, error) {
	actives := core.ActiveTemplates(e.catalog.Templates)

	if pre != "" {
		for _, t := range actives {
			if t.ID == pre {
				r.step("select-template", resultOK)
				return t, Outcome{}, true, nil
			}
		}
		return core.Template{}, Outcome{}, false, fmt.Errorf("template %q not found or inactive", pre)
	}

	if len(actives) == 0 {
		r.step("select-template", resultNoneAvailable)
		return core.Template{}, Outcome{}, true, nil
	}

	if e.notifier == nil {
		r.step("select-template", resultOK)
		return defaultTemplate(actives), Outcome{}, true, nil
	}

	id, ok, err := e.notifier.ChooseOne(ctx, "Choose a template", templateIDs(actives))
	if err != nil {
		return core.Template{}, Outcome{}, false, err
	}
	if !ok {
		return core.Template{}, e.cancel(ctx, r, cancelCreate), false, nil
	}
	for _, t := range actives {
		if t.ID == id {
			r.step("select-template", resultOK)
			return t, Outcome{}, true, nil
		}
	}
	return core.Template{}, Outcome{}, false, fmt.Errorf("template %q not found or inactive", id)
}

// selectCategory resolves the category id. Zero active categories is fatal:
// no valid note can come out of this run.
func (e *Engine) selectCategory(ctx context.Context, r *run, pre string) (string, Outcome, bool, error) {
	if pre != "" {
		r.step("select-category", resultOK)
		return pre, Outcome{}, true, nil
	}

	actives := core.ActiveCategories(e.catalog.Categories)
	if len(actives) == 0 {
		return "", Outcome{}, false, errors.New("no active categories in the catalog")
	}

	if e.notifier == nil {
		r.step("select-category", resultOK)
		return defaultCategory(actives).ID, Outcome{}, true, nil
	}

	id, ok, err := e.notifier.ChooseOne(ctx, "Choose a category", categoryIDs(actives))
	if err != nil {
		return "", Outcome{}, false, err
	}
	if !ok {
		return "", e.cancel(ctx, r, cancelCreate), false, nil
	}
	r.step("select-category", resultOK)
	return id, Outcome{}, true, nil
}

func defaultTemplate(actives []core.Template) core.Template {
	for _, t := range actives {
		if t.IsDefault {
			return t
		}
	}
	return actives[0]
}

func defaultCategory(actives []core.Category) core.Category {
	for _, c := range actives {
		if c.IsDefault {
			return c
		}
	}
	return actives[0]
}

func templateIDs(tpls []core.Template) []string {
	out := make([]string, len(tpls))
	for i, t := range tpls {
		out[i] = t.ID
	}
	return out
}

func categoryIDs(cats []core.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.ID
	}
	return out
}

func issueText(issues []rules.Issue) string {
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.Message
	}
	return strings.Join(msgs, "; ")
}
