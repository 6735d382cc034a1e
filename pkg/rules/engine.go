// Package rules implements the validation engine: field-level checks via
// struct tags, soft tag-limit warnings, and business rules that read live
// store state (active categories, daily creation quota). Results are
// computed fresh on every call and must not be cached across operations.
package rules

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/store"
)

// Hard field bounds, mirrored by the validate struct tags on core.Note.
const (
	MaxTitleLength   = 200
	MaxContentLength = 50000
)

// Soft tag limits. Exceeding them warns but never blocks.
const (
	MaxTags      = 10
	MaxTagLength = 30
)

// Issue is a single validation finding.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of one validation pass. Errors and business-rule
// violations force Valid=false; warnings never do.
type Result struct {
	Valid                  bool    `json:"valid"`
	Errors                 []Issue `json:"errors,omitempty"`
	Warnings               []Issue `json:"warnings,omitempty"`
	BusinessRuleViolations []Issue `json:"businessRuleViolations,omitempty"`
}

// Err folds the blocking findings into a single error tagged with
// core.ErrValidation, or nil for a valid result.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	var msgs []string
	for _, issue := range r.Errors {
		msgs = append(msgs, issue.Message)
	}
	for _, issue := range r.BusinessRuleViolations {
		msgs = append(msgs, issue.Message)
	}
	if len(msgs) == 0 {
		msgs = append(msgs, "note is not valid")
	}
	return fmt.Errorf("%w: %s", core.ErrValidation, strings.Join(msgs, "; "))
}

// Engine checks notes against field rules, the category catalog and the
// daily creation quota.
type Engine struct {
	validate   *validator.Validate
	store      *store.Adapter
	categories []core.Category
	maxDaily   int
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDailyNotes bounds creations per calendar day. 0 disables the rule.
func WithMaxDailyNotes(n int) Option {
	return func(e *Engine) { e.maxDaily = n }
}

// WithClock overrides the time source, for quota tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine bound to a store and a category catalog.
func New(st *store.Adapter, categories []core.Category, opts ...Option) *Engine {
	v := validator.New()
	if err := v.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
	// Report issues under json field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	e := &Engine{
		validate:   v,
		store:      st,
		categories: categories,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// validatePriority accepts only the closed Priority set.
func validatePriority(fl validator.FieldLevel) bool {
	switch core.Priority(fl.Field().String()) {
	case core.PriorityLow, core.PriorityMedium, core.PriorityHigh:
		return true
	default:
		return false
	}
}

// Check validates one note. The category lookup and the daily count read
// live store state, so results reflect storage at call time.
func (e *Engine) Check(ctx context.Context, note core.Note) (Result, error) {
	result := Result{Valid: true}

	// Field layer.
	if err := e.validate.Struct(note); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Result{}, fmt.Errorf("field validation: %w", err)
		}
		for _, fe := range verrs {
			result.Errors = append(result.Errors, fieldIssue(fe))
		}
	}

	// Soft tag limits: warnings only.
	if len(note.Tags) > MaxTags {
		result.Warnings = append(result.Warnings, Issue{
			Field:   "tags",
			Message: fmt.Sprintf("more than %d tags; extra tags make notes harder to find", MaxTags),
		})
	}
	for _, tag := range note.Tags {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			result.Warnings = append(result.Warnings, Issue{
				Field:   "tags",
				Message: fmt.Sprintf("tag %q is longer than %d characters", tag, MaxTagLength),
			})
		}
	}

	// Category must resolve against the live active set.
	if note.Category != "" && !e.categoryActive(note.Category) {
		result.Errors = append(result.Errors, Issue{
			Field:   "category",
			Message: fmt.Sprintf("category %q is invalid or inactive", note.Category),
		})
	}

	// Business rule: daily creation quota. Only applies to notes not yet in
	// the collection (their id is absent), i.e. creations.
	if e.maxDaily > 0 {
		violation, err := e.checkDailyQuota(ctx, note)
		if err != nil {
			return Result{}, err
		}
		if violation != nil {
			result.BusinessRuleViolations = append(result.BusinessRuleViolations, *violation)
		}
	}

	result.Valid = len(result.Errors) == 0 && len(result.BusinessRuleViolations) == 0
	return result, nil
}

func fieldIssue(fe validator.FieldError) Issue {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return Issue{Field: field, Message: fmt.Sprintf("%s is required", field)}
	case "max":
		return Issue{Field: field, Message: fmt.Sprintf("%s exceeds %s characters", field, fe.Param())}
	case "priority":
		return Issue{Field: field, Message: "priority must be one of low, medium, high"}
	default:
		return Issue{Field: field, Message: fmt.Sprintf("%s is invalid", field)}
	}
}

func (e *Engine) categoryActive(id string) bool {
	for _, c := range e.categories {
		if c.ID == id && c.IsActive {
			return true
		}
	}
	return false
}

// checkDailyQuota counts today's creations in the live collection.
func (e *Engine) checkDailyQuota(ctx context.Context, note core.Note) (*Issue, error) {
	notes, err := e.store.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily quota lookup: %w", err)
	}

	now := e.now()
	count := 0
	for _, existing := range notes {
		if existing.ID == note.ID {
			// Editing an existing note never re-counts it.
			return nil, nil
		}
		if sameDay(existing.CreatedAt, now) {
			count++
		}
	}

	if count >= e.maxDaily {
		return &Issue{
			Field: "createdAt",
			Message: fmt.Sprintf("daily note limit reached (%d per day); try again tomorrow",
				e.maxDaily),
		}, nil
	}
	return nil, nil
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
