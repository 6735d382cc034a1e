package workflow

import (
	"context"
	"testing"

	"github.com/jotterhq/jotter/pkg/adapters/memkv"
	"github.com/jotterhq/jotter/pkg/backup"
	"github.com/jotterhq/jotter/pkg/config"
	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/rules"
	"github.com/jotterhq/jotter/pkg/store"
)

// scriptNotifier replays canned answers and records everything shown.
// Confirms and choices are consumed in call order; running out means
// accept (Confirm) and decline (ChooseOne).
type scriptNotifier struct {
	confirms []bool
	choices  []string // "" declines that choice
	prompts  []string
	messages []string // "severity: message"
}

func (s *scriptNotifier) Confirm(_ context.Context, prompt string) (bool, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.confirms) == 0 {
		return true, nil
	}
	ans := s.confirms[0]
	s.confirms = s.confirms[1:]
	return ans, nil
}

func (s *scriptNotifier) ChooseOne(_ context.Context, prompt string, _ []string) (string, bool, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.choices) == 0 {
		return "", false, nil
	}
	c := s.choices[0]
	s.choices = s.choices[1:]
	if c == "" {
		return "", false, nil
	}
	return c, true, nil
}

func (s *scriptNotifier) Notify(_ context.Context, message string, severity core.Severity) {
	s.messages = append(s.messages, string(severity)+": "+message)
}

// flakyKV fails writes to the notes key a fixed number of times with a
// storage-quota error, then passes through. Drives the recovery paths.
type flakyKV struct {
	core.KV
	failSets int
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if key == store.KeyNotes && f.failSets > 0 {
		f.failSets--
		return core.ErrStoreFull
	}
	return f.KV.Set(ctx, key, value)
}

type testRig struct {
	engine  *Engine
	store   *store.Adapter
	catalog *config.Catalog
}

type rigConfig struct {
	kv        core.KV
	catalog   *config.Catalog
	ruleOpts  []rules.Option
	engOpts   []Option
	retention []backup.Option
}

func newRig(t *testing.T, cfg rigConfig) testRig {
	t.Helper()
	kv := cfg.kv
	if kv == nil {
		kv = memkv.New()
	}
	cat := cfg.catalog
	if cat == nil {
		cat = config.Default()
	}
	st := store.New(kv)
	rl := rules.New(st, cat.Categories, cfg.ruleOpts...)
	lg := backup.New(st, cfg.retention...)
	return testRig{
		engine:  New(st, rl, lg, cat, cfg.engOpts...),
		store:   st,
		catalog: cat,
	}
}

// seedNote writes a note straight into the collection, bypassing the
// create workflow.
func seedNote(t *testing.T, st *store.Adapter, note core.Note) {
	t.Helper()
	ctx := context.Background()
	notes, err := st.Notes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SaveNotes(ctx, append(notes, note)); err != nil {
		t.Fatal(err)
	}
}

// validParams pre-supplies both selections so no prompt fires.
func validParams(title string) CreateParams {
	return CreateParams{
		Title:      title,
		Content:    "some content",
		Category:   "personal",
		TemplateID: "blank",
		Priority:   core.PriorityMedium,
	}
}
