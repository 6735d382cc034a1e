package core

import (
	"testing"
	"time"
)

func TestNoteClone(t *testing.T) {
	orig := Note{
		ID:      "n1",
		Title:   "Original",
		Content: "body",
		Tags:    []string{"a", "b"},
		EditHistory: []EditRecord{
			{Timestamp: time.Now(), Changes: []FieldChange{{Field: "title", From: "x", To: "Original"}}},
		},
	}

	clone := orig.Clone()
	clone.Tags[0] = "mutated"
	clone.EditHistory[0].Changes[0].Field = "mutated"

	if orig.Tags[0] != "a" {
		t.Error("clone shares the tags slice with the original")
	}
	if orig.EditHistory[0].Changes[0].Field != "title" {
		t.Error("clone shares edit history with the original")
	}
}

func TestNoteCharacterCount(t *testing.T) {
	n := Note{Content: "héllo"}
	if got := n.CharacterCount(); got != 5 {
		t.Errorf("CharacterCount = %d, want 5 (runes, not bytes)", got)
	}
}

func TestNoteHasAudio(t *testing.T) {
	if (Note{}).HasAudio() {
		t.Error("empty audio should report false")
	}
	if !(Note{Audio: "AAAA"}).HasAudio() {
		t.Error("non-empty audio should report true")
	}
}

func TestActiveFilters(t *testing.T) {
	cats := []Category{
		{ID: "work", IsActive: true},
		{ID: "old", IsActive: false},
		{ID: "home", IsActive: true},
	}
	active := ActiveCategories(cats)
	if len(active) != 2 || active[0].ID != "work" || active[1].ID != "home" {
		t.Errorf("ActiveCategories kept %v, want work and home in order", active)
	}

	tpls := []Template{
		{ID: "meeting", IsActive: true},
		{ID: "retired", IsActive: false},
	}
	if got := ActiveTemplates(tpls); len(got) != 1 || got[0].ID != "meeting" {
		t.Errorf("ActiveTemplates kept %v, want only meeting", got)
	}
}
