package core

import (
	"time"
	"unicode/utf8"
)

// Priority ranks a note. The set is closed; validation rejects anything else.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Note is the central entity of the domain.
// It represents a user-authored record of title, content, optional encoded
// audio, and metadata. It is agnostic to the storage backend.
type Note struct {
	ID           string       `json:"id"`
	Title        string       `json:"title" validate:"required,max=200"`
	Content      string       `json:"content" validate:"required,max=50000"`
	Category     string       `json:"category" validate:"required"`
	Tags         []string     `json:"tags"`
	Priority     Priority     `json:"priority" validate:"required,priority"`
	IsPublic     bool         `json:"isPublic"`
	IsProtected  bool         `json:"isProtected"`
	Audio        string       `json:"audio,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastModified time.Time    `json:"lastModified"`
	EditHistory  []EditRecord `json:"editHistory,omitempty"`
}

// EditRecord captures one completed edit. Changes may be empty when an edit
// was confirmed without touching any field.
type EditRecord struct {
	Timestamp time.Time     `json:"timestamp"`
	Changes   []FieldChange `json:"changes"`
}

// FieldChange is a single field transition inside an EditRecord.
// From and To hold display representations, not raw payloads: audio changes
// are recorded as presence flags, tags as their joined form.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// HasAudio reports whether the note carries an encoded recording.
func (n Note) HasAudio() bool {
	return n.Audio != ""
}

// CharacterCount returns the content length in characters (runes).
func (n Note) CharacterCount() int {
	return utf8.RuneCountInString(n.Content)
}

// Clone returns a deep copy. Callers that hand notes out for editing must
// clone first so the stored collection is never aliased.
func (n Note) Clone() Note {
	out := n
	if n.Tags != nil {
		out.Tags = make([]string, len(n.Tags))
		copy(out.Tags, n.Tags)
	}
	if n.EditHistory != nil {
		out.EditHistory = make([]EditRecord, len(n.EditHistory))
		for i, rec := range n.EditHistory {
			cp := rec
			if rec.Changes != nil {
				cp.Changes = make([]FieldChange, len(rec.Changes))
				copy(cp.Changes, rec.Changes)
			}
			out.EditHistory[i] = cp
		}
	}
	return out
}
