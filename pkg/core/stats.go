package core

import "time"

// Stats holds the monotonically updated app counters. Never reset except by
// an explicit clear of the underlying store.
type Stats struct {
	TotalNotesCreated int       `json:"totalNotesCreated"`
	NotesWithAudio    int       `json:"notesWithAudio"`
	LastNoteCreated   time.Time `json:"lastNoteCreated"`
}

// Achievement tags persisted under the achievements key. Membership is
// deduplicated: earning one twice stores it once.
const (
	AchievementFirstNote  = "first_note"
	AchievementTenNotes   = "ten_notes"
	AchievementFirstAudio = "first_audio"
)
