package core

import (
	"errors"
	"strings"
)

// ErrorCategory buckets an error for user-facing reporting.
type ErrorCategory string

const (
	CategoryNetwork    ErrorCategory = "network"
	CategoryStorage    ErrorCategory = "storage"
	CategoryPermission ErrorCategory = "permission"
	CategoryAudio      ErrorCategory = "audio"
	CategoryFile       ErrorCategory = "file"
	CategoryValidation ErrorCategory = "validation"
	CategoryUnknown    ErrorCategory = "unknown"
)

// classifier rules are evaluated strictly in order; the first match wins.
// Later categories are shadowed by earlier ones on overlapping keywords, so
// the order must stay Network > Storage > Permission > Audio > File >
// Validation.
var classifyRules = []struct {
	category  ErrorCategory
	sentinels []error
	keywords  []string
}{
	{CategoryNetwork, nil,
		[]string{"network", "fetch", "connection", "offline", "timeout"}},
	{CategoryStorage, []error{ErrStoreFull, ErrKeyNotFound, ErrNoteNotFound},
		[]string{"storage", "quota", "disk", "space"}},
	{CategoryPermission, []error{ErrReadOnly, ErrProtected},
		[]string{"permission", "denied", "forbidden", "unauthorized"}},
	{CategoryAudio, nil,
		[]string{"audio", "microphone", "recording", "playback"}},
	{CategoryFile, nil,
		[]string{"file", "import", "export", "upload", "download"}},
	{CategoryValidation, []error{ErrValidation},
		[]string{"validation", "invalid", "required", "exceeds"}},
}

// Classify assigns an error to a category by sentinel identity and by
// scanning the error text for category-indicative substrings.
func Classify(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}
	msg := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		for _, s := range rule.sentinels {
			if errors.Is(err, s) {
				return rule.category
			}
		}
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.category
			}
		}
	}
	return CategoryUnknown
}

// Diagnosis is the user-facing view of a failure. Message and Actions are
// generic per category; Detail carries the raw error text and is only shown
// on explicit request.
type Diagnosis struct {
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
	Actions  []string      `json:"actions"`
	Detail   string        `json:"detail"`
}

var categoryMessages = map[ErrorCategory]string{
	CategoryNetwork:    "A network problem interrupted the operation.",
	CategoryStorage:    "The local store could not complete the operation.",
	CategoryPermission: "The operation is not permitted.",
	CategoryAudio:      "The audio recording could not be processed.",
	CategoryFile:       "The file could not be processed.",
	CategoryValidation: "The note has invalid or missing fields.",
	CategoryUnknown:    "Something went wrong.",
}

var categoryActions = map[ErrorCategory][]string{
	CategoryNetwork:    {"Check your connection", "Try again"},
	CategoryStorage:    {"Clear the cache", "Export your notes", "Free up space"},
	CategoryPermission: {"Check store permissions", "Reopen without read-only mode"},
	CategoryAudio:      {"Re-record the audio", "Save the note without audio"},
	CategoryFile:       {"Check the file format and size", "Try a different file"},
	CategoryValidation: {"Fix the highlighted fields", "Shorten long values"},
	CategoryUnknown:    {"Try again", "Restart the session"},
}

// Diagnose classifies err and pairs it with the category's generic message
// and suggested actions.
func Diagnose(err error) Diagnosis {
	cat := Classify(err)
	d := Diagnosis{
		Category: cat,
		Message:  categoryMessages[cat],
		Actions:  categoryActions[cat],
	}
	if err != nil {
		d.Detail = err.Error()
	}
	return d
}
