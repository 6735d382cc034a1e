// Package workflow implements the note lifecycle orchestrator: create, edit,
// delete, export and import, each run as a linear step sequence that
// finalizes an in-memory record before returning. Declined prompts resolve
// as cancelled outcomes, never as errors.
package workflow

import (
	"sync"
	"time"
)

// Operation types stamped on records.
const (
	OpCreate       = "create"
	OpEditStart    = "edit_start"
	OpEditComplete = "edit_complete"
	OpDelete       = "delete"
	OpExport       = "export"
	OpImport       = "import"
)

// Status is the terminal disposition of a workflow run.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
	StatusCancelled Status = "cancelled"
)

// Step result tokens beyond plain success.
const (
	resultOK            = "success"
	resultSkipped       = "skipped"
	resultNoneAvailable = "none_available"
	resultCancelled     = "cancelled"
	resultFailed        = "failed"
)

// StepResult is one executed step and its outcome token.
type StepResult struct {
	Step   string `json:"step"`
	Result string `json:"result"`
}

// Record traces one workflow run. Records live only in the engine's bounded
// in-memory history; they are never persisted.
type Record struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
	Steps     []StepResult  `json:"steps"`
	Status    Status        `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Err       string        `json:"error,omitempty"`
}

// Outcome is the discriminant every workflow returns. A cancelled run has
// Success=false and a Reason; callers must check it rather than relying on
// the error value alone.
type Outcome struct {
	Success bool
	Reason  string
	Record  Record
}

// historyLimit bounds the record ring; the oldest entry is evicted first.
const historyLimit = 50

type history struct {
	mu      sync.Mutex
	records []Record
}

func (h *history) add(rec Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	if len(h.records) > historyLimit {
		h.records = append(h.records[:0], h.records[len(h.records)-historyLimit:]...)
	}
}

func (h *history) snapshot() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

func (h *history) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
