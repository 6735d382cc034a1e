package workflow

import (
	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	HistorySize int `json:"history_size"`
	Succeeded   int `json:"succeeded"`
	Failed      int `json:"failed"`
	Cancelled   int `json:"cancelled"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()

	return EngineState{
		HistorySize: e.history.len(),
		Succeeded:   e.completed[StatusSuccess],
		Failed:      e.completed[StatusError],
		Cancelled:   e.completed[StatusCancelled],
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "workflow"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
