package badgerkv

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
	Closed   bool   `json:"closed"`
	LSMSize  int64  `json:"lsm_size"`
	VLogSize int64  `json:"vlog_size"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := StoreState{
		Path:     s.config.Path,
		ReadOnly: s.config.ReadOnly,
		Closed:   s.closed,
	}
	if !s.closed {
		state.LSMSize, state.VLogSize = s.db.Size()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "badgerkv"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
