package store

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/jotterhq/jotter/pkg/core"
)

// StartInvalidation subscribes to backend change events and drops the note
// cache whenever the collection key changes underneath us (another process
// writing the same vault). No-op error when the backend cannot watch.
func (a *Adapter) StartInvalidation(ctx context.Context) error {
	w, ok := a.kv.(core.Watchable)
	if !ok {
		return fmt.Errorf("backend does not support watching")
	}

	events, err := w.Watch(ctx, KeyNotes)
	if err != nil {
		return fmt.Errorf("subscribe for invalidation: %w", err)
	}

	a.mu.Lock()
	a.watching = true
	a.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer func() {
			a.mu.Lock()
			a.watching = false
			a.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if a.logger != nil {
					a.logger.Debug("external change, invalidating cache",
						"key", event.Key, "type", string(event.Type))
				}
				a.ClearCache()
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if a.logger != nil {
			a.logger.Error("cache invalidation worker panic", "error", err)
		}
	}))

	return nil
}
