package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jotterhq/jotter/pkg/core"
)

// Get loads and decodes one persisted value. An absent key decodes to the
// zero value of T, so callers see an empty collection instead of an error on
// first use.
func Get[T any](ctx context.Context, a *Adapter, key string) (T, error) {
	var out T
	data, err := a.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return out, nil
		}
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// Put encodes and stores one persisted value. Values are written indented so
// file-backed stores stay human-diffable.
func Put[T any](ctx context.Context, a *Adapter, key string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return a.kv.Set(ctx, key, data)
}
