package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jotterhq/jotter/pkg/adapters/badgerkv"
	"github.com/jotterhq/jotter/pkg/adapters/filekv"
	"github.com/jotterhq/jotter/pkg/adapters/memkv"
	"github.com/jotterhq/jotter/pkg/core"
)

// Subdirectories of a vault root, one per path-backed adapter.
const (
	fileStoreDir   = "store"
	badgerStoreDir = "badger"
)

// Init opens the storage backend for the vault at path. The path argument
// is the vault root; each backend keeps its data in its own subdirectory.
//
// It returns the configured core.KV.
func Init(path string, opts ...Option) (core.KV, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initKV(resolveRoot(path, o), o)
}

// initKV opens the backend under an already-resolved vault root.
func initKV(root string, o *options) (core.KV, error) {
	// An injected backend wins over adapter selection.
	if o.kv != nil {
		return o.kv, nil
	}

	switch o.adapter {
	case AdapterFile:
		store := filekv.New(filekv.Config{
			Path:      filepath.Join(root, fileStoreDir),
			MustExist: o.mustExist,
			ReadOnly:  o.readOnly,
			Quota:     o.quota,
			Logger:    o.logger,
		})
		if err := store.Initialize(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	case AdapterBadger:
		return badgerkv.Open(badgerkv.Config{
			Path:     filepath.Join(root, badgerStoreDir),
			ReadOnly: o.readOnly,
			Logger:   o.logger,
		})
	case AdapterMemory:
		var memOpts []memkv.Option
		if o.quota > 0 {
			memOpts = append(memOpts, memkv.WithQuota(o.quota))
		}
		return memkv.New(memOpts...), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// resolveRoot applies the dev sandbox rules to the user-supplied vault path.
func resolveRoot(path string, o *options) string {
	// Read-only runs are inherently safe; an explicit opt-out bypasses too.
	bypassSafety := o.readOnly || !o.devSafety

	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveVaultPath(path, useTemp)

	if IsDevRun() && o.logger != nil {
		if bypassSafety {
			if o.readOnly {
				o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
			} else {
				o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
			}
		} else {
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	if useTemp && o.logger != nil && resolved != path {
		o.logger.Warn("vault re-rooted into temp directory", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}
