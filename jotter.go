package jotter

import (
	"log/slog"

	"github.com/jotterhq/jotter/internal/platform"
	"github.com/jotterhq/jotter/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// App is an assembled jotter instance: the workflow engine over a storage
// adapter, validation rules, backup ledger and the seed catalog.
type App = platform.App

// Backend names accepted by WithAdapter.
const (
	AdapterFile   = platform.AdapterFile
	AdapterBadger = platform.AdapterBadger
	AdapterMemory = platform.AdapterMemory
)

// --- Configuration ---

// Option defines a functional option for configuring jotter.
type Option = platform.Option

// WithLogger sets the logger threaded through every layer.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithKV injects a ready storage backend. The adapter name and path are
// ignored when set.
func WithKV(kv core.KV) Option {
	return platform.WithKV(kv)
}

// WithAdapter selects the storage backend by name: "file" (default),
// "badger" or "memory".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithNotifier attaches the interactive capability. Without one the engine
// runs non-interactively.
func WithNotifier(n core.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithRecorder attaches the audio capability.
func WithRecorder(r core.Recorder) Option {
	return platform.WithRecorder(r)
}

// WithCatalogFile overrides where the category/template catalog is read from.
func WithCatalogFile(path string) Option {
	return platform.WithCatalogFile(path)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode; mutating backend calls return
// core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithQuota bounds the backend's total stored bytes. 0 means unlimited.
func WithQuota(bytes int64) Option {
	return platform.WithQuota(bytes)
}

// WithWatch starts the cache-invalidation subscriber on watchable backends.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// WithForceTemp forces the vault into a temporary directory (useful for
// experiments and tests).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used under `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New assembles a jotter App over the vault at path.
func New(path string, opts ...Option) (*App, error) {
	return platform.New(path, opts...)
}

// Init opens just the storage backend, without assembling the engine.
func Init(path string, opts ...Option) (core.KV, error) {
	return platform.Init(path, opts...)
}

// --- Safety & Utils ---

// ResolveVaultPath determines the actual path for the vault based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return platform.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
