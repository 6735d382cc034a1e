package platform

import (
	"log/slog"

	"github.com/jotterhq/jotter/pkg/core"
)

// Backend names accepted by WithAdapter.
const (
	AdapterFile   = "file"
	AdapterBadger = "badger"
	AdapterMemory = "memory"
)

// options holds the internal configuration for assembling a jotter app.
type options struct {
	kv          core.KV
	logger      *slog.Logger
	notifier    core.Notifier
	recorder    core.Recorder
	adapter     string
	catalogFile string
	mustExist   bool
	readOnly    bool
	quota       int64
	watch       bool
	forceTemp   bool
	devSafety   bool
}

// Option defines a functional option for configuring jotter.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   AdapterFile,
		devSafety: true,
	}
}

// WithLogger sets the logger threaded through every layer.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithKV injects a ready backend (e.g. a mock, or a store shared with
// another component). When set, the adapter name and path are ignored.
func WithKV(kv core.KV) Option {
	return func(o *options) { o.kv = kv }
}

// WithAdapter selects the storage backend by name: "file" (default),
// "badger" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) { o.adapter = name }
}

// WithNotifier attaches the interactive capability. Without one the engine
// runs non-interactively.
func WithNotifier(n core.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithRecorder attaches the audio capability.
func WithRecorder(r core.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithCatalogFile overrides where the category/template catalog is read
// from. By default the vault root's jotter.yaml is used when present.
func WithCatalogFile(path string) Option {
	return func(o *options) { o.catalogFile = path }
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) { o.mustExist = must }
}

// WithReadOnly enables read-only mode: mutating backend calls return
// core.ErrReadOnly and the dev sandbox is bypassed (reading is safe).
func WithReadOnly(enabled bool) Option {
	return func(o *options) { o.readOnly = enabled }
}

// WithQuota bounds the backend's total stored bytes, for backends that
// support it. Workflows surface the quota condition with recovery choices
// instead of failing outright. 0 means unlimited.
func WithQuota(bytes int64) Option {
	return func(o *options) { o.quota = bytes }
}

// WithWatch starts the cache-invalidation subscriber on backends that
// support watching, so external writes to the same vault drop the note
// cache. One-shot commands don't need it; long-lived apps do.
func WithWatch(enabled bool) Option {
	return func(o *options) { o.watch = enabled }
}

// WithForceTemp forces the vault into a temporary directory (useful for
// experiments and tests).
func WithForceTemp(force bool) Option {
	return func(o *options) { o.forceTemp = force }
}

// WithDevSafety controls the sandbox used under `go run`: by default the
// vault is re-rooted into a temporary directory to protect real data.
//
// CAUTION: only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) { o.devSafety = enabled }
}
