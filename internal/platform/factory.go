package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jotterhq/jotter/pkg/backup"
	"github.com/jotterhq/jotter/pkg/config"
	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/rules"
	"github.com/jotterhq/jotter/pkg/store"
	"github.com/jotterhq/jotter/pkg/workflow"
)

// App is an assembled jotter instance: the workflow engine over a storage
// adapter, validation rules, backup ledger and the seed catalog. Close it
// when done; path-backed backends hold OS resources.
type App struct {
	Engine  *workflow.Engine
	Store   *store.Adapter
	Catalog *config.Catalog
	Root    string

	kv        core.KV
	stopWatch context.CancelFunc
}

// New assembles an app over the vault at path.
//
//	app, err := jotter.New("./notes", jotter.WithAdapter("file"))
func New(path string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	root := resolveRoot(path, o)

	kv, err := initKV(root, o)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(root, o)
	if err != nil {
		kv.Close()
		return nil, err
	}

	st := store.New(kv, store.WithLogger(o.logger))

	app := &App{
		Store:   st,
		Catalog: catalog,
		Root:    root,
		kv:      kv,
	}

	if o.watch {
		ctx, cancel := context.WithCancel(context.Background())
		if err := st.StartInvalidation(ctx); err != nil {
			cancel()
			kv.Close()
			return nil, err
		}
		app.stopWatch = cancel
	}

	rl := rules.New(st, catalog.Categories,
		rules.WithMaxDailyNotes(catalog.Limits.MaxDailyNotes))
	ledger := backup.New(st,
		backup.WithRetention(catalog.Limits.BackupRetention),
		backup.WithLogger(o.logger))

	engineOpts := []workflow.Option{workflow.WithLogger(o.logger)}
	if o.notifier != nil {
		engineOpts = append(engineOpts, workflow.WithNotifier(o.notifier))
	}
	if o.recorder != nil {
		engineOpts = append(engineOpts, workflow.WithRecorder(o.recorder))
	}
	app.Engine = workflow.New(st, rl, ledger, catalog, engineOpts...)

	return app, nil
}

// Close stops the watch subscriber and releases the backend.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	return a.kv.Close()
}

// loadCatalog reads the vault's catalog file, falling back to the built-in
// seed data when no file exists. An explicit WithCatalogFile path must load.
func loadCatalog(root string, o *options) (*config.Catalog, error) {
	if o.catalogFile != "" {
		return config.Load(o.catalogFile)
	}
	path := filepath.Join(root, config.DefaultFile)
	catalog, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return catalog, err
}
