// Package config loads the vault catalog: the category and template seed
// data plus engine limits, stored as YAML at the vault root.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jotterhq/jotter/pkg/core"
)

// DefaultFile is the catalog filename looked up inside a vault.
const DefaultFile = "jotter.yaml"

// Catalog bundles the read-only seed data and the tunable limits.
type Catalog struct {
	Categories []core.Category `yaml:"categories"`
	Templates  []core.Template `yaml:"templates"`
	Limits     Limits          `yaml:"limits"`
}

// Limits are the engine knobs. Zero values mean "no bound" for the
// retention and history fields.
type Limits struct {
	MaxDailyNotes    int   `yaml:"max_daily_notes"`
	MaxExportBytes   int64 `yaml:"max_export_bytes"`
	BackupRetention  int   `yaml:"backup_retention"`
	EditHistoryLimit int   `yaml:"edit_history_limit"`
	AutoBackup       bool  `yaml:"auto_backup"`
}

// Default returns the built-in catalog used when a vault carries no file of
// its own.
func Default() *Catalog {
	return &Catalog{
		Categories: []core.Category{
			{ID: "personal", Name: "Personal", Color: "#4caf50", Icon: "🏠", IsActive: true, IsDefault: true, SortOrder: 1},
			{ID: "work", Name: "Work", Color: "#2196f3", Icon: "💼", IsActive: true, SortOrder: 2},
			{ID: "ideas", Name: "Ideas", Color: "#ff9800", Icon: "💡", IsActive: true, SortOrder: 3},
			{ID: "archive", Name: "Archive", Color: "#9e9e9e", Icon: "📦", IsActive: false, SortOrder: 4},
		},
		Templates: []core.Template{
			{ID: "blank", Name: "Blank", IsActive: true, IsDefault: true},
			{ID: "meeting", Name: "Meeting Notes", Title: "Meeting: ", Content: "Attendees:\n\nAgenda:\n\nAction items:\n", Tags: []string{"meeting"}, IsActive: true},
			{ID: "daily", Name: "Daily Log", Title: "Daily log", Content: "Today:\n", Tags: []string{"journal"}, IsActive: true},
		},
		Limits: Limits{
			MaxDailyNotes:  10,
			MaxExportBytes: 5 << 20,
			AutoBackup:     true,
		},
	}
}

// Load reads a catalog file. Fields absent from the file keep their default
// values, so a vault may override only its limits and inherit the built-in
// seed data.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat := Default()
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return cat, nil
}

// WriteDefault writes the built-in catalog to path, giving a fresh vault an
// editable starting point. Existing files are not touched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("catalog already exists: %s", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
