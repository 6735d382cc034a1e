package core

// Category classifies notes. Categories are loaded from configuration and
// are read-only from the engine's perspective.
type Category struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Color     string `json:"color" yaml:"color"`
	Icon      string `json:"icon" yaml:"icon"`
	IsActive  bool   `json:"isActive" yaml:"active"`
	IsDefault bool   `json:"isDefault" yaml:"default"`
	SortOrder int    `json:"sortOrder" yaml:"sort_order"`
}

// Template seeds a new note with a starting title, content and tags.
// Read-only seed data; per-template usage is counted separately.
type Template struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Title     string   `json:"title" yaml:"title"`
	Content   string   `json:"content" yaml:"content"`
	Tags      []string `json:"tags" yaml:"tags"`
	IsActive  bool     `json:"isActive" yaml:"active"`
	IsDefault bool     `json:"isDefault" yaml:"default"`
}

// ActiveCategories filters the catalog down to selectable entries, keeping
// the configured order.
func ActiveCategories(cats []Category) []Category {
	var out []Category
	for _, c := range cats {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// ActiveTemplates filters the catalog down to selectable entries.
func ActiveTemplates(tpls []Template) []Template {
	var out []Template
	for _, t := range tpls {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out
}
