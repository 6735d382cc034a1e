// Package codec serializes the note collection for export and parses
// uploaded files back into candidate notes.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jotterhq/jotter/pkg/core"
)

// Format identifies an export serialization target. The string value doubles
// as the file extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// SchemaVersion is stamped into JSON export metadata so future readers can
// detect layout changes.
const SchemaVersion = "1.0"

const (
	dateLayout  = "2006-01-02"
	stampLayout = "2006-01-02 15:04"
)

// Export is the assembled payload handed to Encode. Categories and Templates
// are optional attachments; Stats feeds the JSON metadata block.
type Export struct {
	Notes      []core.Note
	Categories []core.Category
	Templates  []core.Template
	Stats      core.Stats
	ExportedAt time.Time
}

// Encode converts the payload into the requested format.
func Encode(exp Export, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encodeJSON(exp)
	case FormatCSV:
		return encodeCSV(exp), nil
	case FormatText:
		return encodeText(exp), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Filename synthesizes the canonical download name,
// notes_export_<N>notes_<YYYY-MM-DD>.<ext>.
func Filename(format Format, count int, on time.Time) string {
	return fmt.Sprintf("notes_export_%dnotes_%s.%s", count, on.Format(dateLayout), format)
}

// MIMEType returns the content type served for a format.
func MIMEType(format Format) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatText:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// IntermediateSize reports the size of the export payload as compact JSON.
// The pre-encode size gate measures this intermediate form, not the final
// format's output.
func IntermediateSize(exp Export) (int64, error) {
	data, err := json.Marshal(jsonDocument(exp))
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// --- JSON ---

type jsonMetadata struct {
	ExportedAt        string `json:"exported_at"`
	SchemaVersion     string `json:"schema_version"`
	NoteCount         int    `json:"note_count"`
	TotalNotesCreated int    `json:"total_notes_created"`
	NotesWithAudio    int    `json:"notes_with_audio"`
}

type jsonExport struct {
	Metadata   jsonMetadata    `json:"metadata"`
	Notes      []core.Note     `json:"notes"`
	Categories []core.Category `json:"categories,omitempty"`
	Templates  []core.Template `json:"templates,omitempty"`
}

func jsonDocument(exp Export) jsonExport {
	notes := exp.Notes
	if notes == nil {
		notes = []core.Note{}
	}
	return jsonExport{
		Metadata: jsonMetadata{
			ExportedAt:        exp.ExportedAt.Format(time.RFC3339),
			SchemaVersion:     SchemaVersion,
			NoteCount:         len(exp.Notes),
			TotalNotesCreated: exp.Stats.TotalNotesCreated,
			NotesWithAudio:    exp.Stats.NotesWithAudio,
		},
		Notes:      notes,
		Categories: exp.Categories,
		Templates:  exp.Templates,
	}
}

func encodeJSON(exp Export) ([]byte, error) {
	return json.MarshalIndent(jsonDocument(exp), "", "  ")
}

// --- CSV ---

// csvHeader is the fixed column set. Order is part of the file contract.
var csvHeader = []string{
	"ID", "Title", "Content", "Category", "Priority", "Tags",
	"Has Audio", "Is Public", "Created Date", "Modified Date", "Character Count",
}

func encodeCSV(exp Export) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(csvHeader, ","))
	buf.WriteByte('\n')
	for _, n := range exp.Notes {
		row := []string{
			csvQuote(n.ID),
			csvQuote(n.Title),
			csvQuote(n.Content),
			csvQuote(n.Category),
			csvQuote(string(n.Priority)),
			csvQuote(strings.Join(n.Tags, "; ")),
			yesNo(n.HasAudio()),
			yesNo(n.IsPublic),
			csvQuote(n.CreatedAt.Format(dateLayout)),
			csvQuote(n.LastModified.Format(dateLayout)),
			strconv.Itoa(n.CharacterCount()),
		}
		buf.WriteString(strings.Join(row, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// csvQuote wraps a text field in double quotes, doubling embedded quotes
// (RFC 4180). encoding/csv only quotes fields that need it; this layout
// quotes every text field unconditionally, so the rows are written by hand.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// --- Plain text ---

const (
	textBanner    = "MY NOTES EXPORT"
	textSeparator = "=================================================="
	textRule      = "--------------------------------------------------"
)

func encodeText(exp Export) []byte {
	var buf bytes.Buffer
	buf.WriteString(textBanner + "\n")
	fmt.Fprintf(&buf, "Generated: %s\n", exp.ExportedAt.Format(stampLayout))
	fmt.Fprintf(&buf, "Total notes: %d\n", len(exp.Notes))
	buf.WriteString(textSeparator + "\n\n")
	for i, n := range exp.Notes {
		fmt.Fprintf(&buf, "[%d] %s\n", i+1, n.Title)
		buf.WriteString(textRule + "\n")
		fmt.Fprintf(&buf, "Category: %s\n", n.Category)
		fmt.Fprintf(&buf, "Priority: %s\n", n.Priority)
		fmt.Fprintf(&buf, "Tags: %s\n", strings.Join(n.Tags, "; "))
		fmt.Fprintf(&buf, "Audio: %s\n", yesNo(n.HasAudio()))
		fmt.Fprintf(&buf, "Created: %s\n", n.CreatedAt.Format(stampLayout))
		fmt.Fprintf(&buf, "Modified: %s\n", n.LastModified.Format(stampLayout))
		buf.WriteByte('\n')
		buf.WriteString(n.Content)
		buf.WriteString("\n\n" + textSeparator + "\n\n")
	}
	return buf.Bytes()
}
