package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jotterhq/jotter/pkg/core"
)

// MaxImportBytes bounds uploaded files.
const MaxImportBytes = 10 << 20 // 10 MB

var importMIMETypes = map[string]bool{
	"application/json": true,
	"text/plain":       true,
	"text/csv":         true,
}

// CheckImport rejects files the import path will not read: oversized
// payloads and content types outside the allow-list.
func CheckImport(name, mime string, size int64) error {
	if size > MaxImportBytes {
		return fmt.Errorf("file %s is too large: %s (limit %s)",
			name, humanize.Bytes(uint64(size)), humanize.Bytes(MaxImportBytes))
	}
	if !importMIMETypes[mime] {
		return fmt.Errorf("unsupported file type %q for %s", mime, name)
	}
	return nil
}

// ParseResult is the outcome of decoding an uploaded file: candidate notes
// plus structural warnings for entries missing a title or content. Warnings
// never block on their own; the caller decides whether to proceed.
type ParseResult struct {
	Notes    []core.Note
	Warnings []string
}

// Parse decodes uploaded bytes into candidate notes. JSON decodes directly,
// accepting either a full export document or a bare note array. Everything
// else goes through the blank-line splitter regardless of the declared
// content type, so a CSV upload is read as freeform text, not as rows.
func Parse(data []byte, mime string) (ParseResult, error) {
	if mime == "application/json" {
		return parseJSON(data)
	}
	return parseText(data), nil
}

func parseJSON(data []byte) (ParseResult, error) {
	var notes []core.Note
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(data, &notes); err != nil {
			return ParseResult{}, fmt.Errorf("invalid json file: %w", err)
		}
	} else {
		var doc struct {
			Notes []core.Note `json:"notes"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return ParseResult{}, fmt.Errorf("invalid json file: %w", err)
		}
		notes = doc.Notes
	}

	res := ParseResult{Notes: notes}
	for i, n := range notes {
		if strings.TrimSpace(n.Title) == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("note %d has no title", i+1))
		}
		if strings.TrimSpace(n.Content) == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("note %d has no content", i+1))
		}
	}
	return res, nil
}

// parseText splits freeform text into notes on blank-line boundaries. The
// first line of each block becomes the title, the remainder the content.
func parseText(data []byte) ParseResult {
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")

	var res ParseResult
	for i, block := range splitBlocks(normalized) {
		lines := strings.SplitN(block, "\n", 2)
		title := strings.TrimSpace(lines[0])
		content := ""
		if len(lines) > 1 {
			content = strings.TrimSpace(lines[1])
		}
		if content == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("note %d has no content", i+1))
		}
		res.Notes = append(res.Notes, core.Note{Title: title, Content: content})
	}
	return res
}

// splitBlocks groups consecutive non-blank lines; runs of blank lines are
// the delimiters. Every returned block has at least one non-blank line.
func splitBlocks(text string) []string {
	var blocks []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}
