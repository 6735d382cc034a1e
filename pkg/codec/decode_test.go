package codec

import (
	"strings"
	"testing"
	"time"
)

func TestCheckImport(t *testing.T) {
	tests := []struct {
		name    string
		mime    string
		size    int64
		wantErr string
	}{
		{"notes.json", "application/json", 512, ""},
		{"notes.txt", "text/plain", 512, ""},
		{"notes.csv", "text/csv", 512, ""},
		{"huge.json", "application/json", MaxImportBytes + 1, "too large"},
		{"pic.png", "image/png", 512, "unsupported file type"},
	}
	for _, tc := range tests {
		err := CheckImport(tc.name, tc.mime, tc.size)
		if tc.wantErr == "" {
			if err != nil {
				t.Errorf("CheckImport(%s): unexpected error %v", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("CheckImport(%s) = %v, want error containing %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestCheckImportHumanizesSizes(t *testing.T) {
	err := CheckImport("big.json", "application/json", 20<<20)
	if err == nil {
		t.Fatal("expected size error")
	}
	if !strings.Contains(err.Error(), "21 MB") || !strings.Contains(err.Error(), "10 MB") {
		t.Errorf("error should cite human-readable sizes: %v", err)
	}
}

func TestParseJSONExportDocument(t *testing.T) {
	exported, err := Encode(Export{
		Notes:      sampleNotes(),
		ExportedAt: time.Now(),
	}, FormatJSON)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	res, err := Parse(exported, "application/json")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(res.Notes))
	}
	if res.Notes[0].Title != "Groceries" || res.Notes[1].Content != "Discuss rollout" {
		t.Errorf("note fields lost in round trip: %+v", res.Notes)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestParseJSONBareArray(t *testing.T) {
	data := `[{"title":"One","content":"first"},{"title":"Two","content":"second"}]`
	res, err := Parse([]byte(data), "application/json")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Notes) != 2 || res.Notes[1].Title != "Two" {
		t.Errorf("bare array not accepted: %+v", res.Notes)
	}
}

func TestParseJSONStructuralWarnings(t *testing.T) {
	data := `{"notes":[{"title":"","content":"body"},{"title":"ok","content":""}]}`
	res, err := Parse([]byte(data), "application/json")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(res.Notes))
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("got warnings %v, want one per defect", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "note 1 has no title") {
		t.Errorf("warning[0] = %q", res.Warnings[0])
	}
	if !strings.Contains(res.Warnings[1], "note 2 has no content") {
		t.Errorf("warning[1] = %q", res.Warnings[1])
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := Parse([]byte("{not json"), "application/json"); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := Parse([]byte("[broken"), "application/json"); err == nil {
		t.Fatal("expected error for malformed array")
	}
}

func TestParseTextBlocks(t *testing.T) {
	data := "Meeting notes\nAgenda item one\nAgenda item two\n\n\nShopping\r\nMilk and eggs\n"
	res, err := Parse([]byte(data), "text/plain")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Notes) != 2 {
		t.Fatalf("got %d notes, want 2: %+v", len(res.Notes), res.Notes)
	}
	if res.Notes[0].Title != "Meeting notes" {
		t.Errorf("title = %q", res.Notes[0].Title)
	}
	if res.Notes[0].Content != "Agenda item one\nAgenda item two" {
		t.Errorf("multi-line content not preserved: %q", res.Notes[0].Content)
	}
	if res.Notes[1].Title != "Shopping" || res.Notes[1].Content != "Milk and eggs" {
		t.Errorf("CRLF block mangled: %+v", res.Notes[1])
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestParseTextTitleOnlyBlockWarns(t *testing.T) {
	res, err := Parse([]byte("Just a title\n\nSecond\nwith body"), "text/plain")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(res.Notes))
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "note 1 has no content") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

// CSV uploads are not decoded as rows: they fall through to the text
// splitter, so the header line reads as a title.
func TestParseCSVFallsThroughToSplitter(t *testing.T) {
	csv := "ID,Title,Content\n" + `"a1","Groceries","Milk"` + "\n"
	res, err := Parse([]byte(csv), "text/csv")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(res.Notes))
	}
	if res.Notes[0].Title != "ID,Title,Content" {
		t.Errorf("CSV should be read as freeform text, got title %q", res.Notes[0].Title)
	}
}

func TestParseEmptyInput(t *testing.T) {
	res, err := Parse(nil, "text/plain")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Notes) != 0 {
		t.Errorf("empty input should yield no notes, got %+v", res.Notes)
	}
}
