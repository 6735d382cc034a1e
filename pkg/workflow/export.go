package workflow

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/jotterhq/jotter/pkg/codec"
	"github.com/jotterhq/jotter/pkg/core"
)

// ExportParams selects what goes into an export. An empty IDs list means
// the whole collection; audio payloads are stripped unless requested.
type ExportParams struct {
	Format            codec.Format
	IDs               []string
	IncludeAudio      bool
	IncludeCategories bool
	IncludeTemplates  bool
}

// ExportResult carries the encoded file. The caller decides where it goes.
type ExportResult struct {
	Outcome
	Filename string
	MIME     string
	Data     []byte
}

// Export runs the export workflow: resolve the subset, strip excluded audio,
// attach optional catalog data, gate on the configured size limit, encode.
func (e *Engine) Export(ctx context.Context, params ExportParams) (ExportResult, error) {
	r := e.begin(OpExport)

	if params.Format == "" {
		params.Format = codec.FormatJSON
	}

	// resolve note subset
	notes, err := e.store.Notes(ctx)
	if err != nil {
		o, ferr := e.fail(ctx, r, "resolve", err)
		return ExportResult{Outcome: o}, ferr
	}
	subset := notes
	if len(params.IDs) > 0 {
		byID := make(map[string]core.Note, len(notes))
		for _, n := range notes {
			byID[n.ID] = n
		}
		subset = make([]core.Note, 0, len(params.IDs))
		for _, id := range params.IDs {
			n, found := byID[id]
			if !found {
				o, ferr := e.fail(ctx, r, "resolve", fmt.Errorf("%w: %s", core.ErrNoteNotFound, id))
				return ExportResult{Outcome: o}, ferr
			}
			subset = append(subset, n)
		}
	}
	r.step("resolve", resultOK)

	if !params.IncludeAudio {
		stripped := make([]core.Note, len(subset))
		for i, n := range subset {
			c := n.Clone()
			c.Audio = ""
			stripped[i] = c
		}
		subset = stripped
		r.step("strip-audio", resultOK)
	} else {
		r.step("strip-audio", resultSkipped)
	}

	stats, err := e.store.Stats(ctx)
	if err != nil {
		o, ferr := e.fail(ctx, r, "attach", err)
		return ExportResult{Outcome: o}, ferr
	}
	exp := codec.Export{Notes: subset, Stats: stats, ExportedAt: e.now()}
	if params.IncludeCategories {
		exp.Categories = e.catalog.Categories
	}
	if params.IncludeTemplates {
		exp.Templates = e.catalog.Templates
	}
	r.step("attach", resultOK)

	// size gate on the intermediate form, before format conversion
	size, err := codec.IntermediateSize(exp)
	if err != nil {
		o, ferr := e.fail(ctx, r, "size-check", err)
		return ExportResult{Outcome: o}, ferr
	}
	if max := e.limits.MaxExportBytes; max > 0 && size > max {
		err := fmt.Errorf("export too large: %s exceeds the %s limit",
			humanize.Bytes(uint64(size)), humanize.Bytes(uint64(max)))
		o, ferr := e.fail(ctx, r, "size-check", err)
		return ExportResult{Outcome: o}, ferr
	}
	r.step("size-check", resultOK)

	data, err := codec.Encode(exp, params.Format)
	if err != nil {
		o, ferr := e.fail(ctx, r, "encode", err)
		return ExportResult{Outcome: o}, ferr
	}
	r.step("encode", resultOK)

	filename := codec.Filename(params.Format, len(subset), e.now())
	r.step("filename", resultOK)

	e.notify(ctx, fmt.Sprintf("Exported %d notes to %s", len(subset), filename), core.SeveritySuccess)

	return ExportResult{
		Outcome:  e.succeed(r),
		Filename: filename,
		MIME:     codec.MIMEType(params.Format),
		Data:     data,
	}, nil
}
