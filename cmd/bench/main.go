package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/codec"
	"github.com/jotterhq/jotter/pkg/workflow"
)

// benchCatalog lifts the daily quota and disables auto-backups so the run
// measures the create path itself.
const benchCatalog = `limits:
  max_daily_notes: 0
  auto_backup: false
`

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	store := flag.String("store", jotter.AdapterFile, "Storage backend: file, badger or memory")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "jotter_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	if err := os.WriteFile(filepath.Join(benchDir, "jotter.yaml"), []byte(benchCatalog), 0o644); err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	app, err := jotter.New(benchDir, jotter.WithAdapter(*store), jotter.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	fmt.Printf("Creating %d notes on the %s backend...\n", *count, *store)
	startGen := time.Now()
	for i := 0; i < *count; i++ {
		_, err := app.Engine.Create(ctx, workflow.CreateParams{
			Title:      fmt.Sprintf("Note %d", i),
			Content:    fmt.Sprintf("Benchmark note %d.\nGenerated %s.", i, time.Now().Format("2006-01-02")),
			Category:   "personal",
			TemplateID: "blank",
			Tags:       []string{"benchmark"},
		})
		if err != nil {
			panic(err)
		}
	}
	genElapsed := time.Since(startGen)
	fmt.Printf("Create took: %v (%.0f notes/s)\n", genElapsed, float64(*count)/genElapsed.Seconds())

	// Reopen so the first list pays the full read, not the write-through
	// cache. The memory backend keeps nothing across a reopen, so it only
	// drops its cache.
	if *store == jotter.AdapterMemory {
		app.Store.ClearCache()
	} else {
		app.Close()
		app, err = jotter.New(benchDir, jotter.WithAdapter(*store), jotter.WithLogger(logger), jotter.WithMustExist(true))
		if err != nil {
			panic(err)
		}
	}
	defer app.Close()

	startCold := time.Now()
	notes, err := app.Store.Notes(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Cold list: %d notes in %v\n", len(notes), time.Since(startCold))

	startWarm := time.Now()
	if _, err := app.Store.Notes(ctx); err != nil {
		panic(err)
	}
	fmt.Printf("Warm list (cached): %v\n", time.Since(startWarm))

	startExport := time.Now()
	res, err := app.Engine.Export(ctx, workflow.ExportParams{Format: codec.FormatJSON})
	if err != nil {
		panic(err)
	}
	fmt.Printf("JSON export: %s in %v\n", humanize.Bytes(uint64(len(res.Data))), time.Since(startExport))
}
