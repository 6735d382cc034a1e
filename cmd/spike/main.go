package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jotterhq/jotter/pkg/adapters/filekv"
)

// Spike configuration
const (
	WorkerCount     = 50
	WritesPerWorker = 20
)

func main() {
	log.Println("⚡ Starting spike: concurrent writes vs. watcher")

	tmpDir, err := os.MkdirTemp("", "jotter-spike-*")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	// Cleanup at the end (comment out to inspect a failed run)
	defer os.RemoveAll(tmpDir)

	log.Printf("📂 Working directory: %s", tmpDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := filekv.New(filekv.Config{Path: tmpDir})
	if err := writer.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize writer store: %v", err)
	}
	defer writer.Close()

	// A second store on the same directory plays the "other process" that
	// observes external changes.
	observer := filekv.New(filekv.Config{Path: tmpDir})
	if err := observer.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize observer store: %v", err)
	}
	defer observer.Close()

	events, err := observer.Watch(ctx, "notes")
	if err != nil {
		log.Fatalf("Failed to start watcher: %v", err)
	}

	var observed atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range events {
			observed.Add(1)
		}
	}()

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(WorkerCount)
	for i := 0; i < WorkerCount; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < WritesPerWorker; j++ {
				payload, _ := json.Marshal([]map[string]any{{
					"id":    fmt.Sprintf("worker-%d-%d", id, j),
					"title": fmt.Sprintf("Spike note %d/%d", id, j),
				}})
				if err := writer.Set(ctx, "notes", payload); err != nil {
					log.Printf("[Error] write %d/%d: %v", id, j, err)
					return
				}
			}
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)
	total := WorkerCount * WritesPerWorker

	log.Println("🏁 All writers finished.")
	log.Printf("⏱️  Total time: %v", duration)
	log.Printf("⚡ Throughput: %.2f writes/sec", float64(total)/duration.Seconds())

	// Give the trailing debounce window time to flush, then stop the watcher.
	time.Sleep(500 * time.Millisecond)
	cancel()
	<-done

	// The final value must be one intact payload: concurrent atomic renames
	// may drop intermediate versions but never interleave bytes.
	raw, err := writer.Get(context.Background(), "notes")
	if err != nil {
		log.Fatalf("❌ FAILURE: final read: %v", err)
	}
	var parsed []map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Fatalf("❌ FAILURE: final value is torn: %v\n%s", err, raw)
	}
	log.Printf("✅ SUCCESS: final value intact (%s)", parsed[0]["id"])

	log.Printf("📊 Events observed: %d of %d writes (debounce collapses bursts)", observed.Load(), total)
	if observed.Load() == 0 {
		log.Fatalf("❌ FAILURE: watcher saw nothing")
	}
}
