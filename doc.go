// Package jotter is the Composition Root for the jotter application.
//
// It connects the note lifecycle engine (Domain Layer) with the storage
// backends (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// jotter is a local-first note engine for toolmakers. It treats a personal
// note collection as a small transactional database with guided workflows
// on top: creation, editing, deletion, export and import each run as an
// explicit step sequence with validation, backups and recovery choices.
// The core is storage-agnostic; backends plug in behind a string-keyed KV
// contract.
//
// Features:
//
//   - **Hexagonal Architecture**: the engine is isolated from persistence details.
//   - **Guided Workflows**: every mutation runs a recorded step sequence;
//     declining a prompt cancels cleanly, it never errors.
//   - **Safety Nets**: pre-edit and pre-deletion snapshots, rolling
//     auto-backups, protected notes, storage-quota recovery choices.
//   - **Validation**: field rules, soft tag warnings and business rules
//     (active category, daily creation quota) in one pass.
//   - **Portable Data**: JSON, CSV and plain-text export; JSON and
//     heuristic text import.
//   - **Default Adapter (file)**: one JSON file per key with atomic writes
//     and watch-driven cache invalidation; Badger and in-memory backends
//     included.
//
// Usage:
//
//	// Assemble an app with functional options
//	app, err := jotter.New("./notes",
//		jotter.WithAdapter(jotter.AdapterFile),
//		jotter.WithLogger(logger),
//	)
//
//	// Create a note
//	res, err := app.Engine.Create(ctx, workflow.CreateParams{
//		Title:   "groceries",
//		Content: "milk, eggs",
//	})
package jotter
