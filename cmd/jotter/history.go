package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
)

var (
	historyJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show a note's edit history",
	Long:  `Show the recorded edits of a note, newest last: when each edit happened and which fields changed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		root, err := resolveVault()
		if err != nil {
			fatal("Not a jotter vault", err)
		}

		app, err := jotter.New(root,
			jotter.WithAdapter(storeName),
			jotter.WithMustExist(true),
			jotter.WithReadOnly(true),
			jotter.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open vault", err)
		}
		defer app.Close()

		notes, err := app.Store.Notes(context.Background())
		if err != nil {
			fatal("Failed to read notes", err)
		}

		for _, note := range notes {
			if note.ID != id {
				continue
			}
			if historyJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(note.EditHistory); err != nil {
					fatal("Failed to encode JSON", err)
				}
				return
			}
			if len(note.EditHistory) == 0 {
				fmt.Println("No edits recorded.")
				return
			}
			for _, rec := range note.EditHistory {
				fmt.Println(rec.Timestamp.Format("2006-01-02 15:04"))
				if len(rec.Changes) == 0 {
					fmt.Println("  (no field changes)")
					continue
				}
				for _, ch := range rec.Changes {
					fmt.Printf("  %s: %q -> %q\n", ch.Field, ch.From, ch.To)
				}
			}
			return
		}

		fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output in JSON format")
}
