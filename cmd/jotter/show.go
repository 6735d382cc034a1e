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
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Long:  `Show a note by its ID. Outputs the raw content by default, or the full JSON object with --json.`,
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
			if showJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(note); err != nil {
					fatal("Failed to encode JSON", err)
				}
				return
			}
			fmt.Print(note.Content)
			return
		}

		fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
