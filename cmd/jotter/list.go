package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/core"
)

var (
	listJSON     bool
	listCategory string
	listTag      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the vault",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
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
			fatal("Failed to list notes", err)
		}

		var filtered []core.Note
		for _, note := range notes {
			if listCategory != "" && note.Category != listCategory {
				continue
			}
			if listTag != "" && !slices.Contains(note.Tags, listTag) {
				continue
			}
			filtered = append(filtered, note)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range filtered {
			audio := ""
			if note.HasAudio() {
				audio = " [audio]"
			}
			fmt.Printf("%s  %s (%s)%s\n", note.ID, note.Title, note.Category, audio)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter notes by category ID")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter notes by tag")
}
