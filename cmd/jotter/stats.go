package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/core"
)

var (
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vault statistics",
	Long:  `Show the vault's lifetime counters, earned achievements and template usage.`,
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

		ctx := context.Background()
		stats, err := app.Store.Stats(ctx)
		if err != nil {
			fatal("Failed to read stats", err)
		}
		achievements, err := app.Store.Achievements(ctx)
		if err != nil {
			fatal("Failed to read achievements", err)
		}
		usage, err := app.Store.TemplateUsage(ctx)
		if err != nil {
			fatal("Failed to read template usage", err)
		}

		if statsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			err := encoder.Encode(struct {
				Stats         core.Stats     `json:"stats"`
				Achievements  []string       `json:"achievements"`
				TemplateUsage map[string]int `json:"templateUsage"`
			}{stats, achievements, usage})
			if err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("Notes created:  %d\n", stats.TotalNotesCreated)
		fmt.Printf("With audio:     %d\n", stats.NotesWithAudio)
		if !stats.LastNoteCreated.IsZero() {
			fmt.Printf("Last created:   %s\n", stats.LastNoteCreated.Format("2006-01-02 15:04"))
		}
		if len(achievements) > 0 {
			fmt.Printf("Achievements:   %s\n", strings.Join(achievements, ", "))
		}
		if len(usage) > 0 {
			ids := make([]string, 0, len(usage))
			for id := range usage {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			fmt.Println("Template usage:")
			for _, id := range ids {
				fmt.Printf("  %s: %d\n", id, usage[id])
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
}
