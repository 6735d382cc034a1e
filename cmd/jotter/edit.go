package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/core"
)

var (
	editTitle    string
	editContent  string
	editCategory string
	editTags     []string
	editPriority string
	editPublic   bool
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long: `Edit a note in place. Only the fields whose flags are set change;
everything else is preserved. A backup of the pre-edit state is written
before the change lands.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		root, err := resolveVault()
		if err != nil {
			fatal("Not a jotter vault", err)
		}

		app, err := jotter.New(root,
			jotter.WithAdapter(storeName),
			jotter.WithMustExist(true),
			jotter.WithLogger(slog.Default()),
			jotter.WithNotifier(newTerminalNotifier()),
		)
		if err != nil {
			fatal("Failed to open vault", err)
		}
		defer app.Close()

		ctx := context.Background()
		session, err := app.Engine.EditStart(ctx, id)
		if err != nil {
			fatal("Failed to start edit", err)
		}

		note := session.Note
		flags := cmd.Flags()
		if flags.Changed("title") {
			note.Title = editTitle
		}
		if flags.Changed("content") {
			note.Content = editContent
		}
		if flags.Changed("category") {
			note.Category = editCategory
		}
		if flags.Changed("tags") {
			note.Tags = editTags
		}
		if flags.Changed("priority") {
			note.Priority = core.Priority(editPriority)
		}
		if flags.Changed("public") {
			note.IsPublic = editPublic
		}

		res, err := app.Engine.EditComplete(ctx, note)
		if err != nil {
			fatal("Failed to save edit", err)
		}
		if !res.Success {
			os.Exit(1)
		}

		if len(res.Changed) == 0 {
			fmt.Println("No changes.")
			return
		}
		fmt.Printf("Updated %s: %s\n", id, strings.Join(res.Changed, ", "))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringVar(&editCategory, "category", "", "New category ID")
	editCmd.Flags().StringSliceVar(&editTags, "tags", nil, "New comma-separated tags (replaces the old set)")
	editCmd.Flags().StringVar(&editPriority, "priority", "", "New priority: low, medium or high")
	editCmd.Flags().BoolVar(&editPublic, "public", false, "Set the public flag")
}
