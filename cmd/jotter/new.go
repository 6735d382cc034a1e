package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/core"
	"github.com/jotterhq/jotter/pkg/workflow"
)

var (
	newTitle    string
	newContent  string
	newCategory string
	newTemplate string
	newTags     []string
	newPriority string
	newPublic   bool
	newAudio    string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long: `Create a note through the full workflow: template and category
selection, validation, persistence and an automatic backup. Prints the new
note's ID on success.`,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := resolveVault()
		if err != nil {
			fatal("Not a jotter vault", err)
		}

		ctx := context.Background()
		opts := []jotter.Option{
			jotter.WithAdapter(storeName),
			jotter.WithMustExist(true),
			jotter.WithLogger(slog.Default()),
			jotter.WithNotifier(newTerminalNotifier()),
		}

		params := workflow.CreateParams{
			Title:      newTitle,
			Content:    newContent,
			Category:   newCategory,
			TemplateID: newTemplate,
			Tags:       newTags,
			Priority:   core.Priority(newPriority),
			IsPublic:   newPublic,
		}

		if newAudio != "" {
			rec := newFileRecorder(newAudio)
			if err := rec.StartCapture(ctx); err != nil {
				fatal("Failed to attach audio", err)
			}
			payload, err := rec.StopCapture(ctx)
			if err != nil {
				fatal("Failed to attach audio", err)
			}
			slog.Debug("audio attached", "bytes", len(payload), "seconds", rec.EstimateDuration(payload))
			params.Audio = payload
			opts = append(opts, jotter.WithRecorder(rec))
		}

		app, err := jotter.New(root, opts...)
		if err != nil {
			fatal("Failed to open vault", err)
		}
		defer app.Close()

		res, err := app.Engine.Create(ctx, params)
		if err != nil {
			fatal("Failed to create note", err)
		}
		if !res.Success {
			// the notifier already explained the cancellation
			os.Exit(1)
		}

		fmt.Println(res.Note.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Note title")
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Note content")
	newCmd.Flags().StringVar(&newCategory, "category", "", "Category ID (prompts when omitted)")
	newCmd.Flags().StringVar(&newTemplate, "template", "", "Template ID (prompts when omitted)")
	newCmd.Flags().StringSliceVar(&newTags, "tags", nil, "Comma-separated tags")
	newCmd.Flags().StringVar(&newPriority, "priority", "", "Priority: low, medium or high")
	newCmd.Flags().BoolVar(&newPublic, "public", false, "Mark the note public")
	newCmd.Flags().StringVar(&newAudio, "audio", "", "Attach an audio file as the note's recording")
}
