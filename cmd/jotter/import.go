package main

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/workflow"
)

var (
	importType string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import notes from a file",
	Long: `Import notes from a JSON export or a plain text file. Text files are
split on blank lines, one note per block. Every imported note gets a new ID
and fresh timestamps.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file := args[0]
		root, err := resolveVault()
		if err != nil {
			fatal("Not a jotter vault", err)
		}

		data, err := os.ReadFile(file)
		if err != nil {
			fatal("Failed to read import file", err)
		}

		contentType := importType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(file))
			// strip any charset parameter
			contentType, _, _ = strings.Cut(contentType, ";")
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

		res, err := app.Engine.Import(context.Background(), workflow.ImportParams{
			Filename: filepath.Base(file),
			MIME:     contentType,
			Data:     data,
		})
		if err != nil {
			fatal("Failed to import", err)
		}
		if !res.Success {
			os.Exit(1)
		}

		for _, msg := range res.Errors {
			fmt.Fprintln(os.Stderr, "rejected:", msg)
		}
		fmt.Printf("Imported %d notes (%d skipped, %d rejected)\n", res.Imported, res.Skipped, len(res.Errors))
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importType, "type", "", "Content type override (default: derived from the file extension)")
}
