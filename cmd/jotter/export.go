package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/codec"
	"github.com/jotterhq/jotter/pkg/workflow"
)

var (
	exportFormat     string
	exportOut        string
	exportIDs        []string
	exportAudio      bool
	exportCategories bool
	exportTemplates  bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes to a file",
	Long: `Export the collection (or a subset via --ids) as JSON, CSV or plain
text. Audio payloads are stripped unless --with-audio is given. Use --out -
to write the raw export to stdout.`,
	Args: cobra.NoArgs,
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

		res, err := app.Engine.Export(context.Background(), workflow.ExportParams{
			Format:            codec.Format(exportFormat),
			IDs:               exportIDs,
			IncludeAudio:      exportAudio,
			IncludeCategories: exportCategories,
			IncludeTemplates:  exportTemplates,
		})
		if err != nil {
			fatal("Failed to export", err)
		}

		if exportOut == "-" {
			os.Stdout.Write(res.Data)
			return
		}

		path := exportOut
		if path == "" {
			path = res.Filename
		}
		if err := os.WriteFile(path, res.Data, 0o644); err != nil {
			fatal("Failed to write export", err)
		}

		fmt.Printf("Exported to %s (%s)\n", path, humanize.Bytes(uint64(len(res.Data))))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, csv or txt")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default: generated filename, - for stdout)")
	exportCmd.Flags().StringSliceVar(&exportIDs, "ids", nil, "Export only these note IDs")
	exportCmd.Flags().BoolVar(&exportAudio, "with-audio", false, "Keep audio payloads in the export")
	exportCmd.Flags().BoolVar(&exportCategories, "with-categories", false, "Attach the category catalog")
	exportCmd.Flags().BoolVar(&exportTemplates, "with-templates", false, "Attach the template catalog")
}
