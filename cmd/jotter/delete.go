package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note from the vault",
	Long: `Delete permanently removes a note from the vault after an explicit
confirmation. A full backup of the note is written first, so a deletion can
be recovered from the backup store.`,
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

		res, err := app.Engine.Delete(context.Background(), id)
		if err != nil {
			fatal("Failed to delete note", err)
		}
		if !res.Success {
			// declined; the notifier already said so
			os.Exit(1)
		}
		slog.Debug("deletion backed up", "backup", res.BackupID)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
