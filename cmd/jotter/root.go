package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
)

var (
	verbose   bool
	vaultPath string
	storeName string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jotter",
	Short: "A note vault with guided workflows, backups and audio attachments",
	Long: `Jotter keeps a local vault of notes and drives every change through a
workflow: validation, pre-change backups and explicit confirmation for
anything destructive.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveVault returns the vault root: the --vault flag when given,
// otherwise the nearest directory at or above the working directory that
// holds a catalog file.
func resolveVault() (string, error) {
	if vaultPath != "" {
		return vaultPath, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return jotter.FindVaultRoot(wd)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Vault directory (default: walk up from the working directory)")
	rootCmd.PersistentFlags().StringVar(&storeName, "store", jotter.AdapterFile, "Storage backend: file, badger or memory")
}
