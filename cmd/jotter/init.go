package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jotterhq/jotter"
	"github.com/jotterhq/jotter/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a jotter vault",
	Long: `Initialize a new jotter vault: write the default catalog file and
create the selected storage backend. The catalog file marks the vault root
and can be edited to change categories, templates and limits.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := vaultPath
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			path = cwd
		}
		root := jotter.ResolveVaultPath(path, false)

		if err := os.MkdirAll(root, 0o755); err != nil {
			fatal("Failed to create vault directory", err)
		}
		if err := config.WriteDefault(filepath.Join(root, config.DefaultFile)); err != nil {
			fatal("Failed to initialize vault", err)
		}

		kv, err := jotter.Init(root, jotter.WithAdapter(storeName))
		if err != nil {
			fatal("Failed to initialize store", err)
		}
		kv.Close()

		fmt.Println("Initialized empty jotter vault in", root)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
