package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkorva/papershelf/internal/config"
	"github.com/tkorva/papershelf/internal/storage"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a papershelf repository in the current directory",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitConfigError, "already a papershelf repository: %s", root)
	}

	if err := os.MkdirAll(config.SidecarPath(root, nil), 0755); err != nil {
		exitWithError(ExitError, "creating repository directories: %v", err)
	}

	cfg := &config.Config{}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	// Opening the database creates the schema.
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "creating database: %v", err)
	}
	db.Close()

	if humanOutput {
		fmt.Printf("Initialized papershelf repository in %s\n", config.PapershelfPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.PapershelfPath(root)})
	}
	return nil
}
