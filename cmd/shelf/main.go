// Package main provides the shelf CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Personal library manager for scholarly PDFs",
	Long: `shelf manages a personal library of scholarly PDF documents.

It derives bibliographic metadata from each document's embedded
properties and text, reconciles it against sidecar metadata files,
and exports curated citation and note bundles in text, delimited, or
LaTeX formats. All commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getRepoRoot returns the starting directory for repository discovery.
func getRepoRoot() (string, int) {
	if root := os.Getenv("PAPERSHELF_ROOT"); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}
