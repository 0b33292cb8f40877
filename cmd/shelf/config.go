package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkorva/papershelf/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write repository configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show configuration values",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepo()
	cfg := loadRepoConfig(repoRoot)

	if len(args) == 0 {
		if !humanOutput {
			return outputJSON(cfg)
		}
		fmt.Printf("pdf_root = %s\n", cfg.PDFRoot)
		fmt.Printf("sidecar_dir = %s\n", cfg.SidecarDir)
		fmt.Printf("default_format = %s\n", cfg.DefaultFormat)
		return nil
	}

	value, err := configValue(cfg, args[0])
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if humanOutput {
		fmt.Println(value)
	} else {
		outputJSON(map[string]string{args[0]: value})
	}
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys: pdf_root, sidecar_dir, default_format`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepo()
	cfg := loadRepoConfig(repoRoot)

	key, value := args[0], args[1]
	switch key {
	case "pdf_root":
		cfg.PDFRoot = config.ExpandPath(value)
	case "sidecar_dir":
		cfg.SidecarDir = config.ExpandPath(value)
	case "default_format":
		if err := config.ValidateFormat(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.DefaultFormat = value
	default:
		exitWithError(ExitConfigError, "unknown config key: %q", key)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(StatusResponse{Status: "updated", Path: config.ConfigPath(repoRoot)})
	}
	return nil
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "pdf_root":
		return cfg.PDFRoot, nil
	case "sidecar_dir":
		return cfg.SidecarDir, nil
	case "default_format":
		return cfg.DefaultFormat, nil
	}
	return "", fmt.Errorf("unknown config key: %q", key)
}
