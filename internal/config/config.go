// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in
// .papershelf/config.json.
type Config struct {
	PDFRoot       string `json:"pdf_root,omitempty"`       // Default folder for added PDFs
	SidecarDir    string `json:"sidecar_dir,omitempty"`    // Folder scanned for sidecar metadata files
	DefaultFormat string `json:"default_format,omitempty"` // Default export format: text, csv, latex
}

const (
	PapershelfDir = ".papershelf"
	ConfigFile    = "config.json"
	DBFile        = "library.db"
	SidecarDir    = "sidecar"
)

// ValidFormats lists the supported export format values.
var ValidFormats = []string{"text", "csv", "latex"}

// PapershelfPath returns the path to the .papershelf directory from a
// root path.
func PapershelfPath(root string) string {
	return filepath.Join(root, PapershelfDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, PapershelfDir, ConfigFile)
}

// DBPath returns the path to the library database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, PapershelfDir, DBFile)
}

// SidecarPath returns the directory scanned for sidecar files. The repo
// config may point it elsewhere; the default lives under .papershelf/.
func SidecarPath(root string, cfg *Config) string {
	if cfg != nil && cfg.SidecarDir != "" {
		if filepath.IsAbs(cfg.SidecarDir) {
			return cfg.SidecarDir
		}
		return filepath.Join(root, cfg.SidecarDir)
	}
	return filepath.Join(root, PapershelfDir, SidecarDir)
}

// IsRepository checks if the given path contains a papershelf repository.
func IsRepository(root string) bool {
	info, err := os.Stat(PapershelfPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a papershelf
// repository. Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a papershelf repository (no .papershelf directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateFormat checks that the format value is valid.
func ValidateFormat(format string) error {
	if format == "" {
		return nil // Empty defaults to "text"
	}

	for _, valid := range ValidFormats {
		if format == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid default_format: %s (valid: %v)", format, ValidFormats)
}

// ExpandPath expands ~ to the user's home directory. Returns the original
// path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
