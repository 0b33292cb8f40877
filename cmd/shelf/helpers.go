package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/tkorva/papershelf/internal/config"
	"github.com/tkorva/papershelf/internal/sidecar"
	"github.com/tkorva/papershelf/internal/storage"
)

// mustFindRepo locates the enclosing repository or exits.
func mustFindRepo() string {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return repoRoot
}

// openLibrary locates the repository and opens its database, exiting on
// failure. The caller owns closing the returned DB.
func openLibrary() (string, *storage.DB) {
	repoRoot := mustFindRepo()

	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return repoRoot, db
}

// loadRepoConfig reads the repository config, tolerating a missing file.
func loadRepoConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

// loadSidecarEntries reads every sidecar JSON file under the repository's
// sidecar directory in name order. Malformed files are skipped with a
// warning; the rest still apply.
func loadSidecarEntries(repoRoot string) []sidecar.Entry {
	dir := config.SidecarPath(repoRoot, loadRepoConfig(repoRoot))

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)

	entries, errs := sidecar.LoadAll(paths)
	for _, err := range errs {
		outputWarning("%v", err)
	}
	return entries
}
