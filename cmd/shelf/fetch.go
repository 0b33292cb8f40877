package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tkorva/papershelf/internal/config"
	"github.com/tkorva/papershelf/internal/grobid"
	"github.com/tkorva/papershelf/internal/sidecar"
)

var fetchURL string

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "GROBID service URL (default from GROBID_URL or global config)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <pdf>...",
	Short: "Fetch sidecar metadata from a GROBID service",
	Long: `Fetch sidecar metadata for PDFs from a GROBID service.

Each PDF's header is processed and the parsed metadata is written as a
sidecar JSON file into the repository's sidecar directory, where a
later "shelf add" of the same file will pick it up.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

// FetchResult reports one fetched sidecar file.
type FetchResult struct {
	FileName string `json:"file_name"`
	Sidecar  string `json:"sidecar,omitempty"`
	Error    string `json:"error,omitempty"`
}

func grobidURL() string {
	if fetchURL != "" {
		return fetchURL
	}
	godotenv.Load()
	if url := os.Getenv("GROBID_URL"); url != "" {
		return url
	}
	if global, err := config.LoadGlobalConfig(); err == nil && global.GrobidURL != "" {
		return global.GrobidURL
	}
	return grobid.DefaultBaseURL
}

func runFetch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepo()
	sidecarDir := config.SidecarPath(repoRoot, loadRepoConfig(repoRoot))
	if err := os.MkdirAll(sidecarDir, 0o755); err != nil {
		exitWithError(ExitError, "creating sidecar directory: %v", err)
	}

	ctx := context.Background()
	client := grobid.NewClient(grobidURL())
	if err := client.IsAlive(ctx); err != nil {
		exitWithError(ExitError, "GROBID service unavailable: %v", err)
	}

	var results []FetchResult
	failures := 0
	for _, path := range args {
		res := fetchOne(ctx, client, sidecarDir, path)
		if res.Error != "" {
			failures++
		}
		results = append(results, res)

		if humanOutput {
			if res.Error != "" {
				fmt.Printf("FAIL %s: %s\n", res.FileName, res.Error)
			} else {
				fmt.Printf("ok   %s -> %s\n", res.FileName, res.Sidecar)
			}
		}
	}

	if !humanOutput {
		outputJSON(results)
	}
	if failures == len(args) {
		os.Exit(ExitError)
	}
	return nil
}

func fetchOne(ctx context.Context, client *grobid.Client, sidecarDir, pdfPath string) FetchResult {
	fileName := filepath.Base(pdfPath)
	res := FetchResult{FileName: fileName}

	teiXML, err := client.ProcessHeader(ctx, pdfPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	entry, err := grobid.ParseHeader(fileName, teiXML)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	envelope := struct {
		PDFs []sidecar.Entry `json:"pdfs"`
	}{PDFs: []sidecar.Entry{entry}}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		res.Error = err.Error()
		return res
	}

	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	out := filepath.Join(sidecarDir, base+".json")
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Sidecar = out
	return res
}
