// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/paperlens/internal/fetch"
	"github.com/meshintel/paperlens/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [results.json]",
	Short: "Download PDFs for search results",
	Long: `Fetch downloads the open-access PDFs for a set of search results and
writes a metadata record per paper. The input is the JSON output of
'paperlens search --json', read from the named file or from stdin.

Papers already present under the papers directory are skipped. Results
without a PDF URL get a metadata record with fetch status "no_pdf".`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("papers-dir", "", "base directory for papers (default \"papers\")")
	fetchCmd.Flags().Float64("rate", 0, "downloads per second (default 1)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	results, err := readSearchResults(args)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no search results to fetch")
	}

	pipelineCfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	cfg := pipelineCfg.Fetch

	if papersDir, _ := cmd.Flags().GetString("papers-dir"); papersDir != "" {
		cfg.PapersDir = papersDir
	}
	if cfg.PapersDir == "" {
		cfg.PapersDir = "papers"
	}
	if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
		cfg.DownloadsPerSecond = rate
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	client := &http.Client{Timeout: cfg.Timeout}
	fetcher := fetch.New(client, cfg)

	result := fetcher.FetchBatch(context.Background(), results, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d paper(s) failed to download", result.Failed)
	}
	return nil
}

// readSearchResults decodes 'search --json' output from the named file, or
// from stdin when no file is given.
func readSearchResults(args []string) ([]types.SearchResult, error) {
	in := os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening results file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var results []types.SearchResult
	if err := json.NewDecoder(in).Decode(&results); err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}
	return results, nil
}
