// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/paperlens/internal/search"
	"github.com/meshintel/paperlens/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paperlens/0.1"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search academic APIs for candidate papers",
	Long: `Search queries academic APIs (arXiv, Semantic Scholar) for papers matching
a free-text query, an author, or a publication year range. Results are
deduplicated across sources and ranked by relevance.

Use --json to emit results for piping into 'paperlens fetch'.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text research question")
	searchCmd.Flags().String("author", "", "filter by author name")
	searchCmd.Flags().Int("year-from", 0, "publication year range start")
	searchCmd.Flags().Int("year-to", 0, "publication year range end")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results to return (default 20)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("no-arxiv", false, "disable the arXiv backend")
	searchCmd.Flags().Bool("no-semantic-scholar", false, "disable the Semantic Scholar backend")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, cfg, err := searchInputs(cmd, args)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	backends := searchBackends(cmd, client, cfg)

	out, err := search.Search(context.Background(), query, backends, cfg, os.Stderr)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

// searchInputs merges config file, flags, and positional args into the
// query and stage configuration.
func searchInputs(cmd *cobra.Command, args []string) (search.Query, types.SearchConfig, error) {
	pipelineCfg, err := loadPipelineConfig()
	if err != nil {
		return search.Query{}, types.SearchConfig{}, err
	}
	cfg := pipelineCfg.Search

	freeText, _ := cmd.Flags().GetString("query")
	if freeText == "" && len(args) > 0 {
		freeText = args[0]
	}
	author, _ := cmd.Flags().GetString("author")
	yearFrom, _ := cmd.Flags().GetInt("year-from")
	yearTo, _ := cmd.Flags().GetInt("year-to")

	query := search.Query{
		FreeText: freeText,
		Author:   author,
		YearFrom: yearFrom,
		YearTo:   yearTo,
	}
	if query.IsEmpty() {
		return query, cfg, fmt.Errorf("provide a query, --author, or a year range")
	}

	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		cfg.MaxResults = maxResults
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
	cfg.SemanticScholarAPIKey = secretDefault(
		"semantic-scholar-api-key", "search.semantic_scholar_api_key", cfg.SemanticScholarAPIKey)

	return query, cfg, nil
}

func searchBackends(cmd *cobra.Command, client *http.Client, cfg types.SearchConfig) []search.Backend {
	noArxiv, _ := cmd.Flags().GetBool("no-arxiv")
	noSemantic, _ := cmd.Flags().GetBool("no-semantic-scholar")

	var backends []search.Backend
	if cfg.EnableSemanticScholar && !noSemantic {
		backends = append(backends, &search.SemanticScholarBackend{
			Client: client,
			APIKey: cfg.SemanticScholarAPIKey,
		})
	}
	if cfg.EnableArxiv && !noArxiv {
		backends = append(backends, &search.ArxivBackend{Client: client})
	}
	return backends
}
