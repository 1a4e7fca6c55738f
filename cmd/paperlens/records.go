// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/paperlens/internal/store"
	"github.com/meshintel/paperlens/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Query and export stored document records",
	Long: `Records reads the SQLite record store written by 'paperlens process'.
Use subcommands to search full text, list stored records, inspect pairwise
comparisons, or export the store to JSON and CSV.`,
}

// --- query subcommand ---

var recordsQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Full-text search over stored documents",
	Long: `Query searches stored document text with FTS5 and prints matching
records with a snippet around the match, ranked by relevance.`,
	RunE: runRecordsQuery,
}

func runRecordsQuery(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results, err := s.Query(context.Background(), query, limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeIndentedJSON(os.Stdout, results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for i, r := range results {
		title := r.Sections.Get(types.SectionTitle)
		if title == "" {
			title = r.Document.ID
		}
		fmt.Fprintf(os.Stdout, "%d. %s [%s]\n   %s\n", i+1, title, r.Document.ID, r.Snippet)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- list subcommand ---

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored document records",
	RunE:  runRecordsList,
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Records(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeIndentedJSON(os.Stdout, records)
	}

	if len(records) == 0 {
		fmt.Println("No records stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-8s  %-10s  %-6s  %s\n",
		"ID", "Chars", "Status", "Valid", "Keywords")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, rec := range records {
		keywords := rec.Keywords.Terms()
		if len(keywords) > 5 {
			keywords = keywords[:5]
		}
		id := rec.Document.ID
		if len(id) > 30 {
			id = id[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-8d  %-10s  %-6t  %s\n",
			id, rec.Document.TotalChars, rec.Status, rec.Validation.Passed,
			strings.Join(keywords, ", "))
	}
	fmt.Fprintf(os.Stdout, "\n%d records\n", len(records))
	return nil
}

// --- compare subcommand ---

var recordsCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Show pairwise document similarities from the latest run",
	RunE:  runRecordsCompare,
}

func runRecordsCompare(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	comparisons, err := s.Comparisons(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeIndentedJSON(os.Stdout, comparisons)
	}

	if len(comparisons) == 0 {
		fmt.Println("No comparisons stored. Runs with fewer than two qualifying abstracts produce none.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-30s  %-8s  %s\n", "Paper A", "Paper B", "Cosine", "Overlap")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, c := range comparisons {
		fmt.Fprintf(os.Stdout, "%-30s  %-30s  %-8.3f  %.3f\n",
			c.IDA, c.IDB, c.CosineSimilarity, c.KeywordOverlap)
	}
	fmt.Fprintf(os.Stdout, "\n%d pairs\n", len(comparisons))
	return nil
}

// --- export subcommand ---

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the record store to JSON and CSV",
	Long: `Export writes data/export/records.json plus summary.csv and
similarity.csv under the data directory.`,
	RunE: runRecordsExport,
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		if err := s.ExportJSON(ctx); err != nil {
			return err
		}
	case "csv":
		if err := s.ExportCSV(ctx); err != nil {
			return err
		}
	case "all", "":
		if err := s.ExportJSON(ctx); err != nil {
			return err
		}
		if err := s.ExportCSV(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use json, csv, or all", format)
	}

	fmt.Println("Export complete.")
	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return nil, err
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = "data"
	}
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		cfg.Store.MaxResults = maxResults
	}
	return store.NewStore(cfg.Store)
}

func writeIndentedJSON(w *os.File, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	recordsCmd.PersistentFlags().String("data-dir", "", "base directory for pipeline output (default \"data\")")
	recordsCmd.PersistentFlags().Int("max-results", 0, "maximum number of query results (default 20)")
	recordsCmd.PersistentFlags().Bool("json", false, "output as JSON")

	recordsQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	recordsExportCmd.Flags().String("format", "all", "export format: json, csv, or all")

	recordsCmd.AddCommand(recordsQueryCmd)
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsCompareCmd)
	recordsCmd.AddCommand(recordsExportCmd)

	rootCmd.AddCommand(recordsCmd)
}
