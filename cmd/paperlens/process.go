// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/paperlens/internal/extract"
	"github.com/meshintel/paperlens/internal/pipeline"
	"github.com/meshintel/paperlens/internal/store"
	"github.com/meshintel/paperlens/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the analysis pipeline over downloaded papers",
	Long: `Process extracts text from every PDF under the papers directory, runs the
sanitize, segment, analyze, and validate stages per document, compares
documents pairwise, and saves the run to the record store.

Documents whose text cannot be extracted are recorded as extraction
failures; the run continues with the rest. Use --export to also write
JSON and CSV exports after the run.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().String("papers-dir", "", "base directory for papers (default \"papers\")")
	processCmd.Flags().String("data-dir", "", "base directory for pipeline output (default \"data\")")
	processCmd.Flags().Int("workers", 0, "documents processed concurrently (default 4)")
	processCmd.Flags().Int("max-pages", 0, "pages read per PDF (default 50)")
	processCmd.Flags().Bool("export", false, "write JSON and CSV exports after the run")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}

	papersDir, _ := cmd.Flags().GetString("papers-dir")
	if papersDir == "" {
		papersDir = cfg.Fetch.PapersDir
	}
	if papersDir == "" {
		papersDir = "papers"
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Process.Workers = workers
	}
	if maxPages, _ := cmd.Flags().GetInt("max-pages"); maxPages > 0 {
		cfg.Extract.MaxPages = maxPages
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = "data"
	}

	docs, err := loadDocuments(papersDir, cfg.Extract)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no PDFs found under %s", filepath.Join(papersDir, "raw"))
	}

	ctx := context.Background()

	p := pipeline.New(cfg.Process, os.Stdout)
	run, err := p.Run(ctx, docs)
	if err != nil {
		return err
	}

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveRun(ctx, run.RunID, run.Records, run.Comparisons); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "saved run %s: %d documents, %d comparisons\n",
		run.RunID, len(run.Records), len(run.Comparisons))

	if doExport, _ := cmd.Flags().GetBool("export"); doExport {
		if err := s.ExportJSON(ctx); err != nil {
			return err
		}
		if err := s.ExportCSV(ctx); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "exported records to %s\n", filepath.Join(cfg.Store.DataDir, "export"))
	}

	if run.Summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", run.Summary.ExtractionFailed)
	}
	return nil
}

// loadDocuments extracts text from every PDF under papersDir/raw. A PDF
// that cannot be read yields a document with empty raw text so the
// pipeline records it as an extraction failure instead of aborting the run.
func loadDocuments(papersDir string, cfg types.ExtractConfig) ([]types.Document, error) {
	rawDir := filepath.Join(papersDir, "raw")
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading papers directory: %w", err)
	}

	extractor := extract.New(cfg)

	var docs []types.Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".pdf") {
			continue
		}

		id := strings.TrimSuffix(name, ".pdf")
		text, err := extractor.Text(filepath.Join(rawDir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", name, err)
			text = ""
		}
		docs = append(docs, types.Document{ID: id, RawText: text})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}
