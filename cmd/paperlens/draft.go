// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/paperlens/internal/draft"
	"github.com/meshintel/paperlens/internal/fetch"
	"github.com/meshintel/paperlens/pkg/types"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate and critique draft paper summaries",
	Long: `Draft turns processed document records into reviewable summary drafts,
one per successfully processed paper, grounded in the stored analysis and
the fetched paper metadata. The critique subcommand reviews generated
drafts against readability and completeness heuristics.`,
}

var draftGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate summary drafts from stored records",
	RunE:  runDraftGenerate,
}

func runDraftGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	outputDir := draftOutputDir(cmd, &cfg)
	if keyTerms, _ := cmd.Flags().GetInt("key-terms"); keyTerms > 0 {
		cfg.Draft.KeyTerms = keyTerms
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Records(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records stored: run 'paperlens process' first")
	}

	papersDir, _ := cmd.Flags().GetString("papers-dir")
	if papersDir == "" {
		papersDir = cfg.Fetch.PapersDir
	}
	if papersDir == "" {
		papersDir = "papers"
	}
	papers := loadPaperMetadata(papersDir)

	drafts := draft.Generate(records, papers, cfg.Draft)
	if len(drafts) == 0 {
		return fmt.Errorf("no processed records to draft from")
	}

	path, err := draft.WriteDrafts(drafts, outputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %d draft(s) to %s\n", len(drafts), path)
	return nil
}

var draftCritiqueCmd = &cobra.Command{
	Use:   "critique",
	Short: "Critique previously generated drafts",
	RunE:  runDraftCritique,
}

func runDraftCritique(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	outputDir := draftOutputDir(cmd, &cfg)

	drafts, err := draft.ReadDrafts(outputDir)
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		return fmt.Errorf("no drafts found: run 'paperlens draft generate' first")
	}

	critiques := draft.Critique(drafts)
	path, err := draft.WriteCritiques(critiques, outputDir)
	if err != nil {
		return err
	}

	flagged := 0
	for _, c := range critiques {
		if len(c.Flags) > 0 {
			flagged++
			fmt.Fprintf(os.Stdout, "%s: %s\n", c.PaperID, strings.Join(c.Flags, ", "))
		}
	}
	fmt.Fprintf(os.Stdout, "critiqued %d draft(s), %d flagged; wrote %s\n",
		len(critiques), flagged, path)
	return nil
}

func draftOutputDir(cmd *cobra.Command, cfg *types.PipelineConfig) string {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = cfg.Draft.OutputDir
	}
	if outputDir == "" {
		outputDir = filepath.Join("output", "drafts")
	}
	cfg.Draft.OutputDir = outputDir
	return outputDir
}

// loadPaperMetadata reads the per-paper YAML metadata written by fetch.
// Missing or unreadable metadata degrades to section-derived titles.
func loadPaperMetadata(papersDir string) map[string]*types.Paper {
	papers := make(map[string]*types.Paper)

	metaDir := filepath.Join(papersDir, "metadata")
	entries, err := os.ReadDir(metaDir)
	if err != nil {
		return papers
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		paper, err := fetch.ReadMetadata(filepath.Join(metaDir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", name, err)
			continue
		}
		papers[paper.ID] = paper
	}
	return papers
}

func init() {
	draftCmd.PersistentFlags().String("output-dir", "", "directory for drafts and critiques (default \"output/drafts\")")
	draftCmd.PersistentFlags().String("data-dir", "", "base directory for pipeline output (default \"data\")")

	draftGenerateCmd.Flags().String("papers-dir", "", "base directory for papers (default \"papers\")")
	draftGenerateCmd.Flags().Int("key-terms", 0, "number of key terms per draft (default 5)")

	draftCmd.AddCommand(draftGenerateCmd)
	draftCmd.AddCommand(draftCritiqueCmd)

	rootCmd.AddCommand(draftCmd)
}
