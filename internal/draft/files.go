// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meshintel/paperlens/pkg/types"
)

const (
	draftsFile    = "drafts.json"
	critiquesFile = "critiques.json"
)

// draftsDocument is the on-disk shape of a draft run.
type draftsDocument struct {
	Total  int           `json:"total"`
	Drafts []types.Draft `json:"drafts"`
}

// critiquesDocument is the on-disk shape of a critique run.
type critiquesDocument struct {
	Total     int              `json:"total"`
	Critiques []types.Critique `json:"critiques"`
}

// WriteDrafts writes the draft set to outputDir/drafts.json.
func WriteDrafts(drafts []types.Draft, outputDir string) (string, error) {
	path := filepath.Join(outputDir, draftsFile)
	if err := writeJSON(path, draftsDocument{Total: len(drafts), Drafts: drafts}); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCritiques writes the critique set to outputDir/critiques.json.
func WriteCritiques(critiques []types.Critique, outputDir string) (string, error) {
	path := filepath.Join(outputDir, critiquesFile)
	if err := writeJSON(path, critiquesDocument{Total: len(critiques), Critiques: critiques}); err != nil {
		return "", err
	}
	return path, nil
}

// ReadDrafts loads a previously written draft set from outputDir.
func ReadDrafts(outputDir string) ([]types.Draft, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, draftsFile))
	if err != nil {
		return nil, fmt.Errorf("reading drafts: %w", err)
	}
	var doc draftsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing drafts: %w", err)
	}
	return doc.Drafts, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}
