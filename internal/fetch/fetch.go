// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads open-access PDFs for selected search results and
// writes per-paper metadata records.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/time/rate"

	"github.com/meshintel/paperlens/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// pdfMagic is the required file signature of a downloaded PDF.
var pdfMagic = []byte("%PDF")

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	NoPDF      int
	Failed     int
	Papers     []*types.Paper
}

// Total returns the number of results processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.NoPDF + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Fetcher downloads PDFs with a shared rate limit.
type Fetcher struct {
	client  *http.Client
	cfg     types.FetchConfig
	limiter *rate.Limiter
}

// New returns a Fetcher. A zero DownloadsPerSecond falls back to one
// download per second.
func New(client *http.Client, cfg types.FetchConfig) *Fetcher {
	perSecond := cfg.DownloadsPerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Fetcher{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// FetchPaper downloads the PDF for one search result and writes its
// metadata record. If the PDF already exists on disk the download is
// skipped. Results without an open-access PDF URL get a metadata record
// with FetchStatus no_pdf and no error. The skipped return value reports
// whether an existing download made the fetch a no-op.
func (f *Fetcher) FetchPaper(ctx context.Context, result types.SearchResult, w io.Writer) (paper *types.Paper, skipped bool, err error) {
	slug := Slug(result.Identifier)
	if slug == "" {
		return nil, false, fmt.Errorf("result %q has no usable identifier", result.Title)
	}

	pdfPath := filepath.Join(f.cfg.PapersDir, rawDir, slug+".pdf")
	metaPath := filepath.Join(f.cfg.PapersDir, metadataDir, slug+".yaml")

	paper = &types.Paper{
		ID:            slug,
		SourceURL:     result.PDFURL,
		Title:         result.Title,
		Authors:       result.Authors,
		Year:          result.Year,
		Abstract:      result.Abstract,
		CitationCount: result.CitationCount,
		Source:        result.Source,
	}

	if _, statErr := os.Stat(pdfPath); statErr == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", slug)
		paper.PDFPath = pdfPath
		paper.FetchStatus = types.FetchDone
		return paper, true, writeMetadata(paper, metaPath)
	}

	for _, dir := range []string{
		filepath.Join(f.cfg.PapersDir, rawDir),
		filepath.Join(f.cfg.PapersDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if result.PDFURL == "" {
		fmt.Fprintf(w, "no pdf:  %s\n", slug)
		paper.FetchStatus = types.FetchMissing
		return paper, false, writeMetadata(paper, metaPath)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	fmt.Fprintf(w, "downloading: %s\n", slug)

	if err := f.downloadFile(ctx, result.PDFURL, pdfPath); err != nil {
		paper.FetchStatus = types.FetchFailed
		writeMetadata(paper, metaPath)
		return nil, false, fmt.Errorf("downloading %s: %w", slug, err)
	}

	paper.PDFPath = pdfPath
	paper.FetchStatus = types.FetchDone
	return paper, false, writeMetadata(paper, metaPath)
}

// FetchBatch processes multiple search results, printing per-item status
// and returning a summary. It continues after individual failures.
func (f *Fetcher) FetchBatch(ctx context.Context, results []types.SearchResult, w io.Writer) BatchResult {
	var batch BatchResult
	for _, result := range results {
		paper, wasSkipped, err := f.FetchPaper(ctx, result, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", result.Identifier, err)
			batch.Failed++
			continue
		}
		switch {
		case wasSkipped:
			batch.Skipped++
		case paper.FetchStatus == types.FetchMissing:
			batch.NoPDF++
		default:
			batch.Downloaded++
		}
		batch.Papers = append(batch.Papers, paper)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d without pdf, %d failed (total: %d)\n",
		batch.Downloaded, batch.Skipped, batch.NoPDF, batch.Failed, batch.Total())
	return batch
}

// downloadFile fetches url to destPath using a temporary file renamed on
// success, and rejects responses that are not PDF content.
func (f *Fetcher) downloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	// Landing pages served in place of a PDF fail fast; anything else is
	// settled by the magic-byte check below.
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return fmt.Errorf("response from %s is %s, not a PDF", url, ct)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(resp.Body, header); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("reading response: %w", err)
	}
	if !bytes.Equal(header, pdfMagic) {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("response from %s is not a PDF", url)
	}

	if _, err := tmpFile.Write(header); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", err)
	}
	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Slug converts a paper identifier into a filesystem-safe name.
func Slug(identifier string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(identifier) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// writeMetadata writes a Paper record to a YAML file.
func writeMetadata(paper *types.Paper, path string) error {
	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadMetadata reads a Paper record from a YAML file.
func ReadMetadata(path string) (*types.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var paper types.Paper
	if err := yaml.Unmarshal(data, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}
