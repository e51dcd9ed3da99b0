// Package pipeline implements the export-and-filter operation that keeps
// markup source files in sync with their authoring documents.
//
// For each document the pipeline runs the external LyX export to the
// sibling markup path, then, for the designated root document only,
// filters the output down to its body (see internal/texfilter). Non-root
// documents are left exactly as exported.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/overlyx/overlyx/internal/config"
	"github.com/overlyx/overlyx/internal/lyx"
	"github.com/overlyx/overlyx/internal/output"
	"github.com/overlyx/overlyx/internal/texfilter"
)

// SentinelFile is touched in the tex directory after a pre-commit run,
// signalling to the broader project that the export has run.
const SentinelFile = ".commit"

// Pipeline runs export+filter over the documents of one tex directory.
type Pipeline struct {
	cfg      *config.Config
	dir      string
	exporter *lyx.Exporter
	log      *RunLog
}

// Result records the outcome of syncing one document.
type Result struct {
	Document string `json:"document"`
	Filtered bool   `json:"filtered"`
	Err      error  `json:"-"`
}

// New creates a Pipeline for the documents in dir.
func New(cfg *config.Config, dir string) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		dir:      dir,
		exporter: lyx.NewExporter(cfg.ResolveLyxCommand()),
	}
}

// WithExporter replaces the export tool wrapper. Used by tests.
func (p *Pipeline) WithExporter(e *lyx.Exporter) *Pipeline {
	p.exporter = e
	return p
}

// WithLog attaches a run log. A nil log discards output.
func (p *Pipeline) WithLog(log *RunLog) *Pipeline {
	p.log = log
	return p
}

// Dir returns the tex directory this pipeline operates on.
func (p *Pipeline) Dir() string {
	return p.dir
}

// Config returns the configuration this pipeline was built with.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Exporter returns the export tool wrapper.
func (p *Pipeline) Exporter() *lyx.Exporter {
	return p.exporter
}

// Documents returns every authoring document in the tex directory,
// sorted by name. Matching is by extension over the top-level directory
// only; subdirectories are never descended into.
func (p *Pipeline) Documents() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read "+p.dir, err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if p.cfg.IsAuthoringDocument(entry.Name()) {
			docs = append(docs, filepath.Join(p.dir, entry.Name()))
		}
	}
	sort.Strings(docs)
	return docs, nil
}

// SyncDocument regenerates the markup file for one authoring document:
// export first, then the body filter if and only if this is the root
// document. Export failure propagates and the filter never runs on a
// failed export.
func (p *Pipeline) SyncDocument(ctx context.Context, docPath string) (Result, error) {
	res := Result{Document: filepath.Base(docPath)}
	texPath := p.cfg.MarkupPath(docPath)

	p.log.Printf("Processing: %s", res.Document)
	if err := p.exporter.Export(ctx, texPath, docPath); err != nil {
		p.log.Printf("Error processing %s: %v", res.Document, err)
		res.Err = err
		return res, err
	}

	if !p.cfg.IsRootDocument(docPath) {
		return res, nil
	}

	emitted, err := texfilter.FilterFile(texPath)
	if err != nil {
		p.log.Printf("Error filtering %s: %v", filepath.Base(texPath), err)
		res.Err = err
		return res, err
	}
	res.Filtered = true
	if emitted == 0 {
		// Reachable when the export output carries no marker pair.
		p.log.Printf("Warning: filter emitted no lines for %s", filepath.Base(texPath))
	}
	return res, nil
}

// SyncAll syncs every document in the tex directory. Failures are
// recorded per document and do not stop the loop.
func (p *Pipeline) SyncAll(ctx context.Context) ([]Result, error) {
	docs, err := p.Documents()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		p.log.Printf("No %s files found to process", p.cfg.AuthoringExt)
	}

	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		res, _ := p.SyncDocument(ctx, doc)
		results = append(results, res)
	}
	return results, nil
}

// SentinelPath returns the sentinel marker path for this tex directory.
func (p *Pipeline) SentinelPath() string {
	return filepath.Join(p.dir, SentinelFile)
}

// TouchSentinel creates (or refreshes) the sentinel marker file.
func (p *Pipeline) TouchSentinel() error {
	file, err := os.Create(p.SentinelPath())
	if err != nil {
		return output.NewSystemErrorWithCause("failed to touch sentinel file", err)
	}
	return file.Close()
}

// SentinelExists reports whether the sentinel marker file is present.
func (p *Pipeline) SentinelExists() bool {
	_, err := os.Stat(p.SentinelPath())
	return err == nil
}

// Failed counts the results carrying errors.
func Failed(results []Result) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}
