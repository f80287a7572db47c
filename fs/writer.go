// Package fs provides file-based persistence for fetched articles:
// one JSON file per article, staged in a temporary directory and made
// visible atomically on commit.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/pmcfetch"
)

// Ensure Writer implements pmcfetch.ArticleWriter at compile time.
var _ pmcfetch.ArticleWriter = (*Writer)(nil)

// Writer writes articles as JSON files with atomic update semantics.
// Articles are saved to baseDir/name.tmp and moved to baseDir/name on
// Commit; Abort discards the staged files.
type Writer struct {
	baseDir string
	name    string
}

// NewWriter creates a new Writer. baseDir is the parent directory, name is
// the output directory name.
func NewWriter(baseDir, name string) *Writer {
	return &Writer{baseDir: baseDir, name: name}
}

func (w *Writer) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

func (w *Writer) finalDir() string {
	return filepath.Join(w.baseDir, w.name)
}

// Dir returns the final output directory path.
func (w *Writer) Dir() string {
	return w.finalDir()
}

// WriteArticle writes one article as {id}.json in the staging directory.
func (w *Writer) WriteArticle(ctx context.Context, article *pmcfetch.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	path := filepath.Join(w.tempDir(), article.FileID()+".json")
	return os.WriteFile(path, data, 0644)
}

// Commit atomically replaces the final directory with the staged one.
func (w *Writer) Commit() error {
	if err := os.RemoveAll(w.finalDir()); err != nil {
		return err
	}
	return os.Rename(w.tempDir(), w.finalDir())
}

// Abort discards the staged files.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.tempDir())
}
