package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("writes staged file and commits atomically", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir, "out")

		text := pmcfetch.NewSectionModel()
		text.Add("Title", "T")

		article := &pmcfetch.Article{
			ID:        "E1",
			PMID:      "123",
			PMCID:     "PMC123",
			Title:     "T",
			License:   "cc by",
			Abstract:  "Abs.",
			Text:      text,
			FetchedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}

		require.NoError(t, w.WriteArticle(context.Background(), article))

		// Staged but not yet visible
		_, err := os.Stat(filepath.Join(dir, "out", "PMC123.json"))
		assert.True(t, os.IsNotExist(err))

		require.NoError(t, w.Commit())

		data, err := os.ReadFile(filepath.Join(dir, "out", "PMC123.json"))
		require.NoError(t, err)

		var got pmcfetch.Article
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "PMC123", got.PMCID)
		assert.Equal(t, []string{"T"}, got.Text.Paragraphs("Title"))
	})

	t.Run("text field serializes as null when absent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir, "out")

		article := &pmcfetch.Article{ID: "E1", Title: "T"}

		require.NoError(t, w.WriteArticle(context.Background(), article))
		require.NoError(t, w.Commit())

		data, err := os.ReadFile(filepath.Join(dir, "out", "E1.json"))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, "null", string(raw["text"]))
	})

	t.Run("filename prefers PMCID then PMID then ID", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir, "out")

		require.NoError(t, w.WriteArticle(context.Background(), &pmcfetch.Article{ID: "E1", PMID: "42"}))
		require.NoError(t, w.Commit())

		_, err := os.Stat(filepath.Join(dir, "out", "42.json"))
		assert.NoError(t, err)
	})

	t.Run("rejects article without identifier", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir(), "out")

		err := w.WriteArticle(context.Background(), &pmcfetch.Article{Title: "T"})
		assert.Equal(t, pmcfetch.EINVALID, pmcfetch.ErrorCode(err))
	})

	t.Run("abort discards staged files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir, "out")

		require.NoError(t, w.WriteArticle(context.Background(), &pmcfetch.Article{ID: "E1"}))
		require.NoError(t, w.Abort())

		_, err := os.Stat(filepath.Join(dir, "out.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("commit replaces an existing output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "out"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "out", "stale.json"), []byte("{}"), 0644))

		w := fs.NewWriter(dir, "out")
		require.NoError(t, w.WriteArticle(context.Background(), &pmcfetch.Article{ID: "E1"}))
		require.NoError(t, w.Commit())

		_, err := os.Stat(filepath.Join(dir, "out", "stale.json"))
		assert.True(t, os.IsNotExist(err))
	})
}
