package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEachArticle(t *testing.T) {
	t.Parallel()

	t.Run("iterates valid records and skips bad files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "a.json", `{"id":"E1","title":"One","license":"cc by","text":null}`)
		writeFile(t, dir, "b.json", `not json`)
		writeFile(t, dir, "c.json", `{"id":"E2","title":"Two","text":{"Title":["Two"]}}`)
		writeFile(t, dir, "notes.txt", `ignored`)

		var ids []string
		var badPaths []string
		err := fs.EachArticle(dir, func(path string, a *pmcfetch.Article) {
			ids = append(ids, a.ID)
		}, func(path string, err error) {
			badPaths = append(badPaths, filepath.Base(path))
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"E1", "E2"}, ids)
		assert.Equal(t, []string{"b.json"}, badPaths)
	})

	t.Run("decodes section model text", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "a.json", `{"id":"E1","text":{"Title":["T"],"Abstract":["A"]}}`)

		var got *pmcfetch.Article
		err := fs.EachArticle(dir, func(path string, a *pmcfetch.Article) {
			got = a
		}, nil)
		require.NoError(t, err)

		require.NotNil(t, got.Text)
		assert.Equal(t, []string{"Title", "Abstract"}, got.Text.Sections())
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		t.Parallel()

		err := fs.EachArticle(filepath.Join(t.TempDir(), "nope"), func(string, *pmcfetch.Article) {}, nil)
		assert.Error(t, err)
	})
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"id":"E1"}`), 0644))

	require.NoError(t, fs.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"E1"}`, string(data))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
