package fs

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pmcfetch"
)

// EachArticle reads every .json file in dir in lexical order, calling fn
// for each decoded article. Files that cannot be read or decoded are
// reported via errFn (if non-nil) and skipped; a corpus scan never fails
// on a single bad file.
func EachArticle(dir string, fn func(path string, article *pmcfetch.Article), errFn func(path string, err error)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		article, err := readArticle(path)
		if err != nil {
			if errFn != nil {
				errFn(path, err)
			}
			continue
		}
		fn(path, article)
	}

	return nil
}

func readArticle(path string) (*pmcfetch.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var article pmcfetch.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CopyFile copies a file preserving its mode. Used when filtering a
// corpus, where records are copied verbatim rather than re-encoded.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
