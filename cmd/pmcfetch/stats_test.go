package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/pmcfetch"
	main "github.com/fwojciec/pmcfetch/cmd/pmcfetch"
	"github.com/fwojciec/pmcfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("summarizes a directory of records", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeRecord(t, dir, "PMC1.json", `{"pmcid":"PMC1","license":"CC BY","abstract":"A.","text":{"Introduction":["Hello."]}}`)
		writeRecord(t, dir, "PMC2.json", `{"pmcid":"PMC2","license":"cc by","text":null}`)
		writeRecord(t, dir, "PMC3.json", `{"pmcid":"PMC3","license":"cc by-nc-nd","abstract":"B.","text":null}`)

		stdout := &bytes.Buffer{}
		cmd := &main.StatsCmd{Dir: dir}
		err := cmd.Run(&main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}})
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Articles:      3")
		assert.Contains(t, output, "With abstract: 2 (66.7%)")
		assert.Contains(t, output, "With text:     1 (33.3%)")
		assert.Contains(t, output, "cc by")
		assert.Contains(t, output, "cc by-nc-nd")
	})

	t.Run("uses the catalog when available", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.Catalog{
			StatsFn: func(ctx context.Context) (*pmcfetch.Stats, error) {
				s := pmcfetch.NewStats()
				s.Total = 10
				s.WithAbstract = 5
				s.WithText = 2
				s.AddLicense("cc by", 10)
				return s, nil
			},
		}

		stdout := &bytes.Buffer{}
		cmd := &main.StatsCmd{}
		err := cmd.Run(&main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Catalog: catalog})
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Articles:      10")
		assert.Contains(t, output, "With abstract: 5 (50.0%)")
	})

	t.Run("requires a directory or catalog", func(t *testing.T) {
		t.Parallel()

		cmd := &main.StatsCmd{}
		err := cmd.Run(&main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--catalog")
	})
}
