package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/mock"
	pmcslog "github.com/fwojciec/pmcfetch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTextService_GetText(t *testing.T) {
	t.Parallel()

	t.Run("logs sections and duration on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TextService{
			GetTextFn: func(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error) {
				m := pmcfetch.NewSectionModel()
				m.Add("Introduction", "One.")
				m.Add("Introduction", "Two.")
				return m, nil
			},
		}

		svc := pmcslog.NewLoggingTextService(inner, pmcfetch.TextSourceEPMC, logger)
		model, err := svc.GetText(context.Background(), "PMC123")

		require.NoError(t, err)
		require.NotNil(t, model)
		output := buf.String()
		assert.Contains(t, output, "full text")
		assert.Contains(t, output, "pmcid=PMC123")
		assert.Contains(t, output, "source=epmc")
		assert.Contains(t, output, "sections=1")
		assert.Contains(t, output, "paragraphs=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs code and message on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TextService{
			GetTextFn: func(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error) {
				return nil, pmcfetch.Errorf(pmcfetch.ENOTFOUND, "no full text for PMC123")
			},
		}

		svc := pmcslog.NewLoggingTextService(inner, pmcfetch.TextSourceBioC, logger)
		_, err := svc.GetText(context.Background(), "PMC123")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "code=not_found")
		assert.Contains(t, output, "err=\"no full text for PMC123\"")
	})
}

func TestLoggingCitationService_Cite(t *testing.T) {
	t.Parallel()

	t.Run("logs pmid and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CitationService{
			CiteFn: func(ctx context.Context, pmid string) (*pmcfetch.Citation, error) {
				return &pmcfetch.Citation{APA: "Smith, J. (2020). A study."}, nil
			},
		}

		svc := pmcslog.NewLoggingCitationService(inner, logger)
		citation, err := svc.Cite(context.Background(), "123")

		require.NoError(t, err)
		require.NotNil(t, citation)
		output := buf.String()
		assert.Contains(t, output, "citation")
		assert.Contains(t, output, "pmid=123")
		assert.Contains(t, output, "duration=")
	})

	t.Run("propagates errors after logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CitationService{
			CiteFn: func(ctx context.Context, pmid string) (*pmcfetch.Citation, error) {
				return nil, pmcfetch.Errorf(pmcfetch.ENOTFOUND, "unknown pmid")
			},
		}

		svc := pmcslog.NewLoggingCitationService(inner, logger)
		_, err := svc.Cite(context.Background(), "123")

		require.Error(t, err)
		assert.Equal(t, pmcfetch.ENOTFOUND, pmcfetch.ErrorCode(err))
		assert.Contains(t, buf.String(), "code=not_found")
	})
}
