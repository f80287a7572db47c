// Package slog provides logging decorators for pmcfetch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pmcfetch"
)

// Ensure LoggingTextService implements pmcfetch.TextService.
var _ pmcfetch.TextService = (*LoggingTextService)(nil)

// LoggingTextService wraps a TextService with per-article outcome logging.
type LoggingTextService struct {
	next   pmcfetch.TextService
	source pmcfetch.TextSource
	logger *slog.Logger
}

// NewLoggingTextService creates a new LoggingTextService.
func NewLoggingTextService(next pmcfetch.TextService, source pmcfetch.TextSource, logger *slog.Logger) *LoggingTextService {
	return &LoggingTextService{next: next, source: source, logger: logger}
}

// GetText delegates to the wrapped service and logs the outcome.
func (s *LoggingTextService) GetText(ctx context.Context, pmcid string) (*pmcfetch.SectionModel, error) {
	begin := time.Now()
	model, err := s.next.GetText(ctx, pmcid)
	if err != nil {
		s.logger.Info("full text",
			"pmcid", pmcid,
			"source", s.source.String(),
			"code", pmcfetch.ErrorCode(err),
			"duration", time.Since(begin),
			"err", pmcfetch.ErrorMessage(err),
		)
		return nil, err
	}
	s.logger.Info("full text",
		"pmcid", pmcid,
		"source", s.source.String(),
		"sections", model.Len(),
		"paragraphs", model.ParagraphCount(),
		"duration", time.Since(begin),
	)
	return model, nil
}

// Ensure LoggingCitationService implements pmcfetch.CitationService.
var _ pmcfetch.CitationService = (*LoggingCitationService)(nil)

// LoggingCitationService wraps a CitationService with outcome logging.
type LoggingCitationService struct {
	next   pmcfetch.CitationService
	logger *slog.Logger
}

// NewLoggingCitationService creates a new LoggingCitationService.
func NewLoggingCitationService(next pmcfetch.CitationService, logger *slog.Logger) *LoggingCitationService {
	return &LoggingCitationService{next: next, logger: logger}
}

// Cite delegates to the wrapped service and logs the outcome.
func (s *LoggingCitationService) Cite(ctx context.Context, pmid string) (*pmcfetch.Citation, error) {
	begin := time.Now()
	citation, err := s.next.Cite(ctx, pmid)
	if err != nil {
		s.logger.Info("citation",
			"pmid", pmid,
			"code", pmcfetch.ErrorCode(err),
			"duration", time.Since(begin),
			"err", pmcfetch.ErrorMessage(err),
		)
		return nil, err
	}
	s.logger.Info("citation",
		"pmid", pmid,
		"duration", time.Since(begin),
	)
	return citation, nil
}
