package services

import (
	"context"
	"fmt"
	"log/slog"

	"canpulse/internal/config"
	"canpulse/internal/files"
	"canpulse/pkg/contracts/domain"
)

// SummaryService reports what the data directory holds
type SummaryService struct {
	store  *files.Store
	logger *slog.Logger
}

// NewSummaryService creates a summary service over store
func NewSummaryService(store *files.Store, logger *slog.Logger) *SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryService{
		store:  store,
		logger: logger.With(slog.String("component", "summary_service")),
	}
}

// Summary counts the data rows of each known artifact. Missing or unreadable
// artifacts count as zero; the dataset count uses the canonical dataset.
func (s *SummaryService) Summary(ctx context.Context) domain.DataSummary {
	summary := domain.DataSummary{
		Matches:  s.store.CountRows(config.MatchesFile),
		Stadiums: s.store.CountRows(config.StadiumsFile),
		Tickets:  s.store.CountRows(config.TicketsFile),
	}
	if name, err := s.store.CanonicalDataset(); err == nil {
		summary.Dataset = s.store.CountRows(name)
	}

	s.logger.DebugContext(ctx, "Summary computed",
		slog.Int("matches", summary.Matches),
		slog.Int("dataset", summary.Dataset))
	return summary
}

// Files lists the artifacts of the data directory
func (s *SummaryService) Files(ctx context.Context) ([]files.FileInfo, error) {
	list, err := s.store.List()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list artifacts", slog.String("error", err.Error()))
		return nil, err
	}
	return list, nil
}

// Artifact resolves name to a file in the data directory for download
func (s *SummaryService) Artifact(ctx context.Context, name string) (string, error) {
	if !s.store.Exists(name) {
		return "", fmt.Errorf("%w: %s", files.ErrArtifactMissing, name)
	}
	return s.store.Path(name), nil
}
