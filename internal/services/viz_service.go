package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"canpulse/internal/dataset"
	"canpulse/internal/files"
	"canpulse/internal/infrastructure"
	"canpulse/internal/viz"
	"canpulse/pkg/contracts/domain"
	"canpulse/pkg/contracts/events"
)

// VizService serves derived views computed from the canonical dataset
type VizService struct {
	generator *viz.Generator
	store     *files.Store
	metrics   *infrastructure.BusinessMetrics
	events    EventBroadcaster
	logger    *slog.Logger
}

// NewVizService creates a view service writing artifacts through generator
func NewVizService(generator *viz.Generator, store *files.Store,
	metrics *infrastructure.BusinessMetrics, broadcaster EventBroadcaster, logger *slog.Logger) *VizService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VizService{
		generator: generator,
		store:     store,
		metrics:   metrics,
		events:    broadcasterOrNoop(broadcaster),
		logger:    logger.With(slog.String("component", "viz_service")),
	}
}

// Dataset loads the canonical dataset. It fails with viz.ErrDatasetUnavailable
// when neither the cleaned nor the raw dataset exists.
func (s *VizService) Dataset(ctx context.Context) (*dataset.Table, error) {
	name, err := s.store.CanonicalDataset()
	if err != nil {
		if errors.Is(err, files.ErrArtifactMissing) {
			return nil, fmt.Errorf("%w: %w", viz.ErrDatasetUnavailable, err)
		}
		return nil, err
	}

	t, err := s.store.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	s.logger.DebugContext(ctx, "Dataset loaded",
		slog.String("file", name),
		slog.Int("rows", t.Len()))
	return t, nil
}

// GenerateAll recomputes and persists every view the dataset supports
func (s *VizService) GenerateAll(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "VizService.GenerateAll")
	defer span.End()

	t, err := s.Dataset(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	produced, err := s.generator.GenerateAll(ctx, t)
	if s.metrics != nil {
		s.metrics.ViewGenerationDuration.Record(ctx, time.Since(start).Seconds())
	}
	for _, name := range produced {
		s.metrics.RecordViewGeneration(ctx, name, nil)
	}
	if err != nil {
		s.metrics.RecordViewGeneration(ctx, "batch", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("files", len(produced)))
	s.events.Broadcast(ctx, events.MessageTypeVizGenerated, events.VizGeneratedEvent{Files: produced})
	return produced, nil
}

// serve loads the dataset and computes one view on demand
func serve[T any](ctx context.Context, s *VizService, view viz.ViewName, compute func(*dataset.Table) (T, error)) (T, error) {
	var zero T
	t, err := s.Dataset(ctx)
	if err != nil {
		return zero, err
	}
	out, err := compute(t)
	s.metrics.RecordViewGeneration(ctx, string(view), err)
	if err != nil {
		return zero, err
	}
	return out, nil
}

// PriceDistribution returns the price histogram
func (s *VizService) PriceDistribution(ctx context.Context) ([]domain.HistogramBin, error) {
	return serve(ctx, s, viz.ViewPriceDistribution, s.generator.PriceDistribution)
}

// CategoryPricing returns price statistics per seating category
func (s *VizService) CategoryPricing(ctx context.Context) ([]domain.CategoryPricing, error) {
	return serve(ctx, s, viz.ViewCategoryPricing, s.generator.CategoryPricing)
}

// TreatmentEffect returns the host nation comparison
func (s *VizService) TreatmentEffect(ctx context.Context) ([]domain.TreatmentEffect, error) {
	return serve(ctx, s, viz.ViewTreatmentEffect, s.generator.TreatmentEffect)
}

// VenueStats returns price and demand per city
func (s *VizService) VenueStats(ctx context.Context) ([]domain.VenueStats, error) {
	return serve(ctx, s, viz.ViewVenueStats, s.generator.VenueStats)
}

// DayDemand returns the mean demand per weekday
func (s *VizService) DayDemand(ctx context.Context) ([]domain.DayDemand, error) {
	return serve(ctx, s, viz.ViewDayDemand, s.generator.DayDemand)
}

// Correlation returns the unstacked correlation matrix
func (s *VizService) Correlation(ctx context.Context) ([]domain.CorrelationCell, error) {
	return serve(ctx, s, viz.ViewCorrelation, s.generator.Correlation)
}

// ScatterSample returns sampled rows and the columns they carry
func (s *VizService) ScatterSample(ctx context.Context) ([]string, []domain.ScatterPoint, error) {
	type sample struct {
		columns []string
		points  []domain.ScatterPoint
	}
	out, err := serve(ctx, s, viz.ViewScatterSample, func(t *dataset.Table) (sample, error) {
		columns, points, err := s.generator.ScatterSample(t)
		return sample{columns, points}, err
	})
	return out.columns, out.points, err
}
