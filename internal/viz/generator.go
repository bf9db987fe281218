package viz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"canpulse/internal/config"
	"canpulse/internal/dataset"
	"canpulse/pkg/contracts/domain"
)

var tracer = otel.Tracer("canpulse/viz")

// Saver persists a generated view
type Saver interface {
	Save(name string, header []string, rows [][]string) error
}

// Options tune view generation
type Options struct {
	Bins       int
	SampleSize int
	// Seed makes the scatter sample reproducible; zero leaves it unseeded
	Seed int64
	// PersistLiveViews also writes the correlation and scatter artifacts
	PersistLiveViews bool
}

// OptionsFrom maps the viz configuration section
func OptionsFrom(cfg config.VizConfig) Options {
	return Options{
		Bins:             cfg.HistogramBins,
		SampleSize:       cfg.SampleSize,
		Seed:             cfg.SampleSeed,
		PersistLiveViews: cfg.PersistLiveViews,
	}
}

// Generator derives views from the canonical dataset
type Generator struct {
	saver  Saver
	opts   Options
	logger *slog.Logger
}

// NewGenerator creates a generator. Zero options fall back to 15 bins and
// 500 sampled rows.
func NewGenerator(saver Saver, opts Options, logger *slog.Logger) *Generator {
	if opts.Bins <= 0 {
		opts.Bins = config.DefaultHistogramBins
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = config.DefaultSampleSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		saver:  saver,
		opts:   opts,
		logger: logger.With(slog.String("component", "viz_generator")),
	}
}

// GenerateAll computes and saves every view the dataset supports and returns
// the artifact names written. Views lacking columns are skipped; a nil table
// fails with ErrDatasetUnavailable before anything is computed. A failed save
// returns no names: the batch either completes or reports an error.
func (g *Generator) GenerateAll(ctx context.Context, t *dataset.Table) ([]string, error) {
	if t == nil {
		return nil, ErrDatasetUnavailable
	}

	ctx, span := tracer.Start(ctx, "Generator.GenerateAll")
	defer span.End()

	caps := Capabilities(t)
	produced := []string{}
	for _, entry := range catalog {
		if !entry.Batch && !g.opts.PersistLiveViews {
			continue
		}
		if err := caps[entry.Name]; err != nil {
			g.logger.InfoContext(ctx, "View skipped",
				slog.String("view", string(entry.Name)),
				slog.String("reason", err.Error()))
			continue
		}

		header, rows := g.render(entry.Name, t)
		if err := g.saver.Save(entry.Artifact, header, rows); err != nil {
			span.RecordError(err)
			g.logger.ErrorContext(ctx, "View generation aborted",
				slog.String("view", string(entry.Name)),
				slog.Any("written", produced),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save view %s: %w", entry.Name, err)
		}
		produced = append(produced, entry.Artifact)
	}

	span.SetAttributes(attribute.Int("views", len(produced)))
	g.logger.InfoContext(ctx, "Views generated",
		slog.Int("count", len(produced)),
		slog.Any("files", produced))
	return produced, nil
}

func (g *Generator) render(name ViewName, t *dataset.Table) (header []string, rows [][]string) {
	entry, _ := Lookup(name)
	switch name {
	case ViewPriceDistribution:
		return entry.Header, histogramRows(PriceDistribution(t, g.opts.Bins))
	case ViewCategoryPricing:
		return entry.Header, categoryRows(CategoryPricing(t))
	case ViewTreatmentEffect:
		return entry.Header, treatmentRows(TreatmentEffect(t))
	case ViewVenueStats:
		return entry.Header, venueRows(VenueStats(t))
	case ViewDayDemand:
		return entry.Header, dayRows(DayDemand(t))
	case ViewCorrelation:
		return entry.Header, correlationRows(Correlation(t))
	case ViewScatterSample:
		cols, points := ScatterSample(t, g.opts.SampleSize, g.rng())
		return cols, scatterRows(cols, points)
	}
	return nil, nil
}

func (g *Generator) rng() *rand.Rand {
	if g.opts.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(uint64(g.opts.Seed), 0))
}

func (g *Generator) check(t *dataset.Table, name ViewName) error {
	if t == nil {
		return ErrDatasetUnavailable
	}
	entry, _ := Lookup(name)
	return entry.Check(t)
}

// PriceDistribution serves the histogram view on demand
func (g *Generator) PriceDistribution(t *dataset.Table) ([]domain.HistogramBin, error) {
	if err := g.check(t, ViewPriceDistribution); err != nil {
		return nil, err
	}
	return PriceDistribution(t, g.opts.Bins), nil
}

// CategoryPricing serves the per-category price statistics
func (g *Generator) CategoryPricing(t *dataset.Table) ([]domain.CategoryPricing, error) {
	if err := g.check(t, ViewCategoryPricing); err != nil {
		return nil, err
	}
	return CategoryPricing(t), nil
}

// TreatmentEffect serves the host nation comparison
func (g *Generator) TreatmentEffect(t *dataset.Table) ([]domain.TreatmentEffect, error) {
	if err := g.check(t, ViewTreatmentEffect); err != nil {
		return nil, err
	}
	return TreatmentEffect(t), nil
}

// VenueStats serves the per-city statistics
func (g *Generator) VenueStats(t *dataset.Table) ([]domain.VenueStats, error) {
	if err := g.check(t, ViewVenueStats); err != nil {
		return nil, err
	}
	return VenueStats(t), nil
}

// DayDemand serves the weekday demand view
func (g *Generator) DayDemand(t *dataset.Table) ([]domain.DayDemand, error) {
	if err := g.check(t, ViewDayDemand); err != nil {
		return nil, err
	}
	return DayDemand(t), nil
}

// Correlation serves the unstacked correlation matrix
func (g *Generator) Correlation(t *dataset.Table) ([]domain.CorrelationCell, error) {
	if err := g.check(t, ViewCorrelation); err != nil {
		return nil, err
	}
	return Correlation(t), nil
}

// ScatterSample serves a random sample of the scatter columns along with
// the subset of those columns the dataset holds
func (g *Generator) ScatterSample(t *dataset.Table) ([]string, []domain.ScatterPoint, error) {
	if err := g.check(t, ViewScatterSample); err != nil {
		return nil, nil, err
	}
	columns, points := ScatterSample(t, g.opts.SampleSize, g.rng())
	return columns, points, nil
}
