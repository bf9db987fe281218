package viz

import (
	"canpulse/internal/config"
	"canpulse/internal/dataset"
)

// ViewName identifies one derived view
type ViewName string

const (
	ViewPriceDistribution ViewName = "price_distribution"
	ViewCategoryPricing   ViewName = "category_pricing"
	ViewTreatmentEffect   ViewName = "treatment_effect"
	ViewVenueStats        ViewName = "venue_stats"
	ViewDayDemand         ViewName = "day_demand"
	ViewCorrelation       ViewName = "correlation"
	ViewScatterSample     ViewName = "scatter_sample"
)

// Source columns of the ticket dataset
const (
	ColPrice     = "Prix_Final_MAD"
	ColDemand    = "Indice_Demande"
	ColCategory  = "Categorie"
	ColTreatment = "Effet_Maroc"
	ColVenue     = "Ville"
	ColWeekday   = "Jour_Semaine"
)

// CorrelationColumns are the numeric columns considered for the correlation matrix
var CorrelationColumns = []string{
	ColPrice, ColDemand, "Taux_Rareté", "Score_Visibilite",
	"Score_Rivalite", "Valeur_Marchande_Totale_MEUR", "Index_Stars_Total",
}

// ScatterColumns are the columns kept in the scatter sample
var ScatterColumns = []string{ColDemand, ColPrice, ColCategory, ColTreatment}

// Weekdays is the canonical day order of the day demand view
var Weekdays = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

// ViewSpec declares what a view needs and where it is persisted
type ViewSpec struct {
	Name     ViewName
	Artifact string
	Header   []string
	// Required columns must all be present
	Required []string
	// AnyOf columns need at least one present; the view uses the ones found
	AnyOf []string
	// Batch views are always written by GenerateAll; the others only when
	// live views are persisted too
	Batch bool
}

var catalog = []ViewSpec{
	{
		Name:     ViewPriceDistribution,
		Artifact: config.VizPriceDistributionFile,
		Header:   []string{"label", "count"},
		Required: []string{ColPrice},
		Batch:    true,
	},
	{
		Name:     ViewCategoryPricing,
		Artifact: config.VizCategoryPricingFile,
		Header:   []string{ColCategory, "min", "mean", "median", "max"},
		Required: []string{ColCategory, ColPrice},
		Batch:    true,
	},
	{
		Name:     ViewTreatmentEffect,
		Artifact: config.VizTreatmentEffectFile,
		Header:   []string{ColTreatment, ColPrice, ColDemand},
		Required: []string{ColTreatment, ColPrice, ColDemand},
		Batch:    true,
	},
	{
		Name:     ViewVenueStats,
		Artifact: config.VizVenueStatsFile,
		Header:   []string{ColVenue, ColPrice, ColDemand},
		Required: []string{ColVenue, ColPrice, ColDemand},
		Batch:    true,
	},
	{
		Name:     ViewDayDemand,
		Artifact: config.VizDayDemandFile,
		Header:   []string{ColWeekday, ColDemand},
		Required: []string{ColWeekday, ColDemand},
		Batch:    true,
	},
	{
		Name:     ViewCorrelation,
		Artifact: config.VizCorrelationFile,
		Header:   []string{"var1", "var2", "correlation"},
		AnyOf:    CorrelationColumns,
	},
	{
		Name:     ViewScatterSample,
		Artifact: config.VizScatterSampleFile,
		AnyOf:    ScatterColumns,
	},
}

// Catalog returns every view in generation order
func Catalog() []ViewSpec {
	out := make([]ViewSpec, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry of a view
func Lookup(name ViewName) (ViewSpec, bool) {
	for _, entry := range catalog {
		if entry.Name == name {
			return entry, true
		}
	}
	return ViewSpec{}, false
}

// Check returns nil when t can produce the view, otherwise a *ColumnMissingError
func (s ViewSpec) Check(t *dataset.Table) error {
	if missing := t.MissingColumns(s.Required...); len(missing) > 0 {
		return &ColumnMissingError{View: s.Name, Columns: missing}
	}
	if len(s.AnyOf) > 0 && len(t.MissingColumns(s.AnyOf...)) == len(s.AnyOf) {
		return &ColumnMissingError{View: s.Name, Columns: s.AnyOf, AnyOf: true}
	}
	return nil
}

// Capabilities evaluates every view against t once. A nil entry means the
// view can be computed.
func Capabilities(t *dataset.Table) map[ViewName]error {
	caps := make(map[ViewName]error, len(catalog))
	for _, entry := range catalog {
		caps[entry.Name] = entry.Check(t)
	}
	return caps
}
