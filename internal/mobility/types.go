package mobility

import (
	"fmt"
)

// Category identifies which travel bucket a record or series row counts toward.
type Category int

const (
	// CategoryWalk covers walking episodes.
	CategoryWalk Category = iota
	// CategoryBike covers cycling episodes.
	CategoryBike
	// CategoryAnyTravel covers every travel episode regardless of mode.
	CategoryAnyTravel
)

// String returns the string representation of the category
func (c Category) String() string {
	switch c {
	case CategoryWalk:
		return "walk"
	case CategoryBike:
		return "bike"
	case CategoryAnyTravel:
		return "any_travel"
	default:
		return "unknown"
	}
}

// ActivityRecord represents a single diary episode from the survey microdata.
// Records are value types and never mutated after ingestion.
type ActivityRecord struct {
	Country          string  `json:"country"`
	Year             int     `json:"year"`
	MainActivityCode int     `json:"main_activity_code"`
	TravelModeCode   int     `json:"travel_mode_code"`
	DurationMinutes  float64 `json:"duration_minutes"`
}

// IsValid checks if the record carries usable survey data
func (r ActivityRecord) IsValid() bool {
	return r.Country != "" && r.Year > 0 && r.DurationMinutes >= 0
}

// YearTotal is one aggregated cell: summed episode minutes for a
// (country, year, category) group. Groups with no matching records
// produce no YearTotal at all; absence means zero.
type YearTotal struct {
	Country      string   `json:"country"`
	Year         int      `json:"year"`
	Category     Category `json:"category"`
	TotalMinutes float64  `json:"total_minutes"`
}

// CountryYearSeries is one wide series row for a country-year: the share of
// total travel minutes spent walking and cycling. Shares are raw (unscaled)
// fractions in [0,1].
type CountryYearSeries struct {
	Country   string  `json:"country"`
	Year      int     `json:"year"`
	WalkShare float64 `json:"walk_share"`
	BikeShare float64 `json:"bike_share"`
}

// SeriesPoint is one long-form chart row. Bike shares carry the per-country
// display scale; Label is the chart series key ("<country>:<category>").
type SeriesPoint struct {
	Country  string   `json:"country"`
	Year     int      `json:"year"`
	Category Category `json:"category"`
	Share    float64  `json:"share"`
	Label    string   `json:"label"`
}

// TrendResult holds the fitted per-year rate of change for one
// (country, category) group. SlopePctPerYear is in percentage points per
// year, with any bike display scaling already undone.
type TrendResult struct {
	Country         string   `json:"country"`
	Category        Category `json:"category"`
	SlopePctPerYear float64  `json:"slope_pct_per_year"`
	PValue          float64  `json:"p_value"`
	Significant     bool     `json:"significant"`
	ScaleAdjusted   bool     `json:"scale_adjusted"`
	Points          int      `json:"points"`
}

// Exclusion marks points to drop before trend fitting. With AtOrBefore set
// the exclusion covers every year up to and including Year; otherwise it
// covers that single year. Exclusions are configuration data so that
// data-quality corrections stay auditable.
type Exclusion struct {
	Country    string   `json:"country" yaml:"country"`
	Category   Category `json:"category" yaml:"category"`
	Year       int      `json:"year" yaml:"year"`
	AtOrBefore bool     `json:"at_or_before,omitempty" yaml:"at_or_before"`
}

// Matches reports whether the exclusion covers the given point.
func (e Exclusion) Matches(country string, category Category, year int) bool {
	if e.Country != country || e.Category != category {
		return false
	}
	if e.AtOrBefore {
		return year <= e.Year
	}
	return year == e.Year
}

// Options carries the pipeline configuration. All reference values from the
// original analysis (allow list, year trims, display scales, exclusions)
// live here as data, never as inline conditionals.
type Options struct {
	// CountryAllowList names the countries retained after series building.
	CountryAllowList []string
	// MinYearExclusive drops rows with year <= the mapped value.
	MinYearExclusive map[string]int
	// BikeDisplayScale multiplies bike shares for chart comparability.
	// Countries not listed use scale 1. The trend estimator divides the
	// fitted bike slope by the same factor before reporting.
	BikeDisplayScale map[string]float64
	// TrendExclusions removes known-bad boundary points before fitting.
	TrendExclusions []Exclusion
	// MinYearsForSeries is the coverage below which a country is flagged
	// (not dropped) as having unreliable history.
	MinYearsForSeries int
	// SignificanceAlpha is the two-sided p-value threshold on the year
	// coefficient.
	SignificanceAlpha float64
}

// DefaultOptions returns pipeline options with neutral defaults: every
// country allowed, no trims, no scaling, no exclusions.
func DefaultOptions() Options {
	return Options{
		MinYearsForSeries: 3,
		SignificanceAlpha: 0.05,
	}
}

// Validate checks option ranges before a run
func (o Options) Validate() error {
	if o.MinYearsForSeries < 1 {
		return &ValidationError{
			Field:   "MinYearsForSeries",
			Message: "minimum years for a series must be at least 1",
			Value:   o.MinYearsForSeries,
		}
	}
	if o.SignificanceAlpha <= 0 || o.SignificanceAlpha >= 1 {
		return &ValidationError{
			Field:   "SignificanceAlpha",
			Message: "significance alpha must be in (0, 1)",
			Value:   o.SignificanceAlpha,
		}
	}
	for country, scale := range o.BikeDisplayScale {
		if scale <= 0 {
			return &ValidationError{
				Field:   "BikeDisplayScale",
				Message: fmt.Sprintf("display scale for %s must be positive", country),
				Value:   scale,
			}
		}
	}
	return nil
}

// Allowed reports whether the country passes the allow list. An empty allow
// list admits everything, which keeps synthetic test datasets simple.
func (o Options) Allowed(country string) bool {
	if len(o.CountryAllowList) == 0 {
		return true
	}
	for _, c := range o.CountryAllowList {
		if c == country {
			return true
		}
	}
	return false
}

// BikeScale returns the display scale for a country, defaulting to 1.
func (o Options) BikeScale(country string) float64 {
	if s, ok := o.BikeDisplayScale[country]; ok {
		return s
	}
	return 1
}

// Excluded reports whether a point is removed before trend fitting.
func (o Options) Excluded(country string, category Category, year int) bool {
	for _, e := range o.TrendExclusions {
		if e.Matches(country, category, year) {
			return true
		}
	}
	return false
}

// ValidationError provides detailed validation failure information
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Result bundles the pipeline outputs: the chart-ready series table, the
// trend table, and every scope-tagged diagnostic raised along the way.
type Result struct {
	Series      []SeriesPoint `json:"series"`
	Trends      []TrendResult `json:"trends"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
}

// SeriesForCountry returns the series rows for one country.
func (r *Result) SeriesForCountry(country string) []SeriesPoint {
	var points []SeriesPoint
	for _, p := range r.Series {
		if p.Country == country {
			points = append(points, p)
		}
	}
	return points
}
