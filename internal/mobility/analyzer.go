package mobility

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency bounds the per-country series fan-out.
const DefaultMaxConcurrency = 4

// Analyzer runs the full active-transport pipeline: classify, aggregate,
// build per-country series, filter and rescale, estimate trends.
type Analyzer struct {
	opts           Options
	logger         *slog.Logger
	maxConcurrency int
}

// NewAnalyzer creates an analyzer with the given options.
func NewAnalyzer(opts Options, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		opts:           opts,
		logger:         logger,
		maxConcurrency: DefaultMaxConcurrency,
	}
}

// SetMaxConcurrency bounds how many countries are processed in parallel.
func (a *Analyzer) SetMaxConcurrency(n int) {
	if n > 0 {
		a.maxConcurrency = n
	}
}

// Analyze runs the pipeline over the record set. Non-fatal conditions are
// collected as diagnostics in the result; only invalid options or a
// cancelled context fail the run as a whole.
func (a *Analyzer) Analyze(ctx context.Context, records []ActivityRecord) (*Result, error) {
	start := time.Now()

	if err := a.opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}

	a.logger.InfoContext(ctx, "starting active-transport analysis",
		"records", len(records),
		"allow_list", a.opts.CountryAllowList,
	)

	totals := Aggregate(records)
	countries := totals.Countries()

	// Per-country series building has no shared state, so fan out and
	// collect by index to keep the output deterministic.
	perCountrySeries := make([][]CountryYearSeries, len(countries))
	perCountryDiags := make([][]Diagnostic, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)
	for i, country := range countries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perCountrySeries[i], perCountryDiags[i] = BuildSeries(totals, country, a.opts.MinYearsForSeries)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build series: %w", err)
	}

	var series []CountryYearSeries
	var diags []Diagnostic
	for i := range countries {
		series = append(series, perCountrySeries[i]...)
		diags = append(diags, perCountryDiags[i]...)
	}

	points := FilterAndRescale(series, a.opts)
	trends, trendDiags := EstimateTrends(points, a.opts)
	diags = append(diags, trendDiags...)
	sortDiagnostics(diags)

	for _, d := range diags {
		level := slog.LevelWarn
		if d.Severity == SeverityError {
			level = slog.LevelError
		}
		a.logger.Log(ctx, level, d.Message,
			"code", string(d.Code),
			"scope", d.Scope(),
		)
	}

	a.logger.InfoContext(ctx, "analysis complete",
		"countries", len(countries),
		"series_rows", len(points),
		"trend_rows", len(trends),
		"diagnostics", len(diags),
		"duration", time.Since(start),
	)

	return &Result{
		Series:      points,
		Trends:      trends,
		Diagnostics: diags,
	}, nil
}
