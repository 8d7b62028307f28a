// Package mobility quantifies active-transport behavior (walking, cycling)
// as a proportion of total travel time in time-use diary microdata, and
// estimates per-year rates of change by country.
//
// # Pipeline
//
// The package is a single-pass batch transform; every stage produces a new
// derived table and nothing is mutated upstream:
//
//  1. classify.go: labels each diary episode as walking, cycling and/or any
//     travel from fixed activity/mode code sets. Categories overlap; a
//     walking episode also counts toward the any-travel denominator.
//  2. aggregate.go: sums episode minutes per (country, year, category).
//  3. series.go: per country, joins the three category totals on year and
//     computes walk/all and bike/all shares. Years without an any-travel
//     denominator are dropped; missing walk/bike totals count as zero.
//  4. filter.go: applies the configured country allow list and per-country
//     year trims, then multiplies bike shares by a per-country display
//     scale so both series fit on one chart.
//  5. trend.go + regression.go: per (country, category), drops configured
//     bad points, fits share ~ year by closed-form OLS and reports the
//     slope in percentage points per year with a two-sided t-test. Display
//     scaling is inverted before reporting so trends are in true units.
//
// # Diagnostics
//
// Non-fatal conditions (a country with no cycling records, too few survey
// years, a group with too few points to fit) never abort the run. They are
// returned as scope-tagged Diagnostic values alongside the result tables so
// callers can log, render or assert on them.
//
// # Usage
//
//	opts := mobility.DefaultOptions()
//	opts.CountryAllowList = []string{"UK", "US", "NL"}
//	opts.BikeDisplayScale = map[string]float64{"UK": 5, "US": 5}
//
//	analyzer := mobility.NewAnalyzer(opts, slog.Default())
//	result, err := analyzer.Analyze(ctx, records)
//	if err != nil {
//	    return err
//	}
//	for _, tr := range result.Trends {
//	    fmt.Printf("%s %s: %+.3f pp/year (p=%.3f)\n",
//	        tr.Country, tr.Category, tr.SlopePctPerYear, tr.PValue)
//	}
//
// All reference constants of the underlying analysis (which countries to
// keep, year trims, display scales, excluded boundary points) enter through
// Options as data, never as inline conditionals, so the pipeline can be
// exercised against synthetic datasets without touching logic.
package mobility
