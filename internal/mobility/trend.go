package mobility

import (
	"sort"
)

// EstimateTrends fits an ordinary-least-squares line of share against year
// for every (country, category) group in the rescaled series and reports
// the year coefficient in percentage points per year.
//
// Configured exclusions are applied first. Groups left with fewer than two
// points are omitted from the trend table and reported as diagnostics;
// other groups proceed independently. For bike groups whose country carries
// a display scale, the fitted slope is divided by that scale so reported
// trends are in true units, not chart units.
func EstimateTrends(points []SeriesPoint, opts Options) ([]TrendResult, []Diagnostic) {
	type group struct {
		country  string
		category Category
	}
	grouped := make(map[group][]SeriesPoint)
	var order []group
	for _, p := range points {
		g := group{p.Country, p.Category}
		if _, seen := grouped[g]; !seen {
			order = append(order, g)
		}
		grouped[g] = append(grouped[g], p)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].country != order[j].country {
			return order[i].country < order[j].country
		}
		return order[i].category < order[j].category
	})

	var trends []TrendResult
	var diags []Diagnostic
	for _, g := range order {
		var xs, ys []float64
		for _, p := range grouped[g] {
			if opts.Excluded(p.Country, p.Category, p.Year) {
				continue
			}
			xs = append(xs, float64(p.Year))
			ys = append(ys, p.Share)
		}
		if len(xs) < 2 {
			diags = append(diags, newInsufficientPoints(g.country, g.category, len(xs)))
			continue
		}

		fit, err := FitLinear(xs, ys)
		if err != nil {
			// Degenerate x spread counts as too few usable points.
			diags = append(diags, newInsufficientPoints(g.country, g.category, len(xs)))
			continue
		}

		slopePct := fit.Slope * 100
		scaleAdjusted := false
		if g.category == CategoryBike {
			if scale := opts.BikeScale(g.country); scale != 1 {
				slopePct /= scale
				scaleAdjusted = true
			}
		}

		trends = append(trends, TrendResult{
			Country:         g.country,
			Category:        g.category,
			SlopePctPerYear: slopePct,
			PValue:          fit.PValue,
			Significant:     fit.PValue < opts.SignificanceAlpha,
			ScaleAdjusted:   scaleAdjusted,
			Points:          fit.N,
		})
	}
	return trends, diags
}
