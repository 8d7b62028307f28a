package mobility

import (
	"fmt"
	"sort"
)

// FilterAndRescale applies the country allow list and per-country year
// trims, then flattens the wide series rows into long-form chart points.
// Bike shares are multiplied by the country's display scale so walk and
// bike magnitudes fit on one chart; the trend estimator undoes the same
// factor before reporting slopes.
func FilterAndRescale(series []CountryYearSeries, opts Options) []SeriesPoint {
	var points []SeriesPoint
	for _, row := range series {
		if !opts.Allowed(row.Country) {
			continue
		}
		if min, ok := opts.MinYearExclusive[row.Country]; ok && row.Year <= min {
			continue
		}
		scale := opts.BikeScale(row.Country)
		points = append(points,
			SeriesPoint{
				Country:  row.Country,
				Year:     row.Year,
				Category: CategoryWalk,
				Share:    row.WalkShare,
				Label:    seriesLabel(row.Country, CategoryWalk),
			},
			SeriesPoint{
				Country:  row.Country,
				Year:     row.Year,
				Category: CategoryBike,
				Share:    row.BikeShare * scale,
				Label:    seriesLabel(row.Country, CategoryBike),
			},
		)
	}
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Category < b.Category
	})
	return points
}

// seriesLabel builds the chart series key for a country and category.
func seriesLabel(country string, category Category) string {
	return fmt.Sprintf("%s:%s", country, category)
}
