package mobility

// BuildSeries computes the per-year walking and cycling shares for one
// country from the aggregated totals.
//
// The retained year set is exactly the years present in the country's
// AnyTravel cells: a year with walk or bike minutes but no travel
// denominator is meaningless and dropped. Missing Walk or Bike cells for a
// retained year count as zero minutes, not missing data.
//
// Rows come back ordered by year ascending. Diagnostics (empty category,
// short history, degenerate denominator) are returned, not logged, so the
// caller decides how to surface them.
func BuildSeries(totals *Totals, country string, minYears int) ([]CountryYearSeries, []Diagnostic) {
	years := totals.Years(country, CategoryAnyTravel)
	if len(years) == 0 {
		return nil, nil
	}

	var diags []Diagnostic
	if len(totals.Years(country, CategoryWalk)) == 0 {
		diags = append(diags, newDataAbsence(country, CategoryWalk))
	}
	if len(totals.Years(country, CategoryBike)) == 0 {
		diags = append(diags, newDataAbsence(country, CategoryBike))
	}
	if len(years) < minYears {
		diags = append(diags, newInsufficientHistory(country, len(years), minYears))
	}

	series := make([]CountryYearSeries, 0, len(years))
	for _, year := range years {
		allModes, _ := totals.Get(country, year, CategoryAnyTravel)
		if allModes <= 0 {
			// Cannot happen for a year selected from AnyTravel cells
			// unless every episode had zero duration. Fail closed on
			// the row instead of emitting NaN shares.
			diags = append(diags, newDegenerateDenominator(country, year))
			continue
		}
		walk, _ := totals.Get(country, year, CategoryWalk)
		bike, _ := totals.Get(country, year, CategoryBike)
		series = append(series, CountryYearSeries{
			Country:   country,
			Year:      year,
			WalkShare: walk / allModes,
			BikeShare: bike / allModes,
		})
	}
	return series, diags
}
