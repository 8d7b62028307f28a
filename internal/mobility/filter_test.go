package mobility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterAndRescale(t *testing.T) {
	series := []CountryYearSeries{
		{Country: "NL", Year: 1975, WalkShare: 0.2, BikeShare: 0.3},
		{Country: "NL", Year: 1980, WalkShare: 0.25, BikeShare: 0.28},
		{Country: "US", Year: 1998, WalkShare: 0.1, BikeShare: 0.01},
		{Country: "US", Year: 2003, WalkShare: 0.09, BikeShare: 0.012},
		{Country: "FR", Year: 1999, WalkShare: 0.3, BikeShare: 0.05},
	}
	opts := DefaultOptions()
	opts.CountryAllowList = []string{"NL", "US"}
	opts.MinYearExclusive = map[string]int{"NL": 1975, "US": 1998}
	opts.BikeDisplayScale = map[string]float64{"US": 5}

	points := FilterAndRescale(series, opts)

	// FR is not allowed; NL 1975 and US 1998 are trimmed (year <= bound).
	require.Len(t, points, 4)

	byLabel := make(map[string]SeriesPoint)
	for _, p := range points {
		byLabel[p.Label] = p
	}

	nlBike, ok := byLabel["NL:bike"]
	require.True(t, ok)
	assert.Equal(t, 1980, nlBike.Year)
	assert.InDelta(t, 0.28, nlBike.Share, 1e-9, "unlisted countries keep scale 1")

	usBike, ok := byLabel["US:bike"]
	require.True(t, ok)
	assert.Equal(t, 2003, usBike.Year)
	assert.InDelta(t, 0.06, usBike.Share, 1e-9, "bike share carries the x5 display scale")

	usWalk := byLabel["US:walk"]
	assert.InDelta(t, 0.09, usWalk.Share, 1e-9, "walk shares are never rescaled")
}

func TestFilterIsIdempotent(t *testing.T) {
	series := []CountryYearSeries{
		{Country: "UK", Year: 2000, WalkShare: 0.2, BikeShare: 0.02},
		{Country: "UK", Year: 2005, WalkShare: 0.22, BikeShare: 0.018},
		{Country: "DE", Year: 2001, WalkShare: 0.3, BikeShare: 0.1},
	}
	opts := DefaultOptions()
	opts.CountryAllowList = []string{"UK"}

	once := FilterAndRescale(series, opts)

	// Re-filtering the already-filtered countries changes nothing.
	var kept []CountryYearSeries
	for _, row := range series {
		if opts.Allowed(row.Country) {
			kept = append(kept, row)
		}
	}
	twice := FilterAndRescale(kept, opts)
	assert.Equal(t, once, twice)
}

func TestFilterEmptyAllowListAdmitsEverything(t *testing.T) {
	series := []CountryYearSeries{
		{Country: "AA", Year: 2000, WalkShare: 0.5, BikeShare: 0.1},
		{Country: "BB", Year: 2000, WalkShare: 0.4, BikeShare: 0.2},
	}

	points := FilterAndRescale(series, DefaultOptions())
	assert.Len(t, points, 4)
}
