package mobility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wideSeries(country string, startYear int, walk, bike func(i int) float64, n int) []CountryYearSeries {
	series := make([]CountryYearSeries, n)
	for i := 0; i < n; i++ {
		series[i] = CountryYearSeries{
			Country:   country,
			Year:      startYear + i,
			WalkShare: walk(i),
			BikeShare: bike(i),
		}
	}
	return series
}

func TestEstimateTrendsUndoesDisplayScale(t *testing.T) {
	// True bike trend is 0.002/year (0.2 pp/year). A x5 display scale on
	// the chart must not leak into the reported slope.
	series := wideSeries("UK", 2000,
		func(i int) float64 { return 0.2 },
		func(i int) float64 { return 0.01 + 0.002*float64(i) },
		5)

	opts := DefaultOptions()
	opts.BikeDisplayScale = map[string]float64{"UK": 5}

	points := FilterAndRescale(series, opts)
	trends, diags := EstimateTrends(points, opts)
	require.Empty(t, diags)
	require.Len(t, trends, 2)

	var bike, walk TrendResult
	for _, tr := range trends {
		switch tr.Category {
		case CategoryBike:
			bike = tr
		case CategoryWalk:
			walk = tr
		}
	}

	assert.InDelta(t, 0.2, bike.SlopePctPerYear, 1e-9)
	assert.True(t, bike.ScaleAdjusted)
	assert.InDelta(t, 0, walk.SlopePctPerYear, 1e-9)
	assert.False(t, walk.ScaleAdjusted)
}

func TestEstimateTrendsScaleRoundTripMatchesUnscaledFit(t *testing.T) {
	series := wideSeries("NL", 1975,
		func(i int) float64 { return 0.2 + 0.001*float64(i) },
		func(i int) float64 { return 0.3 - 0.004*float64(i) + 0.002*float64(i%2) },
		8)

	unscaled := DefaultOptions()
	scaled := DefaultOptions()
	scaled.BikeDisplayScale = map[string]float64{"NL": 5}

	plainTrends, _ := EstimateTrends(FilterAndRescale(series, unscaled), unscaled)
	scaledTrends, _ := EstimateTrends(FilterAndRescale(series, scaled), scaled)
	require.Len(t, plainTrends, 2)
	require.Len(t, scaledTrends, 2)

	for i := range plainTrends {
		assert.Equal(t, plainTrends[i].Country, scaledTrends[i].Country)
		assert.Equal(t, plainTrends[i].Category, scaledTrends[i].Category)
		assert.InDelta(t, plainTrends[i].SlopePctPerYear, scaledTrends[i].SlopePctPerYear, 1e-9)
	}
}

func TestEstimateTrendsOmitsGroupsWithTooFewPoints(t *testing.T) {
	series := wideSeries("US", 1999,
		func(i int) float64 { return 0.1 },
		func(i int) float64 { return 0.01 },
		3)

	opts := DefaultOptions()
	// Exclude all but one bike point.
	opts.TrendExclusions = []Exclusion{
		{Country: "US", Category: CategoryBike, Year: 2000, AtOrBefore: true},
	}

	points := FilterAndRescale(series, opts)
	trends, diags := EstimateTrends(points, opts)

	for _, tr := range trends {
		assert.False(t, tr.Country == "US" && tr.Category == CategoryBike,
			"bike group should be omitted after exclusions")
	}

	require.Len(t, diags, 1)
	assert.Equal(t, DiagInsufficientPoints, diags[0].Code)
	assert.Equal(t, "US", diags[0].Country)
	assert.Equal(t, "bike", diags[0].Category)

	// Walk is untouched and still fits.
	found := false
	for _, tr := range trends {
		if tr.Country == "US" && tr.Category == CategoryWalk {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEstimateTrendsSingleYearExclusion(t *testing.T) {
	// A 2005 boundary point with a wild value is excluded by year; the
	// fit over the remaining points recovers the clean slope.
	series := wideSeries("UK", 2000,
		func(i int) float64 { return 0.2 + 0.01*float64(i) },
		func(i int) float64 { return 0.02 },
		6)
	series[5].WalkShare = 0.9 // 2005 outlier

	opts := DefaultOptions()
	opts.TrendExclusions = []Exclusion{
		{Country: "UK", Category: CategoryWalk, Year: 2005},
	}

	trends, _ := EstimateTrends(FilterAndRescale(series, opts), opts)
	for _, tr := range trends {
		if tr.Category == CategoryWalk {
			assert.InDelta(t, 1.0, tr.SlopePctPerYear, 1e-9)
			assert.Equal(t, 5, tr.Points)
		}
	}
}

func TestEstimateTrendsSignificanceFlag(t *testing.T) {
	// A clean monotone series is significant at alpha 0.05; pure noise
	// around a flat line is not.
	rising := wideSeries("AA", 2000,
		func(i int) float64 { return 0.1 + 0.02*float64(i) + 0.0001*float64(i%2) },
		func(i int) float64 { return 0.01 },
		10)
	noisy := wideSeries("BB", 2000,
		func(i int) float64 { return 0.2 + 0.05*float64(i%2) - 0.03*float64(i%3) },
		func(i int) float64 { return 0.01 },
		10)

	opts := DefaultOptions()
	trends, _ := EstimateTrends(FilterAndRescale(append(rising, noisy...), opts), opts)

	for _, tr := range trends {
		if tr.Category != CategoryWalk {
			continue
		}
		switch tr.Country {
		case "AA":
			assert.True(t, tr.Significant, "steady rise should be significant")
		case "BB":
			assert.False(t, tr.Significant, "noise around flat should not be significant")
		}
	}
}
