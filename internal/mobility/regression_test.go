package mobility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinearGoldenValues(t *testing.T) {
	// Hand-computed: slope 1.1, intercept 1.1, residual SS 2.7 on 2 df,
	// stderr sqrt(1.35/5), t ~ 2.1169, two-sided p ~ 0.1685.
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 2, 5}

	fit, err := FitLinear(xs, ys)
	require.NoError(t, err)

	assert.Equal(t, 4, fit.N)
	assert.InDelta(t, 1.1, fit.Slope, 1e-9)
	assert.InDelta(t, 1.1, fit.Intercept, 1e-9)
	assert.InDelta(t, 0.5196152, fit.StdErr, 1e-6)
	assert.InDelta(t, 2.116951, fit.TStat, 1e-5)
	assert.InDelta(t, 0.1685, fit.PValue, 1e-3)
}

func TestFitLinearPerfectFitIsMaximallySignificant(t *testing.T) {
	xs := []float64{2000, 2001, 2002, 2003}
	ys := []float64{0.1, 0.2, 0.3, 0.4}

	fit, err := FitLinear(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, fit.Slope, 1e-9)
	assert.Zero(t, fit.PValue)
}

func TestFitLinearTwoPointsHasNoSignificance(t *testing.T) {
	fit, err := FitLinear([]float64{2000, 2005}, []float64{0.2, 0.3})
	require.NoError(t, err)
	assert.InDelta(t, 0.02, fit.Slope, 1e-9)
	assert.Equal(t, 1.0, fit.PValue, "no residual df means significance cannot be assessed")
}

func TestFitLinearErrors(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
	}{
		{name: "too_few_points", xs: []float64{2000}, ys: []float64{0.5}},
		{name: "mismatched_lengths", xs: []float64{1, 2}, ys: []float64{1}},
		{name: "no_x_variation", xs: []float64{2000, 2000, 2000}, ys: []float64{0.1, 0.2, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitLinear(tt.xs, tt.ys)
			assert.Error(t, err)
		})
	}
}
