package mobility

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// FitResult holds a simple ordinary-least-squares fit of y against x.
type FitResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	StdErr    float64 `json:"std_err"`
	TStat     float64 `json:"t_stat"`
	PValue    float64 `json:"p_value"`
	N         int     `json:"n"`
}

// FitLinear fits y = intercept + slope*x by closed-form simple linear
// regression and tests the slope against the zero-slope null with a
// two-sided t-test (n-2 degrees of freedom).
//
// At least two points with distinct x values are required. With exactly two
// points the fit is exact and no residual degrees of freedom remain, so the
// p-value is reported as 1 (significance cannot be assessed).
func FitLinear(xs, ys []float64) (FitResult, error) {
	if len(xs) != len(ys) {
		return FitResult{}, fmt.Errorf("mismatched inputs: %d x values, %d y values", len(xs), len(ys))
	}
	n := len(xs)
	if n < 2 {
		return FitResult{}, fmt.Errorf("need at least 2 points, got %d", n)
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return FitResult{}, fmt.Errorf("no variation in x across %d points", n)
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	fit := FitResult{
		Slope:     slope,
		Intercept: intercept,
		PValue:    1,
		N:         n,
	}

	df := n - 2
	if df < 1 {
		return fit, nil
	}

	var rss float64
	for i := 0; i < n; i++ {
		resid := ys[i] - (intercept + slope*xs[i])
		rss += resid * resid
	}
	fit.StdErr = math.Sqrt(rss / float64(df) / sxx)

	if fit.StdErr == 0 {
		// Perfect fit: the slope is exact. A nonzero slope is maximally
		// significant; a zero slope is indistinguishable from the null.
		if slope != 0 {
			fit.TStat = math.Inf(sign(slope))
			fit.PValue = 0
		}
		return fit, nil
	}

	fit.TStat = slope / fit.StdErr
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	fit.PValue = 2 * (1 - dist.CDF(math.Abs(fit.TStat)))
	return fit, nil
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
