// Package stats provides goodness-of-fit statistics for fitted models.
//
// All functions are pure: deterministic for identical inputs, no side
// effects, no state.
package stats

import (
	"fmt"
	"math"

	"github.com/astrokit/modelfit/errs"
)

// ReducedChiSquare computes the reduced chi-square statistic:
//
//	χ²_red = (1 / (n - freeParams)) * Σ ((fit_i - observed_i) / uncertainty_i)²
//
// where n is the sample count and freeParams the number of non-fixed fitted
// parameters. The three arrays must have equal length, every uncertainty
// must be positive, and n - freeParams must be at least 1.
//
// Interpretation: values near 1 indicate a good fit; values well above 1
// indicate underfitting or underestimated uncertainties; values well below
// 1 indicate overfitting or overestimated uncertainties.
func ReducedChiSquare(fit, observed, uncertainty []float64, freeParams int) (float64, error) {
	n := len(observed)
	if len(fit) != n || len(uncertainty) != n {
		return 0, fmt.Errorf("%w: fit=%d observed=%d uncertainty=%d",
			errs.ErrLengthMismatch, len(fit), n, len(uncertainty))
	}
	if freeParams < 0 {
		return 0, fmt.Errorf("%w: negative free parameter count %d", errs.ErrDegreesOfFreedom, freeParams)
	}
	if n-freeParams <= 0 {
		return 0, fmt.Errorf("%w: %d samples, %d free parameters", errs.ErrDegreesOfFreedom, n, freeParams)
	}

	sum := 0.0
	for i := range observed {
		if uncertainty[i] <= 0 {
			return 0, fmt.Errorf("%w: uncertainty[%d] = %g", errs.ErrInvalidUncertainty, i, uncertainty[i])
		}
		r := (fit[i] - observed[i]) / uncertainty[i]
		sum += r * r
	}

	return sum / float64(n-freeParams), nil
}

// RSquared computes the coefficient of determination:
//
//	R² = 1 - SS_res / SS_tot
//
// Values near 1 indicate that the model explains most of the variance in
// the observations. Returns 0 when the observations have zero variance.
func RSquared(observed, predicted []float64) (float64, error) {
	if len(observed) != len(predicted) {
		return 0, fmt.Errorf("%w: observed=%d predicted=%d",
			errs.ErrLengthMismatch, len(observed), len(predicted))
	}
	if len(observed) == 0 {
		return 0, nil
	}

	mean := 0.0
	for _, v := range observed {
		mean += v
	}
	mean /= float64(len(observed))

	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0, nil
	}

	return 1.0 - ssRes/ssTot, nil
}

// RMSE computes the root mean square error between observations and
// predictions, in the same units as the observations.
func RMSE(observed, predicted []float64) (float64, error) {
	if len(observed) != len(predicted) {
		return 0, fmt.Errorf("%w: observed=%d predicted=%d",
			errs.ErrLengthMismatch, len(observed), len(predicted))
	}
	if len(observed) == 0 {
		return 0, nil
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed))), nil
}
