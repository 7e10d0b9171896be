// Package modelfit provides parametric model fitting for astronomical data:
// 1-D model shapes, compound model composition, parameter constraints,
// least-squares fitters and goodness-of-fit statistics.
//
// The pipeline is a deterministic sequence of array transformations: raw
// (x, y, uncertainty) arrays flow through a model and a fitter into a
// fitted model, whose evaluation feeds the reduced chi-square evaluator.
// Everything is synchronous and single-threaded; the only shared state is
// the model instance a fitter mutates, so a model must not be fitted
// concurrently.
//
// # Basic Usage
//
// Fitting a Gaussian emission line to spectrum data:
//
//	import "github.com/astrokit/modelfit"
//
//	res, err := modelfit.FitGaussian(wavelengths, fluxes,
//	    fit.WithUncertainties(sigmas))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("reduced chi-square: %.3f\n", res.ReducedChiSq)
//
// Composing models and constraining parameters:
//
//	line := model.Add(model.NewGaussian(1, 6563, 20), model.NewConst(0.1))
//	line.Fix("amplitude_1")
//	fitter, _ := fit.NewLevMar()
//	res, err := fitter.Fit(line, wavelengths, fluxes)
//
// # Package Structure
//
// This package provides convenience wrappers around the model and fit
// packages, simplifying the most common use cases. For custom shapes,
// compound composition and fitter tuning, use those packages directly.
package modelfit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/astrokit/modelfit/errs"
	"github.com/astrokit/modelfit/fit"
	"github.com/astrokit/modelfit/model"
)

// Fit optimizes the model's free parameters against (x, y) with a default
// Levenberg–Marquardt fitter.
func Fit(m model.Model, x, y []float64, opts ...fit.FitOption) (*fit.Result, error) {
	fitter, err := fit.NewLevMar()
	if err != nil {
		return nil, err
	}

	return fitter.Fit(m, x, y, opts...)
}

// FitGaussian fits a Gaussian to (x, y) with initial guesses estimated
// from the data: peak value for the amplitude, the y-weighted centroid for
// the mean and the weighted spread for the standard deviation.
func FitGaussian(x, y []float64, opts ...fit.FitOption) (*fit.Result, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("%w: x=%d y=%d", errs.ErrLengthMismatch, len(x), len(y))
	}

	amplitude := floats.Max(y)
	base := floats.Min(y)

	// Weight each sample by its height above the baseline so the centroid
	// tracks the peak rather than the continuum.
	w := make([]float64, len(y))
	for i := range y {
		w[i] = y[i] - base
	}
	wSum := floats.Sum(w)

	mean := 0.0
	if wSum > 0 {
		for i := range x {
			mean += w[i] * x[i]
		}
		mean /= wSum
	} else {
		mean = floats.Sum(x) / float64(len(x))
	}

	variance := 0.0
	if wSum > 0 {
		for i := range x {
			d := x[i] - mean
			variance += w[i] * d * d
		}
		variance /= wSum
	}
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		stddev = 1
	}

	return Fit(model.NewGaussian(amplitude, mean, stddev), x, y, opts...)
}

// FitPolynomial fits a polynomial of the given degree to (x, y) exactly
// via linear least squares.
func FitPolynomial(x, y []float64, degree int, opts ...fit.FitOption) (*fit.Result, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative polynomial degree %d", errs.ErrInvalidParameter, degree)
	}

	coeffs := make([]float64, degree+1)

	return fit.NewLinearLSQ().Fit(model.NewPolynomial(coeffs...), x, y, opts...)
}
