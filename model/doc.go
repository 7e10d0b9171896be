// Package model provides parametric 1-D models for fitting astronomical data.
//
// A model maps an independent-variable sample array to a dependent-variable
// array of the same length, driven by a named, ordered set of parameters.
// Built-in shapes (Const, Linear, Polynomial, Gaussian, Lorentz, Sine,
// PowerLaw) reproduce their standard closed forms exactly and provide
// analytic derivatives. Custom shapes wrap any user evaluation function,
// optionally with an analytic Jacobian.
//
// # Basic Usage
//
// Construct a model with literal parameter values and evaluate it:
//
//	g := model.NewGaussian(1.0, 0.0, 0.2)
//	y, err := g.Eval([]float64{-0.5, 0.0, 0.5})
//
// # Compound Models
//
// Two models combine under an arithmetic operator into a new model without
// mutating the originals. Parameter names gain a positional suffix
// (index 0 for the first child, 1 for the second) to stay unique:
//
//	line := model.Add(model.NewGaussian(1, 6563, 20), model.NewConst(0.1))
//	// parameters: amplitude_0, mean_0, stddev_0, amplitude_1
//
// A compound is itself a Model, so composition nests. Division by a child
// output containing zero propagates IEEE Inf/NaN rather than raising, to
// match standard floating-point fitting libraries.
//
// # Constraints
//
// Any parameter can be frozen with Fix or bounded with SetBounds before
// fitting. Constraints are metadata consulted by the fitter; Eval itself
// never clips or skips parameters.
package model
