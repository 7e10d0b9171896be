package model

import (
	"fmt"

	"github.com/astrokit/modelfit/errs"
)

// Model is a parametrized function mapping an independent-variable array to
// a dependent-variable array of equal length.
//
// A model is constructed with initial parameter values and mutated in place
// only by a fitter writing back its solution, or by explicit constraint
// edits (SetValue, Fix, Free, SetBounds). Concurrent fits against the same
// model instance are not supported.
type Model interface {
	// Name returns the model's shape name (e.g. "gaussian").
	Name() string
	// Params returns a copy of the ordered parameter sequence.
	Params() []Parameter
	// SetValue assigns a new current value to the named parameter.
	SetValue(name string, value float64) error
	// Fix freezes the named parameter at its current value for fitting.
	Fix(name string) error
	// Free releases a previously fixed parameter.
	Free(name string) error
	// SetBounds sets inclusive [min, max] bounds on the named parameter.
	SetBounds(name string, minVal, maxVal float64) error
	// Eval evaluates the model at every sample in x using the current
	// parameter values. The result has the same length as x.
	Eval(x []float64) ([]float64, error)
	// Clone returns an independent copy with its own parameter storage.
	Clone() Model
}

// Deriver is implemented by models that can provide analytic derivatives.
//
// Derivs returns one gradient array per declared parameter, in declaration
// order, each the same length as x. Gradient-based fitters prefer analytic
// derivatives over numeric differentiation when available.
type Deriver interface {
	Derivs(x []float64) ([][]float64, error)
}

// hasDerivs is implemented by models whose analytic derivatives are only
// conditionally present (custom models, compounds of mixed children).
type hasDerivs interface {
	HasDerivs() bool
}

// CanDerive reports whether m provides analytic derivatives.
func CanDerive(m Model) bool {
	if _, ok := m.(Deriver); !ok {
		return false
	}
	if h, ok := m.(hasDerivs); ok {
		return h.HasDerivs()
	}

	return true
}

// Basis is implemented by models whose output is a linear combination of
// parameter-independent basis functions, one per parameter. Such models can
// be fitted exactly by linear least squares.
type Basis interface {
	// BasisFuncs returns one basis array per declared parameter, each the
	// same length as x.
	BasisFuncs(x []float64) ([][]float64, error)
}

// checkInput rejects empty sample arrays before evaluation.
func checkInput(x []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: empty input array", errs.ErrShapeMismatch)
	}

	return nil
}
