package model

import (
	"fmt"

	"github.com/astrokit/modelfit/errs"
	"github.com/astrokit/modelfit/internal/options"
)

// EvalFunc evaluates a custom model. It receives the sample array and the
// current parameter values in declaration order, and must return an array
// of the same length as x.
type EvalFunc func(x, params []float64) []float64

// DerivFunc returns the analytic derivatives of a custom model: one array
// per parameter in declaration order, each the same length as x.
type DerivFunc func(x, params []float64) [][]float64

// Custom wraps a user evaluation function as a Model. A basic custom model
// carries only an EvalFunc; fitters fall back to numeric differentiation.
// Attaching a DerivFunc via WithDerivs makes it a full model whose analytic
// Jacobian is preferred by gradient-based fitters.
type Custom struct {
	paramSet
	name   string
	eval   EvalFunc
	derivs DerivFunc
}

// CustomOption is a functional option for NewCustom.
type CustomOption = options.Option[*Custom]

// WithDerivs attaches an analytic derivative function to a custom model.
func WithDerivs(fn DerivFunc) CustomOption {
	return options.NoError(func(c *Custom) {
		c.derivs = fn
	})
}

// NewCustom creates a model from a user evaluation function.
//
// paramNames declares the parameter order; defaults supplies one initial
// value per name. The two slices must have equal, non-zero length and the
// names must be unique, otherwise ErrInvalidParameter is returned.
func NewCustom(name string, paramNames []string, defaults []float64, eval EvalFunc, opts ...CustomOption) (*Custom, error) {
	if eval == nil {
		return nil, fmt.Errorf("%w: model %q has no evaluate function", errs.ErrInvalidParameter, name)
	}
	if len(paramNames) == 0 {
		return nil, fmt.Errorf("%w: model %q declares no parameters", errs.ErrInvalidParameter, name)
	}
	if len(paramNames) != len(defaults) {
		return nil, fmt.Errorf("%w: model %q declares %d parameters but %d defaults",
			errs.ErrInvalidParameter, name, len(paramNames), len(defaults))
	}

	params := make([]Parameter, len(paramNames))
	seen := make(map[string]struct{}, len(paramNames))
	for i, pn := range paramNames {
		if _, dup := seen[pn]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q in model %q", errs.ErrInvalidParameter, pn, name)
		}
		seen[pn] = struct{}{}
		params[i] = Parameter{Name: pn, Value: defaults[i], Default: defaults[i]}
	}

	c := &Custom{
		paramSet: newParamSet(params...),
		name:     name,
		eval:     eval,
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Name returns the name the custom model was registered with.
func (c *Custom) Name() string { return c.name }

// Eval evaluates the user function at every sample. The user function's
// output length is validated against the input length.
func (c *Custom) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	out := c.eval(x, c.Values())
	if len(out) != len(x) {
		return nil, fmt.Errorf("%w: model %q returned %d values for %d samples",
			errs.ErrShapeMismatch, c.name, len(out), len(x))
	}

	return out, nil
}

// HasDerivs reports whether an analytic derivative function is attached.
func (c *Custom) HasDerivs() bool { return c.derivs != nil }

// Derivs returns the analytic derivatives from the attached DerivFunc.
// The returned Jacobian is validated: one array per declared parameter,
// each the same length as x.
func (c *Custom) Derivs(x []float64) ([][]float64, error) {
	if c.derivs == nil {
		return nil, fmt.Errorf("model %q has no analytic derivatives", c.name)
	}
	if err := checkInput(x); err != nil {
		return nil, err
	}

	derivs := c.derivs(x, c.Values())
	if len(derivs) != len(c.params) {
		return nil, fmt.Errorf("%w: model %q returned %d gradients for %d parameters",
			errs.ErrShapeMismatch, c.name, len(derivs), len(c.params))
	}
	for i, d := range derivs {
		if len(d) != len(x) {
			return nil, fmt.Errorf("%w: gradient %d of model %q has %d values for %d samples",
				errs.ErrShapeMismatch, i, c.name, len(d), len(x))
		}
	}

	return derivs, nil
}

// Clone returns an independent copy sharing the evaluation closures.
func (c *Custom) Clone() Model {
	return &Custom{
		paramSet: c.paramSet.clone(),
		name:     c.name,
		eval:     c.eval,
		derivs:   c.derivs,
	}
}
