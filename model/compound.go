package model

import (
	"fmt"
	"slices"

	"github.com/astrokit/modelfit/errs"
)

// Op is a compound model combining operator.
type Op int

const (
	// OpAdd combines two models by elementwise addition.
	OpAdd Op = iota
	// OpSub combines two models by elementwise subtraction.
	OpSub
	// OpMul combines two models by elementwise multiplication.
	OpMul
	// OpDiv combines two models by elementwise division. Division by a
	// child output containing zero propagates IEEE Inf/NaN.
	OpDiv
)

// opSymbols maps operators to their arithmetic symbols.
var opSymbols = map[Op]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

// String returns the operator's arithmetic symbol.
func (op Op) String() string {
	if sym, exists := opSymbols[op]; exists {
		return sym
	}

	return "?"
}

// Compound combines two child models under an arithmetic operator. It owns
// deep copies of its children, so composing never mutates the originals and
// fitting a compound never writes through to them.
//
// The compound's parameter sequence is the concatenation of the children's
// parameters renamed <original>_<childIndex> (0 for the first child, 1 for
// the second), which keeps names unique and is stable under repeated
// construction. A Compound is itself a Model, so composition nests.
type Compound struct {
	paramSet
	op       Op
	children []Model
	offsets  []int
}

// Compose combines two models under the given operator. It fails with
// ErrUnknownOperator for an operator outside the supported set.
func Compose(op Op, a, b Model) (*Compound, error) {
	if _, exists := opSymbols[op]; !exists {
		return nil, fmt.Errorf("%w: operator %d", errs.ErrUnknownOperator, int(op))
	}

	children := []Model{a.Clone(), b.Clone()}
	var params []Parameter
	offsets := make([]int, len(children))
	for i, child := range children {
		offsets[i] = len(params)
		for _, p := range child.Params() {
			p.Name = fmt.Sprintf("%s_%d", p.Name, i)
			params = append(params, p)
		}
	}

	return &Compound{
		paramSet: newParamSet(params...),
		op:       op,
		children: children,
		offsets:  offsets,
	}, nil
}

// Add returns the elementwise sum of two models.
func Add(a, b Model) *Compound {
	c, _ := Compose(OpAdd, a, b)
	return c
}

// Sub returns the elementwise difference of two models.
func Sub(a, b Model) *Compound {
	c, _ := Compose(OpSub, a, b)
	return c
}

// Mul returns the elementwise product of two models.
func Mul(a, b Model) *Compound {
	c, _ := Compose(OpMul, a, b)
	return c
}

// Div returns the elementwise quotient of two models. Zeros in the divisor
// output propagate IEEE Inf/NaN.
func Div(a, b Model) *Compound {
	c, _ := Compose(OpDiv, a, b)
	return c
}

// Name returns the composed shape name, e.g. "(gaussian + const)".
func (c *Compound) Name() string {
	return fmt.Sprintf("(%s %s %s)", c.children[0].Name(), c.op, c.children[1].Name())
}

// Op returns the combining operator.
func (c *Compound) Op() Op { return c.op }

// pushValues copies the compound's current parameter values into the owned
// child copies so child evaluation sees the fitter's latest state.
func (c *Compound) pushValues() {
	for i, child := range c.children {
		off := c.offsets[i]
		for j, p := range child.Params() {
			_ = child.SetValue(p.Name, c.params[off+j].Value)
		}
	}
}

// Eval evaluates each child independently on the same samples and combines
// the outputs elementwise.
func (c *Compound) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}
	c.pushValues()

	left, err := c.children[0].Eval(x)
	if err != nil {
		return nil, err
	}
	right, err := c.children[1].Eval(x)
	if err != nil {
		return nil, err
	}
	if len(left) != len(x) || len(right) != len(x) {
		return nil, fmt.Errorf("%w: child outputs %d/%d for %d samples",
			errs.ErrShapeMismatch, len(left), len(right), len(x))
	}

	out := make([]float64, len(x))
	switch c.op {
	case OpAdd:
		for i := range out {
			out[i] = left[i] + right[i]
		}
	case OpSub:
		for i := range out {
			out[i] = left[i] - right[i]
		}
	case OpMul:
		for i := range out {
			out[i] = left[i] * right[i]
		}
	case OpDiv:
		// IEEE semantics: x/0 is ±Inf, 0/0 is NaN.
		for i := range out {
			out[i] = left[i] / right[i]
		}
	default:
		return nil, fmt.Errorf("%w: operator %d", errs.ErrUnknownOperator, int(c.op))
	}

	return out, nil
}

// HasDerivs reports whether every child provides analytic derivatives.
func (c *Compound) HasDerivs() bool {
	for _, child := range c.children {
		if !CanDerive(child) {
			return false
		}
	}

	return true
}

// Derivs returns the compound's analytic derivatives by the chain rule,
// one array per concatenated parameter. It requires every child to be a
// Deriver.
func (c *Compound) Derivs(x []float64) ([][]float64, error) {
	if !c.HasDerivs() {
		return nil, fmt.Errorf("model %q has no analytic derivatives", c.Name())
	}
	if err := checkInput(x); err != nil {
		return nil, err
	}
	c.pushValues()

	left, err := c.children[0].Eval(x)
	if err != nil {
		return nil, err
	}
	right, err := c.children[1].Eval(x)
	if err != nil {
		return nil, err
	}
	dLeft, err := c.children[0].(Deriver).Derivs(x)
	if err != nil {
		return nil, err
	}
	dRight, err := c.children[1].(Deriver).Derivs(x)
	if err != nil {
		return nil, err
	}

	derivs := make([][]float64, 0, len(c.params))
	for _, d := range dLeft {
		out := make([]float64, len(x))
		for i := range out {
			switch c.op {
			case OpAdd, OpSub:
				out[i] = d[i]
			case OpMul:
				out[i] = d[i] * right[i]
			case OpDiv:
				out[i] = d[i] / right[i]
			}
		}
		derivs = append(derivs, out)
	}
	for _, d := range dRight {
		out := make([]float64, len(x))
		for i := range out {
			switch c.op {
			case OpAdd:
				out[i] = d[i]
			case OpSub:
				out[i] = -d[i]
			case OpMul:
				out[i] = left[i] * d[i]
			case OpDiv:
				out[i] = -left[i] * d[i] / (right[i] * right[i])
			}
		}
		derivs = append(derivs, out)
	}

	return derivs, nil
}

// BasisFuncs returns the concatenated children's basis functions. Only
// additive compounds of linear-in-parameter children form a linear model;
// anything else fails with ErrNonLinearModel.
func (c *Compound) BasisFuncs(x []float64) ([][]float64, error) {
	if c.op != OpAdd {
		return nil, fmt.Errorf("%w: compound operator %q", errs.ErrNonLinearModel, c.op)
	}

	var basis [][]float64
	for _, child := range c.children {
		cb, ok := child.(Basis)
		if !ok {
			return nil, fmt.Errorf("%w: child %q", errs.ErrNonLinearModel, child.Name())
		}
		cols, err := cb.BasisFuncs(x)
		if err != nil {
			return nil, err
		}
		basis = append(basis, cols...)
	}

	return basis, nil
}

// Clone returns an independent copy with cloned children.
func (c *Compound) Clone() Model {
	children := make([]Model, len(c.children))
	for i, child := range c.children {
		children[i] = child.Clone()
	}

	return &Compound{
		paramSet: c.paramSet.clone(),
		op:       c.op,
		children: children,
		offsets:  slices.Clone(c.offsets),
	}
}
