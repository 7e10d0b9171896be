package fit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/astrokit/modelfit/errs"
	"github.com/astrokit/modelfit/model"
)

// LinearLSQ fits models that are linear in their parameters by exact
// weighted least squares: QR factorization of the weighted design matrix
// built from the model's basis functions.
//
// Fixed parameters are supported; their contribution is subtracted from
// the observations before solving. Parameter bounds are not: an exact
// solve has no search to clip, so bounded free parameters fail fast with
// ErrInvalidConstraint. Use LevMar for bounded problems.
type LinearLSQ struct{}

// NewLinearLSQ creates a linear least-squares fitter.
func NewLinearLSQ() *LinearLSQ {
	return &LinearLSQ{}
}

// Fit solves for the model's free parameters and writes the solution back
// into the model. Fails with ErrNonLinearModel when the model does not
// expose parameter-independent basis functions.
func (f *LinearLSQ) Fit(m model.Model, x, y []float64, opts ...FitOption) (*Result, error) {
	pr, err := prepare(m, x, y, opts...)
	if err != nil {
		return nil, err
	}
	if pr.bounded() {
		return nil, fmt.Errorf("%w: linear fitter does not support parameter bounds", errs.ErrInvalidConstraint)
	}

	basis, ok := m.(model.Basis)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrNonLinearModel, m.Name())
	}
	cols, err := basis.BasisFuncs(x)
	if err != nil {
		return nil, err
	}
	if len(cols) != len(pr.params) {
		return nil, fmt.Errorf("%w: %d basis functions for %d parameters",
			errs.ErrShapeMismatch, len(cols), len(pr.params))
	}
	for i, col := range cols {
		if len(col) != len(x) {
			return nil, fmt.Errorf("%w: basis %d has %d values for %d samples",
				errs.ErrShapeMismatch, i, len(col), len(x))
		}
	}

	n, k := len(x), len(pr.freeIdx)

	// Move fixed-parameter contributions to the right-hand side.
	rhs := make([]float64, n)
	copy(rhs, y)
	for i, p := range pr.params {
		if !p.Fixed {
			continue
		}
		for j := range rhs {
			rhs[j] -= p.Value * cols[i][j]
		}
	}

	a := mat.NewDense(n, k, nil)
	for j, idx := range pr.freeIdx {
		for i := 0; i < n; i++ {
			a.Set(i, j, cols[idx][i]*pr.sqrtW[i])
		}
	}
	for i := range rhs {
		rhs[i] *= pr.sqrtW[i]
	}

	b := mat.NewVecDense(n, rhs)
	c := mat.NewVecDense(k, nil)

	var qr mat.QR
	qr.Factorize(a)
	if err := qr.SolveVecTo(c, false, b); err != nil {
		return nil, fmt.Errorf("could not solve QR: %w", err)
	}

	sol := make([]float64, k)
	for j := 0; j < k; j++ {
		sol[j] = c.AtVec(j)
	}
	if err := pr.apply(sol); err != nil {
		return nil, err
	}

	// The weighted design matrix is the Jacobian of a linear model.
	return pr.buildResult(a)
}
