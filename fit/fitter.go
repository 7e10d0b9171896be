package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/astrokit/modelfit/errs"
	"github.com/astrokit/modelfit/internal/options"
	"github.com/astrokit/modelfit/model"
	"github.com/astrokit/modelfit/stats"
)

// fitConfig holds per-call fit settings.
type fitConfig struct {
	weights []float64
	sigmas  []float64
}

// FitOption is a functional option for a single Fit call.
type FitOption = options.Option[*fitConfig]

// WithWeights supplies one multiplicative residual weight per data point.
// Mutually exclusive with WithUncertainties.
func WithWeights(w []float64) FitOption {
	return options.NoError(func(cfg *fitConfig) {
		cfg.weights = w
	})
}

// WithUncertainties supplies one measurement uncertainty (standard
// deviation) per data point. Residuals are weighted by 1/σ and the
// resulting Result carries a reduced chi-square statistic. Mutually
// exclusive with WithWeights.
func WithUncertainties(sigma []float64) FitOption {
	return options.NoError(func(cfg *fitConfig) {
		cfg.sigmas = sigma
	})
}

// Result holds a completed fit.
//
// Fields:
//   - Model: The fitted model, parameter values updated in place
//   - FreeParams: Names of the optimized parameters, in model order
//   - Covariance: Free-parameter covariance matrix indexed like FreeParams,
//     nil when it could not be computed
//   - ReducedChiSq: Reduced chi-square of the fit, NaN unless per-point
//     uncertainties were supplied
type Result struct {
	Model        model.Model
	FreeParams   []string
	Covariance   *mat.Dense
	ReducedChiSq float64
}

// String returns a short human-readable fit summary.
func (r *Result) String() string {
	if math.IsNaN(r.ReducedChiSq) {
		return fmt.Sprintf("Result{Model: %s, FreeParams: %d}", r.Model.Name(), len(r.FreeParams))
	}

	return fmt.Sprintf("Result{Model: %s, FreeParams: %d, ReducedChiSq: %.4f}",
		r.Model.Name(), len(r.FreeParams), r.ReducedChiSq)
}

// problem is the validated state shared by the fitters.
type problem struct {
	m       model.Model
	x, y    []float64
	sqrtW   []float64
	sigmas  []float64
	params  []model.Parameter
	freeIdx []int
	lo, hi  []float64
}

// prepare validates data, weights and constraints, and splits the model's
// parameters into fixed and free sets.
func prepare(m model.Model, x, y []float64, opts ...FitOption) (*problem, error) {
	cfg := &fitConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("%w: no data points", errs.ErrInsufficientData)
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: x=%d y=%d", errs.ErrLengthMismatch, n, len(y))
	}
	if cfg.weights != nil && cfg.sigmas != nil {
		return nil, fmt.Errorf("%w: weights and uncertainties are mutually exclusive", errs.ErrInvalidUncertainty)
	}

	sqrtW := make([]float64, n)
	for i := range sqrtW {
		sqrtW[i] = 1
	}
	switch {
	case cfg.weights != nil:
		if len(cfg.weights) != n {
			return nil, fmt.Errorf("%w: x=%d weights=%d", errs.ErrLengthMismatch, n, len(cfg.weights))
		}
		for i, w := range cfg.weights {
			if w < 0 {
				return nil, fmt.Errorf("negative weight %g at index %d", w, i)
			}
			sqrtW[i] = math.Sqrt(w)
		}
	case cfg.sigmas != nil:
		if len(cfg.sigmas) != n {
			return nil, fmt.Errorf("%w: x=%d uncertainties=%d", errs.ErrLengthMismatch, n, len(cfg.sigmas))
		}
		for i, s := range cfg.sigmas {
			if s <= 0 {
				return nil, fmt.Errorf("%w: uncertainty[%d] = %g", errs.ErrInvalidUncertainty, i, s)
			}
			sqrtW[i] = 1 / s
		}
	}

	params := m.Params()
	var freeIdx []int
	var lo, hi []float64
	for i, p := range params {
		if p.Fixed {
			continue
		}
		l, h := math.Inf(-1), math.Inf(1)
		if p.Min != nil {
			l = *p.Min
		}
		if p.Max != nil {
			h = *p.Max
		}
		if l > h {
			return nil, fmt.Errorf("%w: parameter %q has min %g > max %g", errs.ErrInvalidConstraint, p.Name, l, h)
		}
		freeIdx = append(freeIdx, i)
		lo = append(lo, l)
		hi = append(hi, h)
	}

	if len(freeIdx) == 0 {
		return nil, fmt.Errorf("%w: model %q has no free parameters", errs.ErrInsufficientData, m.Name())
	}
	if n < len(freeIdx) {
		return nil, fmt.Errorf("%w: %d data points for %d free parameters", errs.ErrInsufficientData, n, len(freeIdx))
	}

	return &problem{
		m:       m,
		x:       x,
		y:       y,
		sqrtW:   sqrtW,
		sigmas:  cfg.sigmas,
		params:  params,
		freeIdx: freeIdx,
		lo:      lo,
		hi:      hi,
	}, nil
}

// bounded reports whether any free parameter carries bounds.
func (pr *problem) bounded() bool {
	for j := range pr.freeIdx {
		if !math.IsInf(pr.lo[j], -1) || !math.IsInf(pr.hi[j], 1) {
			return true
		}
	}

	return false
}

// clamp restricts v to the free parameter's inclusive bounds.
func (pr *problem) clamp(j int, v float64) float64 {
	if v < pr.lo[j] {
		return pr.lo[j]
	}
	if v > pr.hi[j] {
		return pr.hi[j]
	}

	return v
}

// initValues returns the free parameters' starting values, clamped into
// their bounds so the search begins inside the feasible region.
func (pr *problem) initValues() []float64 {
	init := make([]float64, len(pr.freeIdx))
	for j, idx := range pr.freeIdx {
		init[j] = pr.clamp(j, pr.params[idx].Value)
	}

	return init
}

// apply writes the free-parameter vector back into the model, clamping
// each value to its bounds. Fixed parameters keep their assigned values.
func (pr *problem) apply(free []float64) error {
	for j, idx := range pr.freeIdx {
		if err := pr.m.SetValue(pr.params[idx].Name, pr.clamp(j, free[j])); err != nil {
			return err
		}
	}

	return nil
}

// freeNames returns the free parameters' names in model order.
func (pr *problem) freeNames() []string {
	names := make([]string, len(pr.freeIdx))
	for j, idx := range pr.freeIdx {
		names[j] = pr.params[idx].Name
	}

	return names
}

// buildResult assembles the Result from the model at its solution and the
// weighted Jacobian evaluated there. jac may be nil when unavailable.
func (pr *problem) buildResult(jac *mat.Dense) (*Result, error) {
	fitted, err := pr.m.Eval(pr.x)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Model:        pr.m,
		FreeParams:   pr.freeNames(),
		Covariance:   pr.covariance(jac, fitted),
		ReducedChiSq: math.NaN(),
	}

	if pr.sigmas != nil {
		chisq, err := stats.ReducedChiSquare(fitted, pr.y, pr.sigmas, len(pr.freeIdx))
		if err == nil {
			res.ReducedChiSq = chisq
		}
	}

	return res, nil
}

// covariance computes the free-parameter covariance (JᵀJ)⁻¹ from the
// weighted Jacobian at the solution. Without per-point uncertainties the
// matrix is scaled by the residual variance. Returns nil when the matrix
// is singular or the degrees of freedom vanish.
func (pr *problem) covariance(jac *mat.Dense, fitted []float64) *mat.Dense {
	if jac == nil {
		return nil
	}

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var cov mat.Dense
	if err := cov.Inverse(&jtj); err != nil {
		return nil
	}

	if pr.sigmas == nil {
		dof := len(pr.x) - len(pr.freeIdx)
		if dof <= 0 {
			return nil
		}
		ssr := 0.0
		for i := range pr.x {
			r := (fitted[i] - pr.y[i]) * pr.sqrtW[i]
			ssr += r * r
		}
		cov.Scale(ssr/float64(dof), &cov)
	}

	return &cov
}
