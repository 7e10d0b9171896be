package fit

import (
	"fmt"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"

	"github.com/astrokit/modelfit/internal/options"
	"github.com/astrokit/modelfit/model"
)

// Config holds the Levenberg–Marquardt tuning knobs.
type Config struct {
	// MaxIterations caps the optimizer's iteration count.
	MaxIterations int
	// ObjectiveTol stops the search once the objective falls below it.
	ObjectiveTol float64
	// Tau scales the initial damping factor.
	Tau float64
	// Eps1 is the gradient convergence threshold.
	Eps1 float64
	// Eps2 is the step-size convergence threshold.
	Eps2 float64
}

// defaultConfig returns the default LevMar configuration.
func defaultConfig() Config {
	return Config{
		MaxIterations: 100,
		ObjectiveTol:  1e-16,
		Tau:           1e-6,
		Eps1:          1e-8,
		Eps2:          1e-8,
	}
}

// Option is a functional option for NewLevMar.
type Option = options.Option[*Config]

// WithMaxIterations sets the iteration cap. Must be positive.
func WithMaxIterations(n int) Option {
	return options.New(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		cfg.MaxIterations = n

		return nil
	})
}

// WithObjectiveTol sets the objective convergence tolerance.
func WithObjectiveTol(tol float64) Option {
	return options.New(func(cfg *Config) error {
		if tol <= 0 {
			return fmt.Errorf("objective tolerance must be positive, got %g", tol)
		}
		cfg.ObjectiveTol = tol

		return nil
	})
}

// WithTau sets the initial damping scale.
func WithTau(tau float64) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Tau = tau
	})
}

// WithEps1 sets the gradient convergence threshold.
func WithEps1(eps float64) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Eps1 = eps
	})
}

// WithEps2 sets the step-size convergence threshold.
func WithEps2(eps float64) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Eps2 = eps
	})
}

// LevMar fits arbitrary models by Levenberg–Marquardt least squares.
// Analytic derivatives are preferred when the model provides them;
// otherwise the Jacobian is approximated numerically.
type LevMar struct {
	cfg Config
}

// NewLevMar creates a Levenberg–Marquardt fitter.
func NewLevMar(opts ...Option) (*LevMar, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &LevMar{cfg: cfg}, nil
}

// Fit optimizes the model's free parameters against (x, y) and writes the
// solution back into the model. See the package documentation for the
// constraint and weighting semantics.
func (f *LevMar) Fit(m model.Model, x, y []float64, opts ...FitOption) (*Result, error) {
	pr, err := prepare(m, x, y, opts...)
	if err != nil {
		return nil, err
	}

	// The lm callbacks cannot return errors, so the first evaluation
	// failure is captured and surfaced after the solver returns.
	var evalErr error
	resid := func(dst, p []float64) {
		if evalErr != nil {
			zero(dst)
			return
		}
		if err := pr.apply(p); err != nil {
			evalErr = err
			zero(dst)

			return
		}
		out, err := pr.m.Eval(pr.x)
		if err != nil {
			evalErr = err
			zero(dst)

			return
		}
		for i := range dst {
			dst[i] = (out[i] - pr.y[i]) * pr.sqrtW[i]
		}
	}

	numJac := lm.NumJac{Func: resid}
	jacFn := numJac.Jac
	if model.CanDerive(pr.m) {
		jacFn = func(dst *mat.Dense, p []float64) {
			if evalErr != nil {
				return
			}
			if err := pr.apply(p); err != nil {
				evalErr = err
				return
			}
			derivs, err := pr.m.(model.Deriver).Derivs(pr.x)
			if err != nil {
				evalErr = err
				return
			}
			for j, idx := range pr.freeIdx {
				for i := range pr.x {
					dst.Set(i, j, derivs[idx][i]*pr.sqrtW[i])
				}
			}
		}
	}

	prob := lm.LMProblem{
		Dim:        len(pr.freeIdx),
		Size:       len(pr.x),
		Func:       resid,
		Jac:        jacFn,
		InitParams: pr.initValues(),
		Tau:        f.cfg.Tau,
		Eps1:       f.cfg.Eps1,
		Eps2:       f.cfg.Eps2,
	}

	res, lmErr := lm.LM(prob, &lm.Settings{
		Iterations:   f.cfg.MaxIterations,
		ObjectiveTol: f.cfg.ObjectiveTol,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	if lmErr != nil {
		return nil, fmt.Errorf("levenberg-marquardt: %w", lmErr)
	}

	if err := pr.apply(res.X); err != nil {
		return nil, err
	}

	// Jacobian at the solution, for the covariance estimate.
	jac := mat.NewDense(len(pr.x), len(pr.freeIdx), nil)
	jacFn(jac, res.X)
	if evalErr != nil {
		return nil, evalErr
	}

	return pr.buildResult(jac)
}

func zero(dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
}
