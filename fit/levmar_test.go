package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/modelfit/errs"
	"github.com/astrokit/modelfit/model"
)

// linspace returns n evenly spaced samples over [lo, hi].
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}

	return out
}

func evalOrFail(t *testing.T, m model.Model, x []float64) []float64 {
	t.Helper()
	out, err := m.Eval(x)
	require.NoError(t, err)

	return out
}

func TestLevMar_FitGaussian(t *testing.T) {
	x := linspace(-1, 3, 50)
	truth := model.NewGaussian(2, 1, 0.5)
	y := evalOrFail(t, truth, x)

	m := model.NewGaussian(1.5, 0.8, 0.8)
	fitter, err := NewLevMar()
	require.NoError(t, err)

	res, err := fitter.Fit(m, x, y)
	require.NoError(t, err)
	require.Same(t, model.Model(m), res.Model)

	params := m.Params()
	require.InDelta(t, 2.0, params[0].Value, 1e-4)
	require.InDelta(t, 1.0, params[1].Value, 1e-4)
	require.InDelta(t, 0.5, math.Abs(params[2].Value), 1e-4)

	require.Equal(t, []string{"amplitude", "mean", "stddev"}, res.FreeParams)
	require.NotNil(t, res.Covariance)
	r, c := res.Covariance.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	require.True(t, math.IsNaN(res.ReducedChiSq))
}

func TestLevMar_NumericJacobianFallback(t *testing.T) {
	// A basic custom model has no analytic derivatives, forcing the
	// numeric Jacobian path.
	x := linspace(0, 4, 40)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3 * math.Exp(-0.7*xi)
	}

	m, err := model.NewCustom("expdecay", []string{"amplitude", "rate"}, []float64{2, 1},
		func(x, p []float64) []float64 {
			out := make([]float64, len(x))
			for i, xi := range x {
				out[i] = p[0] * math.Exp(-p[1]*xi)
			}
			return out
		})
	require.NoError(t, err)
	require.False(t, model.CanDerive(m))

	fitter, err := NewLevMar()
	require.NoError(t, err)

	_, err = fitter.Fit(m, x, y)
	require.NoError(t, err)

	params := m.Params()
	require.InDelta(t, 3.0, params[0].Value, 1e-3)
	require.InDelta(t, 0.7, params[1].Value, 1e-3)
}

func TestLevMar_UncertaintiesFillChiSquare(t *testing.T) {
	x := linspace(-1, 3, 30)
	y := evalOrFail(t, model.NewGaussian(2, 1, 0.5), x)
	sigmas := make([]float64, len(x))
	for i := range sigmas {
		sigmas[i] = 0.1
	}

	m := model.NewGaussian(1.8, 0.9, 0.6)
	fitter, err := NewLevMar()
	require.NoError(t, err)

	res, err := fitter.Fit(m, x, y, WithUncertainties(sigmas))
	require.NoError(t, err)
	require.False(t, math.IsNaN(res.ReducedChiSq))
	// Noise-free data: the statistic collapses toward zero.
	require.Less(t, res.ReducedChiSq, 1e-6)
}

func TestLevMar_FixedParameterKeepsValue(t *testing.T) {
	x := linspace(-1, 3, 40)
	y := evalOrFail(t, model.NewGaussian(2, 1, 0.5), x)

	m := model.NewGaussian(1.5, 1, 0.8)
	require.NoError(t, m.Fix("mean"))

	fitter, err := NewLevMar()
	require.NoError(t, err)

	res, err := fitter.Fit(m, x, y)
	require.NoError(t, err)
	require.Equal(t, []string{"amplitude", "stddev"}, res.FreeParams)

	params := m.Params()
	require.Equal(t, 1.0, params[1].Value)
	require.InDelta(t, 2.0, params[0].Value, 1e-4)
}

func TestLevMar_BoundsClipSolution(t *testing.T) {
	x := linspace(-1, 3, 40)
	y := evalOrFail(t, model.NewGaussian(2, 1, 0.5), x)

	m := model.NewGaussian(1.2, 1, 0.5)
	require.NoError(t, m.SetBounds("amplitude", 0, 1.5))

	fitter, err := NewLevMar()
	require.NoError(t, err)

	_, err = fitter.Fit(m, x, y)
	require.NoError(t, err)

	amp := m.Params()[0].Value
	require.LessOrEqual(t, amp, 1.5)
	require.GreaterOrEqual(t, amp, 0.0)
}

func TestLevMar_Validation(t *testing.T) {
	fitter, err := NewLevMar()
	require.NoError(t, err)
	g := model.NewGaussian(1, 0, 1)

	t.Run("no data", func(t *testing.T) {
		_, err := fitter.Fit(g, nil, nil)
		require.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := fitter.Fit(g, []float64{1, 2, 3}, []float64{1, 2})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("weights length", func(t *testing.T) {
		_, err := fitter.Fit(g, []float64{1, 2, 3}, []float64{1, 2, 3},
			WithWeights([]float64{1}))
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("non-positive uncertainty", func(t *testing.T) {
		_, err := fitter.Fit(g, []float64{1, 2, 3}, []float64{1, 2, 3},
			WithUncertainties([]float64{1, 0, 1}))
		require.ErrorIs(t, err, errs.ErrInvalidUncertainty)
	})

	t.Run("weights and uncertainties are exclusive", func(t *testing.T) {
		_, err := fitter.Fit(g, []float64{1, 2, 3}, []float64{1, 2, 3},
			WithWeights([]float64{1, 1, 1}), WithUncertainties([]float64{1, 1, 1}))
		require.ErrorIs(t, err, errs.ErrInvalidUncertainty)
	})

	t.Run("fewer points than free parameters", func(t *testing.T) {
		_, err := fitter.Fit(model.NewGaussian(1, 0, 1), []float64{1, 2}, []float64{1, 2})
		require.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("no free parameters", func(t *testing.T) {
		frozen := model.NewConst(1)
		require.NoError(t, frozen.Fix("amplitude"))
		_, err := fitter.Fit(frozen, []float64{1, 2}, []float64{1, 2})
		require.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("invalid constraint fails fast", func(t *testing.T) {
		bad := model.NewGaussian(1, 0, 1)
		require.NoError(t, bad.SetBounds("amplitude", 2, 1))
		_, err := fitter.Fit(bad, linspace(0, 1, 10), make([]float64, 10))
		require.ErrorIs(t, err, errs.ErrInvalidConstraint)
	})
}

func TestNewLevMar_OptionValidation(t *testing.T) {
	_, err := NewLevMar(WithMaxIterations(0))
	require.Error(t, err)

	_, err = NewLevMar(WithObjectiveTol(-1))
	require.Error(t, err)

	fitter, err := NewLevMar(WithMaxIterations(200), WithTau(1e-3), WithEps1(1e-10), WithEps2(1e-10))
	require.NoError(t, err)
	require.Equal(t, 200, fitter.cfg.MaxIterations)
	require.Equal(t, 1e-3, fitter.cfg.Tau)
}
