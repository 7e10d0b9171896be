package fit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/modelfit/errs"
	"github.com/astrokit/modelfit/model"
)

func TestLinearLSQ_ExactPolynomialRecovery(t *testing.T) {
	// y = 1 - 2x + 0.5x², noise-free.
	x := linspace(-3, 3, 12)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 1 - 2*xi + 0.5*xi*xi
	}

	m := model.NewPolynomial(0, 0, 0)
	res, err := NewLinearLSQ().Fit(m, x, y)
	require.NoError(t, err)

	params := m.Params()
	require.InDelta(t, 1.0, params[0].Value, 1e-9)
	require.InDelta(t, -2.0, params[1].Value, 1e-9)
	require.InDelta(t, 0.5, params[2].Value, 1e-9)

	require.Equal(t, []string{"c0", "c1", "c2"}, res.FreeParams)
	require.NotNil(t, res.Covariance)
}

func TestLinearLSQ_WeightedFit(t *testing.T) {
	x := linspace(0, 5, 20)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3 + 0.5*xi
	}
	w := make([]float64, len(x))
	for i := range w {
		w[i] = float64(i + 1)
	}

	m := model.NewLinear(0, 0)
	_, err := NewLinearLSQ().Fit(m, x, y, WithWeights(w))
	require.NoError(t, err)

	params := m.Params()
	require.InDelta(t, 0.5, params[0].Value, 1e-9)
	require.InDelta(t, 3.0, params[1].Value, 1e-9)
}

func TestLinearLSQ_UncertaintiesFillChiSquare(t *testing.T) {
	x := linspace(0, 5, 15)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 2*xi - 1
	}
	sigmas := make([]float64, len(x))
	for i := range sigmas {
		sigmas[i] = 0.2
	}

	m := model.NewLinear(0, 0)
	res, err := NewLinearLSQ().Fit(m, x, y, WithUncertainties(sigmas))
	require.NoError(t, err)
	require.InDelta(t, 0.0, res.ReducedChiSq, 1e-9)
}

func TestLinearLSQ_FixedParameterOffset(t *testing.T) {
	// y = 4 + 0.5x with the intercept frozen at its true value.
	x := linspace(0, 5, 10)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 4 + 0.5*xi
	}

	m := model.NewLinear(0, 4)
	require.NoError(t, m.Fix("intercept"))

	res, err := NewLinearLSQ().Fit(m, x, y)
	require.NoError(t, err)
	require.Equal(t, []string{"slope"}, res.FreeParams)

	params := m.Params()
	require.InDelta(t, 0.5, params[0].Value, 1e-9)
	require.Equal(t, 4.0, params[1].Value)
}

func TestLinearLSQ_AdditiveCompound(t *testing.T) {
	// (slope*x + intercept) + const, with the duplicate constant column
	// removed by fixing the second child's amplitude.
	x := linspace(-2, 2, 10)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 1.5*xi - 0.25 + 2
	}

	c := model.Add(model.NewLinear(0, 0), model.NewConst(2))
	require.NoError(t, c.Fix("amplitude_1"))

	_, err := NewLinearLSQ().Fit(c, x, y)
	require.NoError(t, err)

	params := c.Params()
	require.InDelta(t, 1.5, params[0].Value, 1e-9)
	require.InDelta(t, -0.25, params[1].Value, 1e-9)
	require.Equal(t, 2.0, params[3].Value)
}

func TestLinearLSQ_NonLinearModel(t *testing.T) {
	x := linspace(0, 1, 5)

	_, err := NewLinearLSQ().Fit(model.NewGaussian(1, 0, 1), x, make([]float64, len(x)))
	require.ErrorIs(t, err, errs.ErrNonLinearModel)
}

func TestLinearLSQ_RejectsBounds(t *testing.T) {
	m := model.NewLinear(0, 0)
	require.NoError(t, m.SetBounds("slope", 0, 1))

	x := linspace(0, 1, 5)
	_, err := NewLinearLSQ().Fit(m, x, make([]float64, len(x)))
	require.ErrorIs(t, err, errs.ErrInvalidConstraint)
}
