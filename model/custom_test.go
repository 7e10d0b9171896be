package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/modelfit/errs"
)

func expDecay(x, p []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = p[0] * math.Exp(-p[1]*xi)
	}

	return out
}

func expDecayDerivs(x, p []float64) [][]float64 {
	dAmp := make([]float64, len(x))
	dRate := make([]float64, len(x))
	for i, xi := range x {
		e := math.Exp(-p[1] * xi)
		dAmp[i] = e
		dRate[i] = -p[0] * xi * e
	}

	return [][]float64{dAmp, dRate}
}

func TestNewCustom_Basic(t *testing.T) {
	m, err := NewCustom("expdecay", []string{"amplitude", "rate"}, []float64{2, 0.5}, expDecay)
	require.NoError(t, err)
	require.Equal(t, "expdecay", m.Name())
	require.False(t, m.HasDerivs())

	out, err := m.Eval([]float64{0, 1})
	require.NoError(t, err)
	require.InDelta(t, 2.0, out[0], 1e-12)
	require.InDelta(t, 2*math.Exp(-0.5), out[1], 1e-12)
}

func TestNewCustom_WithDerivs(t *testing.T) {
	m, err := NewCustom("expdecay", []string{"amplitude", "rate"}, []float64{2, 0.5},
		expDecay, WithDerivs(expDecayDerivs))
	require.NoError(t, err)
	require.True(t, m.HasDerivs())
	require.True(t, CanDerive(m))

	x := []float64{0, 0.5, 1.5}
	derivs, err := m.Derivs(x)
	require.NoError(t, err)
	require.Len(t, derivs, 2)
	for _, d := range derivs {
		require.Len(t, d, len(x))
	}
	require.InDelta(t, 1.0, derivs[0][0], 1e-12)
	require.InDelta(t, 0.0, derivs[1][0], 1e-12)
}

func TestNewCustom_Validation(t *testing.T) {
	tests := []struct {
		name     string
		params   []string
		defaults []float64
		eval     EvalFunc
	}{
		{"nil evaluate", []string{"a"}, []float64{1}, nil},
		{"no parameters", nil, nil, expDecay},
		{"count mismatch", []string{"a", "b"}, []float64{1}, expDecay},
		{"duplicate names", []string{"a", "a"}, []float64{1, 2}, expDecay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustom("bad", tt.params, tt.defaults, tt.eval)
			require.ErrorIs(t, err, errs.ErrInvalidParameter)
		})
	}
}

func TestCustom_EvalShapeMismatch(t *testing.T) {
	m, err := NewCustom("truncated", []string{"a"}, []float64{1},
		func(x, p []float64) []float64 {
			return []float64{p[0]} // wrong length on purpose
		})
	require.NoError(t, err)

	_, err = m.Eval([]float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestCustom_DerivsShapeMismatch(t *testing.T) {
	m, err := NewCustom("badjac", []string{"a", "b"}, []float64{1, 2}, expDecay,
		WithDerivs(func(x, p []float64) [][]float64 {
			return [][]float64{make([]float64, len(x))} // one gradient missing
		}))
	require.NoError(t, err)

	_, err = m.Derivs([]float64{1, 2})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestCustom_DerivsWithoutDerivFunc(t *testing.T) {
	m, err := NewCustom("plain", []string{"a"}, []float64{1},
		func(x, p []float64) []float64 { return make([]float64, len(x)) })
	require.NoError(t, err)

	_, err = m.Derivs([]float64{1})
	require.Error(t, err)
}
