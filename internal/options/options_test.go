package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// solverConfig is a stand-in for the fitter configs built on this package.
type solverConfig struct {
	MaxIterations int
	Tolerance     float64
	Verbose       bool
}

func withMaxIterations(n int) Option[*solverConfig] {
	return New(func(c *solverConfig) error {
		if n <= 0 {
			return errors.New("max iterations must be positive")
		}
		c.MaxIterations = n

		return nil
	})
}

func withVerbose() Option[*solverConfig] {
	return NoError(func(c *solverConfig) {
		c.Verbose = true
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &solverConfig{MaxIterations: 100, Tolerance: 1e-8}

		err := Apply(cfg, withMaxIterations(50), withVerbose())
		require.NoError(t, err)
		require.Equal(t, 50, cfg.MaxIterations)
		require.True(t, cfg.Verbose)
	})

	t.Run("stops at first validation error", func(t *testing.T) {
		cfg := &solverConfig{MaxIterations: 100}

		err := Apply(cfg, withMaxIterations(-1), withVerbose())
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be positive")
		require.Equal(t, 100, cfg.MaxIterations)
		require.False(t, cfg.Verbose)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &solverConfig{Tolerance: 1e-8}

		err := Apply(cfg)
		require.NoError(t, err)
		require.Equal(t, 1e-8, cfg.Tolerance)
	})
}

func TestNoError(t *testing.T) {
	cfg := &solverConfig{}
	opt := NoError(func(c *solverConfig) {
		c.Tolerance = 1e-12
	})

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 1e-12, cfg.Tolerance)
}
