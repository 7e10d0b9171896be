// Package plot defines the presentational collaborator surface: rendering
// (x, y) series for a human reviewing a fit.
//
// The core never consumes anything a renderer returns. The Gnuplot adapter
// delegates to the glot library and therefore needs a gnuplot binary on
// the PATH; callers that only need the contract can implement Renderer
// themselves.
package plot

import (
	"fmt"

	"github.com/Arafatk/glot"

	"github.com/astrokit/modelfit/errs"
)

// Renderer renders one (x, y) series in the given style. Styles follow
// gnuplot vocabulary ("points", "lines", "linespoints", ...).
type Renderer interface {
	Render(x, y []float64, style string) error
}

// Gnuplot renders series through glot into a single 2-D gnuplot session.
type Gnuplot struct {
	plot   *glot.Plot
	series int
}

// NewGnuplot opens a 2-D gnuplot session. With persist set, the plot
// window outlives the process.
func NewGnuplot(persist bool) (*Gnuplot, error) {
	p, err := glot.NewPlot(2, persist, false)
	if err != nil {
		return nil, fmt.Errorf("could not start gnuplot: %w", err)
	}

	return &Gnuplot{plot: p}, nil
}

// Render adds an (x, y) series to the plot. Series are named by arrival
// order. An empty style defaults to "points".
func (g *Gnuplot) Render(x, y []float64, style string) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: x=%d y=%d", errs.ErrLengthMismatch, len(x), len(y))
	}
	if style == "" {
		style = "points"
	}

	g.series++
	name := fmt.Sprintf("series-%d", g.series)

	return g.plot.AddPointGroup(name, style, [][]float64{x, y})
}

// SetTitle sets the plot title.
func (g *Gnuplot) SetTitle(title string) error {
	return g.plot.SetTitle(title)
}

// Save writes the current plot to a file.
func (g *Gnuplot) Save(filename string) error {
	return g.plot.SavePlot(filename)
}
