package visualization

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"filterview/pkg/analysis"
)

// Cell intensities for the comparison map. A cell identified by both
// methods carries the sum.
const (
	manualMark   = 1.0
	computedMark = 2.0
)

// cellGrid adapts a per-cell value buffer to the plotter.GridXYZ interface
// so it can be rendered as a heat map. Row r, column c maps to the grid
// cell at (x=c, y=r) in the raster ordering of the analysis.
type cellGrid struct {
	grid   analysis.Grid
	values []float64
}

func (g cellGrid) Dims() (c, r int)   { return g.grid.Width, g.grid.Height }
func (g cellGrid) Z(c, r int) float64 { return g.values[g.grid.Index(c, r)] }
func (g cellGrid) X(c int) float64    { return float64(c) }
func (g cellGrid) Y(r int) float64    { return float64(r) }

// SaveChemigram renders the classification grid as a heat map PNG: the
// cells identified as likely microplastic stand out against a zero
// background.
func SaveChemigram(grid analysis.Grid, positive []int, path string) error {
	values := make([]float64, grid.Cells())
	for _, idx := range positive {
		values[idx] = computedMark
	}
	return saveHeatMap(grid, values, "Chemigram", path)
}

// SaveComparison renders manually and computationally identified cells on
// one heat map PNG: manual-only cells at one intensity, computed-only at
// another, and cells found by both methods at the sum of the two.
func SaveComparison(grid analysis.Grid, manualCells, computedCells []int, path string) error {
	values := make([]float64, grid.Cells())
	for _, idx := range manualCells {
		if idx >= 0 && idx < len(values) {
			values[idx] += manualMark
		}
	}
	for _, idx := range computedCells {
		if idx >= 0 && idx < len(values) {
			values[idx] += computedMark
		}
	}
	return saveHeatMap(grid, values, "Manual vs Computed", path)
}

func saveHeatMap(grid analysis.Grid, values []float64, title, path string) error {
	if grid.Cells() == 0 {
		return fmt.Errorf("empty grid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(cellGrid{grid: grid, values: values}, palette.Heat(12, 1))
	p.Add(hm)

	if err := p.Save(7*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("saving heat map: %w", err)
	}
	return nil
}
