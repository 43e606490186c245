// Package visualization renders the analysis outputs for human review:
// a histogram of the reflectance-difference distribution, a chemigram
// heat map of the identified particles, and a side-by-side comparison of
// manually and computationally identified cells. All renderings are saved
// as PNG files; the package consumes only the numeric arrays and
// coordinate lists produced by the analysis pipeline.
package visualization

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// histogramBins is the number of bins used for the difference histogram.
const histogramBins = 40

// SaveHistogram renders the reflectance-difference distribution to a PNG
// file. The classification cutoff is drawn as a dotted vertical line, and
// a normal curve fitted to the trimmed reference distribution is overlaid
// so the Gaussian-background assumption can be checked by eye.
func SaveHistogram(differences, trimmed []float64, cutoff float64, path string) error {
	if len(differences) == 0 {
		return fmt.Errorf("no differences to plot")
	}

	p := plot.New()
	p.Title.Text = "Reflectance Differences"
	p.X.Label.Text = "Difference"
	p.Y.Label.Text = "Occurrences"

	hist, err := plotter.NewHist(plotter.Values(differences), histogramBins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	p.Add(hist)

	// Cutoff marker, scaled to the tallest bin.
	ymax := maxBinCount(differences, histogramBins)
	cutoffLine, err := plotter.NewLine(plotter.XYs{
		{X: cutoff, Y: 0},
		{X: cutoff, Y: ymax},
	})
	if err != nil {
		return fmt.Errorf("building cutoff marker: %w", err)
	}
	cutoffLine.Color = color.RGBA{B: 255, A: 255}
	cutoffLine.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(cutoffLine)
	p.Legend.Add("cutoff", cutoffLine)

	// Normal curve fitted to the trimmed background distribution. Skipped
	// for degenerate distributions where the fit is undefined.
	mu := stat.Mean(trimmed, nil)
	sigma := stat.StdDev(trimmed, nil)
	if len(trimmed) > 1 && sigma > 0 {
		dist := distuv.Normal{Mu: mu, Sigma: sigma}
		n := float64(len(trimmed))
		fn := plotter.NewFunction(func(x float64) float64 {
			return n * dist.Prob(x)
		})
		fn.Color = color.RGBA{R: 255, A: 255}
		fn.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(fn)
		p.Legend.Add("normal fit", fn)
	}

	if err := p.Save(9*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving histogram: %w", err)
	}
	return nil
}

// maxBinCount returns the tallest bin count of a uniform binning of the
// values, used to scale the cutoff marker to the plotted data.
func maxBinCount(values []float64, bins int) float64 {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return float64(len(values))
	}

	counts := make([]int, bins)
	width := (max - min) / float64(bins)
	for _, v := range values {
		bin := int((v - min) / width)
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
	}

	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	return float64(best)
}
