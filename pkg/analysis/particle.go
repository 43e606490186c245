package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ParticleStats summarizes the labeled components of one field of view.
type ParticleStats struct {
	// Count is the number of distinct particles (connected components).
	Count int

	// PixelCounts maps each label to the number of grid cells carrying it.
	PixelCounts map[int]int

	// AverageDiameter is the mean equivalent-circular diameter across all
	// particles, in the physical units of the step size: for each particle
	// the pixel count times stepsize^2 gives an area, and the diameter is
	// that of the circle with equal area.
	AverageDiameter float64
}

// Summarize derives the particle count and average size from a label grid
// and the positive-cell list it was built from. Re-running on the same
// labeled grid yields the same statistics; label values themselves carry
// no meaning beyond identity within one labeling pass.
func Summarize(labels []int, positive []int, stepsize float64) ParticleStats {
	counts := make(map[int]int)
	for _, idx := range positive {
		if labels[idx] != 0 {
			counts[labels[idx]]++
		}
	}

	stats := ParticleStats{
		Count:       len(counts),
		PixelCounts: counts,
	}
	if len(counts) == 0 {
		return stats
	}

	pixels := make([]float64, 0, len(counts))
	for _, n := range counts {
		pixels = append(pixels, float64(n))
	}
	meanArea := stat.Mean(pixels, nil) * stepsize * stepsize
	stats.AverageDiameter = 2 * math.Sqrt(meanArea/math.Pi)
	return stats
}
