package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// tukeyFactor is the standard multiplier for the upper outlier fence.
const tukeyFactor = 1.5

// quartiles returns the first and third quartiles of values, computed with
// linear interpolation over a sorted copy. The input is not modified.
func quartiles(values []float64) (q1, q3 float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	return q1, q3
}

// UpperFence returns the Tukey upper outlier fence of values,
// Q3 + 1.5*IQR. Values below the fence are never flagged as outliers; the
// lower fence is deliberately not used because only enhanced reflectance
// differences indicate microplastics.
func UpperFence(values []float64) float64 {
	q1, q3 := quartiles(values)
	return q3 + tukeyFactor*(q3-q1)
}

// TrimOutliersOnce removes the values at or above the Tukey upper fence of
// the input, applying the fence exactly once. The result is used as a less
// aggressively pruned reference distribution when overlaying a normal curve
// on the difference histogram. Applying it twice may prune further: the
// fence is recomputed on the output, so the operation is not idempotent.
func TrimOutliersOnce(values []float64) []float64 {
	if len(values) == 0 {
		return values
	}
	fence := UpperFence(values)
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v < fence {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		// A degenerate distribution (all values equal) trims to nothing;
		// keep the input instead.
		return values
	}
	return kept
}

// TrimOutliers repeatedly removes the values at or above the Tukey upper
// fence, recomputing the fence each pass, until a pass removes nothing.
// The result is a fixed point: applying TrimOutliers to its own output
// returns the identical list.
func TrimOutliers(values []float64) []float64 {
	trimmed := values
	for {
		kept := TrimOutliersOnce(trimmed)
		if len(kept) == len(trimmed) {
			return trimmed
		}
		trimmed = kept
	}
}

// Cutoff derives the classification cutoff from the full list of
// reflectance differences. With largeParticles false the fence is computed
// directly on the raw list. With largeParticles true the distribution is
// first recursively trimmed of outliers: large particles contribute a
// heavier upper tail that would otherwise distort the quartile estimates,
// so the final fence is computed on the remaining background distribution.
func Cutoff(differences []float64, largeParticles bool) float64 {
	if largeParticles {
		return UpperFence(TrimOutliers(differences))
	}
	return UpperFence(differences)
}
