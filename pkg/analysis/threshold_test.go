package analysis

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUpperFence(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		// Quartiles land exactly on sample points: Q1=1, Q3=3, IQR=2.
		{"four values", []float64{1, 2, 3, 4}, 6},
		// Q1=2, Q3=6, IQR=4; the outlier does not move the quartiles.
		{"with outlier", []float64{1, 2, 3, 4, 5, 6, 7, 100}, 12},
		// Degenerate distribution: IQR=0, fence collapses onto the value.
		{"uniform", []float64{5, 5, 5, 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpperFence(tt.values)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("UpperFence(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestUpperFenceDoesNotModifyInput(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	UpperFence(values)
	if diff := cmp.Diff([]float64{4, 1, 3, 2}, values); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestTrimOutliersOnce(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 100}

	trimmed := TrimOutliersOnce(values)
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 5, 6, 7}, trimmed); diff != "" {
		t.Errorf("unexpected trim result (-want +got):\n%s", diff)
	}

	// Removes exactly the values at or above the single fence of the input.
	fence := UpperFence(values)
	for _, v := range trimmed {
		if v >= fence {
			t.Errorf("value %v at or above fence %v survived the trim", v, fence)
		}
	}
}

func TestTrimOutliersOnceKeepsDegenerateInput(t *testing.T) {
	// All values sit exactly on the fence; trimming everything away would
	// leave nothing to estimate a distribution from.
	values := []float64{5, 5, 5}
	trimmed := TrimOutliersOnce(values)
	if diff := cmp.Diff(values, trimmed); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestTrimOutliersFixedPoint(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"single outlier", []float64{1, 2, 3, 4, 5, 6, 7, 100}},
		{"cascading outliers", []float64{0, 0, 1, 1, 2, 2, 3, 3, 20, 200}},
		{"no outliers", []float64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"uniform", []float64{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := TrimOutliers(tt.values)
			twice := TrimOutliers(once)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("TrimOutliers is not a fixed point (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestCutoffRegimes(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 100}

	t.Run("small particles", func(t *testing.T) {
		// Raw fence: Q3=6, Q1=2.
		got := Cutoff(values, false)
		if math.Abs(got-12) > 1e-12 {
			t.Errorf("Cutoff(small) = %v, want 12", got)
		}
	})

	t.Run("large particles", func(t *testing.T) {
		// After trimming the 100, the fence of [1..7] is 5.25 + 1.5*3.5.
		got := Cutoff(values, true)
		if math.Abs(got-10.5) > 1e-12 {
			t.Errorf("Cutoff(large) = %v, want 10.5", got)
		}
	})

	t.Run("large cutoff never exceeds small", func(t *testing.T) {
		// Trimming removes mass from the upper tail only, so the trimmed
		// fence cannot sit above the raw fence.
		if Cutoff(values, true) > Cutoff(values, false) {
			t.Error("large-particle cutoff exceeds small-particle cutoff")
		}
	})
}
