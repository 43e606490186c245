package visualization

import (
	"os"
	"path/filepath"
	"testing"

	"filterview/pkg/analysis"
)

// checkPNG asserts that the renderer produced a non-empty file.
func checkPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("output file is empty")
	}
}

func TestSaveHistogram(t *testing.T) {
	differences := []float64{0, 0.5, 1, 1.2, 1.5, 2, 2.5, 3, 3.1, 25}
	trimmed := analysis.TrimOutliersOnce(differences)
	cutoff := analysis.Cutoff(differences, false)

	path := filepath.Join(t.TempDir(), "histogram.png")
	if err := SaveHistogram(differences, trimmed, cutoff, path); err != nil {
		t.Fatalf("SaveHistogram failed: %v", err)
	}
	checkPNG(t, path)
}

func TestSaveHistogramEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "histogram.png")
	if err := SaveHistogram(nil, nil, 0, path); err == nil {
		t.Fatal("expected error for empty difference list")
	}
}

func TestSaveChemigram(t *testing.T) {
	grid := analysis.Grid{Width: 4, Height: 4}
	path := filepath.Join(t.TempDir(), "chemigram.png")
	if err := SaveChemigram(grid, []int{5, 6, 10}, path); err != nil {
		t.Fatalf("SaveChemigram failed: %v", err)
	}
	checkPNG(t, path)
}

func TestSaveComparison(t *testing.T) {
	grid := analysis.Grid{Width: 4, Height: 4}
	path := filepath.Join(t.TempDir(), "comparison.png")
	// Cell 5 found by both methods, 6 manual only, 10 computed only.
	if err := SaveComparison(grid, []int{5, 6}, []int{5, 10}, path); err != nil {
		t.Fatalf("SaveComparison failed: %v", err)
	}
	checkPNG(t, path)
}

func TestSaveComparisonIgnoresOutOfRangeCells(t *testing.T) {
	// Ground-truth coordinates outside the field of view map to cell
	// indices off the grid; the renderer must skip them.
	grid := analysis.Grid{Width: 2, Height: 2}
	path := filepath.Join(t.TempDir(), "comparison.png")
	if err := SaveComparison(grid, []int{-3, 99}, []int{1}, path); err != nil {
		t.Fatalf("SaveComparison failed: %v", err)
	}
	checkPNG(t, path)
}
