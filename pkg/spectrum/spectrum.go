// Package spectrum handles loading and indexing of the per-cell infrared
// spectra that make up one field of view. Each spectrum is a two-column
// tabular file (wavenumber, reflectance) exported by the spectroscopy
// software, one file per grid cell.
package spectrum

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Reference wavenumbers (cm-1) for the reflectance-difference heuristic.
// 2850 sits in the sp3 CH stretching region; 2750 serves as a proxy for
// the spectral baseline.
const (
	BaselineWavenumber = 2750.0
	CHWavenumber       = 2850.0
)

// Sample is a single (wavenumber, reflectance) pair.
type Sample struct {
	Wavenumber  float64
	Reflectance float64
}

// Spectrum is an ordered sequence of samples, as read from one file.
type Spectrum []Sample

// BandIndices holds the row indices nearest the two reference wavenumbers.
// They are computed once, from the first spectrum of a field of view, and
// reused for every other spectrum in the set. This assumes homogeneous
// spectral sampling across the whole export.
type BandIndices struct {
	// Baseline is the index of the sample nearest 2750 cm-1.
	Baseline int

	// CH is the index of the sample nearest 2850 cm-1.
	CH int
}

// NearestIndex returns the index of the sample whose wavenumber is closest
// (by absolute difference) to the target.
func (s Spectrum) NearestIndex(target float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, sample := range s {
		d := math.Abs(sample.Wavenumber - target)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Bands locates the baseline and CH band indices for this spectrum.
func (s Spectrum) Bands() BandIndices {
	return BandIndices{
		Baseline: s.NearestIndex(BaselineWavenumber),
		CH:       s.NearestIndex(CHWavenumber),
	}
}

// Difference returns the reflectance at the baseline index minus the
// reflectance at the CH index. Spectra from microplastic particles show an
// enhanced value because of reduced absorbance at 2850 cm-1.
func (s Spectrum) Difference(bands BandIndices) (float64, error) {
	if bands.Baseline >= len(s) || bands.CH >= len(s) {
		return 0, fmt.Errorf("spectrum has %d samples, band indices (%d, %d) out of range",
			len(s), bands.Baseline, bands.CH)
	}
	return s[bands.Baseline].Reflectance - s[bands.CH].Reflectance, nil
}

// Load reads a spectrum from a two-column CSV file. The first column is the
// wavenumber and the second the reflectance. A single leading header row is
// tolerated; any other row that does not parse as two numbers is an error.
func Load(path string) (Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	spec := make(Spectrum, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected 2 columns, got %d", i+1, len(record))
		}
		wn, errW := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		refl, errR := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if errW != nil || errR != nil {
			// Only the first row may be a header.
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d: non-numeric value %q", i+1, record)
		}
		spec = append(spec, Sample{Wavenumber: wn, Reflectance: refl})
	}

	if len(spec) == 0 {
		return nil, fmt.Errorf("no samples in file")
	}
	return spec, nil
}

// ListFiles enumerates the spectrum files in dir, filtered by a
// case-sensitive extension match and sorted lexicographically by name.
// The sorted order defines the raster-scan order of the field of view, so
// it must be reproduced exactly for coordinate mapping to be correct.
func ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FindScreenshot returns the lexicographically first file in dir with the
// given extension (case-sensitive), typically a photograph of the filter
// surface taken alongside the spectral map. The second return is false if
// no such file exists.
func FindScreenshot(dir, ext string) (string, bool) {
	names, err := ListFiles(dir, ext)
	if err != nil || len(names) == 0 {
		return "", false
	}
	return names[0], true
}
