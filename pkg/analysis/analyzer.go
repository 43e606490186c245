// Package analysis implements the microplastics classification pipeline
// for one field of view: per-spectrum feature extraction, robust cutoff
// derivation, positive-cell classification, 8-connected component
// labeling, particle counting and sizing, and reconciliation against
// manually identified ground truth.
package analysis

import (
	"fmt"
	"path/filepath"

	"filterview/pkg/spectrum"
)

// Params holds the analysis parameters for one field of view.
type Params struct {
	// InputDir is the directory containing one spectrum file per grid
	// cell. Files are ordered lexicographically by name; that order is the
	// raster-scan order of the field of view.
	InputDir string

	// Width and Height are the number of spectra along the x and y axes.
	// Their product must equal the number of spectrum files.
	Width  int
	Height int

	// Stepsize is the physical distance, in microns, between consecutive
	// spectra. The aperture is assumed square, so the same step applies on
	// both axes.
	Stepsize float64

	// LargeParticles selects the cutoff regime. Set it when dealing with
	// particles larger than about 200 microns: their heavier upper tail is
	// trimmed from the distribution before the fence is computed.
	LargeParticles bool

	// SpectrumExt is the case-sensitive extension of spectrum files.
	SpectrumExt string

	// ScreenshotExt is the case-sensitive extension of the optional
	// filter-surface photograph.
	ScreenshotExt string
}

// DefaultStepsize is the step size assumed when none is configured.
const DefaultStepsize = 50.0

// Default file extensions, matching the spectroscopy software's export.
const (
	DefaultSpectrumExt   = ".CSV"
	DefaultScreenshotExt = ".JPG"
)

// Analyzer runs the classification pipeline and holds the results for one
// field of view. All state is recomputed by each call to Process; nothing
// is persisted across invocations.
//
// The pipeline stages run strictly in order:
//  1. Enumerate and validate the spectrum files
//  2. Extract one reflectance difference per cell
//  3. Derive the statistical cutoff
//  4. Classify cells against the cutoff
//  5. Label connected components and summarize particles
type Analyzer struct {
	params *Params
	grid   Grid

	files       []string
	differences []float64
	cutoff      float64
	positive    []int
	labels      []int
	particles   ParticleStats
}

// NewAnalyzer creates an analyzer for the given parameters, filling in
// defaults for the step size and file extensions.
func NewAnalyzer(params *Params) *Analyzer {
	if params.Stepsize == 0 {
		params.Stepsize = DefaultStepsize
	}
	if params.SpectrumExt == "" {
		params.SpectrumExt = DefaultSpectrumExt
	}
	if params.ScreenshotExt == "" {
		params.ScreenshotExt = DefaultScreenshotExt
	}
	return &Analyzer{
		params: params,
		grid:   Grid{Width: params.Width, Height: params.Height},
	}
}

// Process runs the complete pipeline. A DataLoadError from any spectrum
// file aborts the whole analysis; no partial results are kept.
func (a *Analyzer) Process() error {
	if err := a.validate(); err != nil {
		return err
	}

	fmt.Println("Step 1: Enumerating spectrum files...")
	if err := a.loadFileList(); err != nil {
		return err
	}

	fmt.Println("Step 2: Extracting reflectance differences...")
	if err := a.extractDifferences(); err != nil {
		return err
	}

	fmt.Println("Step 3: Deriving classification cutoff...")
	a.cutoff = Cutoff(a.differences, a.params.LargeParticles)

	fmt.Println("Step 4: Classifying cells...")
	a.positive = Positive(a.differences, a.cutoff)

	fmt.Println("Step 5: Labeling particles...")
	a.labels = a.grid.LabelComponents(a.positive)
	a.particles = Summarize(a.labels, a.positive, a.params.Stepsize)

	fmt.Printf("Analyzed %d spectra: %d positive cells, %d particles\n",
		len(a.differences), len(a.positive), a.particles.Count)
	return nil
}

// validate checks the grid geometry before any file is touched.
func (a *Analyzer) validate() error {
	if a.params.Width <= 0 {
		return &ConfigurationError{Field: "width", Reason: "must be positive"}
	}
	if a.params.Height <= 0 {
		return &ConfigurationError{Field: "height", Reason: "must be positive"}
	}
	if a.params.Stepsize <= 0 {
		return &ConfigurationError{Field: "stepsize", Reason: "must be positive"}
	}
	return nil
}

// loadFileList enumerates the spectrum files and checks that the grid
// geometry matches the file count. A mismatch would silently misalign
// every coordinate downstream, so it is rejected here.
func (a *Analyzer) loadFileList() error {
	files, err := spectrum.ListFiles(a.params.InputDir, a.params.SpectrumExt)
	if err != nil {
		return &DataLoadError{Path: a.params.InputDir, Err: err}
	}
	if len(files) == 0 {
		return &DataLoadError{Path: a.params.InputDir,
			Err: fmt.Errorf("no %s spectrum files found", a.params.SpectrumExt)}
	}
	if len(files) != a.grid.Cells() {
		return &ConfigurationError{
			Field: "width*height",
			Reason: fmt.Sprintf("grid is %dx%d = %d cells but directory has %d spectrum files",
				a.params.Width, a.params.Height, a.grid.Cells(), len(files)),
		}
	}
	a.files = files
	return nil
}

// extractDifferences reads every spectrum in raster order and computes its
// reflectance difference. The band indices nearest 2750 and 2850 cm-1 are
// located once, on the first spectrum, and reused unchanged for all
// others; the export is assumed to sample all spectra identically.
func (a *Analyzer) extractDifferences() error {
	var bands spectrum.BandIndices
	a.differences = make([]float64, 0, len(a.files))

	for i, name := range a.files {
		path := filepath.Join(a.params.InputDir, name)
		spec, err := spectrum.Load(path)
		if err != nil {
			return &DataLoadError{Path: path, Err: err}
		}
		if i == 0 {
			bands = spec.Bands()
		}
		diff, err := spec.Difference(bands)
		if err != nil {
			return &DataLoadError{Path: path, Err: err}
		}
		a.differences = append(a.differences, diff)
	}
	return nil
}

// Grid returns the field-of-view geometry.
func (a *Analyzer) Grid() Grid { return a.grid }

// Differences returns the ordered per-cell reflectance differences.
func (a *Analyzer) Differences() []float64 { return a.differences }

// Cutoff returns the classification cutoff derived by Process.
func (a *Analyzer) Cutoff() float64 { return a.cutoff }

// PositiveCells returns the linear indices of the cells classified as
// likely microplastic, in raster order.
func (a *Analyzer) PositiveCells() []int { return a.positive }

// Labels returns the component label grid produced by Process.
func (a *Analyzer) Labels() []int { return a.labels }

// Particles returns the particle count and size statistics.
func (a *Analyzer) Particles() ParticleStats { return a.particles }

// TrimmedDifferences returns the difference distribution with outliers
// removed, for use as the histogram's reference distribution: a single
// fence pass in the small-particle regime, the recursive trim in the
// large-particle regime.
func (a *Analyzer) TrimmedDifferences() []float64 {
	if a.params.LargeParticles {
		return TrimOutliers(a.differences)
	}
	return TrimOutliersOnce(a.differences)
}

// Candidates returns the real-world coordinates of the positive cells,
// anchored at the given field-of-view origin.
func (a *Analyzer) Candidates(startX, startY int) []Coordinate {
	return a.grid.Candidates(a.positive, startX, startY, a.params.Stepsize)
}

// Reconcile parses the ground-truth coordinate text and compares it
// against the computed positive cells. A ParseError here does not
// invalidate the computational results already held by the analyzer.
func (a *Analyzer) Reconcile(groundTruthText string, startX, startY int) (Reconciliation, error) {
	coords, err := ParseGroundTruth(groundTruthText)
	if err != nil {
		return Reconciliation{}, err
	}
	return a.grid.Reconcile(coords, a.positive, startX, startY, a.params.Stepsize), nil
}

// Screenshot returns the path of the filter-surface photograph in the
// input directory, if one exists.
func (a *Analyzer) Screenshot() (string, bool) {
	name, ok := spectrum.FindScreenshot(a.params.InputDir, a.params.ScreenshotExt)
	if !ok {
		return "", false
	}
	return filepath.Join(a.params.InputDir, name), true
}
