package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"filterview/pkg/analysis"
	"filterview/pkg/config"
	"filterview/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputDir := flag.String("input", "", "Directory containing the exported spectrum CSV files")
	configPath := flag.String("config", "filterview.yaml", "Path to YAML configuration file")
	width := flag.Int("width", 0, "Number of spectra along the x-axis (overrides config)")
	height := flag.Int("height", 0, "Number of spectra along the y-axis (overrides config)")
	stepsize := flag.Float64("step", 0, "Step size in microns between consecutive spectra (overrides config)")
	large := flag.Bool("large", false, "Use the large-particle cutoff regime (particles > 200 microns)")
	truthFile := flag.String("truth", "", "File with manually identified particle coordinates (x y pairs)")
	startX := flag.Int("startx", 0, "Real-world x coordinate of the leftmost pixel in the field of view")
	startY := flag.Int("starty", 0, "Real-world y coordinate of the lowest pixel in the field of view")
	plotDir := flag.String("plots", "", "Directory for rendered plots (overrides config)")
	noPlots := flag.Bool("no-plots", false, "Skip rendering of histogram and chemigram images")
	flag.Parse()

	// Validate inputs
	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration and apply flag overrides
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *width > 0 {
		cfg.Analysis.Width = *width
	}
	if *height > 0 {
		cfg.Analysis.Height = *height
	}
	if *stepsize > 0 {
		cfg.Analysis.Stepsize = *stepsize
	}
	if *large {
		cfg.Analysis.LargeParticles = true
	}
	if *plotDir != "" {
		cfg.Output.PlotDir = *plotDir
	}
	if *noPlots {
		cfg.Output.RenderPlots = false
	}
	if *startX != 0 {
		cfg.Input.StartX = *startX
	}
	if *startY != 0 {
		cfg.Input.StartY = *startY
	}

	// Read the ground-truth coordinates if supplied
	groundTruth := ""
	if *truthFile != "" {
		data, err := os.ReadFile(*truthFile)
		if err != nil {
			log.Fatalf("Failed to read ground-truth file: %v", err)
		}
		groundTruth = string(data)
	}

	fmt.Println("================================")
	fmt.Println("FILTERVIEW - MICROPLASTIC PARTICLE ANALYSIS OF CHEMIGRAM SPECTRA")
	fmt.Println("================================")

	// Initialize analysis parameters
	params := &analysis.Params{
		InputDir:       *inputDir,
		Width:          cfg.Analysis.Width,
		Height:         cfg.Analysis.Height,
		Stepsize:       cfg.Analysis.Stepsize,
		LargeParticles: cfg.Analysis.LargeParticles,
		SpectrumExt:    cfg.Input.SpectrumExtension,
		ScreenshotExt:  cfg.Input.ScreenshotExtension,
	}

	// Run the analysis pipeline
	analyzer := analysis.NewAnalyzer(params)
	if err := analyzer.Process(); err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	// Report the filter screenshot if one accompanies the export
	if path, ok := analyzer.Screenshot(); ok {
		fmt.Printf("\nFilter screenshot: %s\n", path)
	} else {
		fmt.Println("\nNo screenshot available in input directory")
	}

	particles := analyzer.Particles()
	fmt.Printf("\nAnalysis Results:\n")
	fmt.Printf("=================\n")
	fmt.Printf("Cutoff                  : %.4f\n", analyzer.Cutoff())
	fmt.Printf("Particle Count          : %d\n", particles.Count)
	fmt.Printf("Particle Size           : %.2f um\n", particles.AverageDiameter)

	// Reconcile against the manual analysis. A parse failure here leaves
	// the computational results above fully valid, so it is not fatal.
	rec, recErr := analyzer.Reconcile(groundTruth, cfg.Input.StartX, cfg.Input.StartY)
	if recErr != nil {
		log.Printf("Warning: ground-truth comparison skipped: %v", recErr)
	} else if rec.GroundTruthCount > 0 {
		fmt.Printf("\nComparison to Manual Analysis:\n")
		fmt.Printf("==============================\n")
		fmt.Printf("User Found Particles    : %d\n", rec.GroundTruthCount)
		fmt.Printf("Computer Found Particles: %d\n", rec.ComputedCount)
		fmt.Printf("Intersection Number     : %d\n", rec.Intersection)
		fmt.Printf("Union Number            : %d\n", rec.Union)
	} else {
		fmt.Printf("Computer Found Pixels   : %d\n", rec.ComputedCount)
	}

	// Render the plots consumed by visual review
	if cfg.Output.RenderPlots {
		if err := os.MkdirAll(cfg.Output.PlotDir, 0755); err != nil {
			log.Fatalf("Failed to create plot directory: %v", err)
		}

		histPath := filepath.Join(cfg.Output.PlotDir, "histogram.png")
		if err := visualization.SaveHistogram(analyzer.Differences(),
			analyzer.TrimmedDifferences(), analyzer.Cutoff(), histPath); err != nil {
			log.Printf("Warning: failed to render histogram: %v", err)
		} else {
			fmt.Printf("\nHistogram saved to: %s\n", histPath)
		}

		chemPath := filepath.Join(cfg.Output.PlotDir, "chemigram.png")
		if err := visualization.SaveChemigram(analyzer.Grid(),
			analyzer.PositiveCells(), chemPath); err != nil {
			log.Printf("Warning: failed to render chemigram: %v", err)
		} else {
			fmt.Printf("Chemigram saved to: %s\n", chemPath)
		}

		if recErr == nil && rec.GroundTruthCount > 0 {
			cmpPath := filepath.Join(cfg.Output.PlotDir, "comparison.png")
			if err := visualization.SaveComparison(analyzer.Grid(),
				rec.GroundTruthCells, rec.ComputedCells, cmpPath); err != nil {
				log.Printf("Warning: failed to render comparison: %v", err)
			} else {
				fmt.Printf("Comparison saved to: %s\n", cmpPath)
			}
		}
	}

	// Echo the coordinate lists for external rendering or revisiting the
	// physical filter
	fmt.Printf("\nComputed candidate coordinates: %v\n",
		analyzer.Candidates(cfg.Input.StartX, cfg.Input.StartY))
	if recErr == nil && rec.GroundTruthCount > 0 {
		fmt.Printf("Manually identified coordinates: %v\n", rec.GroundTruth)
	}
}
