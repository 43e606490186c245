// Package config provides configuration loading and management for
// filterview. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"filterview/pkg/analysis"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Analysis parameters
	Analysis struct {
		// Width is the number of spectra along the x-axis of the field of view
		Width int `yaml:"width"`

		// Height is the number of spectra along the y-axis of the field of view
		Height int `yaml:"height"`

		// Stepsize is the distance in microns between consecutive spectra
		Stepsize float64 `yaml:"stepsize"`

		// LargeParticles selects the large-particle cutoff regime
		// (particles larger than about 200 microns)
		LargeParticles bool `yaml:"largeParticles"`
	} `yaml:"analysis"`

	// Input parameters
	Input struct {
		// SpectrumExtension is the case-sensitive extension of spectrum files
		SpectrumExtension string `yaml:"spectrumExtension"`

		// ScreenshotExtension is the case-sensitive extension of the
		// optional filter-surface photograph
		ScreenshotExtension string `yaml:"screenshotExtension"`

		// StartX and StartY are the real-world coordinates of the first
		// cell of the field of view
		StartX int `yaml:"startX"`
		StartY int `yaml:"startY"`
	} `yaml:"input"`

	// Output parameters
	Output struct {
		// PlotDir is the directory where rendered plots are saved
		PlotDir string `yaml:"plotDir"`

		// RenderPlots determines whether histogram and chemigram images
		// are generated after the analysis
		RenderPlots bool `yaml:"renderPlots"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default analysis parameters. Width and height have no sensible
	// defaults; they must match the chemigram export and are validated by
	// the analyzer.
	cfg.Analysis.Stepsize = analysis.DefaultStepsize
	cfg.Analysis.LargeParticles = false

	// Set default input parameters
	cfg.Input.SpectrumExtension = analysis.DefaultSpectrumExt
	cfg.Input.ScreenshotExtension = analysis.DefaultScreenshotExt

	// Set default output parameters
	cfg.Output.PlotDir = "plots"
	cfg.Output.RenderPlots = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
