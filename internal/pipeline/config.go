package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jmylchreest/pbn/internal/colour"
)

// Environment variables that override the built-in defaults.
const (
	EnvColours        = "PBN_COLOURS"
	EnvAlgorithm      = "PBN_ALGORITHM"
	EnvAlphaThreshold = "PBN_ALPHA_THRESHOLD"
)

// Config holds the options of a quantization request.
type Config struct {
	// Colours is the palette budget K.
	Colours int
	// AlphaThreshold is the alpha value at or below which a pixel is transparent.
	AlphaThreshold int
	Algorithm      colour.Algorithm
	// Levels is the per-channel level count of the uniform algorithm.
	Levels int
	// MaxIterations caps k-means assignment passes.
	MaxIterations int
	// Convergence is the number of pixels allowed to change cluster in a
	// k-means pass for it to count as converged.
	Convergence int
	// Seed seeds k-means. Zero means a time-based seed.
	Seed int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Colours:        16,
		AlphaThreshold: colour.DefaultAlphaThreshold,
		Algorithm:      colour.AlgorithmKMeans,
		Levels:         colour.DefaultLevels,
		MaxIterations:  colour.DefaultMaxIterations,
		Convergence:    colour.DefaultConvergence,
	}
}

// WithEnv returns a copy of c with values from PBN_* environment variables
// applied. Unset variables leave the field unchanged.
func (c Config) WithEnv() (Config, error) {
	if v := os.Getenv(EnvColours); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s: %w", EnvColours, err)
		}
		c.Colours = n
	}
	if v := os.Getenv(EnvAlphaThreshold); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s: %w", EnvAlphaThreshold, err)
		}
		c.AlphaThreshold = n
	}
	if v := os.Getenv(EnvAlgorithm); v != "" {
		c.Algorithm = colour.Algorithm(v)
	}
	return c, nil
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Colours < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.Colours)
	}
	if c.Colours > colour.MaxPaletteSize {
		return fmt.Errorf("colour count too large: %d (maximum: %d)", c.Colours, colour.MaxPaletteSize)
	}
	if c.AlphaThreshold < 0 || c.AlphaThreshold > 255 {
		return fmt.Errorf("alpha threshold must be between 0 and 255, got %d", c.AlphaThreshold)
	}
	return c.quantizerConfig().Validate()
}

func (c Config) quantizerConfig() colour.QuantizerConfig {
	return colour.QuantizerConfig{
		Algorithm:     c.Algorithm,
		MaxIterations: c.MaxIterations,
		Convergence:   c.Convergence,
		Levels:        c.Levels,
	}
}
