package colour

import (
	"fmt"
	"math/rand"
	"slices"
)

// Quantizer reduces a pixel population to a bounded palette.
type Quantizer interface {
	// Quantize returns a palette representing pixels.
	// k is the palette budget.
	Quantize(pixels []Color, k int) (*Palette, error)
}

// BufferMapper is implemented by quantizers whose palette is defined by a
// per-pixel rule rather than by proximity. Mapping through the rule keeps
// every pixel on the entry it was tallied under.
type BufferMapper interface {
	MapBuffer(buf *Buffer, p *Palette, threshold uint8) *Buffer
}

// Algorithm represents the quantization algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses k-means clustering with k-means++ seeding.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMedianCut recursively splits colour boxes at the population median.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmUniform rounds channels to evenly spaced levels.
	AlgorithmUniform Algorithm = "uniform"

	// AlgorithmDominant extracts the most dominant colours.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmMedianCut,
		AlgorithmUniform,
		AlgorithmDominant,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// QuantizerConfig holds the tuning knobs shared by all quantizers. Fields
// that do not apply to the chosen algorithm are ignored.
type QuantizerConfig struct {
	Algorithm     Algorithm
	MaxIterations int
	Convergence   int
	Levels        int
	Rand          *rand.Rand
}

// DefaultQuantizerConfig returns the default quantizer configuration.
func DefaultQuantizerConfig() QuantizerConfig {
	return QuantizerConfig{
		Algorithm:     AlgorithmKMeans,
		MaxIterations: DefaultMaxIterations,
		Convergence:   DefaultConvergence,
		Levels:        DefaultLevels,
	}
}

// Validate validates the quantizer configuration.
func (c QuantizerConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.Convergence < 0 {
		return fmt.Errorf("convergence threshold cannot be negative, got %d", c.Convergence)
	}
	if c.Levels < 2 || c.Levels > 256 {
		return fmt.Errorf("levels must be between 2 and 256, got %d", c.Levels)
	}
	return nil
}

// NewQuantizer creates a new Quantizer based on the configured algorithm.
// Returns an error if the configuration is invalid.
func NewQuantizer(cfg QuantizerConfig) (Quantizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Algorithm {
	case AlgorithmKMeans:
		return NewKMeansQuantizer(
			WithRand(cfg.Rand),
			WithMaxIterations(cfg.MaxIterations),
			WithConvergence(cfg.Convergence),
		), nil
	case AlgorithmMedianCut:
		return NewMedianCutQuantizer(), nil
	case AlgorithmUniform:
		return NewUniformQuantizer(cfg.Levels), nil
	case AlgorithmDominant:
		return NewDominantQuantizer(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", cfg.Algorithm, ValidAlgorithms())
	}
}
