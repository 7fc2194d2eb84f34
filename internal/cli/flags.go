package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/pbn/internal/colour"
	"github.com/jmylchreest/pbn/internal/pipeline"
	"github.com/jmylchreest/pbn/internal/seed"
)

// algorithmValue is a pflag.Value that only accepts known algorithms.
type algorithmValue colour.Algorithm

func (a *algorithmValue) String() string {
	return string(*a)
}

func (a *algorithmValue) Set(s string) error {
	alg := colour.Algorithm(s)
	if !colour.IsValidAlgorithm(alg) {
		return fmt.Errorf("unknown algorithm %q (valid algorithms: %v)", s, colour.ValidAlgorithms())
	}
	*a = algorithmValue(alg)
	return nil
}

func (a *algorithmValue) Type() string {
	return "algorithm"
}

// processFlags holds the flags shared by commands that run the pipeline.
type processFlags struct {
	colours        int
	algorithm      algorithmValue
	alphaThreshold int
	levels         int
	maxIterations  int
	convergence    int
	seed           int64
	seedMode       string
	maxSize        int
	background     string
	cacheDir       string
	refresh        bool
	format         string
	output         string
	// envErr holds a malformed PBN_* value, reported when the command runs.
	envErr error
}

// register adds the flags to fs, taking defaults from cfg.
func (f *processFlags) register(fs *pflag.FlagSet, cfg pipeline.Config) {
	f.algorithm = algorithmValue(cfg.Algorithm)

	fs.IntVarP(&f.colours, "colours", "c", cfg.Colours, fmt.Sprintf("palette budget (1-%d)", colour.MaxPaletteSize))
	fs.VarP(&f.algorithm, "algorithm", "a", fmt.Sprintf("quantization algorithm %v", colour.ValidAlgorithms()))
	fs.IntVar(&f.alphaThreshold, "alpha-threshold", cfg.AlphaThreshold, "alpha at or below which a pixel is transparent (0-255)")
	fs.IntVar(&f.levels, "levels", cfg.Levels, "levels per channel for the uniform algorithm (2-256)")
	fs.IntVar(&f.maxIterations, "max-iterations", cfg.MaxIterations, "k-means iteration cap")
	fs.IntVar(&f.convergence, "convergence", cfg.Convergence, "k-means stops when at most this many pixels change cluster")
	fs.Int64Var(&f.seed, "seed", cfg.Seed, "k-means random seed; implies --seed-mode manual")
	fs.StringVar(&f.seedMode, "seed-mode", "", fmt.Sprintf("how the k-means seed is chosen %v (default random)", seed.ValidModes()))
	fs.IntVar(&f.maxSize, "max-size", 0, "downscale so neither side exceeds this many pixels (0 keeps the original size)")
	fs.StringVar(&f.background, "background", "", "flatten transparency onto this hex colour before processing")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "keep downloaded images in this directory and reuse them")
	fs.BoolVar(&f.refresh, "refresh", false, "download cached images again")
	fs.StringVarP(&f.format, "format", "f", "text", "output format (text, json)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
}

// config converts the parsed flags to a pipeline configuration.
func (f *processFlags) config() pipeline.Config {
	return pipeline.Config{
		Colours:        f.colours,
		AlphaThreshold: f.alphaThreshold,
		Algorithm:      colour.Algorithm(f.algorithm),
		Levels:         f.levels,
		MaxIterations:  f.maxIterations,
		Convergence:    f.convergence,
		Seed:           f.seed,
	}
}

// resolveSeedMode picks the seed mode: an explicit --seed-mode wins, then a
// non-zero --seed means manual, otherwise random.
func (f *processFlags) resolveSeedMode() (seed.Mode, error) {
	if f.seedMode != "" {
		return seed.ParseMode(f.seedMode)
	}
	if f.seed != 0 {
		return seed.ModeManual, nil
	}
	return seed.ModeRandom, nil
}

// registerDefaults registers the flags with PBN_* environment defaults. A
// malformed variable leaves the built-in defaults in place and is returned
// by config validation when the command runs.
func (f *processFlags) registerDefaults(fs *pflag.FlagSet) {
	cfg, err := defaultConfig()
	f.envErr = err
	f.register(fs, cfg)
}

// validate checks the parsed flags, including any environment error found
// while registering them.
func (f *processFlags) validate() (pipeline.Config, error) {
	if f.envErr != nil {
		return pipeline.Config{}, f.envErr
	}
	cfg := f.config()
	return cfg, cfg.Validate()
}

// defaultConfig returns the pipeline defaults with PBN_* overrides applied.
// On a malformed variable it returns the built-in defaults and the error.
func defaultConfig() (pipeline.Config, error) {
	cfg, err := pipeline.DefaultConfig().WithEnv()
	if err != nil {
		return pipeline.DefaultConfig(), err
	}
	return cfg, nil
}
