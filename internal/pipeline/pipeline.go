// Package pipeline turns a decoded pixel buffer into a numbered palette and
// a per-pixel grid.
package pipeline

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pbn/internal/colour"
)

// Selection is the path chosen for a request: a DirectSelection when the
// image already fits the budget, a QuantizedSelection otherwise.
type Selection interface {
	// Palette returns the palette chosen by this path.
	Palette() *colour.Palette
	isSelection()
}

// DirectSelection is the lossless path: one entry per distinct colour.
type DirectSelection struct {
	palette *colour.Palette
}

func (s DirectSelection) Palette() *colour.Palette { return s.palette }
func (DirectSelection) isSelection()               {}

// QuantizedSelection is the lossy path through a quantizer.
type QuantizedSelection struct {
	palette   *colour.Palette
	quantizer colour.Quantizer
	Algorithm colour.Algorithm
}

func (s QuantizedSelection) Palette() *colour.Palette { return s.palette }
func (QuantizedSelection) isSelection()               {}

// Result is the output of a quantization request.
type Result struct {
	Palette *colour.Palette
	Grid    *colour.Grid
	// FullyTransparent is set when the image had no opaque pixels.
	FullyTransparent bool
	// Selection is nil for fully transparent images.
	Selection Selection
	// Distinct is the number of distinct opaque colours in the source.
	Distinct int
	Stats    colour.Stats
}

// Path names the branch that produced r: "transparent", "direct" or
// "quantized".
func (r *Result) Path() string {
	switch r.Selection.(type) {
	case DirectSelection:
		return "direct"
	case QuantizedSelection:
		return "quantized"
	default:
		return "transparent"
	}
}

// Processor runs quantization requests.
type Processor struct {
	config  Config
	logger  hclog.Logger
	newRand func() *rand.Rand
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. Defaults to a null logger.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRandFactory sets the constructor for the k-means random source,
// overriding Config.Seed. It is called once per Process call, so each call
// gets its own source.
func WithRandFactory(newRand func() *rand.Rand) Option {
	return func(p *Processor) {
		if newRand != nil {
			p.newRand = newRand
		}
	}
}

// New creates a Processor after validating cfg.
func New(cfg Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	p := &Processor{
		config: cfg,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.newRand == nil {
		p.newRand = func() *rand.Rand {
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			return rand.New(rand.NewSource(seed)) // #nosec G404 - clustering, not security
		}
	}
	return p, nil
}

// Process quantizes buf. The only error returned for a valid buffer is an
// *InputRejectedError. Calls share no mutable state, so a Processor with a
// fixed seed returns the same result for the same buffer every time and may
// be used from several goroutines.
func (p *Processor) Process(buf *colour.Buffer) (*Result, error) {
	if buf == nil {
		return nil, fmt.Errorf("buffer cannot be nil")
	}
	threshold := uint8(p.config.AlphaThreshold)

	extraction := colour.ExtractOpaque(buf, threshold)
	p.logger.Debug("extracted pixels", "opaque", len(extraction.Pixels), "transparent", extraction.Transparent)

	if extraction.Empty() {
		p.logger.Debug("image is fully transparent")
		grid, err := colour.GenerateGrid(buf, buf, &colour.Palette{}, colour.GridOptions{
			Threshold:        threshold,
			ForceTransparent: true,
			Logger:           p.logger,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Palette: &colour.Palette{}, Grid: grid, FullyTransparent: true}, nil
	}

	distinct := colour.CountDistinct(extraction.Pixels)
	if distinct > colour.MaxDistinctColours {
		return nil, &InputRejectedError{
			Colours: distinct,
			Limit:   colour.MaxDistinctColours,
			Reason:  "too many colours",
		}
	}

	sel, err := p.selectPath(extraction.Pixels, distinct)
	if err != nil {
		return nil, err
	}

	palette := sel.Palette()
	mapped := buf
	switch s := sel.(type) {
	case DirectSelection:
		p.logger.Debug("using direct palette", "colours", palette.Len())
	case QuantizedSelection:
		if m, ok := s.quantizer.(colour.BufferMapper); ok {
			mapped = m.MapBuffer(buf, palette, threshold)
		} else {
			mapped = colour.MapBuffer(buf, palette, threshold)
		}
		retally(palette, colour.Tally(mapped, palette, threshold))
		p.logger.Debug("quantized palette", "algorithm", s.Algorithm, "colours", palette.Len())
	}

	grid, err := colour.GenerateGrid(mapped, buf, palette, colour.GridOptions{
		Threshold: threshold,
		Logger:    p.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Palette:   palette,
		Grid:      grid,
		Selection: sel,
		Distinct:  distinct,
		Stats:     colour.MeasureError(buf, mapped, threshold),
	}, nil
}

// selectPath decides between the direct and quantized paths and builds the
// corresponding palette.
func (p *Processor) selectPath(pixels []colour.Color, distinct int) (Selection, error) {
	k := p.config.Colours
	if distinct <= k {
		return DirectSelection{palette: colour.BuildDirect(pixels)}, nil
	}

	qcfg := p.config.quantizerConfig()
	qcfg.Rand = p.newRand()
	q, err := colour.NewQuantizer(qcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create quantizer: %w", err)
	}

	palette, err := q.Quantize(pixels, k)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize: %w", err)
	}
	if palette.Len() > k {
		return nil, &InputRejectedError{
			Colours: palette.Len(),
			Limit:   k,
			Reason:  fmt.Sprintf("%s quantization exceeded the palette budget", p.config.Algorithm),
		}
	}
	return QuantizedSelection{palette: palette, quantizer: q, Algorithm: p.config.Algorithm}, nil
}

// retally replaces entry counts with the mapped pixel counts, then drops
// entries no pixel mapped to and renumbers the rest.
func retally(palette *colour.Palette, counts []int) {
	for i := range palette.Entries {
		palette.Entries[i].Count = counts[i]
	}
	palette.Compact()
}

// Process is a convenience wrapper that builds a Processor from cfg and runs it.
func Process(buf *colour.Buffer, cfg Config, opts ...Option) (*Result, error) {
	p, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return p.Process(buf)
}
