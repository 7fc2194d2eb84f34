package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pbn/internal/colour"
	"github.com/jmylchreest/pbn/internal/image"
	"github.com/jmylchreest/pbn/internal/pipeline"
	"github.com/jmylchreest/pbn/internal/seed"
)

// generateOptions holds the generate command flags.
type generateOptions struct {
	processFlags
	preview      string
	swatch       string
	previewScale int
	reveal       bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <image>",
		Short: "Generate a numbered palette and pixel grid from an image",
		Long: `Generate a paint-by-number palette and a per-pixel grid from an image.

Every opaque pixel is tagged with the number of one palette colour; pixels at
or below the alpha threshold are marked transparent and start revealed.
Images with more than 128 distinct opaque colours are rejected; downscale or
pre-quantize them first.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Print the palette legend for a sprite
  pbn generate sprite.png

  # Emit the full grid as JSON using median cut with 8 colours
  pbn generate -c 8 -a mediancut -f json -o grid.json sprite.png

  # Reproducible k-means with a grayscale preview of the unpainted image
  pbn generate --seed 42 --preview preview.png sprite.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}

	opts.registerDefaults(cmd.Flags())
	cmd.Flags().StringVar(&opts.preview, "preview", "", "write a PNG preview of the grid to this file")
	cmd.Flags().StringVar(&opts.swatch, "swatch", "", "write a PNG strip of the palette to this file")
	cmd.Flags().IntVar(&opts.previewScale, "scale", 8, "preview pixels per grid cell")
	cmd.Flags().BoolVar(&opts.reveal, "reveal", false, "draw every cell in its palette colour in the preview")

	return cmd
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, path string, opts *generateOptions) error {
	logger := newLogger(cmd)

	result, err := process(cmd, logger, path, &opts.processFlags)
	if err != nil {
		return err
	}

	if opts.preview != "" {
		img := image.RenderPreview(result.Grid, opts.previewScale, opts.reveal)
		if err := image.SavePNG(img, opts.preview); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		logger.Debug("wrote preview", "file", opts.preview)
	}

	if opts.swatch != "" && result.Palette.Len() > 0 {
		img, err := image.RenderSwatch(result.Palette, 64)
		if err != nil {
			return fmt.Errorf("failed to render swatch: %w", err)
		}
		if err := image.SavePNG(img, opts.swatch); err != nil {
			return fmt.Errorf("failed to write swatch: %w", err)
		}
		logger.Debug("wrote swatch", "file", opts.swatch)
	}

	var output string
	switch opts.format {
	case "text":
		output = formatLegend(result, useColour(opts.output))
	case "json":
		data, err := json.Marshal(newResultJSON(result, true))
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		output = string(data) + "\n"
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", opts.format)
	}

	return writeOutput(cmd, logger, opts.output, output)
}

// process loads the image at path, prepares it and runs the pipeline.
func process(cmd *cobra.Command, logger hclog.Logger, path string, flags *processFlags) (*pipeline.Result, error) {
	if err := image.ValidateImagePath(path); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}

	cfg, err := flags.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	seedMode, err := flags.resolveSeedMode()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("loading image", "path", path)
	loader := image.NewSmartLoader(image.WithCache(flags.cacheDir, flags.refresh))
	img, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	if flags.background != "" {
		bg, err := image.ParseBackground(flags.background)
		if err != nil {
			return nil, fmt.Errorf("invalid background: %w", err)
		}
		img = image.Flatten(img, bg)
	}
	img = image.Resize(img, flags.maxSize)

	bounds := img.Bounds()
	logger.Debug("image ready", "width", bounds.Dx(), "height", bounds.Dy())

	buf, err := image.ToBuffer(img)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixels: %w", err)
	}

	cfg.Seed, err = seed.Calculate(seedMode, buf, path, flags.seed)
	if err != nil {
		return nil, err
	}
	logger.Debug("k-means seed", "mode", seedMode, "seed", cfg.Seed)

	result, err := pipeline.Process(buf, cfg, pipeline.WithLogger(logger))
	if err != nil {
		var rejected *pipeline.InputRejectedError
		if errors.As(err, &rejected) {
			return nil, fmt.Errorf("image rejected: %s (%d colours, limit %d)", rejected.Reason, rejected.Colours, rejected.Limit)
		}
		return nil, err
	}

	logger.Debug("palette generated", "path", result.Path(), "colours", result.Palette.Len(), "distinct", result.Distinct)
	if result.Path() == "quantized" {
		logger.Debug("quantization error", "stats", result.Stats.String())
	}
	if result.Grid.Inconsistent > 0 {
		logger.Warn("some pixels did not match the palette", "cells", result.Grid.Inconsistent)
	}
	return result, nil
}

// resultJSON is the JSON document written by generate and palette.
type resultJSON struct {
	Width            int                `json:"width"`
	Height           int                `json:"height"`
	FullyTransparent bool               `json:"isFullyTransparent"`
	Path             string             `json:"path"`
	Algorithm        string             `json:"algorithm,omitempty"`
	Palette          colour.PaletteJSON `json:"palette"`
	Stats            colour.Stats       `json:"stats"`
	Grid             *colour.Grid       `json:"grid,omitempty"`
}

func newResultJSON(result *pipeline.Result, withGrid bool) resultJSON {
	out := resultJSON{
		Width:            result.Grid.Width,
		Height:           result.Grid.Height,
		FullyTransparent: result.FullyTransparent,
		Path:             result.Path(),
		Palette:          result.Palette.JSON(),
		Stats:            result.Stats,
	}
	if q, ok := result.Selection.(pipeline.QuantizedSelection); ok {
		out.Algorithm = string(q.Algorithm)
	}
	if withGrid {
		out.Grid = result.Grid
	}
	return out
}

// formatLegend renders the palette as a table, optionally with colour swatches.
func formatLegend(result *pipeline.Result, withColour bool) string {
	if result.FullyTransparent {
		return fmt.Sprintf("Image is fully transparent (%dx%d); nothing to paint.\n", result.Grid.Width, result.Grid.Height)
	}

	headers := []string{"No", "Hex", "RGB", "Pixels"}
	if withColour {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)
	for _, e := range result.Palette.Entries {
		row := []string{strconv.Itoa(e.Number), e.Color.Hex(), e.Color.String(), strconv.Itoa(e.Count)}
		if withColour {
			row = append([]string{colour.ColourPreviewWithText(e.Color, strconv.Itoa(e.Number), 4)}, row...)
		}
		table.AddRow(row)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d, %d colours (%s path)\n\n", result.Grid.Width, result.Grid.Height, result.Palette.Len(), result.Path())
	b.WriteString(table.Render())
	return b.String()
}

// useColour reports whether legend output should carry ANSI swatches.
func useColour(outputPath string) bool {
	return outputPath == "" && colour.SupportsANSIColours(os.Stdout)
}

// writeOutput writes output to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, logger hclog.Logger, path, output string) error {
	if path == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}

	logger.Debug("writing output", "file", path)
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
