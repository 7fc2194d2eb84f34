package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPaletteCmd() *cobra.Command {
	opts := &processFlags{}

	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Print the numbered palette of an image",
		Long: `Print the numbered palette pbn would use for an image, without the grid.

Examples:
  # Legend with colour swatches
  pbn palette sprite.png

  # JSON palette from a remote image
  pbn palette -f json https://example.com/sprite.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			result, err := process(cmd, logger, args[0], opts)
			if err != nil {
				return err
			}

			var output string
			switch opts.format {
			case "text":
				output = formatLegend(result, useColour(opts.output))
			case "json":
				data, err := json.MarshalIndent(newResultJSON(result, false), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to convert to JSON: %w", err)
				}
				output = string(data) + "\n"
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", opts.format)
			}
			return writeOutput(cmd, logger, opts.output, output)
		},
	}

	opts.registerDefaults(cmd.Flags())
	return cmd
}
