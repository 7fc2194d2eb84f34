package colour

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// TransparentNumber is the number carried by transparent grid cells.
const TransparentNumber = 0

// GridCell is the record of one source pixel.
type GridCell struct {
	Row int `json:"row"`
	Col int `json:"col"`
	// Color is the palette colour for opaque cells and zero for transparent ones.
	Color Color `json:"color"`
	// OriginalColor is the pixel before quantization.
	OriginalColor Color `json:"originalColor"`
	Number        int   `json:"number"`
	Transparent   bool  `json:"isTransparent"`
	Revealed      bool  `json:"revealed"`
}

// Grid holds one cell per source pixel, indexed [row][col].
type Grid struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Cells  [][]GridCell `json:"cells"`
	// Inconsistent counts opaque pixels that matched no palette entry and
	// were emitted as transparent.
	Inconsistent int `json:"-"`
}

// At returns the cell at row, col.
func (g *Grid) At(row, col int) GridCell {
	return g.Cells[row][col]
}

// OpaqueCount returns the number of non-transparent cells.
func (g *Grid) OpaqueCount() int {
	n := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			if !cell.Transparent {
				n++
			}
		}
	}
	return n
}

// GridOptions controls grid generation.
type GridOptions struct {
	// Threshold is the alpha value at or below which a pixel is transparent.
	Threshold uint8
	// ForceTransparent marks every cell transparent; used for images with no
	// opaque pixels.
	ForceTransparent bool
	// Logger receives consistency warnings. Defaults to a null logger.
	Logger hclog.Logger
}

// GenerateGrid builds the per-pixel grid from a palette-mapped buffer and
// the original buffer it was mapped from. Opaque pixels whose colour is not
// in the palette are logged and emitted as transparent.
func GenerateGrid(mapped, original *Buffer, p *Palette, opts GridOptions) (*Grid, error) {
	if mapped.Width != original.Width || mapped.Height != original.Height {
		return nil, fmt.Errorf("buffer dimensions differ: mapped %dx%d, original %dx%d",
			mapped.Width, mapped.Height, original.Width, original.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	idx := p.Index()
	grid := &Grid{
		Width:  mapped.Width,
		Height: mapped.Height,
		Cells:  make([][]GridCell, mapped.Height),
	}

	for y := range mapped.Height {
		row := make([]GridCell, mapped.Width)
		for x := range mapped.Width {
			i := y*mapped.Width + x
			c := mapped.At(i)
			cell := GridCell{Row: y, Col: x, OriginalColor: original.At(i)}

			if opts.ForceTransparent || !IsOpaque(c, opts.Threshold) {
				cell.Number = TransparentNumber
				cell.Transparent = true
				cell.Revealed = true
				row[x] = cell
				continue
			}

			at, ok := idx[c.RGB()]
			if !ok {
				logger.Warn("pixel colour not found in palette, marking transparent",
					"row", y, "col", x, "colour", c.Hex())
				grid.Inconsistent++
				cell.Number = TransparentNumber
				cell.Transparent = true
				cell.Revealed = true
				row[x] = cell
				continue
			}

			entry := p.Entries[at]
			cell.Color = entry.Color
			cell.Color.A = c.A
			cell.Number = entry.Number
			row[x] = cell
		}
		grid.Cells[y] = row
	}

	return grid, nil
}
