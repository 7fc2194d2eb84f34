package image

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/jmylchreest/pbn/internal/colour"
)

// RenderPreview draws grid at scale pixels per cell. Revealed cells are
// drawn in their palette colour and unrevealed ones as the grayscale of
// their original colour. With revealAll every opaque cell is drawn in
// colour. Transparent cells stay transparent.
func RenderPreview(grid *colour.Grid, scale int, revealAll bool) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, grid.Width*scale, grid.Height*scale))
	for _, row := range grid.Cells {
		for _, cell := range row {
			if cell.Transparent {
				continue
			}
			c := colour.Grayscale(cell.OriginalColor)
			if revealAll || cell.Revealed {
				c = cell.Color
			}
			fillRect(img, cell.Col*scale, cell.Row*scale, scale, scale, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}

// RenderSwatch draws the palette as a strip of square tiles in palette order.
func RenderSwatch(palette *colour.Palette, tileSize int) (*image.NRGBA, error) {
	if palette.Len() == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	img := image.NewNRGBA(image.Rect(0, 0, tileSize*palette.Len(), tileSize))
	for i, e := range palette.Entries {
		fillRect(img, i*tileSize, 0, tileSize, tileSize, color.NRGBA{R: e.Color.R, G: e.Color.G, B: e.Color.B, A: 255})
	}
	return img, nil
}

// SavePNG encodes img to filename.
func SavePNG(img image.Image, filename string) error {
	f, err := os.Create(filename) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return f.Close()
}

func fillRect(img *image.NRGBA, x0, y0, w, h int, c color.NRGBA) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
