package colour

import (
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
)

// DominantQuantizer picks the most dominant colours using
// github.com/cenkalti/dominantcolor. Entry counts are left at zero; the
// caller is expected to tally them after mapping.
type DominantQuantizer struct{}

// NewDominantQuantizer creates a new DominantQuantizer.
func NewDominantQuantizer() *DominantQuantizer {
	return &DominantQuantizer{}
}

// Quantize returns up to k dominant colours of pixels, heaviest first.
func (q *DominantQuantizer) Quantize(pixels []Color, k int) (*Palette, error) {
	if err := validateBudget(k); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return &Palette{}, nil
	}

	found := dominantcolor.FindWeight(pixelImage(pixels), k)

	var colors []Color
	seen := make(map[Color]bool)
	for _, c := range found {
		rgb := Color{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B, A: 255}
		if seen[rgb] {
			continue
		}
		seen[rgb] = true
		colors = append(colors, rgb)
		if len(colors) == k {
			break
		}
	}
	if len(colors) == 0 {
		// dominantcolor can come back empty for tiny inputs.
		colors = append(colors, pixels[0].RGB())
	}
	return NewPalette(colors, nil), nil
}

// pixelImage lays pixels out in a roughly square opaque image.
func pixelImage(pixels []Color) *image.NRGBA {
	w := max(1, int(math.Ceil(math.Sqrt(float64(len(pixels))))))
	h := (len(pixels) + w - 1) / w
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range w * h {
		p := pixels[i%len(pixels)]
		img.SetNRGBA(i%w, i/w, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
	}
	return img
}
