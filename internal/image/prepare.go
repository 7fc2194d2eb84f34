package image

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/jmylchreest/pbn/internal/colour"
)

// Resize scales img down so neither side exceeds maxDim, keeping the aspect
// ratio. Images already within bounds, and maxDim <= 0, return img unchanged.
func Resize(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	dw, dh := maxDim, maxDim
	if w >= h {
		dh = max(1, h*maxDim/w)
	} else {
		dw = max(1, w*maxDim/h)
	}

	dest := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, b, draw.Src, nil)
	return dest
}

// ParseBackground parses a hex colour such as "#fff" or "#336699".
func ParseBackground(s string) (color.Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("could not read colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Flatten composites img over a solid background, producing a fully
// opaque image.
func Flatten(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	dest := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dest, dest.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dest, dest.Bounds(), img, b.Min, draw.Over)
	return dest
}

// ToBuffer converts img to a non-premultiplied RGBA buffer.
func ToBuffer(img image.Image) (*colour.Buffer, error) {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != b.Dx()*4 || len(nrgba.Pix) != b.Dx()*b.Dy()*4 {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return colour.NewBuffer(b.Dx(), b.Dy(), nrgba.Pix)
}
