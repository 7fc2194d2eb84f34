// Package colour implements palette quantization and pixel grid generation
// for paint-by-number images.
package colour

import (
	"fmt"
	"math"
)

// Color is an 8-bit RGBA colour. Palette identity only considers the RGB
// channels; alpha is carried along for transparency decisions.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB returns the colour with alpha forced to 255, for use as a palette key.
func (c Color) RGB() Color {
	return Color{R: c.R, G: c.G, B: c.B, A: 255}
}

// SameRGB reports whether two colours have identical RGB channels.
func (c Color) SameRGB(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns the colour in the format "rgb(r, g, b)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color. Colours are treated as non-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R)
	r |= r << 8
	r = r * a / 0xffff
	g = uint32(c.G)
	g |= g << 8
	g = g * a / 0xffff
	b = uint32(c.B)
	b |= b << 8
	b = b * a / 0xffff
	return r, g, b, a
}

// DistanceSq returns the squared Euclidean distance between the RGB channels
// of two colours.
func DistanceSq(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Distance returns the Euclidean distance between the RGB channels of two colours.
func Distance(a, b Color) float64 {
	return math.Sqrt(float64(DistanceSq(a, b)))
}

// Luma returns the rounded perceptual brightness 0.299r + 0.587g + 0.114b.
func Luma(c Color) int {
	return int(math.Round(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)))
}

// Grayscale returns the luma of c replicated across the RGB channels.
// Alpha is preserved.
func Grayscale(c Color) Color {
	y := uint8(min(255, Luma(c)))
	return Color{R: y, G: y, B: y, A: c.A}
}

// meanChannel returns sum/n rounded to the nearest integer.
func meanChannel(sum, n int) uint8 {
	return uint8((sum + n/2) / n)
}
