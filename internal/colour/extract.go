package colour

// DefaultAlphaThreshold is the alpha value at or below which a pixel is
// treated as transparent.
const DefaultAlphaThreshold = 128

// Extraction is the opaque pixel population of a buffer.
type Extraction struct {
	// Pixels holds the opaque pixels in scan order.
	Pixels []Color
	// Transparent is the number of pixels excluded by the alpha threshold.
	Transparent int
}

// Empty reports whether the buffer had no opaque pixels at all.
func (e Extraction) Empty() bool {
	return len(e.Pixels) == 0
}

// IsOpaque reports whether c is above the alpha threshold.
func IsOpaque(c Color, threshold uint8) bool {
	return c.A > threshold
}

// ExtractOpaque returns every pixel of buf whose alpha is above threshold,
// preserving scan order.
func ExtractOpaque(buf *Buffer, threshold uint8) Extraction {
	n := buf.Len()
	pixels := make([]Color, 0, n)
	transparent := 0
	for i := range n {
		c := buf.At(i)
		if !IsOpaque(c, threshold) {
			transparent++
			continue
		}
		pixels = append(pixels, c)
	}
	return Extraction{Pixels: pixels, Transparent: transparent}
}
