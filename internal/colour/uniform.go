package colour

import (
	"fmt"
	"math"
)

// DefaultLevels is the number of levels per channel used by UniformQuantizer.
const DefaultLevels = 8

// UniformQuantizer snaps every channel to one of a fixed number of evenly
// spaced levels. It does not adapt to the image and does not honour a
// palette budget; callers must check the resulting palette size.
type UniformQuantizer struct {
	levels int
}

// NewUniformQuantizer creates a quantizer with the given number of levels per
// channel. Values outside 2..256 fall back to DefaultLevels.
func NewUniformQuantizer(levels int) *UniformQuantizer {
	if levels < 2 || levels > 256 {
		levels = DefaultLevels
	}
	return &UniformQuantizer{levels: levels}
}

// Levels returns the number of levels per channel.
func (q *UniformQuantizer) Levels() int {
	return q.levels
}

// Snap returns c with every channel rounded to the nearest level.
func (q *UniformQuantizer) Snap(c Color) Color {
	step := 255.0 / float64(q.levels-1)
	level := func(v uint8) uint8 {
		return uint8(math.Round(math.Round(float64(v)/step) * step))
	}
	return Color{R: level(c.R), G: level(c.G), B: level(c.B), A: 255}
}

// Quantize tallies the snapped colours of pixels in first-seen order.
// k is validated but not enforced.
func (q *UniformQuantizer) Quantize(pixels []Color, k int) (*Palette, error) {
	if err := validateBudget(k); err != nil {
		return nil, err
	}

	var colors []Color
	counts := make(map[Color]int)
	for _, p := range pixels {
		s := q.Snap(p)
		if _, ok := counts[s]; !ok {
			colors = append(colors, s)
		}
		counts[s]++
	}

	freq := make([]int, len(colors))
	for i, c := range colors {
		freq[i] = counts[c]
	}
	return NewPalette(colors, freq), nil
}

// MapBuffer returns a copy of buf with every opaque pixel snapped to its
// level, keeping its alpha. Transparent pixels are copied unchanged.
func (q *UniformQuantizer) MapBuffer(buf *Buffer, _ *Palette, threshold uint8) *Buffer {
	out := buf.Clone()
	for i := range buf.Len() {
		c := buf.At(i)
		if !IsOpaque(c, threshold) {
			continue
		}
		snapped := q.Snap(c)
		snapped.A = c.A
		out.Set(i, snapped)
	}
	return out
}

// String describes the quantizer.
func (q *UniformQuantizer) String() string {
	return fmt.Sprintf("uniform(%d levels)", q.levels)
}
