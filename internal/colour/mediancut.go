package colour

import "slices"

// colorBox is an axis-aligned region of RGB space holding its own pixels.
type colorBox struct {
	pixels   []Color
	min, max Color
}

func newColorBox(pixels []Color) colorBox {
	b := colorBox{pixels: pixels}
	b.bounds()
	return b
}

// bounds recomputes the per-channel extrema of the box.
func (b *colorBox) bounds() {
	b.min = Color{R: 255, G: 255, B: 255, A: 255}
	b.max = Color{A: 255}
	for _, p := range b.pixels {
		b.min.R = min(b.min.R, p.R)
		b.min.G = min(b.min.G, p.G)
		b.min.B = min(b.min.B, p.B)
		b.max.R = max(b.max.R, p.R)
		b.max.G = max(b.max.G, p.G)
		b.max.B = max(b.max.B, p.B)
	}
}

func (b *colorBox) ranges() (r, g, bl int) {
	return int(b.max.R) - int(b.min.R), int(b.max.G) - int(b.min.G), int(b.max.B) - int(b.min.B)
}

func (b *colorBox) volume() int {
	r, g, bl := b.ranges()
	return r * g * bl
}

// splittable reports whether splitting the box can separate distinct colours.
func (b *colorBox) splittable() bool {
	return len(b.pixels) > 1 && !b.min.SameRGB(b.max)
}

// longestAxis returns 0, 1 or 2 for red, green or blue. Red wins ties, then green.
func (b *colorBox) longestAxis() int {
	r, g, bl := b.ranges()
	switch {
	case r >= g && r >= bl:
		return 0
	case g >= bl:
		return 1
	default:
		return 2
	}
}

// split sorts the box along its longest axis and cuts it at floor(n/2).
// Both halves get freshly allocated pixel slices.
func (b *colorBox) split() (colorBox, colorBox) {
	axis := b.longestAxis()
	sorted := slices.Clone(b.pixels)
	slices.SortStableFunc(sorted, func(p, q Color) int {
		return channel(p, axis) - channel(q, axis)
	})

	mid := len(sorted) / 2
	left := slices.Clone(sorted[:mid])
	right := slices.Clone(sorted[mid:])
	return newColorBox(left), newColorBox(right)
}

// mean returns the rounded per-channel average of the box pixels.
func (b *colorBox) mean() Color {
	var r, g, bl int
	for _, p := range b.pixels {
		r += int(p.R)
		g += int(p.G)
		bl += int(p.B)
	}
	n := len(b.pixels)
	return Color{R: meanChannel(r, n), G: meanChannel(g, n), B: meanChannel(bl, n), A: 255}
}

func channel(c Color, axis int) int {
	switch axis {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

// MedianCutQuantizer reduces a pixel population by recursively splitting
// the largest colour box at its population median. It is deterministic.
type MedianCutQuantizer struct{}

// NewMedianCutQuantizer creates a new MedianCutQuantizer.
func NewMedianCutQuantizer() *MedianCutQuantizer {
	return &MedianCutQuantizer{}
}

// Quantize splits pixels into at most k boxes and returns one entry per box,
// numbered in box order. Boxes whose mean rounds to a colour already in the
// palette are folded into the earlier entry.
func (q *MedianCutQuantizer) Quantize(pixels []Color, k int) (*Palette, error) {
	if err := validateBudget(k); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return &Palette{}, nil
	}

	boxes := []colorBox{newColorBox(slices.Clone(pixels))}
	for len(boxes) < k {
		target := -1
		bestVolume := -1
		for i := range boxes {
			if !boxes[i].splittable() {
				continue
			}
			if v := boxes[i].volume(); v > bestVolume {
				bestVolume = v
				target = i
			}
		}
		if target < 0 {
			break
		}

		left, right := boxes[target].split()
		boxes = slices.Replace(boxes, target, target+1, left, right)
	}

	var colors []Color
	var counts []int
	seen := make(map[Color]int)
	for i := range boxes {
		c := boxes[i].mean()
		if at, ok := seen[c]; ok {
			counts[at] += len(boxes[i].pixels)
			continue
		}
		seen[c] = len(colors)
		colors = append(colors, c)
		counts = append(counts, len(boxes[i].pixels))
	}
	return NewPalette(colors, counts), nil
}
