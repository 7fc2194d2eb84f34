package colour

import "slices"

// CountDistinct returns the number of distinct RGB triples among pixels.
// Alpha is ignored.
func CountDistinct(pixels []Color) int {
	seen := make(map[Color]struct{})
	for _, p := range pixels {
		seen[p.RGB()] = struct{}{}
	}
	return len(seen)
}

// BuildDirect builds a lossless palette with one entry per distinct colour.
// Entries are ordered by ascending luma, keeping first-seen order for equal
// luma, and numbered 1..N in that order.
func BuildDirect(pixels []Color) *Palette {
	var order []Color
	counts := make(map[Color]int)
	for _, p := range pixels {
		key := p.RGB()
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}

	slices.SortStableFunc(order, func(a, b Color) int {
		return Luma(a) - Luma(b)
	})

	freq := make([]int, len(order))
	for i, c := range order {
		freq[i] = counts[c]
	}
	return NewPalette(order, freq)
}
