package colour

import "github.com/jmylchreest/pbn/internal/parallel"

// Nearest returns the position of the palette entry closest to c by
// Euclidean RGB distance. Earlier entries win ties. Returns -1 for an empty
// palette.
func Nearest(c Color, p *Palette) int {
	if p.Len() == 0 {
		return -1
	}
	best := 0
	bestDist := DistanceSq(c, p.Entries[0].Color)
	for i := 1; i < len(p.Entries); i++ {
		if d := DistanceSq(c, p.Entries[i].Color); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// MapBuffer returns a copy of buf with every opaque pixel replaced by its
// nearest palette colour. Alpha is preserved and transparent pixels are
// copied unchanged. Mapping an already mapped buffer is a no-op.
func MapBuffer(buf *Buffer, p *Palette, threshold uint8) *Buffer {
	out := buf.Clone()
	if p.Len() == 0 {
		return out
	}

	colors := p.Colors()
	parallel.Chunks(buf.Len(), parallel.DefaultChunkSize, func(_, start, end int) {
		for i := start; i < end; i++ {
			c := buf.At(i)
			if !IsOpaque(c, threshold) {
				continue
			}
			snapped := colors[nearestColor(c, colors)]
			snapped.A = c.A
			out.Set(i, snapped)
		}
	})
	return out
}

// Tally counts the opaque pixels of a mapped buffer per palette entry.
// Pixels that match no entry are not counted.
func Tally(mapped *Buffer, p *Palette, threshold uint8) []int {
	counts := make([]int, p.Len())
	idx := p.Index()
	for i := range mapped.Len() {
		c := mapped.At(i)
		if !IsOpaque(c, threshold) {
			continue
		}
		if at, ok := idx[c.RGB()]; ok {
			counts[at]++
		}
	}
	return counts
}
