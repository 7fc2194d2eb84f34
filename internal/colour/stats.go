package colour

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Stats summarises the per-pixel error introduced by quantization.
type Stats struct {
	Pixels int     `json:"pixels"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Max    float64 `json:"max"`
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d px, error mean %.2f, stddev %.2f, max %.2f", s.Pixels, s.Mean, s.StdDev, s.Max)
}

// MeasureError compares the opaque pixels of original with their mapped
// counterparts and returns the distribution of Euclidean RGB distances.
func MeasureError(original, mapped *Buffer, threshold uint8) Stats {
	n := min(original.Len(), mapped.Len())
	dists := make([]float64, 0, n)
	maxDist := 0.0
	for i := range n {
		o := original.At(i)
		if !IsOpaque(o, threshold) {
			continue
		}
		d := Distance(o, mapped.At(i))
		dists = append(dists, d)
		maxDist = max(maxDist, d)
	}

	s := Stats{Pixels: len(dists), Max: maxDist}
	if len(dists) == 0 {
		return s
	}
	s.Mean = stat.Mean(dists, nil)
	if len(dists) > 1 {
		s.StdDev = stat.StdDev(dists, nil)
	}
	return s
}
