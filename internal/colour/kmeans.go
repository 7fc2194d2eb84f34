package colour

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jmylchreest/pbn/internal/parallel"
)

const (
	// DefaultMaxIterations bounds the number of assignment passes.
	DefaultMaxIterations = 20
	// DefaultConvergence is the number of pixels allowed to change cluster
	// in a pass for the clustering to count as converged.
	DefaultConvergence = 1
)

// KMeansQuantizer reduces a pixel population with k-means clustering seeded
// by k-means++.
type KMeansQuantizer struct {
	maxIterations int
	convergence   int
	chunkSize     int
	rng           *rand.Rand
}

// KMeansOption configures a KMeansQuantizer.
type KMeansOption func(*KMeansQuantizer)

// WithRand sets the random source used for seeding and for reseeding empty
// clusters. Supplying a seeded source makes the output reproducible.
func WithRand(rng *rand.Rand) KMeansOption {
	return func(q *KMeansQuantizer) {
		if rng != nil {
			q.rng = rng
		}
	}
}

// WithSeed is shorthand for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) KMeansOption {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithMaxIterations caps the number of assignment passes.
func WithMaxIterations(n int) KMeansOption {
	return func(q *KMeansQuantizer) {
		if n > 0 {
			q.maxIterations = n
		}
	}
}

// WithConvergence sets how many pixels may change cluster in a pass before
// the clustering is considered converged.
func WithConvergence(n int) KMeansOption {
	return func(q *KMeansQuantizer) {
		if n >= 0 {
			q.convergence = n
		}
	}
}

// withChunkSize overrides the per-worker chunk size; used by tests to force
// the parallel path on small inputs.
func withChunkSize(n int) KMeansOption {
	return func(q *KMeansQuantizer) {
		q.chunkSize = n
	}
}

// NewKMeansQuantizer creates a new KMeansQuantizer with default settings.
func NewKMeansQuantizer(opts ...KMeansOption) *KMeansQuantizer {
	q := &KMeansQuantizer{
		maxIterations: DefaultMaxIterations,
		convergence:   DefaultConvergence,
		chunkSize:     parallel.DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 - clustering, not security
	}
	return q
}

// Quantize clusters pixels into at most k colours. Clusters that end up
// empty are dropped, so the palette may be smaller than k.
func (q *KMeansQuantizer) Quantize(pixels []Color, k int) (*Palette, error) {
	if err := validateBudget(k); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return &Palette{}, nil
	}

	centroids := q.seed(pixels, k)
	assignments := make([]int, len(pixels))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; ; iter++ {
		changed := q.assign(pixels, centroids, assignments)
		if changed <= q.convergence || iter+1 >= q.maxIterations {
			break
		}
		centroids = q.recalculate(pixels, assignments, len(centroids))
	}

	counts := make([]int, len(centroids))
	for _, a := range assignments {
		counts[a]++
	}

	var colors []Color
	var kept []int
	for i, c := range centroids {
		if counts[i] == 0 {
			continue
		}
		colors = append(colors, c)
		kept = append(kept, counts[i])
	}
	return NewPalette(colors, kept), nil
}

// seed picks up to k initial centroids with k-means++. The first centroid is
// a uniformly random pixel; each following one is drawn with probability
// proportional to its squared distance from the nearest chosen centroid.
// Seeding stops early once every pixel coincides with a centroid.
func (q *KMeansQuantizer) seed(pixels []Color, k int) []Color {
	centroids := make([]Color, 0, k)
	centroids = append(centroids, pixels[q.rng.Intn(len(pixels))].RGB())

	nearest := make([]int, len(pixels))
	for i, p := range pixels {
		nearest[i] = DistanceSq(p, centroids[0])
	}

	for len(centroids) < k {
		total := 0.0
		for _, d := range nearest {
			total += float64(d)
		}
		if total == 0 {
			break
		}

		target := q.rng.Float64() * total
		cumulative := 0.0
		chosen := -1
		for i, d := range nearest {
			if d == 0 {
				continue
			}
			chosen = i
			cumulative += float64(d)
			if cumulative > target {
				break
			}
		}

		next := pixels[chosen].RGB()
		centroids = append(centroids, next)
		for i, p := range pixels {
			if d := DistanceSq(p, next); d < nearest[i] {
				nearest[i] = d
			}
		}
	}

	return centroids
}

// assign moves every pixel to its nearest centroid and returns how many
// pixels changed cluster.
func (q *KMeansQuantizer) assign(pixels, centroids []Color, assignments []int) int {
	changedPerChunk := make([]int, parallel.NumChunks(len(pixels), q.chunkSize))
	parallel.Chunks(len(pixels), q.chunkSize, func(chunk, start, end int) {
		changed := 0
		for i := start; i < end; i++ {
			nearest := nearestColor(pixels[i], centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		changedPerChunk[chunk] = changed
	})

	total := 0
	for _, c := range changedPerChunk {
		total += c
	}
	return total
}

// recalculate moves each centroid to the rounded mean of its pixels.
// An empty cluster is reseeded with a random pixel.
func (q *KMeansQuantizer) recalculate(pixels []Color, assignments []int, k int) []Color {
	type sum struct{ r, g, b, n int }
	sums := make([]sum, k)
	for i, p := range pixels {
		s := &sums[assignments[i]]
		s.r += int(p.R)
		s.g += int(p.G)
		s.b += int(p.B)
		s.n++
	}

	centroids := make([]Color, k)
	for i, s := range sums {
		if s.n == 0 {
			centroids[i] = pixels[q.rng.Intn(len(pixels))].RGB()
			continue
		}
		centroids[i] = Color{
			R: meanChannel(s.r, s.n),
			G: meanChannel(s.g, s.n),
			B: meanChannel(s.b, s.n),
			A: 255,
		}
	}
	return centroids
}

// nearestColor returns the index of the colour closest to c. The first
// index wins ties.
func nearestColor(c Color, colors []Color) int {
	best := 0
	bestDist := math.MaxInt
	for i, candidate := range colors {
		if d := DistanceSq(c, candidate); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func validateBudget(k int) error {
	if k < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", k)
	}
	if k > MaxPaletteSize {
		return fmt.Errorf("colour count too large: %d (maximum: %d)", k, MaxPaletteSize)
	}
	return nil
}
