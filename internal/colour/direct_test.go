package colour

import "testing"

func TestCountDistinct(t *testing.T) {
	pixels := []Color{
		{R: 1, A: 255},
		{R: 1, A: 200},
		{R: 2, A: 255},
		{G: 1, A: 255},
	}
	if got := CountDistinct(pixels); got != 3 {
		t.Errorf("CountDistinct() = %d, want 3", got)
	}
	if got := CountDistinct(nil); got != 0 {
		t.Errorf("CountDistinct(nil) = %d, want 0", got)
	}
}

func TestBuildDirectOrdersByLuma(t *testing.T) {
	white := opaque(255, 255, 255)
	red := opaque(255, 0, 0)
	black := opaque(0, 0, 0)
	blue := opaque(0, 0, 255)

	p := BuildDirect([]Color{white, red, black, blue, red, red})

	want := []struct {
		color Color
		count int
	}{
		{black, 1},
		{blue, 1},
		{red, 3},
		{white, 1},
	}
	if p.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(want))
	}
	for i, w := range want {
		e := p.Entries[i]
		if e.Color != w.color || e.Count != w.count || e.Number != i+1 {
			t.Errorf("Entries[%d] = %+v, want colour %v count %d number %d", i, e, w.color, w.count, i+1)
		}
	}
}

func TestBuildDirectStableForEqualLuma(t *testing.T) {
	// Both colours have luma 1.
	a := opaque(0, 2, 0)
	b := opaque(3, 0, 1)
	if Luma(a) != Luma(b) {
		t.Fatalf("test colours must share luma: %d vs %d", Luma(a), Luma(b))
	}

	p := BuildDirect([]Color{b, a, b})
	if p.Entries[0].Color != b || p.Entries[1].Color != a {
		t.Errorf("equal-luma entries reordered: %v", p.Colors())
	}
}
