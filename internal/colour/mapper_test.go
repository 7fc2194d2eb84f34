package colour

import "testing"

func TestNearest(t *testing.T) {
	p := NewPalette([]Color{opaque(0, 0, 0), opaque(10, 0, 0), opaque(255, 255, 255)}, nil)

	tests := []struct {
		name string
		in   Color
		want int
	}{
		{name: "exact match", in: opaque(255, 255, 255), want: 2},
		{name: "closest", in: opaque(8, 1, 0), want: 1},
		{name: "tie goes to first", in: opaque(5, 0, 0), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nearest(tt.in, p); got != tt.want {
				t.Errorf("Nearest(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}

	if got := Nearest(opaque(1, 2, 3), &Palette{}); got != -1 {
		t.Errorf("Nearest() on empty palette = %d, want -1", got)
	}
}

func TestMapBuffer(t *testing.T) {
	src := mustBuffer(t, 2, 2, []Color{
		{R: 12, G: 3, B: 1, A: 255},
		{R: 240, G: 250, B: 245, A: 200},
		{R: 10, G: 200, B: 30, A: 100},
		{R: 5, G: 5, B: 5, A: 0},
	})
	p := NewPalette([]Color{opaque(0, 0, 0), opaque(255, 255, 255)}, nil)

	mapped := MapBuffer(src, p, DefaultAlphaThreshold)

	want := []Color{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 200},
		{R: 10, G: 200, B: 30, A: 100},
		{R: 5, G: 5, B: 5, A: 0},
	}
	for i, w := range want {
		if got := mapped.At(i); got != w {
			t.Errorf("pixel %d = %+v, want %+v", i, got, w)
		}
	}
	if src.At(0) != (Color{R: 12, G: 3, B: 1, A: 255}) {
		t.Error("MapBuffer modified its input")
	}

	again := MapBuffer(mapped, p, DefaultAlphaThreshold)
	for i := range mapped.Len() {
		if again.At(i) != mapped.At(i) {
			t.Errorf("second mapping changed pixel %d: %+v -> %+v", i, mapped.At(i), again.At(i))
		}
	}
}

func TestMapBufferEmptyPalette(t *testing.T) {
	src := mustBuffer(t, 1, 1, []Color{opaque(1, 2, 3)})
	mapped := MapBuffer(src, &Palette{}, DefaultAlphaThreshold)
	if mapped.At(0) != opaque(1, 2, 3) {
		t.Errorf("pixel = %+v, want unchanged", mapped.At(0))
	}
}

func TestTally(t *testing.T) {
	p := NewPalette([]Color{opaque(0, 0, 0), opaque(255, 255, 255), opaque(1, 1, 1)}, nil)
	mapped := mustBuffer(t, 5, 1, []Color{
		opaque(0, 0, 0),
		{R: 255, G: 255, B: 255, A: 129},
		opaque(0, 0, 0),
		{R: 0, G: 0, B: 0, A: 128},
		opaque(9, 9, 9),
	})

	got := Tally(mapped, p, DefaultAlphaThreshold)
	want := []int{2, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tally()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
