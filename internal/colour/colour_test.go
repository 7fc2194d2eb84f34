package colour

import "testing"

func TestLuma(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  int
	}{
		{name: "black", color: Color{A: 255}, want: 0},
		{name: "white", color: Color{R: 255, G: 255, B: 255, A: 255}, want: 255},
		{name: "red", color: Color{R: 255, A: 255}, want: 76},
		{name: "green", color: Color{G: 255, A: 255}, want: 150},
		{name: "blue", color: Color{B: 255, A: 255}, want: 29},
		{name: "grey", color: Color{R: 128, G: 128, B: 128, A: 255}, want: 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Luma(tt.color); got != tt.want {
				t.Errorf("Luma() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDistanceSq(t *testing.T) {
	a := Color{R: 10, G: 20, B: 30, A: 255}
	b := Color{R: 13, G: 24, B: 30, A: 0}

	if got := DistanceSq(a, b); got != 25 {
		t.Errorf("DistanceSq() = %d, want 25", got)
	}
	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
	if got := DistanceSq(a, a); got != 0 {
		t.Errorf("DistanceSq(a, a) = %d, want 0", got)
	}
}

func TestGrayscale(t *testing.T) {
	got := Grayscale(Color{R: 255, A: 42})
	want := Color{R: 76, G: 76, B: 76, A: 42}
	if got != want {
		t.Errorf("Grayscale() = %+v, want %+v", got, want)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{Color{R: 255, A: 255}, "#ff0000"},
		{Color{R: 26, G: 43, B: 60}, "#1a2b3c"},
		{Color{R: 128, G: 128, B: 128, A: 255}, "#808080"},
	}
	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("Hex() = %s, want %s", got, tt.want)
		}
	}
}

func TestColorRGBIgnoresAlpha(t *testing.T) {
	a := Color{R: 1, G: 2, B: 3, A: 10}
	b := Color{R: 1, G: 2, B: 3, A: 200}
	if a.RGB() != b.RGB() {
		t.Errorf("RGB() keys differ: %+v vs %+v", a.RGB(), b.RGB())
	}
	if !a.SameRGB(b) {
		t.Error("SameRGB() = false, want true")
	}
}

func TestMeanChannel(t *testing.T) {
	tests := []struct {
		sum, n int
		want   uint8
	}{
		{10, 2, 5},
		{11, 2, 6},
		{10, 3, 3},
		{255 * 4, 4, 255},
	}
	for _, tt := range tests {
		if got := meanChannel(tt.sum, tt.n); got != tt.want {
			t.Errorf("meanChannel(%d, %d) = %d, want %d", tt.sum, tt.n, got, tt.want)
		}
	}
}

// opaque is a test helper for fully opaque colours.
func opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// mustBuffer builds a buffer from colours or fails the test.
func mustBuffer(t *testing.T, w, h int, colors []Color) *Buffer {
	t.Helper()
	buf, err := BufferFromColors(w, h, colors)
	if err != nil {
		t.Fatalf("BufferFromColors() error = %v", err)
	}
	return buf
}
