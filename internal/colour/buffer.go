package colour

import "fmt"

// Buffer is a decoded image as a row-major RGBA byte sequence with four
// bytes per pixel.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer wraps pix as a Buffer after checking its length matches the
// dimensions.
func NewBuffer(width, height int, pix []uint8) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid buffer dimensions: %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("buffer size mismatch: got %d bytes, want %d for %dx%d", len(pix), width*height*4, width, height)
	}
	return &Buffer{Width: width, Height: height, Pix: pix}, nil
}

// BufferFromColors builds a buffer from colours in row-major order.
func BufferFromColors(width, height int, colors []Color) (*Buffer, error) {
	if len(colors) != width*height {
		return nil, fmt.Errorf("colour count mismatch: got %d, want %d for %dx%d", len(colors), width*height, width, height)
	}
	pix := make([]uint8, 0, len(colors)*4)
	for _, c := range colors {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return NewBuffer(width, height, pix)
}

// Len returns the number of pixels in the buffer.
func (b *Buffer) Len() int {
	return len(b.Pix) / 4
}

// At returns the i-th pixel in scan order.
func (b *Buffer) At(i int) Color {
	p := b.Pix[i*4 : i*4+4 : i*4+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// AtXY returns the pixel at column x, row y.
func (b *Buffer) AtXY(x, y int) Color {
	return b.At(y*b.Width + x)
}

// Set overwrites the i-th pixel.
func (b *Buffer) Set(i int, c Color) {
	p := b.Pix[i*4 : i*4+4 : i*4+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}
