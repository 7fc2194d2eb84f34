package colour

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestGenerateGrid(t *testing.T) {
	original := mustBuffer(t, 2, 2, []Color{
		{R: 12, G: 3, B: 1, A: 255},
		{R: 240, G: 250, B: 245, A: 200},
		{R: 10, G: 200, B: 30, A: 100},
		opaque(2, 2, 2),
	})
	p := NewPalette([]Color{opaque(0, 0, 0), opaque(255, 255, 255)}, []int{2, 1})
	mapped := MapBuffer(original, p, DefaultAlphaThreshold)

	grid, err := GenerateGrid(mapped, original, p, GridOptions{Threshold: DefaultAlphaThreshold})
	if err != nil {
		t.Fatalf("GenerateGrid() error = %v", err)
	}
	if grid.Width != 2 || grid.Height != 2 || len(grid.Cells) != 2 || len(grid.Cells[0]) != 2 {
		t.Fatalf("grid shape = %dx%d (%d rows)", grid.Width, grid.Height, len(grid.Cells))
	}

	tests := []struct {
		row, col    int
		number      int
		transparent bool
		color       Color
	}{
		{0, 0, 1, false, Color{R: 0, G: 0, B: 0, A: 255}},
		{0, 1, 2, false, Color{R: 255, G: 255, B: 255, A: 200}},
		{1, 0, TransparentNumber, true, Color{}},
		{1, 1, 1, false, Color{R: 0, G: 0, B: 0, A: 255}},
	}
	for _, tt := range tests {
		cell := grid.At(tt.row, tt.col)
		if cell.Row != tt.row || cell.Col != tt.col {
			t.Errorf("cell (%d,%d) has coordinates (%d,%d)", tt.row, tt.col, cell.Row, cell.Col)
		}
		if cell.Number != tt.number {
			t.Errorf("cell (%d,%d) number = %d, want %d", tt.row, tt.col, cell.Number, tt.number)
		}
		if cell.Transparent != tt.transparent {
			t.Errorf("cell (%d,%d) transparent = %v, want %v", tt.row, tt.col, cell.Transparent, tt.transparent)
		}
		if cell.Revealed != tt.transparent {
			t.Errorf("cell (%d,%d) revealed = %v, want %v", tt.row, tt.col, cell.Revealed, tt.transparent)
		}
		if cell.Color != tt.color {
			t.Errorf("cell (%d,%d) colour = %+v, want %+v", tt.row, tt.col, cell.Color, tt.color)
		}
		if cell.OriginalColor != original.AtXY(tt.col, tt.row) {
			t.Errorf("cell (%d,%d) original = %+v, want %+v", tt.row, tt.col, cell.OriginalColor, original.AtXY(tt.col, tt.row))
		}
	}
	if got := grid.OpaqueCount(); got != 3 {
		t.Errorf("OpaqueCount() = %d, want 3", got)
	}
}

func TestGenerateGridForceTransparent(t *testing.T) {
	buf := mustBuffer(t, 3, 1, []Color{opaque(1, 1, 1), {A: 0}, opaque(9, 9, 9)})

	grid, err := GenerateGrid(buf, buf, &Palette{}, GridOptions{Threshold: DefaultAlphaThreshold, ForceTransparent: true})
	if err != nil {
		t.Fatalf("GenerateGrid() error = %v", err)
	}
	for _, cell := range grid.Cells[0] {
		if !cell.Transparent || !cell.Revealed || cell.Number != TransparentNumber {
			t.Errorf("cell %+v should be transparent and revealed", cell)
		}
	}
	if grid.OpaqueCount() != 0 {
		t.Errorf("OpaqueCount() = %d, want 0", grid.OpaqueCount())
	}
}

func TestGenerateGridPaletteMiss(t *testing.T) {
	var logs bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Warn})

	buf := mustBuffer(t, 2, 1, []Color{opaque(0, 0, 0), opaque(7, 7, 7)})
	p := NewPalette([]Color{opaque(0, 0, 0)}, []int{1})

	grid, err := GenerateGrid(buf, buf, p, GridOptions{Threshold: DefaultAlphaThreshold, Logger: logger})
	if err != nil {
		t.Fatalf("GenerateGrid() error = %v", err)
	}
	if grid.Inconsistent != 1 {
		t.Errorf("Inconsistent = %d, want 1", grid.Inconsistent)
	}
	miss := grid.At(0, 1)
	if !miss.Transparent || miss.Number != TransparentNumber || !miss.Revealed {
		t.Errorf("missed cell = %+v, want transparent", miss)
	}
	if !strings.Contains(logs.String(), "not found in palette") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestGenerateGridDimensionMismatch(t *testing.T) {
	a := mustBuffer(t, 2, 1, []Color{opaque(0, 0, 0), opaque(0, 0, 0)})
	b := mustBuffer(t, 1, 2, []Color{opaque(0, 0, 0), opaque(0, 0, 0)})
	if _, err := GenerateGrid(a, b, &Palette{}, GridOptions{}); err == nil {
		t.Error("GenerateGrid() error = nil, want dimension error")
	}
}
