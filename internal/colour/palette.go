package colour

import (
	"encoding/json"
	"fmt"
	"slices"
)

// MaxPaletteSize is the largest palette budget a caller may request.
const MaxPaletteSize = 128

// MaxDistinctColours is the largest number of distinct opaque colours an
// image may contain before it is rejected outright.
const MaxDistinctColours = 128

// PaletteEntry is one numbered colour of a palette.
type PaletteEntry struct {
	Color  Color `json:"color"`
	Number int   `json:"number"`
	Count  int   `json:"count"`
}

// Palette is an ordered list of numbered colours.
type Palette struct {
	Entries []PaletteEntry
}

// NewPalette creates a palette from colours and their pixel counts,
// numbering entries 1..N in the given order.
func NewPalette(colors []Color, counts []int) *Palette {
	entries := make([]PaletteEntry, len(colors))
	for i, c := range colors {
		entries[i] = PaletteEntry{Color: c.RGB(), Number: i + 1}
		if i < len(counts) {
			entries[i].Count = counts[i]
		}
	}
	return &Palette{Entries: entries}
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// Colors returns the entry colours in palette order.
func (p *Palette) Colors() []Color {
	colors := make([]Color, len(p.Entries))
	for i, e := range p.Entries {
		colors[i] = e.Color
	}
	return colors
}

// TotalCount returns the sum of entry counts.
func (p *Palette) TotalCount() int {
	total := 0
	for _, e := range p.Entries {
		total += e.Count
	}
	return total
}

// Renumber assigns numbers 1..N in current entry order.
func (p *Palette) Renumber() {
	for i := range p.Entries {
		p.Entries[i].Number = i + 1
	}
}

// Compact drops entries with a zero count and renumbers the remainder.
func (p *Palette) Compact() {
	p.Entries = slices.DeleteFunc(p.Entries, func(e PaletteEntry) bool {
		return e.Count == 0
	})
	p.Renumber()
}

// Get returns the entry with the given number.
// Returns an error if no entry carries that number.
func (p *Palette) Get(number int) (PaletteEntry, error) {
	for _, e := range p.Entries {
		if e.Number == number {
			return e, nil
		}
	}
	return PaletteEntry{}, fmt.Errorf("no palette entry numbered %d (palette has %d colours)", number, len(p.Entries))
}

// Index returns a lookup from RGB colour to palette position. When the same
// colour appears more than once the first position wins.
func (p *Palette) Index() map[Color]int {
	idx := make(map[Color]int, len(p.Entries))
	for i, e := range p.Entries {
		key := e.Color.RGB()
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// entryJSON represents a palette entry in JSON output format.
type entryJSON struct {
	Number int    `json:"number"`
	Hex    string `json:"hex"`
	RGB    Color  `json:"rgb"`
	Count  int    `json:"count"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int         `json:"count"`
	Entries []entryJSON `json:"entries"`
}

// JSON returns the JSON-friendly representation of the palette.
func (p *Palette) JSON() PaletteJSON {
	entries := make([]entryJSON, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = entryJSON{
			Number: e.Number,
			Hex:    e.Color.Hex(),
			RGB:    e.Color.RGB(),
			Count:  e.Count,
		}
	}
	return PaletteJSON{Count: len(entries), Entries: entries}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSON(), "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if p.Len() == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Entries))
	for _, e := range p.Entries {
		result += fmt.Sprintf("  %2d: %s (%s) x%d\n", e.Number, e.Color.Hex(), e.Color.String(), e.Count)
	}
	return result
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, PaletteEntry) bool) {
	return func(yield func(int, PaletteEntry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
