package rvt

// Cell is a single position on the screen grid. Grounded on rvt::Character
// (character.hpp): a fixed-size value, not a pointer into the extended
// table except by index.
//
// When Rendition has RenditionExtendedChar set, CodePoint is not a scalar
// value but an index into the owning Screen's extended-char table.
type Cell struct {
	CodePoint uint32
	Fg        Color
	Bg        Color
	Rendition RenditionFlags
	IsReal    bool
}

// defaultCell is the zero-value cell any unstored (ragged, trimmed)
// position resolves to: code point 0, default colors, no rendition,
// not real.
var defaultCell = Cell{
	Fg: DefaultForegroundColor(),
	Bg: DefaultBackgroundColor(),
}

// DefaultCell returns a copy of the cell used to pad rows and erased
// regions.
func DefaultCell() Cell { return defaultCell }

// IsDefault reports whether c is indistinguishable from the default cell.
func (c Cell) IsDefault() bool { return c == defaultCell }
