package rvt

// RenditionFlags is the graphic-attribute bitset of a cell, set by SGR.
// Grounded on rvt::Rendition (character_color.hpp / screen.hpp): bold,
// italic, underline, blink, reverse, extended (the code point field is an
// index into the extended-char table), strikeout. Flags are independent.
type RenditionFlags uint8

const (
	RenditionBold RenditionFlags = 1 << iota
	RenditionItalic
	RenditionUnderline
	RenditionBlink
	RenditionReverse
	RenditionExtendedChar
	RenditionStrikeout
)

// Has reports whether every bit in flag is set.
func (r RenditionFlags) Has(flag RenditionFlags) bool { return r&flag == flag }

// Set returns r with flag's bits set.
func (r RenditionFlags) Set(flag RenditionFlags) RenditionFlags { return r | flag }

// Clear returns r with flag's bits cleared.
func (r RenditionFlags) Clear(flag RenditionFlags) RenditionFlags { return r &^ flag }

// jsonPack compacts bold/italic/underline/blink into the JSON renderer's
// "r" field: bold=1, italic=2, underline=4, blink=8, combined by OR.
// Reverse and strikeout are intentionally excluded (unresolved in the
// source this was grounded on), extended never reaches a rendered run.
func (r RenditionFlags) jsonPack() int {
	v := 0
	if r.Has(RenditionBold) {
		v |= 1
	}
	if r.Has(RenditionItalic) {
		v |= 2
	}
	if r.Has(RenditionUnderline) {
		v |= 4
	}
	if r.Has(RenditionBlink) {
		v |= 8
	}
	return v
}
