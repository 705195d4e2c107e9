package rvt

// ColorSpace tags which of the five color variants a Color holds.
// Grounded on rvt::ColorSpace (character_color.hpp): Undefined, Default,
// System, Index256, RGB.
type ColorSpace uint8

const (
	ColorUndefined ColorSpace = iota
	ColorDefault              // u: 0 (foreground) or 1 (background), v: intense
	ColorSystem               // u: 0..7, v: intense
	ColorIndexed256           // u: 0..255
	ColorRGB                  // u: r, v: g, w: b
)

// Color is a tagged union over the five color spaces named in spec §3,
// plus a dim bit that is orthogonal to the variant but, per spec §9's
// resolved open question, participates in equality exactly as the
// original source treats it (dim is part of the color's identity, not
// just a rendering hint).
type Color struct {
	space   ColorSpace
	u, v, w uint8
	dim     bool
}

// DefaultForegroundColor is the Default-space foreground color.
func DefaultForegroundColor() Color { return Color{space: ColorDefault, u: 0} }

// DefaultBackgroundColor is the Default-space background color.
func DefaultBackgroundColor() Color { return Color{space: ColorDefault, u: 1} }

// SystemColor is one of the 8 base system colors (0..7), intense selects
// the bright variant (used by SGR 90-97/100-107).
func SystemColor(index uint8, intense bool) Color {
	c := Color{space: ColorSystem, u: index & 7}
	if intense {
		c.v = 1
	}
	return c
}

// Indexed256Color addresses the 256-color palette (SGR 38;5;N / 48;5;N).
func Indexed256Color(index uint8) Color {
	return Color{space: ColorIndexed256, u: index}
}

// RGBColor is a direct 24-bit truecolor value (SGR 38;2;R;G;B / 48;2;R;G;B).
func RGBColor(r, g, b uint8) Color {
	return Color{space: ColorRGB, u: r, v: g, w: b}
}

// Dim returns a copy of c with the dim bit set (SGR 2, "faint").
func (c Color) Dim() Color {
	c.dim = true
	return c
}

// IsDim reports whether the dim bit is set.
func (c Color) IsDim() bool { return c.dim }

// SetIntense marks a Default or System color as the intense (bright)
// variant; has no effect on Indexed256 or RGB colors.
func (c Color) SetIntense() Color {
	if c.space == ColorDefault || c.space == ColorSystem {
		c.v = 1
	}
	return c
}

// IsValid reports whether the color has a defined color space.
func (c Color) IsValid() bool { return c.space != ColorUndefined }

// RGB is a concrete, resolved 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Int packs the triple as 0xRRGGBB, matching the renderers' color2int.
func (c RGB) Int() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

func dimRGB(c RGB) RGB {
	return RGB{
		R: uint8(uint32(c.R) * 2 / 3),
		G: uint8(uint32(c.G) * 2 / 3),
		B: uint8(uint32(c.B) * 2 / 3),
	}
}

// baseColors is the number of entries per intensity level in a Palette:
// 2 default (fore/back) + 8 system colors.
const baseColors = 10

// Palette is the 20-entry color table spec §3 resolves colors against:
// index 0/1 are default fg/bg, 2..9 are the 8 system colors, 10/11 are
// intense default fg/bg, 12..19 are the intense system colors. Grounded
// on rvt::color_table / rvt::xterm_color_table (character_color.hpp).
type Palette [2 * baseColors]RGB

// DefaultPalette matches rvt::color_table: a muted default fg/bg
// (0xEEEEEE / 0x333333) used by spec §8's worked examples.
var DefaultPalette = Palette{
	{0xEE, 0xEE, 0xEE}, {0x33, 0x33, 0x33},
	{0x00, 0x00, 0x00}, {0xB2, 0x18, 0x18}, {0x18, 0xB2, 0x18}, {0xB2, 0x68, 0x18},
	{0x18, 0x18, 0xB2}, {0xB2, 0x18, 0xB2}, {0x18, 0xB2, 0xB2}, {0xB2, 0xB2, 0xB2},
	{0xFF, 0xFF, 0xFF}, {0x00, 0x00, 0x00},
	{0x68, 0x68, 0x68}, {0xFF, 0x54, 0x54}, {0x54, 0xFF, 0x54}, {0xFF, 0xFF, 0x54},
	{0x54, 0x54, 0xFF}, {0xFF, 0x54, 0xFF}, {0x54, 0xFF, 0xFF}, {0xFF, 0xFF, 0xFF},
}

// XtermPalette matches rvt::xterm_color_table: white-on-black defaults
// and classic xterm ANSI colors. Callers that want a closer-to-xterm
// rendering pass this instead of DefaultPalette.
var XtermPalette = Palette{
	{0xFF, 0xFF, 0xFF}, {0x00, 0x00, 0x00},
	{0x00, 0x00, 0x00}, {0xCD, 0x00, 0x00}, {0x00, 0xCD, 0x00}, {0xCD, 0xCD, 0x00},
	{0x00, 0x00, 0xEE}, {0xCD, 0x00, 0xCD}, {0x00, 0xCD, 0xCD}, {0xE5, 0xE5, 0xE5},
	{0xFF, 0xFF, 0xFF}, {0x00, 0x00, 0x00},
	{0x7F, 0x7F, 0x7F}, {0xFF, 0x00, 0x00}, {0x00, 0xFF, 0x00}, {0xFF, 0xFF, 0x00},
	{0x5C, 0x5C, 0xFF}, {0xFF, 0x00, 0xFF}, {0x00, 0xFF, 0xFF}, {0xFF, 0xFF, 0xFF},
}

// cube256 resolves the 6x6x6 color cube and grayscale ramp of the xterm
// 256-color palette, indexed 0..255 where 0..7 are system colors, 8..15
// are their intense variants, 16..231 (here 16..231 shifted to 0..215)
// are the cube, and 232..255 (shifted to 0..23) are grayscale. Grounded
// on rvt::color256 (character_color.hpp).
func cube256(u uint8, pal Palette) RGB {
	if u < 8 {
		return pal[u+2]
	}
	u -= 8
	if u < 8 {
		return pal[u+2+baseColors]
	}
	u -= 8
	if u < 216 {
		cubeVal := func(v uint8) uint8 {
			if v == 0 {
				return 0
			}
			return 40*v + 55
		}
		r := (u / 36) % 6
		g := (u / 6) % 6
		b := u % 6
		return RGB{cubeVal(r), cubeVal(g), cubeVal(b)}
	}
	u -= 216
	gray := 10*u + 8
	return RGB{gray, gray, gray}
}

// Resolve maps c to a concrete RGB value using pal for the Default,
// System, and the 0..15 range of Indexed256. Dim multiplies each channel
// by 2/3 after the variant has been resolved.
func (c Color) Resolve(pal Palette) RGB {
	var base RGB
	switch c.space {
	case ColorDefault:
		idx := c.u
		if idx > 1 {
			idx = 0
		}
		if c.v != 0 {
			base = pal[idx+baseColors]
		} else {
			base = pal[idx]
		}
	case ColorSystem:
		if c.v != 0 {
			base = pal[2+(c.u&7)+baseColors]
		} else {
			base = pal[2+(c.u&7)]
		}
	case ColorIndexed256:
		base = cube256(c.u, pal)
	case ColorRGB:
		base = RGB{c.u, c.v, c.w}
	case ColorUndefined:
		base = RGB{}
	}
	if c.dim {
		base = dimRGB(base)
	}
	return base
}
