package rvt

import "testing"

func TestDefaultPaletteColors(t *testing.T) {
	if got := DefaultPalette[0].Int(); got != 15658734 {
		t.Errorf("DefaultPalette[0].Int() = %d, want 15658734", got)
	}
	if got := DefaultPalette[1].Int(); got != 3355443 {
		t.Errorf("DefaultPalette[1].Int() = %d, want 3355443", got)
	}
}

func TestColorEqualityFoldsDim(t *testing.T) {
	a := SystemColor(1, false)
	b := SystemColor(1, false).Dim()
	if a == b {
		t.Error("a dimmed color must not equal its non-dimmed counterpart")
	}
	if a.Dim() != b {
		t.Error("two colors dimmed the same way must be equal")
	}
}

func TestResolveSystemColors(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want RGB
	}{
		{"default fg", DefaultForegroundColor(), DefaultPalette[0]},
		{"default bg", DefaultBackgroundColor(), DefaultPalette[1]},
		{"system red", SystemColor(1, false), DefaultPalette[2+1]},
		{"intense system red", SystemColor(1, true), DefaultPalette[2+1+baseColors]},
	}
	for _, tt := range tests {
		got := tt.c.Resolve(DefaultPalette)
		if got != tt.want {
			t.Errorf("%s: Resolve() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestIndexed256ColorCube(t *testing.T) {
	// index 16 is the first cube entry: black (0,0,0).
	got := Indexed256Color(16).Resolve(DefaultPalette)
	if got != (RGB{0, 0, 0}) {
		t.Errorf("Indexed256Color(16) = %+v, want {0 0 0}", got)
	}
	// index 255 is the last grayscale entry (brightest gray ramp step).
	got = Indexed256Color(255).Resolve(DefaultPalette)
	want := RGB{238, 238, 238}
	if got != want {
		t.Errorf("Indexed256Color(255) = %+v, want %+v", got, want)
	}
}

func TestRGBColorResolvesExactly(t *testing.T) {
	c := RGBColor(95, 135, 215)
	got := c.Resolve(DefaultPalette)
	if got != (RGB{95, 135, 215}) {
		t.Errorf("RGBColor(95,135,215).Resolve() = %+v", got)
	}
}

func TestDimScalesRGBChannelsByTwoThirds(t *testing.T) {
	c := RGBColor(90, 90, 90).Dim()
	got := c.Resolve(DefaultPalette)
	want := RGB{60, 60, 60}
	if got != want {
		t.Errorf("dimmed RGB = %+v, want %+v", got, want)
	}
}
