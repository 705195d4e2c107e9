package rvt

import "testing"

func TestDefaultCellIsDefault(t *testing.T) {
	c := DefaultCell()
	if !c.IsDefault() {
		t.Error("DefaultCell() must report IsDefault()")
	}
}

func TestCellNotDefaultWhenRealOrStyled(t *testing.T) {
	tests := []struct {
		name string
		c    Cell
	}{
		{"real character", Cell{CodePoint: 'a', Fg: DefaultForegroundColor(), Bg: DefaultBackgroundColor(), IsReal: true}},
		{"non-default foreground", Cell{Fg: SystemColor(1, false), Bg: DefaultBackgroundColor()}},
		{"rendition set", Cell{Fg: DefaultForegroundColor(), Bg: DefaultBackgroundColor(), Rendition: RenditionBold}},
	}
	for _, tt := range tests {
		if tt.c.IsDefault() {
			t.Errorf("%s: expected IsDefault() == false", tt.name)
		}
	}
}
