package rvt

import "testing"

func TestRenditionFlagsSetHasClear(t *testing.T) {
	var r RenditionFlags
	r = r.Set(RenditionBold)
	r = r.Set(RenditionUnderline)

	if !r.Has(RenditionBold) {
		t.Error("expected RenditionBold set")
	}
	if !r.Has(RenditionUnderline) {
		t.Error("expected RenditionUnderline set")
	}
	if r.Has(RenditionItalic) {
		t.Error("did not expect RenditionItalic set")
	}

	r = r.Clear(RenditionBold)
	if r.Has(RenditionBold) {
		t.Error("expected RenditionBold cleared")
	}
	if !r.Has(RenditionUnderline) {
		t.Error("clearing bold must not clear underline")
	}
}

func TestJSONPack(t *testing.T) {
	tests := []struct {
		name string
		r    RenditionFlags
		want int
	}{
		{"none", 0, 0},
		{"bold", RenditionBold, 1},
		{"italic", RenditionItalic, 2},
		{"underline", RenditionUnderline, 4},
		{"blink", RenditionBlink, 8},
		{"bold+underline", RenditionBold | RenditionUnderline, 5},
		{"all four", RenditionBold | RenditionItalic | RenditionUnderline | RenditionBlink, 15},
		{"reverse excluded", RenditionReverse, 0},
		{"strikeout excluded", RenditionStrikeout, 0},
		{"bold+reverse packs only bold", RenditionBold | RenditionReverse, 1},
	}
	for _, tt := range tests {
		if got := tt.r.jsonPack(); got != tt.want {
			t.Errorf("%s: jsonPack() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
