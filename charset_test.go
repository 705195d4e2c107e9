package rvt

import "testing"

func TestCharsetFromFinal(t *testing.T) {
	tests := []struct {
		final rune
		want  Charset
	}{
		{'A', CharsetUK},
		{'0', CharsetDECSpecialGraphics},
		{'B', CharsetASCII},
		{'9', CharsetASCII},
	}
	for _, tt := range tests {
		if got := charsetFromFinal(tt.final); got != tt.want {
			t.Errorf("charsetFromFinal(%q) = %v, want %v", tt.final, got, tt.want)
		}
	}
}

func TestDECSpecialGraphicsTranslate(t *testing.T) {
	tests := []struct {
		cp   rune
		want rune
	}{
		{'q', '─'},
		{'x', '│'},
		{'l', '┌'},
		{'A', 'A'}, // outside the translated range, passed through
	}
	for _, tt := range tests {
		if got := CharsetDECSpecialGraphics.translate(tt.cp); got != tt.want {
			t.Errorf("translate(%q) = %q, want %q", tt.cp, got, tt.want)
		}
	}
}

func TestASCIICharsetIsIdentity(t *testing.T) {
	for _, r := range []rune{'q', 'x', 'A', '0'} {
		if got := CharsetASCII.translate(r); got != r {
			t.Errorf("CharsetASCII.translate(%q) = %q, want identity", r, got)
		}
	}
}

func TestCharsetStateDesignateAndInvoke(t *testing.T) {
	s := newCharsetState()
	if got := s.current(); got != CharsetASCII {
		t.Errorf("fresh charsetState.current() = %v, want CharsetASCII", got)
	}

	s.designate(1, CharsetDECSpecialGraphics)
	if got := s.current(); got != CharsetASCII {
		t.Errorf("designating G1 must not change the active (G0) set: got %v", got)
	}

	s.invoke(1)
	if got := s.current(); got != CharsetDECSpecialGraphics {
		t.Errorf("after invoking G1, current() = %v, want CharsetDECSpecialGraphics", got)
	}

	s.invoke(0)
	if got := s.current(); got != CharsetASCII {
		t.Errorf("after invoking G0, current() = %v, want CharsetASCII", got)
	}
}
