package rvt

import "testing"

func TestExtendedCharTableInternDeduplicates(t *testing.T) {
	tbl := newExtendedCharTable()
	a := tbl.intern([]rune{'e', 0x311})
	b := tbl.intern([]rune{'e', 0x311})
	if a != b {
		t.Errorf("interning the same sequence twice gave different indices: %d vs %d", a, b)
	}
	if tbl.len() != 1 {
		t.Errorf("len() = %d, want 1", tbl.len())
	}

	c := tbl.intern([]rune{'e', 0x301})
	if c == a {
		t.Error("interning a distinct sequence must get a new index")
	}
	if tbl.len() != 2 {
		t.Errorf("len() = %d, want 2", tbl.len())
	}
}

func TestExtendedCharTableSequenceRoundTrip(t *testing.T) {
	tbl := newExtendedCharTable()
	idx := tbl.intern([]rune{'a', 0x300, 0x301})
	got := tbl.sequence(idx)
	want := []rune{'a', 0x300, 0x301}
	if len(got) != len(want) {
		t.Fatalf("sequence() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sequence()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtendedCharTableSequenceOutOfRange(t *testing.T) {
	tbl := newExtendedCharTable()
	if got := tbl.sequence(0); got != nil {
		t.Errorf("sequence(0) on empty table = %v, want nil", got)
	}
}

func TestExtendedCharTableAppend(t *testing.T) {
	tbl := newExtendedCharTable()
	base := tbl.intern([]rune{'e'})
	extended := tbl.append(base, 0x311)

	if extended == base {
		t.Error("append must produce a distinct index from the base")
	}
	got := tbl.sequence(extended)
	want := []rune{'e', 0x311}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("sequence(extended) = %v, want %v", got, want)
	}
	// the base sequence is untouched.
	if baseSeq := tbl.sequence(base); len(baseSeq) != 1 || baseSeq[0] != 'e' {
		t.Errorf("sequence(base) changed after append: %v", baseSeq)
	}
}
