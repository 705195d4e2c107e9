package rvt

import "strings"

// extendedCharTable interns sequences of code points (a base character
// plus its combining marks) keyed by an index stored in a cell's
// CodePoint field when RenditionExtendedChar is set. Entries are
// append-only and deduplicated by content, grounded on
// rvt::ExtendedCharTable (extended_char_table.hpp): the table never
// contains two indices mapping to equal sequences.
type extendedCharTable struct {
	sequences []string // each entry is a run of encoded runes, joined by '\x00'
	index     map[string]uint32
}

func newExtendedCharTable() *extendedCharTable {
	return &extendedCharTable{index: make(map[string]uint32)}
}

func encodeSequence(seq []rune) string {
	var b strings.Builder
	for i, r := range seq {
		if i > 0 {
			b.WriteByte(0)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// intern returns the index for seq, creating a new entry only if no
// existing entry has identical content.
func (t *extendedCharTable) intern(seq []rune) uint32 {
	key := encodeSequence(seq)
	if idx, ok := t.index[key]; ok {
		return idx
	}
	idx := uint32(len(t.sequences))
	t.sequences = append(t.sequences, key)
	t.index[key] = idx
	return idx
}

// sequence returns the code points interned at idx, or nil if idx is out
// of range.
func (t *extendedCharTable) sequence(idx uint32) []rune {
	if int(idx) >= len(t.sequences) {
		return nil
	}
	parts := strings.Split(t.sequences[idx], "\x00")
	seq := make([]rune, len(parts))
	for i, p := range parts {
		seq[i] = []rune(p)[0]
	}
	return seq
}

// append extends the sequence interned at idx with r, producing (and
// interning) a new sequence and returning its index. idx itself is left
// untouched since entries are immutable once created.
func (t *extendedCharTable) append(idx uint32, r rune) uint32 {
	base := t.sequence(idx)
	extended := make([]rune, len(base)+1)
	copy(extended, base)
	extended[len(base)] = r
	return t.intern(extended)
}

// len reports the number of distinct sequences interned so far.
func (t *extendedCharTable) len() int { return len(t.sequences) }
