package rvt

import (
	"unicode/utf8"

	goutf8 "github.com/danielgatis/go-utf8"
)

// Decoder is the code-point source: it turns the raw bytes an Emulator is
// fed into the 32-bit scalar values the parser state machine consumes.
// Decoding itself is treated as an external collaborator and is delegated
// to go-utf8 rather than reimplemented here.
type Decoder struct{}

// NewDecoder returns a Decoder ready to use.
func NewDecoder() *Decoder { return &Decoder{} }

// runeCollector implements go-utf8's Performer, accumulating the decoded
// code points for a single Decode call.
type runeCollector struct {
	out []rune
}

func (c *runeCollector) CodePoint(r rune) { c.out = append(c.out, r) }

func (c *runeCollector) InvalidSequece() { c.out = append(c.out, utf8.RuneError) }

// Decode yields every code point in data, in order. Invalid byte
// sequences decode to the Unicode replacement character, one code point
// per invalid byte, matching go-utf8's Performer contract.
//
// TODO: a multi-byte sequence split across two Feed calls is not
// reassembled; Emulator.Feed expects callers to hand it complete frames.
func (d *Decoder) Decode(data []byte) []rune {
	c := &runeCollector{out: make([]rune, 0, len(data))}
	p := goutf8.New(c)
	for _, b := range data {
		p.Advance(b)
	}
	return c.out
}
