package rvt

import (
	"encoding/binary"
	"io"
	"time"
)

// TranscriptPrefix selects whether ReplayTtyrec prefixes each emitted
// logical line with the frame's wall-clock time.
type TranscriptPrefix uint8

const (
	PrefixNone TranscriptPrefix = iota
	PrefixDatetime
)

const ttyrecHeaderSize = 12

// transcriptScrollProvider turns Screen scroll events into transcript
// output, stamping each event with the ttyrec frame time in effect when
// it fired. Grounded on terminal_emulator.cpp's line_saver_with_datetime /
// line_saver pair, which write to the output stream as lines scroll off
// rather than at the end of replay.
type transcriptScrollProvider struct {
	sink   BufferSink
	prefix TranscriptPrefix
	sec    int64
	err    error
}

func (p *transcriptScrollProvider) Scrolled(screen *Screen, yStart, yEnd int) {
	if p.err != nil {
		return
	}
	if p.prefix == PrefixDatetime {
		stamp := time.Unix(p.sec, 0).Local().Format("2006-01-02 15:04:05") + " "
		if err := p.sink.Append([]byte(stamp)); err != nil {
			p.err = err
			return
		}
		p.sink.Finalize(len(p.sink.Get()))
	}
	if err := RenderTranscript(screen, yStart, yEnd, p.sink); err != nil {
		p.err = err
	}
}

var _ ScrollProvider = (*transcriptScrollProvider)(nil)

// ReplayTtyrec reads a ttyrec-format byte stream from r — a sequence of
// 12-byte little-endian {sec, usec, length} frame headers each followed by
// length payload bytes — and feeds each frame's payload to emu in order.
// Lines that scroll off the screen during replay are written to sink as a
// plain transcript, each optionally prefixed with the frame's local
// wall-clock time. Empty input produces empty output. A frame header or
// payload truncated by EOF is a soft error: replay stops and ReplayTtyrec
// returns it wrapped, after flushing what was already produced.
func ReplayTtyrec(r io.Reader, emu *Emulator, screen *Screen, prefix TranscriptPrefix, sink BufferSink) error {
	provider := &transcriptScrollProvider{sink: sink, prefix: prefix}
	screen.scroll = provider

	var header [ttyrecHeaderSize]byte
	payload := make([]byte, 0, 4096)

	for {
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return newError(KindIO, "ReplayTtyrec", err)
		}

		sec := binary.LittleEndian.Uint32(header[0:4])
		length := binary.LittleEndian.Uint32(header[8:12])

		if cap(payload) < int(length) {
			payload = make([]byte, length)
		} else {
			payload = payload[:length]
		}
		if _, err := io.ReadFull(r, payload); err != nil {
			return newError(KindIO, "ReplayTtyrec", err)
		}

		provider.sec = int64(sec)
		emu.Feed(payload)

		if provider.err != nil {
			return provider.err
		}
	}
}
