package rvt

import (
	"strconv"
)

const renditionRunMask = RenditionBold | RenditionItalic | RenditionUnderline | RenditionBlink

// RenderJSON writes a single-object JSON snapshot of screen to sink:
// cursor position (or -1 when hidden), dimensions, title, the default
// colors, and one run-coalesced entry per row. extra, if non-empty, is
// appended verbatim as the top-level "extra" field — it is the caller's
// responsibility to ensure it is valid JSON. Grounded byte-for-byte on
// rvt::json_rendering (text_rendering.cpp).
func RenderJSON(title string, screen *Screen, palette Palette, sink BufferSink, extra []byte) error {
	var buf []byte
	if screen.CursorVisible() {
		buf = append(buf, `{"x":`...)
		buf = strconv.AppendInt(buf, int64(screen.CursorX()), 10)
		buf = append(buf, `,"y":`...)
		buf = strconv.AppendInt(buf, int64(screen.CursorY()), 10)
	} else {
		buf = append(buf, `{"y":-1`...)
	}
	buf = append(buf, `,"lines":`...)
	buf = strconv.AppendInt(buf, int64(screen.Lines()), 10)
	buf = append(buf, `,"columns":`...)
	buf = strconv.AppendInt(buf, int64(screen.Columns()), 10)
	buf = append(buf, `,"title":"`...)
	buf = appendJSONString(buf, title)

	fg := palette[0].Int()
	bg := palette[1].Int()
	buf = append(buf, `","style":{"r":0,"f":`...)
	buf = strconv.AppendInt(buf, int64(fg), 10)
	buf = append(buf, `,"b":`...)
	buf = strconv.AppendInt(buf, int64(bg), 10)
	buf = append(buf, `},"data":[`...)

	if err := sink.Append(buf); err != nil {
		return err
	}

	if screen.Lines() > 0 && screen.Columns() > 0 {
		previous := defaultCell
		rows := screen.Rows()
		for _, row := range rows {
			line := []byte(`[[{`)
			open := false
			for _, ch := range row {
				sameFg := ch.Fg == previous.Fg
				sameBg := ch.Bg == previous.Bg
				sameRendition := ch.Rendition&renditionRunMask == previous.Rendition&renditionRunMask
				if !(sameFg && sameBg && sameRendition) {
					if open {
						line = append(line, `"},{`...)
					}
					if !sameRendition {
						line = append(line, `"r":`...)
						line = strconv.AppendInt(line, int64(ch.Rendition.jsonPack()), 10)
						line = append(line, ',')
					}
					if !sameFg {
						line = append(line, `"f":`...)
						line = strconv.AppendInt(line, int64(ch.Fg.Resolve(palette).Int()), 10)
						line = append(line, ',')
					}
					if !sameBg {
						line = append(line, `"b":`...)
						line = strconv.AppendInt(line, int64(ch.Bg.Resolve(palette).Int()), 10)
						line = append(line, ',')
					}
					open = false
				}
				if !open {
					open = true
					line = append(line, `"s":"`...)
				}
				line = appendRenderedCell(line, screen, ch)
				previous = ch
			}
			if open {
				line = append(line, '"')
			}
			line = append(line, `}]],`...)
			if err := sink.Append(line); err != nil {
				return err
			}
		}
		// drop the trailing comma from the last row
		data := sink.Get()
		sink.Finalize(len(data) - 1)
	}

	if len(extra) > 0 {
		var tail []byte
		tail = append(tail, `],"extra":`...)
		tail = append(tail, extra...)
		tail = append(tail, '}')
		if err := sink.Append(tail); err != nil {
			return err
		}
	} else {
		if err := sink.Append([]byte(`]}`)); err != nil {
			return err
		}
	}

	sink.Finalize(len(sink.Get()))
	return nil
}

// appendJSONString appends s with \ and " backslash-escaped, UTF-8
// otherwise passed through raw (the source's strings never carry \n or
// \t, so no further escaping is needed).
func appendJSONString(buf []byte, s string) []byte {
	for _, r := range s {
		buf = appendJSONRune(buf, r)
	}
	return buf
}

func appendJSONRune(buf []byte, r rune) []byte {
	switch r {
	case '\\':
		return append(buf, '\\', '\\')
	case '"':
		return append(buf, '\\', '"')
	default:
		return appendUTF8Rune(buf, r)
	}
}

// appendRenderedCell emits ch's visible text: a real cell's code point
// (or, if extended, its full interned sequence), a single space for a
// non-real cell.
func appendRenderedCell(buf []byte, screen *Screen, ch Cell) []byte {
	if !ch.IsReal {
		return append(buf, ' ')
	}
	if ch.Rendition.Has(RenditionExtendedChar) {
		for _, r := range screen.extended.sequence(ch.CodePoint) {
			buf = appendJSONRune(buf, r)
		}
		return buf
	}
	return appendJSONRune(buf, rune(ch.CodePoint))
}
