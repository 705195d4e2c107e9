package rvt

import "strconv"

// RenderANSI writes an ANSI/SGR-escaped rendering of screen to sink: a
// title-only OSC, then each row's cells with `ESC [ 0 ... m` emitted
// whenever the graphic state changes, one line-feed per row, and extra
// appended raw at the end. Grounded byte-for-byte on rvt::ansi_rendering
// (text_rendering.cpp).
func RenderANSI(title string, screen *Screen, palette Palette, sink BufferSink, extra []byte) error {
	var head []byte
	head = append(head, 0x1b, ']')
	head = appendEscapedString(head, title)
	head = append(head, 0x07)
	if err := sink.Append(head); err != nil {
		return err
	}

	previous := defaultCell
	for _, row := range screen.Rows() {
		var line []byte
		for _, ch := range row {
			sameFg := ch.Fg == previous.Fg
			sameBg := ch.Bg == previous.Bg
			sameRendition := ch.Rendition == previous.Rendition
			if !(sameFg && sameBg && sameRendition) {
				line = append(line, 0x1b, '[', '0')
				r := ch.Rendition
				if r.Has(RenditionBold) {
					line = append(line, ';', '1')
				}
				if r.Has(RenditionItalic) {
					line = append(line, ';', '3')
				}
				if r.Has(RenditionUnderline) {
					line = append(line, ';', '4')
				}
				if r.Has(RenditionBlink) {
					line = append(line, ';', '5')
				}
				if r.Has(RenditionReverse) {
					line = append(line, ';', '6')
				}
				if !sameFg {
					line = appendANSIColor(line, '3', ch.Fg, palette)
				}
				if !sameBg {
					line = appendANSIColor(line, '4', ch.Bg, palette)
				}
				line = append(line, 'm')
			}
			line = appendRenderedCellEscaped(line, screen, ch)
			previous = ch
		}
		line = append(line, '\n')
		if err := sink.Append(line); err != nil {
			return err
		}
	}

	if len(extra) > 0 {
		if err := sink.Append(extra); err != nil {
			return err
		}
	}

	sink.Finalize(len(sink.Get()))
	return nil
}

func appendANSIColor(buf []byte, cmd byte, c Color, palette Palette) []byte {
	rgb := c.Resolve(palette)
	buf = append(buf, ';', cmd, '8', ';', '2', ';')
	buf = strconv.AppendInt(buf, int64(rgb.R), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(rgb.G), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(rgb.B), 10)
	return buf
}

func appendEscapedString(buf []byte, s string) []byte {
	for _, r := range s {
		buf = appendJSONRune(buf, r)
	}
	return buf
}

// appendRenderedCellEscaped emits a cell exactly as appendRenderedCell
// does, including its backslash/quote escaping, so the ANSI output stays
// embeddable the same way the JSON output is.
func appendRenderedCellEscaped(buf []byte, screen *Screen, ch Cell) []byte {
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
