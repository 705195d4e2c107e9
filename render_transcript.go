package rvt

// RenderTranscript writes the plain-text content of screen's rows
// [yStart, yEnd) to sink, honoring Wrapped line continuation: a logical
// line that starts before yStart is backed up to its true start, and one
// that is still open at yEnd keeps emitting until it closes. Each
// logical line ends with a single '\n'; no other escaping is applied.
func RenderTranscript(screen *Screen, yStart, yEnd int, sink BufferSink) error {
	rows := screen.Rows()
	lineFlags := screen.RowLineFlags()

	y := yStart
	for y > 0 && y-1 < len(lineFlags) && lineFlags[y-1].Has(LineWrapped) {
		y--
	}

	var buf []byte
	for y < len(rows) {
		if y >= yEnd && (y == 0 || !lineFlags[y-1].Has(LineWrapped)) {
			break
		}
		for _, ch := range rows[y] {
			buf = appendPlainCell(buf, screen, ch)
		}
		if y >= len(lineFlags) || !lineFlags[y].Has(LineWrapped) {
			buf = append(buf, '\n')
		}
		y++
	}

	if err := sink.Append(buf); err != nil {
		return err
	}
	sink.Finalize(len(sink.Get()))
	return nil
}

func appendPlainCell(buf []byte, screen *Screen, ch Cell) []byte {
	if !ch.IsReal {
		return append(buf, ' ')
	}
	if ch.Rendition.Has(RenditionExtendedChar) {
		for _, r := range screen.extended.sequence(ch.CodePoint) {
			buf = appendUTF8Rune(buf, r)
		}
		return buf
	}
	return appendUTF8Rune(buf, rune(ch.CodePoint))
}
