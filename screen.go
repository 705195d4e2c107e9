package rvt

// ModeFlags is the Screen-wide bitset of boolean modes named in spec §3.
// Independent bits, grounded on rvt::Screen's ScreenModes.
type ModeFlags uint8

const (
	ModeCursor ModeFlags = 1 << iota // cursor visible, default on
	ModeWrap                         // auto-wrap at right margin, default on
	ModeOrigin                       // cursor addressing relative to scroll region
	ModeInsert                       // insert rather than overtype
	ModeScreenReverse                // reverse video of the entire screen
	ModeNewLine                      // LF also does a carriage return
)

// LineFlags is the per-row property bitset.
type LineFlags uint8

const (
	LineWrapped LineFlags = 1 << iota
	LineDoubleWidth
	LineDoubleHeight
)

// Has reports whether every bit in flag is set.
func (f LineFlags) Has(flag LineFlags) bool { return f&flag == flag }

// Position is a zero-based (column, row) pair.
type Position struct {
	X, Y int
}

// savedState is what DECSC/DECRC (and a buffer's own slot) snapshot:
// cursor position plus the graphic attributes and active character set
// in effect at the time, per spec §9's "saved attributes" note.
type savedState struct {
	pos       Position
	fg, bg    Color
	rendition RenditionFlags
	charset   charsetState
}

// buffer is one of the two screens a Screen can show: primary or
// alternate. Swapping buffers swaps the grid, the cursor, and the
// current graphic attributes together, per spec §3.
type buffer struct {
	grid      [][]Cell
	lineFlags []LineFlags
	cursor    Position
	saved     savedState
	fg, bg    Color
	rendition RenditionFlags
	charset   charsetState
}

func newBuffer(lines int) buffer {
	return buffer{
		grid:      make([][]Cell, lines),
		lineFlags: make([]LineFlags, lines),
		fg:        DefaultForegroundColor(),
		bg:        DefaultBackgroundColor(),
		charset:   newCharsetState(),
	}
}

// Screen is the 2-D cell grid, cursor, scroll region, mode flags, and
// primary/alternate buffer pair spec component E describes. Every
// mutating method clamps its arguments silently; none of them fail.
//
// Screen is not safe for concurrent use: spec §5 mandates a
// single-threaded, lock-free model, so callers serialize access
// themselves if a Screen is ever touched from more than one goroutine.
type Screen struct {
	lines, columns int

	primary        buffer
	alternate      *buffer
	usingAlternate bool

	topMargin, bottomMargin int
	modes, savedModes       ModeFlags

	extended *extendedCharTable
	scroll   ScrollProvider
}

// ScreenOption configures a Screen at construction time.
type ScreenOption func(*Screen)

// WithScrollProvider wires p to receive rows about to scroll off the top
// of the scroll region. The default is NoopScrollProvider.
func WithScrollProvider(p ScrollProvider) ScreenOption {
	return func(s *Screen) {
		if p != nil {
			s.scroll = p
		}
	}
}

func clampDimension(n int) int {
	if n < 1 {
		return 1
	}
	if n > 4096 {
		return 4096
	}
	return n
}

// NewScreen returns a Screen of the given size (clamped to [1, 4096] in
// each dimension) with cursor visibility and auto-wrap on, as xterm
// starts up.
func NewScreen(lines, columns int, opts ...ScreenOption) *Screen {
	lines = clampDimension(lines)
	columns = clampDimension(columns)
	s := &Screen{
		lines:        lines,
		columns:      columns,
		primary:      newBuffer(lines),
		bottomMargin: lines - 1,
		modes:        ModeCursor | ModeWrap,
		extended:     newExtendedCharTable(),
		scroll:       NoopScrollProvider{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Screen) active() *buffer {
	if s.usingAlternate && s.alternate != nil {
		return s.alternate
	}
	return &s.primary
}

func normalizeN(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- accessors ---

func (s *Screen) CursorX() int        { return s.active().cursor.X }
func (s *Screen) CursorY() int        { return s.active().cursor.Y }
func (s *Screen) CursorVisible() bool { return s.modes&ModeCursor != 0 }
func (s *Screen) Lines() int          { return s.lines }
func (s *Screen) Columns() int        { return s.columns }
func (s *Screen) TopMargin() int      { return s.topMargin }
func (s *Screen) BottomMargin() int   { return s.bottomMargin }

// Rows returns the current buffer's ragged row storage: row y's slice
// length is at most Columns(); positions beyond it are implicitly the
// default cell. Callers must not retain the slices past the next
// mutating call.
func (s *Screen) Rows() [][]Cell { return s.active().grid }

// RowLineFlags returns the per-row property bitset for the current
// buffer, parallel to Rows.
func (s *Screen) RowLineFlags() []LineFlags { return s.active().lineFlags }

func (s *Screen) CurrentForeground() Color        { return s.active().fg }
func (s *Screen) CurrentBackground() Color        { return s.active().bg }
func (s *Screen) CurrentRendition() RenditionFlags { return s.active().rendition }

// --- cell storage ---

func (s *Screen) cellAt(y, x int) Cell {
	b := s.active()
	if y < 0 || y >= len(b.grid) {
		return defaultCell
	}
	row := b.grid[y]
	if x < 0 || x >= len(row) {
		return defaultCell
	}
	return row[x]
}

func (s *Screen) setCell(y, x int, c Cell) {
	b := s.active()
	if y < 0 || y >= len(b.grid) || x < 0 || x >= s.columns {
		return
	}
	row := b.grid[y]
	for len(row) <= x {
		row = append(row, defaultCell)
	}
	row[x] = c
	b.grid[y] = row
}

// trimRow drops trailing default cells, restoring the ragged invariant
// after an erase widens the stored default suffix.
func (s *Screen) trimRow(y int) {
	b := s.active()
	if y < 0 || y >= len(b.grid) {
		return
	}
	row := b.grid[y]
	n := len(row)
	for n > 0 && row[n-1] == defaultCell {
		n--
	}
	b.grid[y] = row[:n]
}

// --- cursor movement ---

func (s *Screen) cursorYRange() (int, int) {
	if s.modes&ModeOrigin != 0 {
		return s.topMargin, s.bottomMargin
	}
	return 0, s.lines - 1
}

func (s *Screen) CursorUp(n int) {
	n = normalizeN(n)
	lo, _ := s.cursorYRange()
	b := s.active()
	b.cursor.Y = clampInt(b.cursor.Y-n, lo, s.lines-1)
}

func (s *Screen) CursorDown(n int) {
	n = normalizeN(n)
	_, hi := s.cursorYRange()
	b := s.active()
	b.cursor.Y = clampInt(b.cursor.Y+n, 0, hi)
}

func (s *Screen) CursorLeft(n int) {
	n = normalizeN(n)
	b := s.active()
	b.cursor.X = clampInt(b.cursor.X-n, 0, s.columns-1)
}

func (s *Screen) CursorRight(n int) {
	n = normalizeN(n)
	b := s.active()
	b.cursor.X = clampInt(b.cursor.X+n, 0, s.columns-1)
}

func (s *Screen) SetCursorX(x int) {
	b := s.active()
	b.cursor.X = clampInt(x, 0, s.columns-1)
}

func (s *Screen) SetCursorY(y int) {
	lo, hi := s.cursorYRange()
	b := s.active()
	b.cursor.Y = clampInt(y, lo, hi)
}

func (s *Screen) SetCursorYX(y, x int) {
	s.SetCursorY(y)
	s.SetCursorX(x)
}

func (s *Screen) CursorNextLine(n int) {
	s.CursorDown(n)
	s.active().cursor.X = 0
}

func (s *Screen) CursorPrevLine(n int) {
	s.CursorUp(n)
	s.active().cursor.X = 0
}

// --- text insertion ---

func (s *Screen) setLineFlag(y int, f LineFlags) {
	b := s.active()
	if y >= 0 && y < len(b.lineFlags) {
		b.lineFlags[y] |= f
	}
}

// insertBlanksAt shifts row y's cells at and beyond x right by n,
// dropping whatever falls off the right margin.
func (s *Screen) insertBlanksAt(y, x, n int) {
	b := s.active()
	if y < 0 || y >= len(b.grid) {
		return
	}
	row := b.grid[y]
	if x > len(row) {
		x = len(row)
	}
	tail := append([]Cell{}, row[x:]...)
	row = row[:x]
	for i := 0; i < n; i++ {
		row = append(row, defaultCell)
	}
	row = append(row, tail...)
	if len(row) > s.columns {
		row = row[:s.columns]
	}
	b.grid[y] = row
}

func (s *Screen) deleteCellsAt(y, x, n int) {
	b := s.active()
	if y < 0 || y >= len(b.grid) {
		return
	}
	row := b.grid[y]
	if x >= len(row) {
		return
	}
	end := x + n
	if end > len(row) {
		end = len(row)
	}
	b.grid[y] = append(row[:x], row[end:]...)
}

func (s *Screen) advanceCursor(n int) {
	b := s.active()
	x := b.cursor.X + n
	if x > s.columns-1 {
		if s.modes&ModeWrap != 0 {
			s.setLineFlag(b.cursor.Y, LineWrapped)
			s.Index()
			s.active().cursor.X = 0
		} else {
			b.cursor.X = s.columns - 1
		}
		return
	}
	b.cursor.X = x
}

// combineMark extends the real cell immediately left of the cursor with
// a combining mark, interning the resulting sequence in the extended
// char table. If that cell isn't real, the mark is dropped.
func (s *Screen) combineMark(mark rune) {
	b := s.active()
	x := b.cursor.X - 1
	if x < 0 {
		return
	}
	prev := s.cellAt(b.cursor.Y, x)
	if !prev.IsReal {
		return
	}
	var idx uint32
	if prev.Rendition.Has(RenditionExtendedChar) {
		idx = s.extended.append(prev.CodePoint, mark)
	} else {
		idx = s.extended.intern([]rune{rune(prev.CodePoint), mark})
	}
	prev.CodePoint = idx
	prev.Rendition = prev.Rendition.Set(RenditionExtendedChar)
	s.setCell(b.cursor.Y, x, prev)
}

// DisplayCharacter places cp at the cursor in the current attributes and
// advances, per spec §4.2's text-insertion rules: combining marks attach
// to the preceding cell, wide characters occupy two columns (wrapping to
// the next row whole rather than splitting), and Insert mode shifts the
// row right first.
func (s *Screen) DisplayCharacter(cp rune) {
	if cp == 0 {
		return
	}
	if runeWidth(cp) == 0 {
		s.combineMark(cp)
		return
	}

	b := s.active()
	cp = b.charset.current().translate(cp)
	wide := isWideRune(cp)

	if wide && b.cursor.X == s.columns-1 {
		s.setLineFlag(b.cursor.Y, LineWrapped)
		s.Index()
		b.cursor.X = 0
	}

	width := 1
	if wide {
		width = 2
	}
	if s.modes&ModeInsert != 0 {
		s.insertBlanksAt(b.cursor.Y, b.cursor.X, width)
	}

	s.setCell(b.cursor.Y, b.cursor.X, Cell{
		CodePoint: uint32(cp), Fg: b.fg, Bg: b.bg, Rendition: b.rendition, IsReal: true,
	})
	if wide {
		s.setCell(b.cursor.Y, b.cursor.X+1, Cell{Fg: b.fg, Bg: b.bg, Rendition: b.rendition})
	}
	s.advanceCursor(width)
}

// --- line operations ---

func (s *Screen) Index() {
	b := s.active()
	if b.cursor.Y == s.bottomMargin {
		s.ScrollUp(1)
	} else if b.cursor.Y < s.lines-1 {
		b.cursor.Y++
	}
}

func (s *Screen) ReverseIndex() {
	b := s.active()
	if b.cursor.Y == s.topMargin {
		s.ScrollDown(1)
	} else if b.cursor.Y > 0 {
		b.cursor.Y--
	}
}

func (s *Screen) NewLine() {
	s.Index()
	if s.modes&ModeNewLine != 0 {
		s.active().cursor.X = 0
	}
}

func (s *Screen) CarriageReturn() {
	s.active().cursor.X = 0
}

func (s *Screen) Tab() {
	b := s.active()
	next := ((b.cursor.X / 8) + 1) * 8
	if next > s.columns-1 {
		next = s.columns - 1
	}
	for x := b.cursor.X + 1; x <= next; x++ {
		s.setCell(b.cursor.Y, x, Cell{Fg: b.fg, Bg: b.bg, Rendition: b.rendition})
	}
	b.cursor.X = next
}

func (s *Screen) BackwardTab(n int) {
	n = normalizeN(n)
	b := s.active()
	x := b.cursor.X
	for i := 0; i < n && x > 0; i++ {
		x = ((x - 1) / 8) * 8
	}
	b.cursor.X = x
}

func (s *Screen) Backspace() {
	b := s.active()
	if b.cursor.X > 0 {
		b.cursor.X--
	}
}

func (s *Screen) shiftRegionDown(top, bottom, n int) {
	b := s.active()
	for y := bottom; y >= top+n; y-- {
		b.grid[y] = b.grid[y-n]
		b.lineFlags[y] = b.lineFlags[y-n]
	}
	for y := top; y < top+n && y <= bottom; y++ {
		b.grid[y] = nil
		b.lineFlags[y] = 0
	}
}

func (s *Screen) shiftRegionUp(top, bottom, n int) {
	b := s.active()
	for y := top; y <= bottom-n; y++ {
		b.grid[y] = b.grid[y+n]
		b.lineFlags[y] = b.lineFlags[y+n]
	}
	for y := bottom - n + 1; y <= bottom; y++ {
		b.grid[y] = nil
		b.lineFlags[y] = 0
	}
}

func clampedRegionCount(n, top, bottom int) int {
	n = normalizeN(n)
	if max := bottom - top + 1; n > max {
		n = max
	}
	return n
}

func (s *Screen) InsertLines(n int) {
	b := s.active()
	if b.cursor.Y < s.topMargin || b.cursor.Y > s.bottomMargin {
		return
	}
	n = clampedRegionCount(n, b.cursor.Y, s.bottomMargin)
	s.shiftRegionDown(b.cursor.Y, s.bottomMargin, n)
}

func (s *Screen) DeleteLines(n int) {
	b := s.active()
	if b.cursor.Y < s.topMargin || b.cursor.Y > s.bottomMargin {
		return
	}
	n = clampedRegionCount(n, b.cursor.Y, s.bottomMargin)
	s.shiftRegionUp(b.cursor.Y, s.bottomMargin, n)
}

func (s *Screen) InsertChars(n int) {
	n = normalizeN(n)
	b := s.active()
	s.insertBlanksAt(b.cursor.Y, b.cursor.X, n)
}

func (s *Screen) DeleteChars(n int) {
	n = normalizeN(n)
	b := s.active()
	s.deleteCellsAt(b.cursor.Y, b.cursor.X, n)
}

func (s *Screen) EraseChars(n int) {
	n = normalizeN(n)
	b := s.active()
	end := b.cursor.X + n
	if end > s.columns {
		end = s.columns
	}
	for x := b.cursor.X; x < end; x++ {
		s.setCell(b.cursor.Y, x, defaultCell)
	}
}

// --- erase ---

func (s *Screen) eraseRows(from, to int) {
	b := s.active()
	for y := from; y <= to && y < len(b.grid); y++ {
		b.grid[y] = nil
		b.lineFlags[y] = 0
	}
}

func (s *Screen) ClearEntireScreen() { s.eraseRows(0, s.lines-1) }

func (s *Screen) ClearToEndOfScreen() {
	b := s.active()
	s.ClearToEndOfLine()
	s.eraseRows(b.cursor.Y+1, s.lines-1)
}

func (s *Screen) ClearToBeginningOfScreen() {
	b := s.active()
	s.ClearToBeginningOfLine()
	s.eraseRows(0, b.cursor.Y-1)
}

func (s *Screen) ClearEntireLine() {
	b := s.active()
	if b.cursor.Y >= 0 && b.cursor.Y < len(b.grid) {
		b.grid[b.cursor.Y] = nil
	}
}

func (s *Screen) ClearToEndOfLine() {
	b := s.active()
	row := b.grid[b.cursor.Y]
	for x := b.cursor.X; x < len(row); x++ {
		row[x] = defaultCell
	}
	s.trimRow(b.cursor.Y)
}

func (s *Screen) ClearToBeginningOfLine() {
	b := s.active()
	row := b.grid[b.cursor.Y]
	end := b.cursor.X + 1
	if end > len(row) {
		end = len(row)
	}
	for x := 0; x < end; x++ {
		row[x] = defaultCell
	}
}

// --- scrolling ---

// ScrollUp moves rows [top+n, bottom] to [top, bottom-n], reports the
// outgoing rows to the ScrollProvider before they're overwritten, and
// fills the bottom n rows with default cells.
func (s *Screen) ScrollUp(n int) {
	n = clampedRegionCount(n, s.topMargin, s.bottomMargin)
	if s.scroll != nil {
		s.scroll.Scrolled(s, s.topMargin, s.topMargin+n)
	}
	s.shiftRegionUp(s.topMargin, s.bottomMargin, n)
}

// ScrollDown is ScrollUp's mirror; no rows are lost so there is no
// callback.
func (s *Screen) ScrollDown(n int) {
	n = clampedRegionCount(n, s.topMargin, s.bottomMargin)
	s.shiftRegionDown(s.topMargin, s.bottomMargin, n)
}

// --- modes ---

func (s *Screen) SetMode(m ModeFlags)   { s.modes |= m }
func (s *Screen) ResetMode(m ModeFlags) { s.modes &^= m }
func (s *Screen) GetMode(m ModeFlags) bool {
	return s.modes&m == m
}

func (s *Screen) SaveMode(m ModeFlags) {
	s.savedModes = (s.savedModes &^ m) | (s.modes & m)
}

func (s *Screen) RestoreMode(m ModeFlags) {
	s.modes = (s.modes &^ m) | (s.savedModes & m)
}

func (s *Screen) SaveCursor() {
	b := s.active()
	b.saved = savedState{pos: b.cursor, fg: b.fg, bg: b.bg, rendition: b.rendition, charset: b.charset}
}

func (s *Screen) RestoreCursor() {
	b := s.active()
	b.cursor = b.saved.pos
	b.fg = b.saved.fg
	b.bg = b.saved.bg
	b.rendition = b.saved.rendition
	b.charset = b.saved.charset
}

// --- margins ---

func (s *Screen) SetMargins(top, bottom int) {
	top = clampInt(top, 0, s.lines-1)
	bottom = clampInt(bottom, 0, s.lines-1)
	if top > bottom {
		top, bottom = 0, s.lines-1
	}
	s.topMargin = top
	s.bottomMargin = bottom

	b := s.active()
	if s.modes&ModeOrigin != 0 {
		b.cursor = Position{X: 0, Y: top}
	} else {
		b.cursor = Position{X: 0, Y: 0}
	}
}

// --- attributes ---

func (s *Screen) SetForegroundColor(c Color) { s.active().fg = c }
func (s *Screen) SetBackgroundColor(c Color) { s.active().bg = c }

func (s *Screen) SetRendition(f RenditionFlags) {
	b := s.active()
	b.rendition = b.rendition.Set(f)
}

func (s *Screen) ResetRendition(f RenditionFlags) {
	b := s.active()
	b.rendition = b.rendition.Clear(f)
}

func (s *Screen) ResetAllRenditions() {
	b := s.active()
	b.fg = DefaultForegroundColor()
	b.bg = DefaultBackgroundColor()
	b.rendition = 0
}

// --- character sets ---

func (s *Screen) DesignateCharset(slot int, cs Charset) {
	s.active().charset.designate(slot, cs)
}

func (s *Screen) InvokeCharset(slot int) {
	s.active().charset.invoke(slot)
}

// --- buffer swap ---

func (s *Screen) UseAlternateBuffer() {
	if s.usingAlternate {
		return
	}
	if s.alternate == nil {
		alt := newBuffer(s.lines)
		s.alternate = &alt
	}
	s.usingAlternate = true
}

func (s *Screen) UsePrimaryBuffer() {
	s.usingAlternate = false
}

func (s *Screen) AlternateBufferActive() bool { return s.usingAlternate }

// --- resize ---

func (s *Screen) resizeBuffer(b *buffer, newLines, newColumns int, reportScroll bool) {
	if newLines < len(b.grid) && b.cursor.Y >= newLines {
		drop := b.cursor.Y - newLines + 1
		if drop > len(b.grid) {
			drop = len(b.grid)
		}
		if reportScroll && s.scroll != nil {
			s.scroll.Scrolled(s, 0, drop)
		}
		b.grid = append([][]Cell{}, b.grid[drop:]...)
		b.lineFlags = append([]LineFlags{}, b.lineFlags[drop:]...)
		b.cursor.Y -= drop
	}

	if newLines < len(b.grid) {
		b.grid = b.grid[:newLines]
		b.lineFlags = b.lineFlags[:newLines]
	} else {
		for len(b.grid) < newLines {
			b.grid = append(b.grid, nil)
			b.lineFlags = append(b.lineFlags, 0)
		}
	}

	for y := range b.grid {
		if len(b.grid[y]) > newColumns {
			b.grid[y] = b.grid[y][:newColumns]
		}
	}

	b.cursor.X = clampInt(b.cursor.X, 0, newColumns-1)
	b.cursor.Y = clampInt(b.cursor.Y, 0, newLines-1)
}

// SetScreenSize reshapes the screen in place: rows are truncated or
// padded with default cells, and the cursor is clamped. If shrinking
// would leave the cursor above the new bottom, rows are dropped from the
// top (reported to the ScrollProvider) rather than from the bottom, so
// the cursor's row survives.
func (s *Screen) SetScreenSize(lines, columns int) {
	lines = clampDimension(lines)
	columns = clampDimension(columns)
	if lines == s.lines && columns == s.columns {
		return
	}

	s.resizeBuffer(&s.primary, lines, columns, !s.usingAlternate)
	if s.alternate != nil {
		s.resizeBuffer(s.alternate, lines, columns, s.usingAlternate)
	}

	if s.bottomMargin >= s.lines-1 || s.bottomMargin >= lines {
		s.bottomMargin = lines - 1
	}
	if s.topMargin >= lines {
		s.topMargin = 0
	}
	if s.topMargin > s.bottomMargin {
		s.topMargin = 0
	}

	s.lines = lines
	s.columns = columns
}
