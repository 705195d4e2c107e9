package rvt

import "testing"

func TestNewScreenDefaults(t *testing.T) {
	s := NewScreen(24, 80)
	if s.Lines() != 24 || s.Columns() != 80 {
		t.Fatalf("got %dx%d, want 24x80", s.Lines(), s.Columns())
	}
	if !s.CursorVisible() {
		t.Error("cursor must be visible by default")
	}
	if !s.GetMode(ModeWrap) {
		t.Error("wrap must be on by default")
	}
	if s.BottomMargin() != 23 || s.TopMargin() != 0 {
		t.Errorf("margins = [%d,%d], want [0,23]", s.TopMargin(), s.BottomMargin())
	}
}

func TestNewScreenClampsDimensions(t *testing.T) {
	s := NewScreen(0, -1)
	if s.Lines() != 1 || s.Columns() != 1 {
		t.Errorf("got %dx%d, want 1x1", s.Lines(), s.Columns())
	}
	s2 := NewScreen(100000, 100000)
	if s2.Lines() != 4096 || s2.Columns() != 4096 {
		t.Errorf("got %dx%d, want 4096x4096", s2.Lines(), s2.Columns())
	}
}

func TestDisplayCharacterAdvancesCursor(t *testing.T) {
	s := NewScreen(5, 10)
	s.DisplayCharacter('a')
	if s.CursorX() != 1 {
		t.Errorf("CursorX() = %d, want 1", s.CursorX())
	}
	cell := s.cellAt(0, 0)
	if !cell.IsReal || rune(cell.CodePoint) != 'a' {
		t.Errorf("cellAt(0,0) = %+v, want real 'a'", cell)
	}
}

func TestDisplayCharacterWrapsAtMargin(t *testing.T) {
	s := NewScreen(3, 4)
	for _, c := range "abcd" {
		s.DisplayCharacter(c)
	}
	if s.CursorY() != 1 || s.CursorX() != 0 {
		t.Errorf("cursor after wrap = (%d,%d), want (0,1)", s.CursorX(), s.CursorY())
	}
	flags := s.RowLineFlags()
	if flags[0]&LineWrapped == 0 {
		t.Error("row 0 must be flagged LineWrapped")
	}
}

func TestCombiningMarkAttachesToPreviousCell(t *testing.T) {
	s := NewScreen(3, 10)
	s.DisplayCharacter('e')
	s.DisplayCharacter(0x0301) // combining acute accent, zero width
	if s.CursorX() != 1 {
		t.Errorf("CursorX() after combining mark = %d, want 1 (must not advance)", s.CursorX())
	}
	cell := s.cellAt(0, 0)
	if !cell.Rendition.Has(RenditionExtendedChar) {
		t.Error("combined cell must be flagged RenditionExtendedChar")
	}
}

func TestCursorMovementClamping(t *testing.T) {
	s := NewScreen(5, 5)
	s.CursorUp(10)
	if s.CursorY() != 0 {
		t.Errorf("CursorY() = %d, want 0", s.CursorY())
	}
	s.CursorDown(100)
	if s.CursorY() != 4 {
		t.Errorf("CursorY() = %d, want 4", s.CursorY())
	}
	s.CursorLeft(10)
	if s.CursorX() != 0 {
		t.Errorf("CursorX() = %d, want 0", s.CursorX())
	}
	s.CursorRight(100)
	if s.CursorX() != 4 {
		t.Errorf("CursorX() = %d, want 4", s.CursorX())
	}
}

func TestScrollUpReportsOutgoingRows(t *testing.T) {
	var got []int
	rec := &recordingScrollProvider{fn: func(yStart, yEnd int) { got = append(got, yStart, yEnd) }}
	s := NewScreen(3, 5, WithScrollProvider(rec))
	s.DisplayCharacter('x')
	s.ScrollUp(1)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Scrolled(yStart,yEnd) = %v, want [0 1]", got)
	}
	// the scrolled-off row's content is gone; the new bottom row is default.
	if s.cellAt(2, 0) != defaultCell {
		t.Error("row scrolled into must be default")
	}
}

func TestScrollRegionRespectsMargins(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetMargins(1, 3)
	s.SetCursorYX(3, 0)
	s.Index() // at bottom margin, should scroll within [1,3], not touch row 0 or 4
	s.DisplayCharacter('z')
	if cell := s.cellAt(0, 0); cell.IsReal {
		t.Error("row 0 outside scroll region must be untouched by Index scroll")
	}
}

func TestSetScreenSizeDropsFromTopWhenCursorWouldBeAbove(t *testing.T) {
	var scrolled bool
	rec := &recordingScrollProvider{fn: func(yStart, yEnd int) { scrolled = true }}
	s := NewScreen(5, 10, WithScrollProvider(rec))
	s.SetCursorYX(4, 0)
	s.DisplayCharacter('Q')
	s.SetScreenSize(2, 10)
	if s.Lines() != 2 {
		t.Fatalf("Lines() = %d, want 2", s.Lines())
	}
	if !scrolled {
		t.Error("shrinking past the cursor's row must report scrolled rows")
	}
	if s.CursorY() != 1 {
		t.Errorf("CursorY() = %d, want 1 (cursor's row preserved at new bottom)", s.CursorY())
	}
}

func TestSetScreenSizePadsRows(t *testing.T) {
	s := NewScreen(2, 5)
	s.SetScreenSize(5, 5)
	if s.Lines() != 5 {
		t.Fatalf("Lines() = %d, want 5", s.Lines())
	}
	if len(s.Rows()) != 5 {
		t.Errorf("len(Rows()) = %d, want 5", len(s.Rows()))
	}
}

func TestModeSaveRestore(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetMode(ModeInsert)
	s.SaveMode(ModeInsert)
	s.ResetMode(ModeInsert)
	if s.GetMode(ModeInsert) {
		t.Fatal("ModeInsert must be reset")
	}
	s.RestoreMode(ModeInsert)
	if !s.GetMode(ModeInsert) {
		t.Error("ModeInsert must be restored")
	}
}

func TestSaveRestoreCursorAttributes(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetCursorYX(2, 3)
	s.SetForegroundColor(SystemColor(1, false))
	s.SetRendition(RenditionBold)
	s.SaveCursor()

	s.SetCursorYX(0, 0)
	s.SetForegroundColor(DefaultForegroundColor())
	s.ResetAllRenditions()

	s.RestoreCursor()
	if s.CursorX() != 3 || s.CursorY() != 2 {
		t.Errorf("cursor after restore = (%d,%d), want (3,2)", s.CursorX(), s.CursorY())
	}
	if s.CurrentForeground() != SystemColor(1, false) {
		t.Error("foreground not restored")
	}
	if !s.CurrentRendition().Has(RenditionBold) {
		t.Error("rendition not restored")
	}
}

func TestAlternateBufferSwapIsolatesContent(t *testing.T) {
	s := NewScreen(3, 5)
	s.DisplayCharacter('p')
	s.UseAlternateBuffer()
	if !s.AlternateBufferActive() {
		t.Fatal("AlternateBufferActive() must be true")
	}
	if s.CursorX() != 0 {
		t.Errorf("alternate buffer must start with a fresh cursor, got X=%d", s.CursorX())
	}
	cell := s.cellAt(0, 0)
	if cell.IsReal {
		t.Error("alternate buffer must not see primary buffer's content")
	}
	s.UsePrimaryBuffer()
	cell = s.cellAt(0, 0)
	if !cell.IsReal || rune(cell.CodePoint) != 'p' {
		t.Error("primary buffer content must survive a round trip through alternate")
	}
}

func TestClearEntireLineTrimsRow(t *testing.T) {
	s := NewScreen(3, 5)
	s.DisplayCharacter('a')
	s.DisplayCharacter('b')
	s.ClearEntireLine()
	if len(s.Rows()[0]) != 0 {
		t.Errorf("len(Rows()[0]) = %d, want 0 after ClearEntireLine", len(s.Rows()[0]))
	}
}

func TestInsertAndDeleteChars(t *testing.T) {
	s := NewScreen(1, 10)
	for _, c := range "abc" {
		s.DisplayCharacter(c)
	}
	s.SetCursorX(0)
	s.InsertChars(2)
	if rune(s.cellAt(0, 2).CodePoint) != 'a' {
		t.Errorf("after InsertChars(2), cell(0,2) = %q, want 'a'", rune(s.cellAt(0, 2).CodePoint))
	}
	s.DeleteChars(2)
	if rune(s.cellAt(0, 0).CodePoint) != 'a' {
		t.Errorf("after DeleteChars(2), cell(0,0) = %q, want 'a'", rune(s.cellAt(0, 0).CodePoint))
	}
}

// recordingScrollProvider adapts a plain func into ScrollProvider for tests.
type recordingScrollProvider struct {
	fn func(yStart, yEnd int)
}

func (r *recordingScrollProvider) Scrolled(screen *Screen, yStart, yEnd int) {
	r.fn(yStart, yEnd)
}

var _ ScrollProvider = (*recordingScrollProvider)(nil)
