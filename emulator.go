package rvt

import (
	"strconv"
	"strings"
)

// parserState is the VT byte-stream state machine's current mode.
type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateCsiEntry
	stateOscEntry
	stateScs
)

// Emulator decodes a VT220/xterm-compatible byte stream and drives a Screen.
// It owns no I/O of its own: malformed input is reported through the
// LogProvider, query responses are written to the ResponseProvider, and the
// decoded window title is exposed through WindowTitle.
type Emulator struct {
	screen   *Screen
	decoder  *Decoder
	log      LogProvider
	response ResponseProvider

	title []rune

	state parserState
	seq   []rune // raw sequence collected since the triggering ESC, for diagnostics

	// CSI collection
	params       []int
	currentParam int
	paramStarted bool
	private      rune

	// SCS collection
	scsIntroducer rune

	// OSC collection
	oscNumberVal  int
	oscNumberDone bool
	oscNumber     int
	oscString     []rune
	oscPendingEsc bool
}

// EmulatorOption configures an Emulator at construction time.
type EmulatorOption func(*Emulator)

// WithLogProvider routes diagnostic messages about malformed input to p.
func WithLogProvider(p LogProvider) EmulatorOption {
	return func(e *Emulator) {
		if p != nil {
			e.log = p
		}
	}
}

// WithResponseProvider routes query responses (DA, CPR) to p.
func WithResponseProvider(p ResponseProvider) EmulatorOption {
	return func(e *Emulator) {
		if p != nil {
			e.response = p
		}
	}
}

// NewEmulator creates an Emulator bound to screen, starting in Ground state.
func NewEmulator(screen *Screen, opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		screen:   screen,
		decoder:  NewDecoder(),
		log:      NoopLog{},
		response: NoopResponse{},
		state:    stateGround,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WindowTitle returns the most recently set OSC window title.
func (e *Emulator) WindowTitle() string {
	return string(e.title)
}

// Feed decodes data and drives the parser and Screen with its contents. It
// never fails: malformed sequences are reported via the LogProvider and
// otherwise discarded.
func (e *Emulator) Feed(data []byte) {
	for _, r := range e.decoder.Decode(data) {
		e.step(r)
	}
}

func (e *Emulator) step(r rune) {
	switch e.state {
	case stateGround:
		e.stepGround(r)
	case stateEscape:
		e.stepEscape(r)
	case stateCsiEntry:
		e.stepCsi(r)
	case stateOscEntry:
		e.stepOsc(r)
	case stateScs:
		e.stepScs(r)
	}
}

func (e *Emulator) stepGround(r rune) {
	if r == 0x1b {
		e.beginEscape()
		return
	}
	if classOf(r).has(classCTL) {
		e.dispatchControl(r)
		return
	}
	e.screen.DisplayCharacter(r)
}

func (e *Emulator) dispatchControl(r rune) {
	switch r {
	case 0x07:
		e.log.Log("Bell")
	case 0x08:
		e.screen.Backspace()
	case 0x09:
		e.screen.Tab()
	case 0x0a, 0x0b, 0x0c:
		e.screen.Index()
		if e.screen.GetMode(ModeNewLine) {
			e.screen.CarriageReturn()
		}
	case 0x0d:
		e.screen.CarriageReturn()
	case 0x0e:
		e.screen.InvokeCharset(1)
	case 0x0f:
		e.screen.InvokeCharset(0)
	default:
		// other C0 controls carry no defined effect here.
	}
}

func (e *Emulator) beginEscape() {
	e.state = stateEscape
	e.seq = append(e.seq[:0], 0x1b)
}

func (e *Emulator) toGround() {
	e.state = stateGround
}

func (e *Emulator) stepEscape(r rune) {
	if classOf(r).has(classCTL) {
		e.handleControlDuringSequence(r)
		return
	}
	e.seq = append(e.seq, r)
	switch r {
	case '[':
		e.beginCsi()
		return
	case ']':
		e.beginOsc()
		return
	case '7':
		e.screen.SaveCursor()
		e.toGround()
		return
	case '8':
		e.screen.RestoreCursor()
		e.toGround()
		return
	case 'D':
		e.screen.Index()
		e.toGround()
		return
	case 'E':
		e.screen.Index()
		e.screen.CarriageReturn()
		e.toGround()
		return
	case 'M':
		e.screen.ReverseIndex()
		e.toGround()
		return
	case 'c':
		e.resetToInitialState()
		e.toGround()
		return
	}
	if classOf(r).has(classSCS) {
		e.beginScs(r)
		return
	}
	e.logUnrecognized()
	e.toGround()
}

func (e *Emulator) resetToInitialState() {
	e.screen.ResetAllRenditions()
	e.screen.SetForegroundColor(DefaultForegroundColor())
	e.screen.SetBackgroundColor(DefaultBackgroundColor())
	e.screen.ClearEntireScreen()
	e.screen.SetCursorYX(0, 0)
	e.screen.SetMode(ModeCursor | ModeWrap)
	e.screen.ResetMode(ModeOrigin | ModeInsert | ModeScreenReverse | ModeNewLine)
	e.title = e.title[:0]
}

func (e *Emulator) handleControlDuringSequence(r rune) {
	e.seq = append(e.seq, r)
	e.logUnrecognizedNoGround()
	if r == 0x1b {
		e.beginEscape()
		return
	}
	e.toGround()
}

func (e *Emulator) beginScs(introducer rune) {
	e.state = stateScs
	e.scsIntroducer = introducer
}

func (e *Emulator) stepScs(r rune) {
	if classOf(r).has(classCTL) {
		e.handleControlDuringSequence(r)
		return
	}
	e.seq = append(e.seq, r)
	e.screen.DesignateCharset(slotForIntroducer(e.scsIntroducer), charsetFromFinal(r))
	e.toGround()
}

func slotForIntroducer(r rune) int {
	switch r {
	case '(':
		return 0
	case ')':
		return 1
	case '*':
		return 2
	case '+':
		return 3
	default:
		return 0
	}
}

func (e *Emulator) beginCsi() {
	e.state = stateCsiEntry
	e.params = e.params[:0]
	e.currentParam = 0
	e.paramStarted = false
	e.private = 0
}

func (e *Emulator) stepCsi(r rune) {
	if classOf(r).has(classCTL) {
		e.handleControlDuringSequence(r)
		return
	}
	e.seq = append(e.seq, r)
	cls := classOf(r)

	if e.private == 0 && !e.paramStarted && len(e.params) == 0 && (r == '?' || r == '<' || r == '=' || r == '>') {
		e.private = r
		return
	}
	if r == ';' {
		e.pushParam()
		return
	}
	if cls.has(classDIG) {
		e.paramStarted = true
		e.currentParam = e.currentParam*10 + int(r-'0')
		if e.currentParam > 65535 {
			e.currentParam = 65535
		}
		return
	}
	// any final byte dispatches; dispatchCSI logs the ones it does not handle.
	if r >= 0x40 && r <= 0x7e {
		e.pushParam()
		e.dispatchCSI(r)
		e.toGround()
		return
	}
	e.logUnrecognized()
	e.toGround()
}

func (e *Emulator) pushParam() {
	if len(e.params) < 16 {
		e.params = append(e.params, e.currentParam)
	}
	e.currentParam = 0
	e.paramStarted = false
}

// param returns the value of the idx'th CSI parameter, or def when the
// parameter is absent or explicitly zero (the universal ANSI convention
// that an omitted or zero parameter selects the action's default).
func (e *Emulator) param(idx, def int) int {
	if idx < len(e.params) && e.params[idx] != 0 {
		return e.params[idx]
	}
	return def
}

func (e *Emulator) dispatchCSI(final rune) {
	switch final {
	case '@':
		e.screen.InsertChars(e.param(0, 1))
	case 'A':
		e.screen.CursorUp(e.param(0, 1))
	case 'B':
		e.screen.CursorDown(e.param(0, 1))
	case 'C':
		e.screen.CursorRight(e.param(0, 1))
	case 'D':
		e.screen.CursorLeft(e.param(0, 1))
	case 'E':
		e.screen.CursorNextLine(e.param(0, 1))
	case 'F':
		e.screen.CursorPrevLine(e.param(0, 1))
	case 'G':
		e.screen.SetCursorX(e.param(0, 1) - 1)
	case 'H', 'f':
		e.screen.SetCursorYX(e.param(0, 1)-1, e.param(1, 1)-1)
	case 'I':
		e.screen.Tab()
	case 'J':
		e.dispatchED(e.param(0, 0))
	case 'K':
		e.dispatchEL(e.param(0, 0))
	case 'L':
		e.screen.InsertLines(e.param(0, 1))
	case 'M':
		e.screen.DeleteLines(e.param(0, 1))
	case 'P':
		e.screen.DeleteChars(e.param(0, 1))
	case 'S':
		e.screen.ScrollUp(e.param(0, 1))
	case 'T':
		e.screen.ScrollDown(e.param(0, 1))
	case 'X':
		e.screen.EraseChars(e.param(0, 1))
	case 'Z':
		e.screen.BackwardTab(e.param(0, 1))
	case 'c':
		e.dispatchDA()
	case 'n':
		e.dispatchDSR(e.param(0, 0))
	case 'd':
		e.screen.SetCursorY(e.param(0, 1) - 1)
	case 'h':
		e.dispatchSetMode(true)
	case 'l':
		e.dispatchSetMode(false)
	case 'm':
		e.dispatchSGR()
	case 'r':
		e.screen.SetMargins(e.param(0, 1)-1, e.param(1, e.screen.Lines())-1)
	case 's':
		e.screen.SaveCursor()
	case 'u':
		e.screen.RestoreCursor()
	case 't':
		e.dispatchWindowOp()
	default:
		e.logUnrecognized()
	}
}

func (e *Emulator) dispatchED(n int) {
	switch n {
	case 0:
		e.screen.ClearToEndOfScreen()
	case 1:
		e.screen.ClearToBeginningOfScreen()
	case 2:
		e.screen.ClearEntireScreen()
	default:
		e.logUnrecognized()
	}
}

func (e *Emulator) dispatchEL(n int) {
	switch n {
	case 0:
		e.screen.ClearToEndOfLine()
	case 1:
		e.screen.ClearToBeginningOfLine()
	case 2:
		e.screen.ClearEntireLine()
	default:
		e.logUnrecognized()
	}
}

func (e *Emulator) dispatchDA() {
	_, _ = e.response.Write([]byte("\x1b[?1;2c"))
}

// dispatchDSR answers a Device Status Report. Only DSR 6 (cursor position
// report) is implemented; others are accepted and ignored.
func (e *Emulator) dispatchDSR(n int) {
	if n != 6 {
		return
	}
	row := e.screen.CursorY() + 1
	col := e.screen.CursorX() + 1
	var buf []byte
	buf = append(buf, 0x1b, '[')
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	buf = append(buf, 'R')
	_, _ = e.response.Write(buf)
}

func (e *Emulator) dispatchWindowOp() {
	if e.param(0, 0) != 8 {
		return
	}
	rows := e.param(1, e.screen.Lines())
	cols := e.param(2, e.screen.Columns())
	e.screen.SetScreenSize(rows, cols)
}

func (e *Emulator) dispatchSetMode(set bool) {
	for _, p := range e.params {
		if e.private == '?' {
			e.setPrivateMode(p, set)
		} else {
			e.setStandardMode(p, set)
		}
	}
}

func (e *Emulator) setStandardMode(code int, set bool) {
	var m ModeFlags
	switch code {
	case 4:
		m = ModeInsert
	case 20:
		m = ModeNewLine
	default:
		return
	}
	e.toggleMode(m, set)
}

func (e *Emulator) setPrivateMode(code int, set bool) {
	switch code {
	case 6:
		e.toggleMode(ModeOrigin, set)
	case 7:
		e.toggleMode(ModeWrap, set)
	case 25:
		e.toggleMode(ModeCursor, set)
	case 47, 1047:
		if set {
			e.screen.UseAlternateBuffer()
		} else {
			e.screen.UsePrimaryBuffer()
		}
	case 1049:
		if set {
			e.screen.SaveCursor()
			e.screen.UseAlternateBuffer()
			e.screen.ClearEntireScreen()
		} else {
			e.screen.ClearEntireScreen()
			e.screen.UsePrimaryBuffer()
			e.screen.RestoreCursor()
		}
	default:
		// unmodeled private mode (e.g. ?1 cursor-keys mode): accepted, no effect.
	}
}

func (e *Emulator) toggleMode(m ModeFlags, set bool) {
	if set {
		e.screen.SetMode(m)
	} else {
		e.screen.ResetMode(m)
	}
}

func (e *Emulator) dispatchSGR() {
	params := e.params
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			e.screen.ResetAllRenditions()
			e.screen.SetForegroundColor(DefaultForegroundColor())
			e.screen.SetBackgroundColor(DefaultBackgroundColor())
		case p == 1:
			e.screen.SetRendition(RenditionBold)
		case p == 22:
			e.screen.ResetRendition(RenditionBold)
		case p == 3:
			e.screen.SetRendition(RenditionItalic)
		case p == 23:
			e.screen.ResetRendition(RenditionItalic)
		case p == 4:
			e.screen.SetRendition(RenditionUnderline)
		case p == 24:
			e.screen.ResetRendition(RenditionUnderline)
		case p == 5:
			e.screen.SetRendition(RenditionBlink)
		case p == 25:
			e.screen.ResetRendition(RenditionBlink)
		case p == 7:
			e.screen.SetRendition(RenditionReverse)
		case p == 27:
			e.screen.ResetRendition(RenditionReverse)
		case p == 9:
			e.screen.SetRendition(RenditionStrikeout)
		case p == 29:
			e.screen.ResetRendition(RenditionStrikeout)
		case p >= 30 && p <= 37:
			e.screen.SetForegroundColor(SystemColor(uint8(p-30), false))
		case p >= 40 && p <= 47:
			e.screen.SetBackgroundColor(SystemColor(uint8(p-40), false))
		case p >= 90 && p <= 97:
			e.screen.SetForegroundColor(SystemColor(uint8(p-90), true))
		case p >= 100 && p <= 107:
			e.screen.SetBackgroundColor(SystemColor(uint8(p-100), true))
		case p == 39:
			e.screen.SetForegroundColor(DefaultForegroundColor())
		case p == 49:
			e.screen.SetBackgroundColor(DefaultBackgroundColor())
		case p == 38:
			c, consumed := readExtendedColor(params[i+1:])
			e.screen.SetForegroundColor(c)
			i += consumed
		case p == 48:
			c, consumed := readExtendedColor(params[i+1:])
			e.screen.SetBackgroundColor(c)
			i += consumed
		default:
			// unhandled SGR code, ignored.
		}
	}
}

// readExtendedColor parses the 256-color or RGB sub-parameters that follow
// an SGR 38/48 selector and returns how many extra parameters it consumed.
func readExtendedColor(rest []int) (Color, int) {
	if len(rest) == 0 {
		return Color{}, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) >= 2 {
			return Indexed256Color(uint8(rest[1])), 2
		}
	case 2:
		if len(rest) >= 4 {
			return RGBColor(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), 4
		}
	}
	return Color{}, len(rest)
}

func (e *Emulator) beginOsc() {
	e.state = stateOscEntry
	e.oscNumberVal = 0
	e.oscNumberDone = false
	e.oscNumber = 0
	e.oscString = e.oscString[:0]
	e.oscPendingEsc = false
}

func (e *Emulator) stepOsc(r rune) {
	e.seq = append(e.seq, r)

	if r == 0x07 {
		e.dispatchOSC()
		e.toGround()
		return
	}
	if e.oscPendingEsc {
		e.oscPendingEsc = false
		if r == '\\' {
			e.dispatchOSC()
			e.toGround()
			return
		}
		e.logUnrecognizedNoGround()
		e.toGround()
		return
	}
	if r == 0x1b {
		e.oscPendingEsc = true
		return
	}
	if r < 0x20 {
		e.logUnrecognizedNoGround()
		e.toGround()
		return
	}
	if !e.oscNumberDone {
		if r >= '0' && r <= '9' {
			e.oscNumberVal = e.oscNumberVal*10 + int(r-'0')
			return
		}
		if r == ';' {
			e.oscNumber = e.oscNumberVal
			e.oscNumberDone = true
			return
		}
	}
	e.oscString = append(e.oscString, r)
}

func (e *Emulator) dispatchOSC() {
	switch e.oscNumber {
	case 0, 1, 2:
		e.setTitle(e.oscString)
	case 4:
		// palette redefinition: consumed without effect.
	default:
		e.logUnrecognizedNoGround()
	}
}

func (e *Emulator) setTitle(seq []rune) {
	if len(seq) > 255 {
		seq = seq[:255]
	}
	e.title = append(e.title[:0], seq...)
}

func (e *Emulator) logUnrecognized() {
	e.logUnrecognizedNoGround()
}

func (e *Emulator) logUnrecognizedNoGround() {
	e.log.Log("Undecodable sequence: " + formatSequence(e.seq))
}

func formatSequence(seq []rune) string {
	var b strings.Builder
	for _, r := range seq {
		if r == 0x1b {
			b.WriteString(`\x1b`)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
