// Package rvt implements a headless VT220/xterm-compatible terminal
// emulator: a pure in-memory engine that consumes a stream of bytes a
// program believes it is sending to a real terminal and maintains a
// snapshot of the visible screen.
//
// There is no pty, no signal handling, and no drawing. The package owns
// three tightly coupled pieces:
//
//   - [Emulator]: the byte-stream parser, a state machine that classifies
//     incoming code points into printable characters, control characters,
//     CSI/OSC sequences, and character-set designations, and drives a
//     [Screen] accordingly.
//   - [Screen]: the cell grid, cursor, scroll region, modes, and the
//     primary/alternate buffer pair.
//   - The renderers ([RenderJSON], [RenderANSI], [RenderTranscript]): they
//     walk a [Screen] and emit bytes through a [BufferSink], never
//     mutating what they read.
//
// # Quick start
//
//	screen := rvt.NewScreen(24, 80)
//	emu := rvt.NewEmulator(screen)
//	emu.Feed([]byte("\x1b[31mHello\x1b[0m"))
//	sink := rvt.NewGrowableSink(nil)
//	rvt.RenderJSON(emu.WindowTitle(), screen, rvt.XtermPalette, sink, nil)
//	fmt.Println(string(sink.Bytes()))
//
// # Concurrency
//
// Every type in this package is a single-threaded, cooperative state
// machine: no internal locking, no goroutines. An [Emulator] and the
// [Screen] it drives belong to exactly one goroutine at a time; share them
// across goroutines only with caller-provided synchronization.
//
// # Provider pattern
//
// Side effects — logging a malformed sequence, writing a DA/DSR response,
// observing a line scrolled out of the top margin — go through small
// pluggable interfaces ([LogProvider], [ResponseProvider],
// [ScrollProvider]) rather than direct I/O, each with a no-op default so
// callers that don't care about a given side channel don't have to say so.
package rvt
