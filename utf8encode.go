package rvt

import "unicode/utf8"

// appendUTF8Rune encodes r as UTF-8 onto buf. The renderers are the only
// place this package produces UTF-8 instead of consuming it, and the
// pack's own UTF-8 library (go-utf8, wired in decode.go) is a decoder
// only — there is no ecosystem encoder in play here, so this falls back
// to the standard library's own AppendRune.
func appendUTF8Rune(buf []byte, r rune) []byte {
	return utf8.AppendRune(buf, r)
}
