package parsing

import "unicode/utf8"

// Window returns text[start:end] widened by radius bytes on each side,
// clipped to the text and moved outward to rune boundaries.
func Window(text string, start, end, radius int) string {
	lo := clampOffset(text, start-radius)
	hi := clampOffset(text, end+radius)
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	if lo >= hi {
		return ""
	}
	return text[lo:hi]
}

// Preceding returns up to size bytes of text ending at pos, starting on a rune boundary.
func Preceding(text string, pos, size int) string {
	pos = clampOffset(text, pos)
	lo := clampOffset(text, pos-size)
	for lo < pos && !utf8.RuneStart(text[lo]) {
		lo++
	}
	return text[lo:pos]
}

func clampOffset(text string, i int) int {
	if i < 0 {
		return 0
	}
	if i > len(text) {
		return len(text)
	}
	return i
}
