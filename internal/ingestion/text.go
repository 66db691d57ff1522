// Package ingestion reads resume and job description documents and cleans
// their text before extraction.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace     = regexp.MustCompile(`[ \t\f\v]+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
	// bulletGlyphs are list markers pasted from word processors and PDFs
	bulletGlyphs = regexp.MustCompile(`^[•·▪▫◦‣∙●○■□➢➤►]\s*`)
)

// CleanText cleans and normalizes text content while preserving structure:
// line breaks and sentence punctuation survive, since negation and
// corroboration look at sentence boundaries.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ToValidUTF8(content, " ")

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = excessiveBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line. Bullet glyphs become "- " so list items
// stay recognizable; control characters are dropped.
func cleanLine(line string) string {
	line = strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, line)

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	if bulletGlyphs.MatchString(trimmed) {
		trimmed = "- " + bulletGlyphs.ReplaceAllString(trimmed, "")
	}

	return multiSpace.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		bulletGlyphs.MatchString(trimmed)
}

// CountBullets returns the number of list items in cleaned text.
func CountBullets(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if isBulletLine(line) {
			n++
		}
	}
	return n
}
