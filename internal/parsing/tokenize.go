package parsing

import (
	"regexp"
	"strings"
)

// minStemLength is the shortest stem a suffix rule may produce.
const minStemLength = 3

var tokenRe = regexp.MustCompile(`[A-Za-z0-9_\-.]+`)

// Tokenize splits normalized text into tokens. Each raw token is followed by
// its stem when stemming changes it. The raw token count is returned separately.
func Tokenize(text string) ([]string, int) {
	raw := tokenRe.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw)*2)
	count := 0
	for _, tok := range raw {
		tok = strings.Trim(tok, ".-")
		if tok == "" {
			continue
		}
		count++
		tokens = append(tokens, tok)
		if stem := Stem(tok); stem != tok {
			tokens = append(tokens, stem)
		}
	}
	return tokens, count
}

// Stem strips one common English suffix from a lower-case word:
// -ing, -ed, -er and -ly are dropped, -tion becomes -te and -ment is dropped.
// The word is returned unchanged when the stem would be too short.
func Stem(word string) string {
	var stem string
	switch {
	case strings.HasSuffix(word, "ing"):
		stem = word[:len(word)-3]
	case strings.HasSuffix(word, "tion"):
		stem = word[:len(word)-3] + "e"
	case strings.HasSuffix(word, "ment"):
		stem = word[:len(word)-4]
	case strings.HasSuffix(word, "ed"), strings.HasSuffix(word, "er"), strings.HasSuffix(word, "ly"):
		stem = word[:len(word)-2]
	default:
		return word
	}

	if len(stem) < minStemLength {
		return word
	}
	return stem
}

// StemPhrase stems every word of a phrase and joins them with single spaces.
func StemPhrase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = Stem(w)
	}
	return strings.Join(words, " ")
}
