// Package parsing canonicalizes raw document text and splits it into stemmed tokens.
package parsing

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// compoundTerms rewrites punctuated skill spellings to a single token so that
// pattern rules and ontology keys need not special-case them. Order matters:
// longer spellings that contain shorter ones come first.
var compoundTerms = []struct {
	from string
	to   string
}{
	{"asp.net", "aspnet"},
	{".net", "dotnet"},
	{"node.js", "nodejs"},
	{"react.js", "reactjs"},
	{"vue.js", "vuejs"},
	{"next.js", "nextjs"},
	{"express.js", "expressjs"},
	{"angular.js", "angularjs"},
	{"c++", "cplusplus"},
	{"c#", "csharp"},
	{"f#", "fsharp"},
	{"objective-c", "objectivec"},
	{"postgre sql", "postgresql"},
	{"ci/cd", "cicd"},
	{"scikit-learn", "scikitlearn"},
	{"a/b testing", "ab testing"},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeText lower-cases text, applies the compound-term table and
// collapses runs of whitespace. Compatibility forms (full-width letters,
// ligatures) are folded first so they match their ASCII spellings.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ToLower(norm.NFKC.String(raw))
	for _, term := range compoundTerms {
		text = strings.ReplaceAll(text, term.from, term.to)
	}
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Document is normalized text plus its token stream.
type Document struct {
	Text string
	// Tokens holds each raw token followed by its stem when the stem differs.
	Tokens []string
	// TokenCount is the number of raw tokens.
	TokenCount int
}

// Analyze normalizes raw text and tokenizes the result.
func Analyze(raw string) Document {
	text := NormalizeText(raw)
	tokens, count := Tokenize(text)
	return Document{Text: text, Tokens: tokens, TokenCount: count}
}
