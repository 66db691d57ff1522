package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lower-cases", "Python AND Go", "python and go"},
		{"node.js", "Built APIs in Node.js", "built apis in nodejs"},
		{"c++ and c#", "C++, C# and F#", "cplusplus, csharp and fsharp"},
		{"postgre sql", "Postgre SQL tuning", "postgresql tuning"},
		{"asp.net before .net", "ASP.NET and .NET Core", "aspnet and dotnet core"},
		{"collapses whitespace", "  go \t\n  rust  ", "go rust"},
		{"full-width letters fold", "Ｐｙｔｈｏｎ", "python"},
		{"ci/cd", "CI/CD pipelines", "cicd pipelines"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"testing", "test"},
		{"deployed", "deploy"},
		{"quickly", "quick"},
		{"automation", "automate"},
		{"management", "manage"},
		{"python", "python"},
		{"sing", "sing"}, // stem would be too short
		{"led", "led"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stem(tt.input))
		})
	}
}

func TestStemPhrase(t *testing.T) {
	assert.Equal(t, "machine learn", StemPhrase("machine learning"))
	assert.Equal(t, "", StemPhrase("   "))
}

func TestTokenize_InterleavesStems(t *testing.T) {
	tokens, count := Tokenize("testing python deployments.")
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"testing", "test", "python", "deployments"}, tokens)
}

func TestTokenize_KeepsDottedAndHyphenatedTerms(t *testing.T) {
	tokens, count := Tokenize("scikit-learn v1.2 end.")
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"scikit-learn", "v1.2", "end"}, tokens)
}

func TestAnalyze(t *testing.T) {
	doc := Analyze("  Proficient in Node.js  ")
	assert.Equal(t, "proficient in nodejs", doc.Text)
	assert.Equal(t, 3, doc.TokenCount)
	assert.Contains(t, doc.Tokens, "nodejs")

	empty := Analyze("")
	assert.Equal(t, "", empty.Text)
	assert.Equal(t, 0, empty.TokenCount)
	assert.Empty(t, empty.Tokens)
}

func TestWindow(t *testing.T) {
	text := "senior engineer using go daily"
	start := 22 // "go"

	assert.Equal(t, "ing go dai", Window(text, start, start+2, 4))
	assert.Equal(t, text, Window(text, start, start+2, 100))
	assert.Equal(t, "", Window("", 0, 0, 10))

	// Never splits a multi-byte rune
	accented := "café go"
	w := Window(accented, 6, 8, 3)
	assert.Equal(t, "é go", w)
}

func TestPreceding(t *testing.T) {
	text := "no experience with java"

	assert.Equal(t, "with ", Preceding(text, 19, 5))
	assert.Equal(t, "no experience with ", Preceding(text, 19, 100))
	assert.Equal(t, "", Preceding(text, 0, 10))
	assert.Equal(t, "é ", Preceding("café go", 6, 3))
}
