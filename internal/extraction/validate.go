package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/types"
)

// Validation defaults and factors.
const (
	DefaultConfidenceThreshold = 0.6
	DefaultContextWindowSize   = 50

	negationFactor   = 0.3
	jobConfBoost     = 1.2
	jobContextBoost  = 1.1
	sentenceBoundary = ".;!?\n"
)

var negationRe = regexp.MustCompile(
	`\b(?:no|not|without|lacking|never)\b` +
		`|\b(?:unfamiliar|inexperienced|novice|beginner)\b` +
		`|\b(?:limited|minimal|basic)\s+experience(?:\s+(?:in|with))?\b`)

// Validator adjusts match confidence from the surrounding text and an
// optional job description, then drops weak matches.
type Validator struct {
	threshold float64
	window    int
}

// NewValidator creates a validator. Non-positive windows use
// DefaultContextWindowSize.
func NewValidator(threshold float64, window int) *Validator {
	if window <= 0 {
		window = DefaultContextWindowSize
	}
	return &Validator{threshold: threshold, window: window}
}

// Validate returns adjusted copies of the matches whose confidence is at
// least the threshold, in their original order.
//
// A negation phrase in the window before a mention multiplies its
// confidence by 0.3. A job description containing the keyword multiplies
// confidence by 1.2 and context relevance by 1.1, both capped at 1.
func (v *Validator) Validate(text, jobDescription string, matches []types.SkillMatch) []types.SkillMatch {
	jobLower := strings.ToLower(jobDescription)
	jobNormalized := parsing.NormalizeText(jobDescription)

	out := make([]types.SkillMatch, 0, len(matches))
	for _, m := range matches {
		if Negated(text, m.WordPosition, v.window) {
			m.ConfidenceScore *= negationFactor
		}
		if jobDescription != "" && mentions(jobLower, jobNormalized, m.Keyword) {
			m.ConfidenceScore = types.Clamp01(m.ConfidenceScore * jobConfBoost)
			m.ContextRelevance = types.Clamp01(m.ContextRelevance * jobContextBoost)
		}
		m.ConfidenceScore = types.Clamp01(m.ConfidenceScore)
		if m.ConfidenceScore < v.threshold {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Negated reports whether a negation phrase appears in the window characters
// before pos, within the same sentence. A negative pos is never negated.
func Negated(text string, pos, window int) bool {
	if pos < 0 {
		return false
	}
	preceding := parsing.Preceding(text, pos, window)
	if i := strings.LastIndexAny(preceding, sentenceBoundary); i >= 0 {
		preceding = preceding[i+1:]
	}
	return negationRe.MatchString(strings.ToLower(preceding))
}

func mentions(jobLower, jobNormalized, keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}
	if strings.Contains(jobLower, strings.ToLower(keyword)) {
		return true
	}
	normalized := parsing.NormalizeText(keyword)
	return normalized != "" && strings.Contains(jobNormalized, normalized)
}
