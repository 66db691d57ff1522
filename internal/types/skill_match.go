//nolint:revive // types is a standard Go package name pattern
package types

// SkillMatch is one candidate or final skill mention.
type SkillMatch struct {
	Keyword            string      `json:"keyword"`         // as found in the text
	NormalizedForm     string      `json:"normalized_form"` // dedup identity
	Category           string      `json:"category"`
	ConfidenceScore    float64     `json:"confidence_score"`
	ContextRelevance   float64     `json:"context_relevance"`
	Weight             float64     `json:"weight"`
	SkillLevel         *SkillLevel `json:"skill_level,omitempty"`
	ExperienceYears    *int        `json:"experience_years,omitempty"`
	MatchType          MatchType   `json:"match_type"`
	ContextPhrases     []string    `json:"context_phrases"`
	SemanticVariations []string    `json:"semantic_variations"`
	IndustryRelevance  float64     `json:"industry_relevance"`

	// WordPosition is the byte offset of the mention in the normalized text,
	// or -1 when the mention could not be located.
	WordPosition int `json:"-"`
}

// RankScore is the ordering key used when ranking fused matches.
func (m *SkillMatch) RankScore() float64 {
	return m.ConfidenceScore * m.ContextRelevance * m.Weight
}

// Clone returns a deep copy of the match.
func (m SkillMatch) Clone() SkillMatch {
	out := m
	if m.SkillLevel != nil {
		level := *m.SkillLevel
		out.SkillLevel = &level
	}
	if m.ExperienceYears != nil {
		years := *m.ExperienceYears
		out.ExperienceYears = &years
	}
	out.ContextPhrases = append([]string(nil), m.ContextPhrases...)
	out.SemanticVariations = append([]string(nil), m.SemanticVariations...)
	return out
}

// Clamp01 limits a score to the closed interval [0,1].
func Clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LevelPtr returns a pointer to the given level.
func LevelPtr(l SkillLevel) *SkillLevel {
	return &l
}
