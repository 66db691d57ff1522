package llm

import (
	"encoding/json"
	"strings"
)

// SkillCandidate is one skill proposed by the model.
type SkillCandidate struct {
	Skill      string
	Category   string
	Confidence float64
	Context    string
}

// rawCandidate uses pointers so that absent fields can be told apart from zero values.
type rawCandidate struct {
	Skill      *string  `json:"skill"`
	Category   *string  `json:"category"`
	Confidence *float64 `json:"confidence"`
	Context    string   `json:"context"`
}

// ParseSkillCandidates extracts the JSON array of candidates from a model
// reply. Code fences and surrounding prose are tolerated: the text between the
// first '[' and the last ']' is decoded, falling back to the first balanced
// JSON value when that span does not parse. Entries missing skill, category or
// confidence are skipped. The second return is false when no array could be
// decoded at all; an empty array is a valid, empty result.
func ParseSkillCandidates(raw string) ([]SkillCandidate, bool) {
	text, _ := stripCodeFence(raw)
	entries, ok := decodeArraySpan(text)
	if !ok {
		entries, ok = decodeArraySpan(CleanJSONBlock(raw))
		if !ok {
			return nil, false
		}
	}

	candidates := make([]SkillCandidate, 0, len(entries))
	for _, entry := range entries {
		var rc rawCandidate
		if err := json.Unmarshal(entry, &rc); err != nil {
			continue
		}
		if rc.Skill == nil || rc.Category == nil || rc.Confidence == nil {
			continue
		}
		skill := strings.TrimSpace(*rc.Skill)
		if skill == "" {
			continue
		}
		candidates = append(candidates, SkillCandidate{
			Skill:      skill,
			Category:   strings.TrimSpace(*rc.Category),
			Confidence: *rc.Confidence,
			Context:    strings.TrimSpace(rc.Context),
		})
	}
	return candidates, true
}

// decodeArraySpan decodes the text between the first '[' and the last ']'.
func decodeArraySpan(text string) ([]json.RawMessage, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil, false
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &entries); err != nil {
		return nil, false
	}
	return entries, true
}
