package extraction

import (
	"math"
	"sort"

	"github.com/jonathan/skill-extractor/internal/types"
)

// corroborationBoost multiplies confidence once per additional source that
// found the same skill.
const corroborationBoost = 1.1

type fusedMatch struct {
	match      types.SkillMatch
	sources    int
	phrases    map[string]bool
	variations map[string]bool
}

// Fuse merges the pattern, AI and ontology candidate lists by normalized form.
//
// The first list that produced a skill owns the kept entry, so pattern
// matches win over AI matches, which win over ontology matches. The kept
// confidence is multiplied by 1.1 for every other list that produced the
// same skill, capped at 1. The boost depends only on how many lists agree,
// never on the order of entries within a list. The kept entry absorbs the
// context phrases and semantic variations of the dropped ones.
//
// The result is sorted by confidence × context relevance × weight,
// descending, with ties in priority order.
func Fuse(pattern, ai, ontology []types.SkillMatch) []types.SkillMatch {
	var order []string
	byForm := make(map[string]*fusedMatch)

	for _, list := range [][]types.SkillMatch{pattern, ai, ontology} {
		inList := make(map[string]bool, len(list))
		for i := range list {
			m := &list[i]
			form := m.NormalizedForm
			if form == "" || inList[form] {
				continue
			}
			inList[form] = true

			f, ok := byForm[form]
			if !ok {
				f = &fusedMatch{
					match:      m.Clone(),
					sources:    1,
					phrases:    toSet(m.ContextPhrases),
					variations: toSet(m.SemanticVariations),
				}
				byForm[form] = f
				order = append(order, form)
				continue
			}

			f.sources++
			f.match.ContextPhrases = appendNew(f.match.ContextPhrases, f.phrases, m.ContextPhrases)
			f.match.SemanticVariations = appendNew(f.match.SemanticVariations, f.variations, m.SemanticVariations)
			if f.match.WordPosition < 0 && m.WordPosition >= 0 {
				f.match.WordPosition = m.WordPosition
			}
		}
	}

	out := make([]types.SkillMatch, 0, len(order))
	for _, form := range order {
		f := byForm[form]
		boost := math.Pow(corroborationBoost, float64(f.sources-1))
		f.match.ConfidenceScore = types.Clamp01(f.match.ConfidenceScore * boost)
		f.match.ContextRelevance = types.Clamp01(f.match.ContextRelevance)
		f.match.IndustryRelevance = types.Clamp01(f.match.IndustryRelevance)
		out = append(out, f.match)
	}

	Rank(out)
	return out
}

// Rank sorts matches by rank score, best first, keeping the relative order of ties.
func Rank(matches []types.SkillMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RankScore() > matches[j].RankScore()
	})
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func appendNew(dst []string, seen map[string]bool, values []string) []string {
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		dst = append(dst, v)
	}
	return dst
}
