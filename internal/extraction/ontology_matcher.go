package extraction

import (
	"strings"

	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/types"
)

const (
	ontologyConfidence = 0.75
	ontologyWeight     = 0.7
	ontologyContext    = 0.7

	phraseRadius = 50
)

// MatchOntology emits one Semantic match for every ontology node whose name
// or synonym is contained in the normalized text. Containment is plain
// substring search, so "java" also hits inside "javascript". The earliest
// occurrence across the node's terms is reported, the node name winning ties.
func MatchOntology(text string, industry types.Industry, onto *ontology.Ontology) []types.SkillMatch {
	if text == "" {
		return nil
	}

	var matches []types.SkillMatch
	for _, node := range onto.Nodes() {
		pos, term := -1, ""
		for _, t := range node.Terms() {
			if p := strings.Index(text, t); p >= 0 && (pos < 0 || p < pos) {
				pos, term = p, t
			}
		}
		if pos < 0 {
			continue
		}

		matches = append(matches, types.SkillMatch{
			Keyword:            text[pos : pos+len(term)],
			NormalizedForm:     node.Name,
			Category:           node.Category,
			ConfidenceScore:    ontologyConfidence,
			ContextRelevance:   ontologyContext,
			Weight:             ontologyWeight,
			MatchType:          types.MatchSemantic,
			ContextPhrases:     []string{strings.TrimSpace(parsing.Window(text, pos, pos+len(term), phraseRadius))},
			SemanticVariations: append([]string(nil), node.Synonyms...),
			IndustryRelevance:  onto.IndustryRelevance(node.Name, industry),
			WordPosition:       pos,
		})
	}
	return matches
}
