// Package patterns implements the industry-keyed regular expression extractor
// that produces the highest-confidence skill candidates.
package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/types"
)

const (
	baseConfidence = 0.8
	baseWeight     = 0.9

	baseContextRelevance = 0.5
	triggerBoost         = 0.1
	maxContextRelevance  = 0.9

	contextRadius = 50
	levelRadius   = 30

	maxContextPhrases = 3
)

// triggerWords mark a technical context around a mention.
var triggerWords = []string{
	"experience", "proficient", "using", "developed", "built",
	"implemented", "designed", "skilled", "expertise", "worked",
}

type compiledRule struct {
	name     string
	category string
	re       *regexp.Regexp
}

// Extractor applies compiled rule sets. It is immutable and safe for concurrent use.
type Extractor struct {
	rules map[types.Industry][]compiledRule
}

var validate = validator.New()

// NewExtractor validates and compiles every rule. Rules for IndustryUnknown are rejected.
func NewExtractor(set RuleSet) (*Extractor, error) {
	e := &Extractor{rules: make(map[types.Industry][]compiledRule, len(set))}

	industries := make([]types.Industry, 0, len(set))
	for industry := range set {
		industries = append(industries, industry)
	}
	sort.Slice(industries, func(i, j int) bool { return industries[i] < industries[j] })

	for _, industry := range industries {
		if industry == types.IndustryUnknown {
			return nil, &RuleError{Industry: industry.String(), Message: "rules cannot be keyed by the unknown industry"}
		}
		seen := make(map[string]bool)
		for _, rule := range set[industry] {
			if err := validate.Struct(rule); err != nil {
				return nil, &RuleError{Industry: industry.String(), Rule: rule.Name, Message: "invalid rule", Cause: err}
			}
			if seen[rule.Name] {
				return nil, &RuleError{Industry: industry.String(), Rule: rule.Name, Message: "duplicate rule name"}
			}
			seen[rule.Name] = true

			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, &RuleError{Industry: industry.String(), Rule: rule.Name, Message: "pattern does not compile", Cause: err}
			}
			if re.MatchString("") {
				return nil, &RuleError{Industry: industry.String(), Rule: rule.Name, Message: "pattern matches the empty string"}
			}
			e.rules[industry] = append(e.rules[industry], compiledRule{name: rule.Name, category: rule.Category, re: re})
		}
	}

	return e, nil
}

// Default compiles DefaultRules.
func Default() (*Extractor, error) {
	return NewExtractor(DefaultRules())
}

// MustDefault is like Default but panics if the built-in rules are invalid.
func MustDefault() *Extractor {
	e, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to compile default pattern rules: %v", err))
	}
	return e
}

// HasRules reports whether any rule is registered for the industry.
func (e *Extractor) HasRules(industry types.Industry) bool {
	return len(e.rules[industry]) > 0
}

// RuleCount returns the number of compiled rules across all industries.
func (e *Extractor) RuleCount() int {
	n := 0
	for _, rules := range e.rules {
		n += len(rules)
	}
	return n
}

// Extract runs the industry's rules over normalized text. Repeated mentions
// of the same skill collapse into the first one, which collects up to three
// context phrases. An industry without rules yields nil.
func (e *Extractor) Extract(text string, industry types.Industry, onto *ontology.Ontology) []types.SkillMatch {
	rules := e.rules[industry]
	if len(rules) == 0 || text == "" {
		return nil
	}

	var matches []types.SkillMatch
	index := make(map[string]int)

	for _, rule := range rules {
		for _, loc := range rule.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			keyword := text[start:end]
			normalized := onto.NormalizedForm(keyword)
			phrase := strings.TrimSpace(parsing.Window(text, start, end, contextRadius))

			if i, ok := index[normalized]; ok {
				if len(matches[i].ContextPhrases) < maxContextPhrases {
					matches[i].ContextPhrases = append(matches[i].ContextPhrases, phrase)
				}
				continue
			}

			index[normalized] = len(matches)
			matches = append(matches, types.SkillMatch{
				Keyword:            keyword,
				NormalizedForm:     normalized,
				Category:           rule.category,
				ConfidenceScore:    baseConfidence,
				ContextRelevance:   ContextRelevance(text, start, end),
				Weight:             baseWeight,
				SkillLevel:         types.LevelPtr(InferLevel(text, start, end)),
				ExperienceYears:    InferYears(text, start, end),
				MatchType:          types.MatchExact,
				ContextPhrases:     []string{phrase},
				SemanticVariations: onto.SynonymsOf(normalized),
				IndustryRelevance:  onto.IndustryRelevance(normalized, industry),
				WordPosition:       start,
			})
		}
	}

	return matches
}

// ContextRelevance scores the ±50 character window around a mention by the
// number of trigger words it contains.
func ContextRelevance(text string, start, end int) float64 {
	window := parsing.Window(text, start, end, contextRadius)
	score := baseContextRelevance
	for _, word := range triggerWords {
		if strings.Contains(window, word) {
			score += triggerBoost
		}
	}
	if score > maxContextRelevance {
		score = maxContextRelevance
	}
	return score
}
