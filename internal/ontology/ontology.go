// Package ontology holds the read-only graph of known skills and the compound
// skill stacks built from them.
package ontology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/types"
)

// DefaultIndustryRelevance is returned when a node has no relevance entry for an industry.
const DefaultIndustryRelevance = 0.5

// SkillNode is one known skill.
type SkillNode struct {
	Name              string                     `json:"name" validate:"required"`
	Category          string                     `json:"category" validate:"required"`
	Synonyms          []string                   `json:"synonyms,omitempty"`
	Prerequisites     []string                   `json:"prerequisites,omitempty"`
	RelatedSkills     []string                   `json:"related_skills,omitempty"`
	IndustryRelevance map[types.Industry]float64 `json:"industry_relevance,omitempty" validate:"dive,gte=0,lte=1"`
	DifficultyLevel   float64                    `json:"difficulty_level" validate:"gte=0,lte=1"`
	MarketDemand      float64                    `json:"market_demand" validate:"gte=0,lte=1"`
}

// Terms returns the node name followed by its synonyms.
func (n *SkillNode) Terms() []string {
	return append([]string{n.Name}, n.Synonyms...)
}

// Compound is a named skill stack and the skills it requires.
type Compound struct {
	Name     string
	Required []string
}

// Ontology is an immutable lookup table of skills keyed by normalized name.
// All methods are safe for concurrent use.
type Ontology struct {
	version   string
	nodes     map[string]*SkillNode
	names     []string
	synonyms  map[string]string // normalized synonym -> node name
	compounds []Compound
}

var validate = validator.New()

// New validates the nodes and compound table and builds an Ontology.
// Node names and synonyms are normalized with parsing.NormalizeText.
// When two nodes claim the same synonym, the node whose name sorts first keeps it.
func New(version string, nodes []SkillNode, compounds map[string][]string) (*Ontology, error) {
	o := &Ontology{
		version:  version,
		nodes:    make(map[string]*SkillNode, len(nodes)),
		synonyms: make(map[string]string),
	}

	for i := range nodes {
		if err := validate.Struct(&nodes[i]); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("invalid skill node %d (%q)", i, nodes[i].Name), Cause: err}
		}

		node := normalizeNode(nodes[i])
		if node.Name == "" {
			return nil, &LoadError{Message: fmt.Sprintf("skill node %d has an empty name", i)}
		}
		if _, exists := o.nodes[node.Name]; exists {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate skill node %q", node.Name)}
		}
		o.nodes[node.Name] = node
		o.names = append(o.names, node.Name)
	}
	sort.Strings(o.names)

	for _, name := range o.names {
		for _, syn := range o.nodes[name].Synonyms {
			if _, taken := o.synonyms[syn]; !taken {
				o.synonyms[syn] = name
			}
		}
	}

	clusterNames := make([]string, 0, len(compounds))
	for name := range compounds {
		clusterNames = append(clusterNames, name)
	}
	sort.Strings(clusterNames)

	for _, name := range clusterNames {
		if strings.TrimSpace(name) == "" {
			return nil, &LoadError{Message: "compound skill with an empty cluster name"}
		}
		required := compounds[name]
		if len(required) == 0 {
			return nil, &LoadError{Message: fmt.Sprintf("compound skill %q requires no skills", name)}
		}
		normalized := make([]string, 0, len(required))
		for _, skill := range required {
			skill = parsing.NormalizeText(skill)
			if skill == "" {
				return nil, &LoadError{Message: fmt.Sprintf("compound skill %q has an empty skill name", name)}
			}
			normalized = append(normalized, skill)
		}
		o.compounds = append(o.compounds, Compound{Name: name, Required: normalized})
	}

	return o, nil
}

// normalizeNode returns a copy of the node with normalized, deduplicated and
// sorted name lists. Synonyms never contain the node name itself.
func normalizeNode(n SkillNode) *SkillNode {
	out := n
	out.Name = parsing.NormalizeText(n.Name)
	out.Synonyms = normalizeSet(n.Synonyms, out.Name)
	out.Prerequisites = normalizeSet(n.Prerequisites, out.Name)
	out.RelatedSkills = normalizeSet(n.RelatedSkills, out.Name)
	if n.IndustryRelevance != nil {
		out.IndustryRelevance = make(map[types.Industry]float64, len(n.IndustryRelevance))
		for k, v := range n.IndustryRelevance {
			out.IndustryRelevance[k] = v
		}
	}
	return &out
}

func normalizeSet(values []string, exclude string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = parsing.NormalizeText(v)
		if v == "" || v == exclude || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Version identifies the data the ontology was built from.
func (o *Ontology) Version() string {
	return o.version
}

// Len returns the number of skill nodes.
func (o *Ontology) Len() int {
	return len(o.nodes)
}

// Nodes returns the skill nodes ordered by name. The nodes must not be modified.
func (o *Ontology) Nodes() []*SkillNode {
	out := make([]*SkillNode, 0, len(o.names))
	for _, name := range o.names {
		out = append(out, o.nodes[name])
	}
	return out
}

// Node looks up a skill by name or synonym.
func (o *Ontology) Node(name string) (*SkillNode, bool) {
	key := o.resolve(parsing.NormalizeText(name))
	if key == "" {
		return nil, false
	}
	return o.nodes[key], true
}

// IsKnown reports whether name is a skill name or synonym.
func (o *Ontology) IsKnown(name string) bool {
	_, ok := o.Node(name)
	return ok
}

// SynonymsOf returns the synonyms of a known skill, or nil.
func (o *Ontology) SynonymsOf(name string) []string {
	node, ok := o.Node(name)
	if !ok || len(node.Synonyms) == 0 {
		return nil
	}
	return append([]string(nil), node.Synonyms...)
}

// IndustryRelevance returns how relevant a skill is to an industry, or
// DefaultIndustryRelevance when either is unknown.
func (o *Ontology) IndustryRelevance(name string, industry types.Industry) float64 {
	node, ok := o.Node(name)
	if !ok {
		return DefaultIndustryRelevance
	}
	if v, ok := node.IndustryRelevance[industry]; ok {
		return v
	}
	return DefaultIndustryRelevance
}

// Compounds returns the compound skill table ordered by cluster name.
func (o *Ontology) Compounds() []Compound {
	out := make([]Compound, len(o.compounds))
	for i, c := range o.compounds {
		out[i] = Compound{Name: c.Name, Required: append([]string(nil), c.Required...)}
	}
	return out
}

// NormalizedForm returns the dedup identity of a keyword: the node name when
// the keyword is a known skill or synonym, otherwise the stemmed phrase.
func (o *Ontology) NormalizedForm(keyword string) string {
	text := parsing.NormalizeText(keyword)
	if key := o.resolve(text); key != "" {
		return key
	}
	return parsing.StemPhrase(text)
}

func (o *Ontology) resolve(text string) string {
	if text == "" {
		return ""
	}
	if _, ok := o.nodes[text]; ok {
		return text
	}
	return o.synonyms[text]
}
