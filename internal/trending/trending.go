// Package trending holds per-industry market trend data for skills.
package trending

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/types"
)

// Skill is one trending-skill record.
type Skill struct {
	Name        string  `json:"name" validate:"required"`
	TrendScore  float64 `json:"trend_score" validate:"gte=0,lte=1"`
	GrowthRate  float64 `json:"growth_rate" validate:"gte=0,lte=1"`
	DemandLevel float64 `json:"demand_level" validate:"gte=0,lte=1"`
}

// Table is an immutable set of trending skills grouped by industry.
type Table struct {
	version    string
	industries map[types.Industry][]Skill
}

var validate = validator.New()

// New validates the records and builds a Table. Names are normalized and
// duplicates within one industry are rejected.
func New(version string, industries map[types.Industry][]Skill) (*Table, error) {
	t := &Table{version: version, industries: make(map[types.Industry][]Skill, len(industries))}

	for industry, skills := range industries {
		if industry == types.IndustryUnknown {
			return nil, &LoadError{Message: "trending skills cannot be keyed by the unknown industry"}
		}
		seen := make(map[string]bool, len(skills))
		out := make([]Skill, 0, len(skills))
		for i, s := range skills {
			if err := validate.Struct(s); err != nil {
				return nil, &LoadError{Message: fmt.Sprintf("invalid %s trending skill %d (%q)", industry, i, s.Name), Cause: err}
			}
			s.Name = parsing.NormalizeText(s.Name)
			if s.Name == "" {
				return nil, &LoadError{Message: fmt.Sprintf("%s trending skill %d has an empty name", industry, i)}
			}
			if seen[s.Name] {
				return nil, &LoadError{Message: fmt.Sprintf("duplicate %s trending skill %q", industry, s.Name)}
			}
			seen[s.Name] = true
			out = append(out, s)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		t.industries[industry] = out
	}

	return t, nil
}

// Empty returns a table with no data.
func Empty() *Table {
	return &Table{version: "empty", industries: map[types.Industry][]Skill{}}
}

// Version identifies the data the table was built from.
func (t *Table) Version() string {
	return t.version
}

// For returns a copy of the industry's skills ordered by name. Unknown
// industries return nil.
func (t *Table) For(industry types.Industry) []Skill {
	skills := t.industries[industry]
	if len(skills) == 0 {
		return nil
	}
	return append([]Skill(nil), skills...)
}

// Len returns the number of records across all industries.
func (t *Table) Len() int {
	n := 0
	for _, skills := range t.industries {
		n += len(skills)
	}
	return n
}
