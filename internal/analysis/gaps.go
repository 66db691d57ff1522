package analysis

import (
	"sort"

	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/trending"
	"github.com/jonathan/skill-extractor/internal/types"
)

// Thresholds for gap and trend analysis.
const (
	CriticalDemandLevel = 0.7
	EmergingTrendScore  = 0.8
	EmergingGrowthRate  = 0.7

	MaxMissingSkills = 10
)

// Gaps holds the skills a profile lacks and the forward-looking skills it has.
type Gaps struct {
	Missing  []string
	Emerging []string
}

// FindGaps compares the final matches against the industry's trending skills
// and the skills found in the job description.
//
// Missing skills are trending skills in high demand plus job description
// skills, when absent from matches; the list is sorted and capped at
// MaxMissingSkills. Emerging skills are present trending skills with a high
// trend score and growth rate, in table order.
func FindGaps(onto *ontology.Ontology, matches []types.SkillMatch, trend []trending.Skill, jobSkills []string) Gaps {
	present := make(map[string]bool, len(matches))
	for i := range matches {
		present[matches[i].NormalizedForm] = true
	}

	missing := make(map[string]bool)
	emerging := make(map[string]bool)
	gaps := Gaps{Missing: []string{}, Emerging: []string{}}

	for _, skill := range trend {
		key := onto.NormalizedForm(skill.Name)
		if key == "" {
			continue
		}
		if present[key] {
			if skill.TrendScore > EmergingTrendScore && skill.GrowthRate > EmergingGrowthRate && !emerging[key] {
				emerging[key] = true
				gaps.Emerging = append(gaps.Emerging, key)
			}
			continue
		}
		if skill.DemandLevel > CriticalDemandLevel {
			missing[key] = true
		}
	}

	for _, skill := range jobSkills {
		key := onto.NormalizedForm(skill)
		if key != "" && !present[key] {
			missing[key] = true
		}
	}

	for key := range missing {
		gaps.Missing = append(gaps.Missing, key)
	}
	sort.Strings(gaps.Missing)
	if len(gaps.Missing) > MaxMissingSkills {
		gaps.Missing = gaps.Missing[:MaxMissingSkills]
	}
	return gaps
}
