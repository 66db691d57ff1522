package patterns

import (
	"regexp"
	"strconv"

	"github.com/jonathan/skill-extractor/internal/parsing"
	"github.com/jonathan/skill-extractor/internal/types"
)

// maxExperienceYears rejects implausible captures such as calendar years.
const maxExperienceYears = 60

// levelRules are checked in order; the first hit wins.
var levelRules = []struct {
	re    *regexp.Regexp
	level types.SkillLevel
}{
	{regexp.MustCompile(`\bexpert\b`), types.LevelExpert},
	{regexp.MustCompile(`\b(?:advanced|senior|lead)\b`), types.LevelAdvanced},
	{regexp.MustCompile(`\b(?:intermediate|proficient)\b`), types.LevelIntermediate},
	{regexp.MustCompile(`\b(?:beginner|basic)\b`), types.LevelBeginner},
}

var yearsRules = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:experience|exp)\s+(?:in|with)\b`),
	regexp.MustCompile(`\b(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:experience|exp)\b`),
	regexp.MustCompile(`\b(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:working\s+with|using)\b`),
}

// InferLevel scans the ±30 character window around a mention for level words.
func InferLevel(text string, start, end int) types.SkillLevel {
	window := parsing.Window(text, start, end, levelRadius)
	for _, rule := range levelRules {
		if rule.re.MatchString(window) {
			return rule.level
		}
	}
	return types.LevelUnknown
}

// InferYears returns the first experience-years capture in the ±50 character
// window around a mention, or nil.
func InferYears(text string, start, end int) *int {
	window := parsing.Window(text, start, end, contextRadius)
	for _, re := range yearsRules {
		m := re.FindStringSubmatch(window)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil || years > maxExperienceYears {
			continue
		}
		return &years
	}
	return nil
}
