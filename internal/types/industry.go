//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Industry keys pattern-rule sets and trending-skill tables.
type Industry int

// Supported industries. Unknown covers every label that could not be mapped.
const (
	IndustryUnknown Industry = iota
	IndustryTechnology
	IndustryFinance
	IndustryHealthcare
	IndustryMarketing
)

var industryNames = [...]string{
	IndustryUnknown:    "unknown",
	IndustryTechnology: "technology",
	IndustryFinance:    "finance",
	IndustryHealthcare: "healthcare",
	IndustryMarketing:  "marketing",
}

// industryAliases maps free-text labels to an industry
var industryAliases = map[string]Industry{
	"technology":             IndustryTechnology,
	"tech":                   IndustryTechnology,
	"software":               IndustryTechnology,
	"it":                     IndustryTechnology,
	"information technology": IndustryTechnology,
	"finance":                IndustryFinance,
	"financial":              IndustryFinance,
	"banking":                IndustryFinance,
	"fintech":                IndustryFinance,
	"healthcare":             IndustryHealthcare,
	"health":                 IndustryHealthcare,
	"medical":                IndustryHealthcare,
	"marketing":              IndustryMarketing,
	"advertising":            IndustryMarketing,
	"digital marketing":      IndustryMarketing,
}

// ParseIndustry maps a free-text industry label to an Industry.
// Matching ignores case and surrounding/repeated whitespace; labels that
// cannot be mapped return IndustryUnknown.
func ParseIndustry(label string) Industry {
	key := strings.Join(strings.Fields(strings.ToLower(label)), " ")
	if industry, ok := industryAliases[key]; ok {
		return industry
	}
	return IndustryUnknown
}

// KnownIndustries returns every industry except Unknown, in declaration order.
func KnownIndustries() []Industry {
	return []Industry{IndustryTechnology, IndustryFinance, IndustryHealthcare, IndustryMarketing}
}

func (i Industry) String() string {
	if i < 0 || int(i) >= len(industryNames) {
		return fmt.Sprintf("Industry(%d)", int(i))
	}
	return industryNames[i]
}

// MarshalText implements encoding.TextMarshaler.
func (i Industry) MarshalText() ([]byte, error) {
	if i < 0 || int(i) >= len(industryNames) {
		return nil, fmt.Errorf("invalid industry %d", int(i))
	}
	return []byte(industryNames[i]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseIndustry.
func (i *Industry) UnmarshalText(text []byte) error {
	*i = ParseIndustry(string(text))
	return nil
}
