package patterns

import "github.com/jonathan/skill-extractor/internal/types"

// Rule is an uncompiled pattern rule. Pattern is a regular expression over
// normalized text; every match becomes a candidate keyword.
type Rule struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Pattern  string `json:"pattern" validate:"required"`
}

// RuleSet groups rules by industry.
type RuleSet map[types.Industry][]Rule

// Spellings are in normalized form: "node.js" has already become "nodejs".
var technologyRules = []Rule{
	{
		Name:     "languages",
		Category: "programming_language",
		Pattern:  `\b(?:python|java|javascript|typescript|golang|rust|ruby|php|scala|kotlin|swift|cplusplus|csharp|sql)\b`,
	},
	{
		Name:     "frameworks",
		Category: "framework",
		Pattern:  `\b(?:react native|react|reactjs|angular|angularjs|vue|vuejs|nextjs|nodejs|express|expressjs|django|flask|spring boot|spring|aspnet|flutter)\b`,
	},
	{
		Name:     "data_stores",
		Category: "database",
		Pattern:  `\b(?:postgresql|postgres|mysql|mongodb|redis|elasticsearch|cassandra|dynamodb)\b`,
	},
	{
		Name:     "cloud",
		Category: "cloud",
		Pattern:  `\b(?:aws|amazon web services|azure|gcp|google cloud)\b`,
	},
	{
		Name:     "devops",
		Category: "devops",
		Pattern:  `\b(?:docker|kubernetes|k8s|terraform|ansible|jenkins|cicd|git|linux)\b`,
	},
	{
		Name:     "data_science",
		Category: "data_science",
		Pattern:  `\b(?:machine learning|deep learning|tensorflow|pytorch|scikitlearn|pandas|numpy|spark|kafka)\b`,
	},
	{
		Name:     "architecture",
		Category: "architecture",
		Pattern:  `\b(?:microservices|rest api|restful api|graphql)\b`,
	},
}

var financeRules = []Rule{
	{
		Name:     "analysis",
		Category: "finance",
		Pattern:  `\b(?:financial modeling|financial modelling|valuation|risk management|quantitative analysis|accounting|portfolio management)\b`,
	},
	{
		Name:     "tools",
		Category: "tool",
		Pattern:  `\b(?:excel|vba|bloomberg terminal|bloomberg|tableau)\b`,
	},
	{
		Name:     "languages",
		Category: "programming_language",
		Pattern:  `\b(?:python|sql|matlab)\b`,
	},
}

var healthcareRules = []Rule{
	{
		Name:     "clinical",
		Category: "healthcare",
		Pattern:  `\b(?:patient care|clinical research|medical coding|icd-10|hipaa)\b`,
	},
	{
		Name:     "systems",
		Category: "healthcare",
		Pattern:  `\b(?:ehr|emr|electronic health records|epic systems|cerner)\b`,
	},
}

var marketingRules = []Rule{
	{
		Name:     "channels",
		Category: "marketing",
		Pattern:  `\b(?:seo|sem|content marketing|social media marketing|email marketing|ppc)\b`,
	},
	{
		Name:     "tools",
		Category: "tool",
		Pattern:  `\b(?:google analytics|hubspot|salesforce|google ads)\b`,
	},
}

// DefaultRules returns the built-in rule set.
func DefaultRules() RuleSet {
	return RuleSet{
		types.IndustryTechnology: append([]Rule(nil), technologyRules...),
		types.IndustryFinance:    append([]Rule(nil), financeRules...),
		types.IndustryHealthcare: append([]Rule(nil), healthcareRules...),
		types.IndustryMarketing:  append([]Rule(nil), marketingRules...),
	}
}
