// Package types provides type definitions for structured data used throughout the skill extractor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// MatchType describes how a skill mention was discovered.
type MatchType int

// The seven match types. The zero value is Exact.
const (
	MatchExact MatchType = iota
	MatchSemantic
	MatchContextual
	MatchFuzzy
	MatchCompound
	MatchCertification
	MatchFramework
)

var matchTypeNames = [...]string{
	MatchExact:         "exact",
	MatchSemantic:      "semantic",
	MatchContextual:    "contextual",
	MatchFuzzy:         "fuzzy",
	MatchCompound:      "compound",
	MatchCertification: "certification",
	MatchFramework:     "framework",
}

func (m MatchType) String() string {
	if m < 0 || int(m) >= len(matchTypeNames) {
		return fmt.Sprintf("MatchType(%d)", int(m))
	}
	return matchTypeNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m MatchType) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(matchTypeNames) {
		return nil, fmt.Errorf("invalid match type %d", int(m))
	}
	return []byte(matchTypeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names are rejected.
func (m *MatchType) UnmarshalText(text []byte) error {
	for i, name := range matchTypeNames {
		if name == string(text) {
			*m = MatchType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown match type %q", string(text))
}

// SkillLevel is the proficiency inferred from the text surrounding a mention.
type SkillLevel int

// Skill levels. Unknown is used when a level was looked for but not found.
const (
	LevelUnknown SkillLevel = iota
	LevelBeginner
	LevelIntermediate
	LevelAdvanced
	LevelExpert
)

var skillLevelNames = [...]string{
	LevelUnknown:      "unknown",
	LevelBeginner:     "beginner",
	LevelIntermediate: "intermediate",
	LevelAdvanced:     "advanced",
	LevelExpert:       "expert",
}

func (l SkillLevel) String() string {
	if l < 0 || int(l) >= len(skillLevelNames) {
		return fmt.Sprintf("SkillLevel(%d)", int(l))
	}
	return skillLevelNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l SkillLevel) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(skillLevelNames) {
		return nil, fmt.Errorf("invalid skill level %d", int(l))
	}
	return []byte(skillLevelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *SkillLevel) UnmarshalText(text []byte) error {
	for i, name := range skillLevelNames {
		if name == string(text) {
			*l = SkillLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown skill level %q", string(text))
}

// ClusterType groups compound skill stacks.
type ClusterType int

// Cluster types. TechnicalStack is the fallback for unrecognized cluster names.
const (
	ClusterTechnicalStack ClusterType = iota
	ClusterCloudPlatform
	ClusterDataScience
	ClusterDevOps
	ClusterMobileStack
	ClusterWebDevelopment
	ClusterDatabase
	ClusterSecurityStack
)

var clusterTypeNames = [...]string{
	ClusterTechnicalStack: "technical_stack",
	ClusterCloudPlatform:  "cloud_platform",
	ClusterDataScience:    "data_science",
	ClusterDevOps:         "devops",
	ClusterMobileStack:    "mobile_stack",
	ClusterWebDevelopment: "web_development",
	ClusterDatabase:       "database_cluster",
	ClusterSecurityStack:  "security_stack",
}

func (c ClusterType) String() string {
	if c < 0 || int(c) >= len(clusterTypeNames) {
		return fmt.Sprintf("ClusterType(%d)", int(c))
	}
	return clusterTypeNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c ClusterType) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(clusterTypeNames) {
		return nil, fmt.Errorf("invalid cluster type %d", int(c))
	}
	return []byte(clusterTypeNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ClusterType) UnmarshalText(text []byte) error {
	for i, name := range clusterTypeNames {
		if name == string(text) {
			*c = ClusterType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cluster type %q", string(text))
}
