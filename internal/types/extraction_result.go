//nolint:revive // types is a standard Go package name pattern
package types

// SkillCluster is a known compound skill stack detected in a match set.
type SkillCluster struct {
	ClusterName       string      `json:"cluster_name"`
	ClusterType       ClusterType `json:"cluster_type"`
	Skills            []string    `json:"skills"`
	RequiredSkills    []string    `json:"required_skills"`
	CompletenessScore float64     `json:"completeness_score"`
}

// SourceCounts records how many candidates each signal source produced.
type SourceCounts struct {
	Pattern  int `json:"pattern"`
	AI       int `json:"ai"`
	Ontology int `json:"ontology"`
}

// ExtractionMetadata describes how a result was produced.
type ExtractionMetadata struct {
	RequestID        string       `json:"request_id"`
	EngineVersion    string       `json:"engine_version"`
	KnowledgeVersion string       `json:"knowledge_version"`
	Industry         Industry     `json:"industry"`
	TokenCount       int          `json:"token_count"`
	TechnicalDensity float64      `json:"technical_density"`
	ProcessingTimeMS int64        `json:"processing_time_ms"`
	AISignal         bool         `json:"ai_signal"`
	SourceCounts     SourceCounts `json:"source_counts"`
}

// ExtractionResult is the aggregate output of one extraction call.
// Matches are unique by NormalizedForm and ranked best first.
type ExtractionResult struct {
	Matches               []SkillMatch       `json:"matches"`
	SkillClusters         []SkillCluster     `json:"skill_clusters"`
	MissingCriticalSkills []string           `json:"missing_critical_skills"`
	EmergingSkills        []string           `json:"emerging_skills"`
	ConfidenceScore       float64            `json:"confidence_score"`
	Metadata              ExtractionMetadata `json:"metadata"`
}

// MeanConfidence returns the mean confidence of the matches, or 0 when empty.
func MeanConfidence(matches []SkillMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	total := 0.0
	for i := range matches {
		total += matches[i].ConfidenceScore
	}
	return Clamp01(total / float64(len(matches)))
}
