// Package analysis derives skill clusters and skill gaps from a final match set.
package analysis

import (
	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/types"
)

// clusterTypes maps known compound skill names to their cluster type.
var clusterTypes = map[string]types.ClusterType{
	"full_stack":         types.ClusterWebDevelopment,
	"mern_stack":         types.ClusterWebDevelopment,
	"mean_stack":         types.ClusterWebDevelopment,
	"aws_cloud":          types.ClusterCloudPlatform,
	"azure_cloud":        types.ClusterCloudPlatform,
	"gcp_cloud":          types.ClusterCloudPlatform,
	"data_science":       types.ClusterDataScience,
	"machine_learning":   types.ClusterDataScience,
	"devops":             types.ClusterDevOps,
	"mobile_development": types.ClusterMobileStack,
	"database_admin":     types.ClusterDatabase,
	"security":           types.ClusterSecurityStack,
}

// ClusterTypeFor returns the cluster type of a compound skill name.
// Unrecognized names are technical stacks.
func ClusterTypeFor(name string) types.ClusterType {
	if t, ok := clusterTypes[name]; ok {
		return t
	}
	return types.ClusterTechnicalStack
}

// Clusters reports every compound skill of the ontology with at least one
// required skill present in matches. A required skill is present when its
// normalized form equals a match's normalized form; synonyms do not count
// unless they resolve to the same ontology node.
//
// Completeness is the fraction of required skills found multiplied by the
// mean confidence of the found skills.
func Clusters(onto *ontology.Ontology, matches []types.SkillMatch) []types.SkillCluster {
	confidence := make(map[string]float64, len(matches))
	for i := range matches {
		confidence[matches[i].NormalizedForm] = matches[i].ConfidenceScore
	}

	clusters := []types.SkillCluster{}
	for _, compound := range onto.Compounds() {
		var found []string
		total := 0.0
		seen := make(map[string]bool, len(compound.Required))
		for _, skill := range compound.Required {
			key := onto.NormalizedForm(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
			if conf, ok := confidence[key]; ok {
				found = append(found, skill)
				total += conf
			}
		}
		if len(found) == 0 {
			continue
		}

		ratio := float64(len(found)) / float64(len(seen))
		mean := total / float64(len(found))
		clusters = append(clusters, types.SkillCluster{
			ClusterName:       compound.Name,
			ClusterType:       ClusterTypeFor(compound.Name),
			Skills:            found,
			RequiredSkills:    compound.Required,
			CompletenessScore: types.Clamp01(ratio * mean),
		})
	}
	return clusters
}
