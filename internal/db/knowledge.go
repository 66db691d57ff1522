package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/trending"
	"github.com/jonathan/skill-extractor/internal/types"
)

// LoadSkillNodes returns every row of skill_nodes ordered by name
func (db *DB) LoadSkillNodes(ctx context.Context) ([]ontology.SkillNode, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, category, synonyms, prerequisites, related_skills,
		        industry_relevance, difficulty_level, market_demand
		 FROM skill_nodes ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill nodes: %w", err)
	}
	defer rows.Close()

	var nodes []ontology.SkillNode
	for rows.Next() {
		var n ontology.SkillNode
		var relevance []byte
		if err := rows.Scan(&n.Name, &n.Category, &n.Synonyms, &n.Prerequisites, &n.RelatedSkills,
			&relevance, &n.DifficultyLevel, &n.MarketDemand); err != nil {
			return nil, fmt.Errorf("failed to scan skill node: %w", err)
		}
		n.IndustryRelevance, err = decodeRelevance(relevance)
		if err != nil {
			return nil, fmt.Errorf("skill node %q: %w", n.Name, err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill nodes: %w", err)
	}
	return nodes, nil
}

// LoadCompoundSkills returns the compound skill table keyed by cluster name
func (db *DB) LoadCompoundSkills(ctx context.Context) (map[string][]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT cluster_name, skill_name FROM compound_skills ORDER BY cluster_name, skill_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query compound skills: %w", err)
	}
	defer rows.Close()

	compounds := make(map[string][]string)
	for rows.Next() {
		var cluster, skill string
		if err := rows.Scan(&cluster, &skill); err != nil {
			return nil, fmt.Errorf("failed to scan compound skill: %w", err)
		}
		compounds[cluster] = append(compounds[cluster], skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read compound skills: %w", err)
	}
	return compounds, nil
}

// LoadTrendingSkills returns trending_skills grouped by industry.
// Rows whose industry label does not map to a known industry are an error.
func (db *DB) LoadTrendingSkills(ctx context.Context) (map[types.Industry][]trending.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT industry, name, trend_score, growth_rate, demand_level
		 FROM trending_skills ORDER BY industry, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending skills: %w", err)
	}
	defer rows.Close()

	out := make(map[types.Industry][]trending.Skill)
	for rows.Next() {
		var label string
		var s trending.Skill
		if err := rows.Scan(&label, &s.Name, &s.TrendScore, &s.GrowthRate, &s.DemandLevel); err != nil {
			return nil, fmt.Errorf("failed to scan trending skill: %w", err)
		}
		industry := types.ParseIndustry(label)
		if industry == types.IndustryUnknown {
			return nil, fmt.Errorf("trending skill %q has unknown industry %q", s.Name, label)
		}
		out[industry] = append(out[industry], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trending skills: %w", err)
	}
	return out, nil
}

// decodeRelevance parses the industry_relevance jsonb column.
// NULL or empty values yield a nil map.
func decodeRelevance(data []byte) (map[types.Industry]float64, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid industry_relevance: %w", err)
	}
	out := make(map[types.Industry]float64, len(raw))
	for label, v := range raw {
		industry := types.ParseIndustry(label)
		if industry == types.IndustryUnknown {
			return nil, fmt.Errorf("invalid industry_relevance: unknown industry %q", label)
		}
		out[industry] = v
	}
	return out, nil
}
