//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/skill-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect(context.Background(), dsn)
	require.NoError(t, err, "failed to connect to test database")

	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS skill_nodes (
			name text PRIMARY KEY, category text NOT NULL,
			synonyms text[], prerequisites text[], related_skills text[],
			industry_relevance jsonb, difficulty_level double precision NOT NULL DEFAULT 0,
			market_demand double precision NOT NULL DEFAULT 0)`,
		`CREATE TABLE IF NOT EXISTS compound_skills (cluster_name text NOT NULL, skill_name text NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS trending_skills (
			industry text NOT NULL, name text NOT NULL, trend_score double precision NOT NULL,
			growth_rate double precision NOT NULL, demand_level double precision NOT NULL)`,
		`DELETE FROM skill_nodes WHERE name LIKE 'itest_%'`,
		`DELETE FROM compound_skills WHERE cluster_name LIKE 'itest_%'`,
		`DELETE FROM trending_skills WHERE name LIKE 'itest_%'`,
	} {
		_, err := db.pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	return db
}

func TestIntegration_LoadKnowledge(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	_, err := db.pool.Exec(ctx,
		`INSERT INTO skill_nodes (name, category, synonyms, industry_relevance, difficulty_level, market_demand)
		 VALUES ('itest_go', 'programming_language', ARRAY['itest_golang'], '{"technology": 0.9}', 0.4, 0.8)`)
	require.NoError(t, err)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO compound_skills (cluster_name, skill_name) VALUES ('itest_stack', 'itest_go'), ('itest_stack', 'itest_docker')`)
	require.NoError(t, err)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO trending_skills (industry, name, trend_score, growth_rate, demand_level)
		 VALUES ('technology', 'itest_go', 0.9, 0.8, 0.75)`)
	require.NoError(t, err)

	t.Run("skill nodes", func(t *testing.T) {
		nodes, err := db.LoadSkillNodes(ctx)
		require.NoError(t, err)

		var found bool
		for _, n := range nodes {
			if n.Name == "itest_go" {
				found = true
				assert.Equal(t, []string{"itest_golang"}, n.Synonyms)
				assert.Equal(t, 0.9, n.IndustryRelevance[types.IndustryTechnology])
			}
		}
		assert.True(t, found)
	})

	t.Run("compound skills", func(t *testing.T) {
		compounds, err := db.LoadCompoundSkills(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"itest_docker", "itest_go"}, compounds["itest_stack"])
	})

	t.Run("trending skills", func(t *testing.T) {
		skills, err := db.LoadTrendingSkills(ctx)
		require.NoError(t, err)

		var found bool
		for _, s := range skills[types.IndustryTechnology] {
			if s.Name == "itest_go" {
				found = true
				assert.Equal(t, 0.75, s.DemandLevel)
			}
		}
		assert.True(t, found)
	})
}
