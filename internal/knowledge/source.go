package knowledge

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/patterns"
	"github.com/jonathan/skill-extractor/internal/trending"
	"github.com/jonathan/skill-extractor/internal/types"
)

// Source produces fresh snapshots.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Snapshot, error)
}

// FileSource loads knowledge from JSON files. Empty paths fall back to the
// embedded data.
type FileSource struct {
	OntologyFile string
	TrendingFile string
	Rules        *patterns.Extractor
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file"
}

// Load implements Source.
func (s *FileSource) Load(_ context.Context) (*Snapshot, error) {
	var onto *ontology.Ontology
	var err error
	if s.OntologyFile != "" {
		onto, err = ontology.LoadFile(s.OntologyFile)
	} else {
		onto, err = ontology.Default()
	}
	if err != nil {
		return nil, err
	}

	var trend *trending.Table
	if s.TrendingFile != "" {
		trend, err = trending.LoadFile(s.TrendingFile)
	} else {
		trend, err = trending.Default()
	}
	if err != nil {
		return nil, err
	}

	rules := s.Rules
	if rules == nil {
		if rules, err = patterns.Default(); err != nil {
			return nil, err
		}
	}
	return Build("", onto, rules, trend)
}

// Querier is the read-only database surface DBSource needs.
type Querier interface {
	LoadSkillNodes(ctx context.Context) ([]ontology.SkillNode, error)
	LoadCompoundSkills(ctx context.Context) (map[string][]string, error)
	LoadTrendingSkills(ctx context.Context) (map[types.Industry][]trending.Skill, error)
}

// DBSource loads knowledge from the database. The snapshot version is a
// digest of the loaded rows, so an unchanged database yields the same version.
type DBSource struct {
	DB    Querier
	Rules *patterns.Extractor
}

// Name implements Source.
func (s *DBSource) Name() string {
	return "postgres"
}

// Load implements Source.
func (s *DBSource) Load(ctx context.Context) (*Snapshot, error) {
	nodes, err := s.DB.LoadSkillNodes(ctx)
	if err != nil {
		return nil, err
	}
	compounds, err := s.DB.LoadCompoundSkills(ctx)
	if err != nil {
		return nil, err
	}
	trendingRows, err := s.DB.LoadTrendingSkills(ctx)
	if err != nil {
		return nil, err
	}

	version, err := digest(nodes, compounds, trendingRows)
	if err != nil {
		return nil, err
	}

	onto, err := ontology.New(version, nodes, compounds)
	if err != nil {
		return nil, err
	}
	trend, err := trending.New(version, trendingRows)
	if err != nil {
		return nil, err
	}

	rules := s.Rules
	if rules == nil {
		if rules, err = patterns.Default(); err != nil {
			return nil, err
		}
	}
	return Build(version, onto, rules, trend)
}

// digest hashes the loaded rows. encoding/json sorts map keys, so equal
// data always produces the same digest.
func digest(parts ...any) (string, error) {
	h := sha256.New()
	for _, p := range parts {
		data, err := json.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("failed to hash knowledge rows: %w", err)
		}
		h.Write(data)
	}
	return fmt.Sprintf("db-%x", h.Sum(nil)[:6]), nil
}
