package trending

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/skill-extractor/internal/types"
)

//go:embed default_trending.json
var defaultTrendingJSON []byte

// File is the on-disk trending format. Industry keys are free-text labels
// resolved with types.ParseIndustry.
type File struct {
	Version    string             `json:"version"`
	Industries map[string][]Skill `json:"industries"`
}

// Parse decodes a trending file and builds the Table. Industry keys that do
// not map to a known industry are rejected.
func Parse(data []byte) (*Table, error) {
	var raw File
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Message: "failed to parse trending JSON", Cause: err}
	}

	industries := make(map[types.Industry][]Skill, len(raw.Industries))
	for label, skills := range raw.Industries {
		industry := types.ParseIndustry(label)
		if industry == types.IndustryUnknown {
			return nil, &LoadError{Message: fmt.Sprintf("unknown industry %q", label)}
		}
		industries[industry] = append(industries[industry], skills...)
	}
	return New(raw.Version, industries)
}

// LoadFile reads and parses a trending file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trending file %s: %w", path, err)
	}
	return Parse(data)
}

// DefaultJSON returns the embedded trending document.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultTrendingJSON...)
}

// Default builds the embedded trending table.
func Default() (*Table, error) {
	return Parse(defaultTrendingJSON)
}

// MustDefault is like Default but panics on error.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load default trending table: %v", err))
	}
	return t
}
