package ontology

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed default_ontology.json
var defaultOntologyJSON []byte

// File is the on-disk ontology format.
type File struct {
	Version        string              `json:"version"`
	Skills         []SkillNode         `json:"skills"`
	CompoundSkills map[string][]string `json:"compound_skills"`
}

// Parse decodes an ontology file and builds the Ontology.
func Parse(data []byte) (*Ontology, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Message: "failed to parse ontology JSON", Cause: err}
	}
	if len(f.Skills) == 0 {
		return nil, &LoadError{Message: "ontology has no skills"}
	}
	return New(f.Version, f.Skills, f.CompoundSkills)
}

// LoadFile reads and parses an ontology file.
func LoadFile(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology file %s: %w", path, err)
	}
	return Parse(data)
}

// DefaultJSON returns the embedded ontology document.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultOntologyJSON...)
}

// Default builds the embedded ontology.
func Default() (*Ontology, error) {
	return Parse(defaultOntologyJSON)
}

// MustDefault is like Default but panics on error. The embedded data is
// covered by tests, so a panic here means the binary was built from bad data.
func MustDefault() *Ontology {
	o, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load default ontology: %v", err))
	}
	return o
}
