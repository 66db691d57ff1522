// Package schemas embeds the JSON Schema documents for knowledge files and
// extraction results.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Schema file names.
const (
	ExtractionResult = "extraction_result.schema.json"
	Ontology         = "ontology.schema.json"
	Trending         = "trending.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema.
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %q not found: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded schemas in lexical order.
func Names() []string {
	names, _ := fs.Glob(files, "*.schema.json")
	sort.Strings(names)
	return names
}
