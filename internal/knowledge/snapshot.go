// Package knowledge bundles the ontology, pattern rules and trending table
// into versioned immutable snapshots and manages swapping them.
package knowledge

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/patterns"
	"github.com/jonathan/skill-extractor/internal/trending"
)

// Snapshot is one immutable generation of knowledge. It is never modified
// after Build returns, so concurrent extractions may share it freely.
type Snapshot struct {
	Version  string
	LoadedAt time.Time
	Ontology *ontology.Ontology
	Rules    *patterns.Extractor
	Trending *trending.Table
}

// Build assembles a snapshot. The version is derived from the ontology and
// trending versions when empty.
func Build(version string, onto *ontology.Ontology, rules *patterns.Extractor, trend *trending.Table) (*Snapshot, error) {
	if onto == nil {
		return nil, errors.New("knowledge snapshot requires an ontology")
	}
	if rules == nil {
		return nil, errors.New("knowledge snapshot requires pattern rules")
	}
	if trend == nil {
		trend = trending.Empty()
	}
	if version == "" {
		version = fmt.Sprintf("%s+%s", onto.Version(), trend.Version())
	}
	return &Snapshot{
		Version:  version,
		LoadedAt: time.Now().UTC(),
		Ontology: onto,
		Rules:    rules,
		Trending: trend,
	}, nil
}

// Default builds a snapshot from the embedded ontology, rules and trending data.
func Default() (*Snapshot, error) {
	onto, err := ontology.Default()
	if err != nil {
		return nil, err
	}
	rules, err := patterns.Default()
	if err != nil {
		return nil, err
	}
	trend, err := trending.Default()
	if err != nil {
		return nil, err
	}
	return Build("", onto, rules, trend)
}

// Store is a read-mostly handle to the current snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding the initial snapshot.
func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Load returns the current snapshot. Callers should load once per unit of work.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Swap installs next and returns the previous snapshot. A nil next is ignored.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		return s.current.Load()
	}
	return s.current.Swap(next)
}
