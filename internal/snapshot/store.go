// Package snapshot holds the process-wide project snapshot that every
// analysis call overwrites and the status endpoint reads.
package snapshot

import (
	"sync"
	"time"

	"lumina/internal/analysis"
)

// Snapshot is the latest project-level view.
type Snapshot struct {
	Health          int             `json:"global_health"`
	Security        int             `json:"security_score"`
	Maintainability int             `json:"maintainability_score"`
	IssuesOpen      int             `json:"issues_open"`
	IssuesFixed     int             `json:"issues_fixed"`
	Complexity      string          `json:"complexity"`
	GraphNodes      []analysis.Node `json:"graph_nodes"`
	GraphLinks      []analysis.Link `json:"graph_links"`
}

// Defaults seeds a store at process start.
type Defaults struct {
	Health          int
	Security        int
	Maintainability int
	IssuesOpen      int
	IssuesFixed     int
	Complexity      string
}

// DefaultDefaults returns the builtin start-up values.
func DefaultDefaults() Defaults {
	return Defaults{
		Health:          85,
		Security:        92,
		Maintainability: 78,
		IssuesOpen:      23,
		IssuesFixed:     142,
		Complexity:      analysis.LabelLinear,
	}
}

// Store guards a Snapshot. All writes replace it wholesale under one lock.
type Store struct {
	mu        sync.RWMutex
	current   Snapshot
	updatedAt time.Time
	revision  uint64
}

// NewStore creates a store seeded with d. The graph starts as the
// placeholder node so readers never see an empty graph.
func NewStore(d Defaults) *Store {
	nodes, links := analysis.FallbackGraph()
	return &Store{
		current: Snapshot{
			Health:          d.Health,
			Security:        d.Security,
			Maintainability: d.Maintainability,
			IssuesOpen:      d.IssuesOpen,
			IssuesFixed:     d.IssuesFixed,
			Complexity:      d.Complexity,
			GraphNodes:      nodes,
			GraphLinks:      links,
		},
	}
}

// Apply overwrites scores, issue count, complexity label and graph with the
// values from res. IssuesFixed keeps its baseline.
func (s *Store) Apply(res *analysis.Result) Snapshot {
	nodes, links := res.Nodes, res.Links
	if len(nodes) == 0 {
		nodes, links = analysis.FallbackGraph()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Snapshot{
		Health:          res.Scores.Health,
		Security:        res.Scores.Security,
		Maintainability: res.Scores.Maintainability,
		IssuesOpen:      res.IssuesOpen(),
		IssuesFixed:     s.current.IssuesFixed,
		Complexity:      res.Complexity.Label,
		GraphNodes:      cloneNodes(nodes),
		GraphLinks:      cloneLinks(links),
	}
	s.updatedAt = time.Now().UTC()
	s.revision++

	return s.current.clone()
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Revision returns how many times the snapshot has been replaced and when
// the last replacement happened. The time is zero before the first Apply.
func (s *Store) Revision() (uint64, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision, s.updatedAt
}

func (sn Snapshot) clone() Snapshot {
	sn.GraphNodes = cloneNodes(sn.GraphNodes)
	sn.GraphLinks = cloneLinks(sn.GraphLinks)
	return sn
}

func cloneNodes(in []analysis.Node) []analysis.Node {
	out := make([]analysis.Node, len(in))
	copy(out, in)
	return out
}

func cloneLinks(in []analysis.Link) []analysis.Link {
	out := make([]analysis.Link, len(in))
	copy(out, in)
	return out
}
