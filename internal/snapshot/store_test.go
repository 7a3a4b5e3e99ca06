package snapshot

import (
	"fmt"
	"sync"
	"testing"

	"lumina/internal/analysis"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore(DefaultDefaults())
	got := s.Get()

	if got.Health != 85 || got.Security != 92 || got.Maintainability != 78 {
		t.Errorf("scores = %d/%d/%d, want 85/92/78", got.Health, got.Security, got.Maintainability)
	}
	if got.IssuesOpen != 23 || got.IssuesFixed != 142 {
		t.Errorf("issues = %d open %d fixed, want 23/142", got.IssuesOpen, got.IssuesFixed)
	}
	if got.Complexity != analysis.LabelLinear {
		t.Errorf("Complexity = %q, want %q", got.Complexity, analysis.LabelLinear)
	}
	if len(got.GraphNodes) != 1 || got.GraphNodes[0].ID != analysis.FallbackNodeID {
		t.Errorf("GraphNodes = %+v, want placeholder", got.GraphNodes)
	}
	if rev, at := s.Revision(); rev != 0 || !at.IsZero() {
		t.Errorf("Revision() = %d %v, want 0 and zero time", rev, at)
	}
}

func TestApply_Overwrites(t *testing.T) {
	s := NewStore(DefaultDefaults())

	first := analysis.Analyze(analysis.Request{Code: "private Database db;\ndef foo():", Filename: "app"})
	got := s.Apply(first)
	if got.Health != 90 || got.Security != 100 {
		t.Errorf("after first apply: health %d security %d, want 90/100", got.Health, got.Security)
	}
	if got.IssuesOpen != 1 {
		t.Errorf("IssuesOpen = %d, want 1", got.IssuesOpen)
	}
	if got.IssuesFixed != 142 {
		t.Errorf("IssuesFixed = %d, want baseline 142", got.IssuesFixed)
	}
	if len(got.GraphNodes) != 2 || len(got.GraphLinks) != 1 {
		t.Errorf("graph = %d nodes %d links, want 2/1", len(got.GraphNodes), len(got.GraphLinks))
	}

	// A clean second call replaces everything; nothing accumulates.
	second := analysis.Analyze(analysis.Request{Code: "", Filename: "app"})
	got = s.Apply(second)
	if got.IssuesOpen != 0 || got.Health != 100 {
		t.Errorf("after second apply: issues %d health %d, want 0/100", got.IssuesOpen, got.Health)
	}
	if len(got.GraphNodes) != 1 || got.GraphNodes[0].ID != analysis.FallbackNodeID {
		t.Errorf("GraphNodes = %+v, want placeholder", got.GraphNodes)
	}
	if len(got.GraphLinks) != 0 {
		t.Errorf("GraphLinks = %+v, want empty", got.GraphLinks)
	}
	if rev, _ := s.Revision(); rev != 2 {
		t.Errorf("revision = %d, want 2", rev)
	}
}

func TestApply_EmptyGraphFallsBack(t *testing.T) {
	s := NewStore(DefaultDefaults())
	got := s.Apply(&analysis.Result{Complexity: analysis.Complexity{Label: analysis.LabelConstant}})
	if len(got.GraphNodes) != 1 || got.GraphNodes[0].ID != analysis.FallbackNodeID {
		t.Errorf("GraphNodes = %+v, want placeholder", got.GraphNodes)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := NewStore(DefaultDefaults())
	snap := s.Get()
	snap.GraphNodes[0].ID = "mutated"

	if s.Get().GraphNodes[0].ID != analysis.FallbackNodeID {
		t.Error("mutating a returned snapshot changed the store")
	}
}

func TestIdenticalCallsYieldIdenticalSnapshots(t *testing.T) {
	req := analysis.Request{Code: "class Foo:\n    def bar(self):\n        if x: print(password)", Filename: "foo.py"}
	a := NewStore(DefaultDefaults()).Apply(analysis.Analyze(req))
	b := NewStore(DefaultDefaults()).Apply(analysis.Analyze(req))
	if fmt.Sprintf("%+v", a) != fmt.Sprintf("%+v", b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

// Readers must never observe scores from one call combined with the graph of
// another.
func TestApply_ConcurrentReadersSeeConsistentSnapshots(t *testing.T) {
	s := NewStore(DefaultDefaults())

	// Each request has a distinct filename and a distinct health score, so the
	// root node id identifies which call produced the snapshot.
	reqs := []analysis.Request{
		{Code: "def a():", Filename: "clean"},
		{Code: "def a():\nprivate Database db;", Filename: "god"},
		{Code: "def a():\nAWS_KEY", Filename: "secret"},
	}
	wantHealth := map[string]int{}
	for _, r := range reqs {
		res := analysis.Analyze(r)
		wantHealth[res.Nodes[0].ID] = res.Scores.Health
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Apply(analysis.Analyze(reqs[(i+w)%len(reqs)]))
			}
		}(w)
	}

	errs := make(chan string, 1)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				snap := s.Get()
				root := snap.GraphNodes[0].ID
				want, ok := wantHealth[root]
				if !ok {
					continue // start-up placeholder
				}
				if snap.Health != want {
					select {
					case errs <- fmt.Sprintf("root %q with health %d, want %d", root, snap.Health, want):
					default:
					}
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	if msg, ok := <-errs; ok {
		t.Error(msg)
	}
}
