package analysis

import (
	"testing"

	"github.com/tsgraph/tsg/pkg/tsg/graph"
)

func mustAddNode(t *testing.T, s *graph.Section, id string) {
	t.Helper()
	if err := s.AddNode(graph.Node{ID: id}); err != nil {
		t.Fatalf("AddNode(%s): %v", id, err)
	}
}

func mustAddEdge(t *testing.T, s *graph.Section, id, from, to string) {
	t.Helper()
	if err := s.AddEdge(graph.Edge{ID: id, Source: from, Sink: to}); err != nil {
		t.Fatalf("AddEdge(%s): %v", id, err)
	}
}

func linearSection(t *testing.T) *graph.Section {
	s := graph.New("g")
	mustAddNode(t, s, "n1")
	mustAddNode(t, s, "n2")
	mustAddNode(t, s, "n3")
	mustAddEdge(t, s, "e1", "n1", "n2")
	mustAddEdge(t, s, "e2", "n2", "n3")
	return s
}

func TestIsCyclicLinear(t *testing.T) {
	if IsCyclic(linearSection(t)) {
		t.Error("IsCyclic(linear) = true, want false")
	}
}

func TestIsCyclicCycle(t *testing.T) {
	s := linearSection(t)
	mustAddEdge(t, s, "e3", "n3", "n1")
	if !IsCyclic(s) {
		t.Error("IsCyclic(cycle) = false, want true")
	}
}

func TestIsConnected(t *testing.T) {
	s := linearSection(t)
	if !IsConnected(s) {
		t.Error("IsConnected(linear) = false, want true")
	}
	mustAddNode(t, s, "isolated")
	if IsConnected(s) {
		t.Error("IsConnected(with isolated node) = true, want false")
	}
}

func TestIsStronglyConnected(t *testing.T) {
	s := linearSection(t)
	if IsStronglyConnected(s) {
		t.Error("IsStronglyConnected(linear) = true, want false")
	}
	mustAddEdge(t, s, "e3", "n3", "n1")
	if !IsStronglyConnected(s) {
		t.Error("IsStronglyConnected(cycle back to n1) = false, want true")
	}
}

func TestIsBipartite(t *testing.T) {
	if !IsBipartite(linearSection(t)) {
		t.Error("IsBipartite(linear) = false, want true")
	}
	triangle := graph.New("g")
	mustAddNode(t, triangle, "n1")
	mustAddNode(t, triangle, "n2")
	mustAddNode(t, triangle, "n3")
	mustAddEdge(t, triangle, "e1", "n1", "n2")
	mustAddEdge(t, triangle, "e2", "n2", "n3")
	mustAddEdge(t, triangle, "e3", "n3", "n1")
	if IsBipartite(triangle) {
		t.Error("IsBipartite(odd cycle) = true, want false")
	}
}

// Scenario F: n1 branches to n2a/n2b, both merge back into n3.
func TestDetectBubbles(t *testing.T) {
	s := graph.New("g")
	mustAddNode(t, s, "n1")
	mustAddNode(t, s, "n2a")
	mustAddNode(t, s, "n2b")
	mustAddNode(t, s, "n3")
	mustAddEdge(t, s, "e1", "n1", "n2a")
	mustAddEdge(t, s, "e2", "n1", "n2b")
	mustAddEdge(t, s, "e3", "n2a", "n3")
	mustAddEdge(t, s, "e4", "n2b", "n3")

	bubbles := DetectBubbles(s)
	if len(bubbles) != 1 {
		t.Fatalf("len(bubbles) = %d, want 1: %+v", len(bubbles), bubbles)
	}
	b := bubbles[0]
	if b.Source != "n1" || b.Sink != "n3" {
		t.Errorf("bubble = %+v, want source n1 sink n3", b)
	}
	if len(b.Paths) != 2 {
		t.Errorf("len(b.Paths) = %d, want 2", len(b.Paths))
	}

	if got := ClassifyTopology(s); got != TopologyBubble {
		t.Errorf("ClassifyTopology = %q, want %q", got, TopologyBubble)
	}
}

func TestClassifyTopologyLinearAndFade(t *testing.T) {
	if got := ClassifyTopology(linearSection(t)); got != TopologyLinear {
		t.Errorf("ClassifyTopology(linear) = %q, want %q", got, TopologyLinear)
	}

	fadeIn := graph.New("g")
	mustAddNode(t, fadeIn, "n1")
	mustAddNode(t, fadeIn, "n2")
	mustAddNode(t, fadeIn, "n3")
	mustAddEdge(t, fadeIn, "e1", "n1", "n3")
	mustAddEdge(t, fadeIn, "e2", "n2", "n3")
	if got := ClassifyTopology(fadeIn); got != TopologyFadeIn {
		t.Errorf("ClassifyTopology(fade_in shape) = %q, want %q", got, TopologyFadeIn)
	}
	if !MatchesTopology(fadeIn, TopologyFadeIn) {
		t.Error("MatchesTopology(fadeIn, TopologyFadeIn) = false, want true")
	}
}

func TestSummarize(t *testing.T) {
	s := linearSection(t)
	sum := Summarize(s)
	if sum.Nodes != 3 || sum.Edges != 2 || sum.Sources != 1 || sum.Sinks != 1 || sum.ConnectedComponents != 1 {
		t.Errorf("Summarize = %+v", sum)
	}
}
