// Package analysis implements the structural analyzers a graph section
// exposes on top of its adjacency (spec §4.6): connectivity, cyclicity,
// bipartiteness, bubble detection, and topology classification.
package analysis

import (
	"sort"

	"github.com/tsgraph/tsg/pkg/tsg/graph"
)

// Topology is one of the classification tags a section can carry.
type Topology string

const (
	TopologyLinear     Topology = "linear"
	TopologyBranching  Topology = "branching"
	TopologyCyclic     Topology = "cyclic"
	TopologyBubble     Topology = "bubble"
	TopologyFadeIn     Topology = "fade_in"
	TopologyFadeOut    Topology = "fade_out"
	TopologyComplex    Topology = "complex"
)

// Summary tallies the structural counts spec §4.6 asks a section to report.
type Summary struct {
	Nodes              int
	Edges              int
	Chains             int
	Paths              int
	Sources            int
	Sinks              int
	ConnectedComponents int
}

// Summarize computes s's structural summary.
func Summarize(s *graph.Section) Summary {
	return Summary{
		Nodes:               len(s.NodeIDs()),
		Edges:               len(s.EdgeIDs()),
		Chains:              len(s.Chains()),
		Paths:               len(s.Paths()),
		Sources:             len(s.Sources()),
		Sinks:               len(s.Sinks()),
		ConnectedComponents: len(WeakComponents(s)),
	}
}

// IsCyclic reports whether s contains a directed cycle, using white/gray/
// black DFS coloring (grounded on the teacher's cycles.go).
func IsCyclic(s *graph.Section) bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(s.NodeIDs()))
	var cyclic bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range s.Successors(id) {
			switch color[child] {
			case white:
				dfs(child)
				if cyclic {
					return
				}
			case gray:
				cyclic = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range s.NodeIDs() {
		if color[id] == white {
			dfs(id)
			if cyclic {
				return true
			}
		}
	}
	return false
}

// WeakComponents partitions s's nodes into weakly connected components
// (treating every edge as undirected), each returned as a sorted slice of
// node ids.
func WeakComponents(s *graph.Section) [][]string {
	visited := make(map[string]bool, len(s.NodeIDs()))
	var components [][]string

	for _, id := range s.NodeIDs() {
		if visited[id] {
			continue
		}
		var component []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)
			neighbors := append(append([]string{}, s.Successors(cur)...), s.Predecessors(cur)...)
			for _, n := range neighbors {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}
	return components
}

// IsConnected reports whether s is weakly connected: every node reachable
// from every other, ignoring edge direction.
func IsConnected(s *graph.Section) bool {
	if len(s.NodeIDs()) == 0 {
		return true
	}
	return len(WeakComponents(s)) <= 1
}

// IsStronglyConnected reports whether every node can reach every other node
// following edge direction, by checking that one node reaches every node
// both forward (successors) and backward (predecessors).
func IsStronglyConnected(s *graph.Section) bool {
	ids := s.NodeIDs()
	if len(ids) <= 1 {
		return true
	}
	start := ids[0]
	if len(reachable(ids, start, (*graph.Section).Successors, s)) != len(ids) {
		return false
	}
	return len(reachable(ids, start, (*graph.Section).Predecessors, s)) == len(ids)
}

func reachable(all []string, start string, adj func(*graph.Section, string) []string, s *graph.Section) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj(s, cur) {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

// IsBipartite reports whether s's underlying undirected graph is 2-colorable.
func IsBipartite(s *graph.Section) bool {
	color := make(map[string]int, len(s.NodeIDs()))
	for _, id := range s.NodeIDs() {
		if _, ok := color[id]; ok {
			continue
		}
		color[id] = 0
		queue := []string{id}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			neighbors := append(append([]string{}, s.Successors(cur)...), s.Predecessors(cur)...)
			for _, n := range neighbors {
				if c, ok := color[n]; ok {
					if c == color[cur] {
						return false
					}
					continue
				}
				color[n] = 1 - color[cur]
				queue = append(queue, n)
			}
		}
	}
	return true
}
