package analysis

import "github.com/tsgraph/tsg/pkg/tsg/graph"

// Bubble is a branch/merge pair (s, t) together with the internally
// vertex-disjoint paths between them (spec §4.6 bullet (i)-(iv)).
type Bubble struct {
	Source string
	Sink   string
	Paths  [][]string
}

// DetectBubbles finds every (s, t) pair where s branches (out-degree ≥ 2),
// t merges (in-degree ≥ 2), the walks from s reach t along at least two
// paths, and no two of those paths share an interior node. No other
// condition on routes between s and t is checked.
//
// Walks from s stop at the first branch point (out-degree ≥ 2) they reach
// and continue through merge points whose out-degree is below 2; every
// branch or merge point reached is recorded as a candidate t together with
// the path that reached it. Stopping at branch points keeps the walks from
// enumerating every simple path in the section.
func DetectBubbles(s *graph.Section) []Bubble {
	var bubbles []Bubble
	for _, srcID := range s.NodeIDs() {
		if s.OutDegree(srcID) < 2 {
			continue
		}
		reached := map[string][][]string{}
		for _, first := range s.Successors(srcID) {
			walkBubbleBranch(s, srcID, []string{srcID, first}, reached)
		}
		var sinks []string
		for t := range reached {
			if s.InDegree(t) >= 2 {
				sinks = append(sinks, t)
			}
		}
		for _, t := range sinks {
			paths := reached[t]
			if len(paths) < 2 {
				continue
			}
			if !internallyDisjoint(paths) {
				continue
			}
			bubbles = append(bubbles, Bubble{Source: srcID, Sink: t, Paths: paths})
		}
	}
	return bubbles
}

// walkBubbleBranch extends path along successors, recording every
// branch/merge node it reaches (a candidate bubble sink) keyed by node id,
// along with the path that reached it; it stops at branch nodes.
func walkBubbleBranch(s *graph.Section, root string, path []string, reached map[string][][]string) {
	cur := path[len(path)-1]
	if cur != root && (s.InDegree(cur) >= 2 || s.OutDegree(cur) >= 2) {
		reached[cur] = append(reached[cur], append([]string(nil), path...))
		if s.OutDegree(cur) >= 2 {
			return
		}
	}
	for _, next := range s.Successors(cur) {
		if contains(path, next) {
			continue // don't loop back through the branch under construction
		}
		walkBubbleBranch(s, root, append(path[:len(path):len(path)], next), reached)
	}
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// internallyDisjoint reports whether the given source-to-sink paths share
// no vertex other than their common endpoints.
func internallyDisjoint(paths [][]string) bool {
	seen := map[string]int{}
	for _, p := range paths {
		for i, id := range p {
			if i == 0 || i == len(p)-1 {
				continue // endpoints (s, t) are shared by construction
			}
			seen[id]++
			if seen[id] > 1 {
				return false
			}
		}
	}
	return true
}

// ClassifyTopology assigns the topology tag spec §4.6 asks for.
func ClassifyTopology(s *graph.Section) Topology {
	if IsCyclic(s) {
		return TopologyCyclic
	}
	if len(DetectBubbles(s)) > 0 {
		return TopologyBubble
	}

	sources := s.Sources()
	sinks := s.Sinks()
	multiBranch, multiMerge := false, false
	for _, id := range s.NodeIDs() {
		if s.OutDegree(id) > 1 {
			multiBranch = true
		}
		if s.InDegree(id) > 1 {
			multiMerge = true
		}
	}

	switch {
	case len(sources) > 1 && len(sinks) == 1:
		return TopologyFadeIn
	case len(sources) == 1 && len(sinks) > 1:
		return TopologyFadeOut
	case !multiBranch && !multiMerge:
		return TopologyLinear
	case multiBranch && multiMerge:
		return TopologyComplex
	default:
		return TopologyBranching
	}
}

// MatchesTopology reports whether s's classification equals tag.
func MatchesTopology(s *graph.Section, tag Topology) bool {
	return ClassifyTopology(s) == tag
}
