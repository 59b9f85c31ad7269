// Package traverse implements the read-continuity-constrained path
// enumeration engine (spec §4.7): source/sink discovery, bounded
// depth-first path enumeration with a per-node revisit cap, and the
// super-path predicate.
package traverse

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/value"
)

// DefaultRevisitCap bounds how many times a single node may appear within
// one enumerated path, permitting tandem-duplication-like revisits while
// preventing unbounded cyclic enumeration (spec §4.7 point 3).
const DefaultRevisitCap = 2

// PathIDScheme selects how Traverse names the paths it emits.
type PathIDScheme int

const (
	// SchemeHash derives a stable id from the SHA-256 hash of the
	// path's node-id sequence (the default; spec §4.7 point 6, grounded
	// on the original to_hash_identifier helper).
	SchemeHash PathIDScheme = iota
	// SchemeCounter assigns ids P.1, P.2, ... in discovery order.
	SchemeCounter
)

// Options configures one Traverse call.
type Options struct {
	RevisitCap   int
	PathIDScheme PathIDScheme
}

// DefaultOptions returns the spec's default traversal configuration.
func DefaultOptions() Options {
	return Options{RevisitCap: DefaultRevisitCap, PathIDScheme: SchemeHash}
}

// Path is one enumerated traversal: an alternating node/edge sequence,
// each carrying a forward orientation, plus the stable id assigned to it.
type Path struct {
	ID       string
	Elements []value.OrientedRef
}

// String renders the path's display form, e.g. "n1+ e1+ n2+ e2+ n3+"
// (spec §4.7 output contract).
func (p *Path) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// NodeIDs returns the node ids visited by the path, in order.
func (p *Path) NodeIDs() []string {
	out := make([]string, 0, (len(p.Elements)+1)/2)
	for i, e := range p.Elements {
		if i%2 == 0 {
			out = append(out, e.ID)
		}
	}
	return out
}

// IsSuper reports whether a is a super-path of b: b's oriented element
// sequence is a contiguous subsequence of a's (spec §4.7's is_super
// predicate).
func IsSuper(a, b *Path) bool {
	if len(b.Elements) > len(a.Elements) {
		return false
	}
	for start := 0; start+len(b.Elements) <= len(a.Elements); start++ {
		match := true
		for i, be := range b.Elements {
			if a.Elements[start+i] != be {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Traverse enumerates every continuity-valid simple path (within the
// configured revisit cap) from a source node to a sink node in s.
func Traverse(s *graph.Section, opts Options) ([]*Path, error) {
	if opts.RevisitCap <= 0 {
		opts.RevisitCap = DefaultRevisitCap
	}

	sources := sourceNodeIDs(s)
	sinks := sinkNodeIDSet(s)
	if len(sources) == 0 || len(sinks) == 0 {
		return nil, nil
	}

	w := &walker{section: s, sinks: sinks, cap: opts.RevisitCap, visits: map[string]int{}}
	for _, src := range sources {
		if err := w.walk(src, nil, nil, nil, false); err != nil {
			return nil, err
		}
	}

	counter := 0
	for _, raw := range w.found {
		id, err := assignID(opts.PathIDScheme, raw.nodeIDs, &counter)
		if err != nil {
			return nil, err
		}
		w.results = append(w.results, &Path{ID: id, Elements: raw.elements})
	}
	return w.results, nil
}

type rawPath struct {
	nodeIDs  []string
	elements []value.OrientedRef
}

type walker struct {
	section *graph.Section
	sinks   map[string]struct{}
	cap     int
	visits  map[string]int

	found   []rawPath
	results []*Path
}

// walk extends a path onto nodeID. active/activeSeeded carry the running
// read-id intersection accumulated from the source up to (but not
// including) nodeID: a read-bearing node narrows active to its own
// intersection with it (pruning the branch if that intersection is empty),
// while a node with no reads at all passes active through unchanged. This
// mirrors the original traverse()'s (node, path, active_reads) BFS state —
// a purely local, node-pair check at each edge is not equivalent to it: it
// would let two disjoint single-read branches that merely pass through a
// common multi-read node also validate each other's combinations, which
// the format's read-evidence intent forbids (spec §4.7 point 4; see the
// read-continuity fixture built from the same n1/n2/n3/n4/n5 example the
// original implementation documents itself against).
func (w *walker) walk(nodeID string, nodeIDs, edgeIDs []string, active map[string]struct{}, activeSeeded bool) error {
	cur, ok := w.section.Node(nodeID)
	if !ok {
		return tsgerrors.New(tsgerrors.CodeInternal, "traversal reached unknown node %q", nodeID)
	}

	active, activeSeeded, ok = narrowActiveReads(active, activeSeeded, cur.Reads)
	if !ok {
		return nil
	}

	w.visits[nodeID]++
	defer func() { w.visits[nodeID]-- }()

	// Full slice expressions force append to allocate a fresh backing
	// array at every branch, so sibling recursive calls never alias
	// each other's accumulated path.
	nodeIDs = append(nodeIDs[:len(nodeIDs):len(nodeIDs)], nodeID)

	if _, isSink := w.sinks[nodeID]; isSink {
		elems, err := buildElements(nodeIDs, edgeIDs)
		if err != nil {
			return err
		}
		w.found = append(w.found, rawPath{nodeIDs: append([]string(nil), nodeIDs...), elements: elems})
	}

	for _, eid := range w.section.OutEdges(nodeID) {
		edge, ok := w.section.Edge(eid)
		if !ok {
			return tsgerrors.New(tsgerrors.CodeInternal, "traversal reached unknown edge %q", eid)
		}
		next := edge.Sink
		if w.visits[next] >= w.cap {
			continue
		}
		nextEdges := append(edgeIDs[:len(edgeIDs):len(edgeIDs)], eid)
		if err := w.walk(next, nodeIDs, nextEdges, active, activeSeeded); err != nil {
			return err
		}
	}
	return nil
}

// narrowActiveReads folds one more node's reads into the running active
// set. A node with no reads imposes no constraint and is passed through
// unchanged (so purely structural nodes never break continuity). The first
// read-bearing node encountered seeds the active set outright; every
// subsequent read-bearing node must intersect it, and that intersection
// becomes the new active set going forward. ok is false when a read-bearing
// node shares nothing with the set seeded so far, meaning this branch must
// be abandoned without emitting a path.
func narrowActiveReads(active map[string]struct{}, seeded bool, reads []value.Read) (newActive map[string]struct{}, newSeeded bool, ok bool) {
	ids := value.IDSet(reads)
	if len(ids) == 0 {
		return active, seeded, true
	}
	if !seeded {
		return ids, true, true
	}
	inter := make(map[string]struct{})
	for id := range active {
		if _, in := ids[id]; in {
			inter[id] = struct{}{}
		}
	}
	if len(inter) == 0 {
		return nil, true, false
	}
	return inter, true, true
}

// sourceNodeIDs returns the ids of SO-tagged read-carrying nodes, or, if
// none exist, nodes with in-degree 0 (spec §4.7 step 1).
func sourceNodeIDs(s *graph.Section) []string {
	var tagged []string
	for _, n := range s.Nodes() {
		if value.HasTag(n.Reads, value.TagSpanning) {
			tagged = append(tagged, n.ID)
		}
	}
	if len(tagged) > 0 {
		return tagged
	}
	var out []string
	for _, n := range s.Sources() {
		out = append(out, n.ID)
	}
	return out
}

// sinkNodeIDSet returns the ids of SI-tagged read-carrying nodes, or, if
// none exist, nodes with out-degree 0 (spec §4.7 step 2).
func sinkNodeIDSet(s *graph.Section) map[string]struct{} {
	tagged := map[string]struct{}{}
	for _, n := range s.Nodes() {
		if value.HasTag(n.Reads, value.TagSink) {
			tagged[n.ID] = struct{}{}
		}
	}
	if len(tagged) > 0 {
		return tagged
	}
	out := map[string]struct{}{}
	for _, n := range s.Sinks() {
		out[n.ID] = struct{}{}
	}
	return out
}

// buildElements interleaves a path's node and edge ids into the oriented
// element sequence the format uses, all forward-oriented.
func buildElements(nodeIDs, edgeIDs []string) ([]value.OrientedRef, error) {
	if len(nodeIDs) != len(edgeIDs)+1 {
		return nil, tsgerrors.New(tsgerrors.CodeInternal, "path has %d nodes and %d edges, want edges = nodes-1", len(nodeIDs), len(edgeIDs))
	}
	elems := make([]value.OrientedRef, 0, len(nodeIDs)+len(edgeIDs))
	for i, nid := range nodeIDs {
		elems = append(elems, value.OrientedRef{ID: nid, Orientation: value.Plus})
		if i < len(edgeIDs) {
			elems = append(elems, value.OrientedRef{ID: edgeIDs[i], Orientation: value.Plus})
		}
	}
	return elems, nil
}

func assignID(scheme PathIDScheme, nodeIDs []string, counter *int) (string, error) {
	switch scheme {
	case SchemeCounter:
		*counter++
		return "P." + strconv.Itoa(*counter), nil
	default:
		return hashIdentifier(strings.Join(nodeIDs, "-"), 16)
	}
}

// hashIdentifier derives a stable identifier from input's SHA-256 hash,
// truncated to length hex characters and prefixed "P.". A leading digit
// is replaced with 'a' since a bare digit is not a valid TSG id start.
func hashIdentifier(input string, length int) (string, error) {
	sum := sha256.Sum256([]byte(input))
	hexSum := hex.EncodeToString(sum[:])
	if length <= 0 || length > len(hexSum) {
		length = len(hexSum)
	}
	truncated := []byte(hexSum[:length])
	if truncated[0] >= '0' && truncated[0] <= '9' {
		truncated[0] = 'a'
	}
	return fmt.Sprintf("P.%s", truncated), nil
}
