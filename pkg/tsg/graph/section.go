// Package graph implements the per-section directed multigraph store (spec
// §4.3): nodes and edges addressable by stable string id and by insertion
// index, plus the groups (unordered sets, ordered paths, chains) and
// attributes that share a section's id namespace.
//
// A Section never looks outside itself — cross-section concerns (global
// headers, inter-graph links, section ordering) belong to package
// document. This mirrors the teacher's own split between a self-contained
// graph store and the document/pipeline layer built on top of it.
package graph

import (
	"slices"

	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/value"
)

// Kind distinguishes the five element families that share one id
// namespace within a section (spec §9 design note: "a tagged-variant
// element index keyed by id").
type Kind int

const (
	KindNode Kind = iota
	KindEdge
	KindSet
	KindPath
	KindChain
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	case KindSet:
		return "unordered set"
	case KindPath:
		return "ordered path"
	case KindChain:
		return "chain"
	default:
		return "unknown"
	}
}

// Node is an exon / transcript segment (spec §3).
type Node struct {
	ID          string
	Location    value.Location
	Reads       []value.Read
	Sequence    string
	Attributes  []value.Attribute
	Placeholder bool // true until an explicit N record completes it
}

// Edge is a directed connection between two nodes in the same section
// (spec §3).
type Edge struct {
	ID         string
	Source     string
	Sink       string
	SV         value.StructuralVariant
	Attributes []value.Attribute
}

// Chain is the odd-length alternating node/edge sequence used to
// construct a graph (spec §3). Elements[0], Elements[2], ... are node
// ids; Elements[1], Elements[3], ... are edge ids.
type Chain struct {
	ID         string
	Elements   []string
	Attributes []value.Attribute
}

// OrderedPath is a traversal of already-constructed elements (spec §3).
type OrderedPath struct {
	ID         string
	Elements   []value.OrientedRef
	Attributes []value.Attribute
}

// UnorderedSet is an unordered selection of element references (spec §3).
type UnorderedSet struct {
	ID         string
	Elements   []string
	Attributes []value.Attribute
}

// Section is one independent directed multigraph, keyed by graph_id at
// the document level (spec §3, §4.3).
//
// The zero value is not usable; use New.
type Section struct {
	ID         string
	Attributes []value.Attribute

	kindOf map[string]Kind // cross-family id collision detection

	nodes     map[string]*Node
	nodeOrder []string

	edges     map[string]*Edge
	edgeOrder []string
	outgoing  map[string][]string // node id -> outgoing edge ids
	incoming  map[string][]string // node id -> incoming edge ids

	chains     map[string]*Chain
	chainOrder []string

	paths     map[string]*OrderedPath
	pathOrder []string

	sets     map[string]*UnorderedSet
	setOrder []string
}

// New creates an empty section with the given graph_id.
func New(id string) *Section {
	return &Section{
		ID:       id,
		kindOf:   make(map[string]Kind),
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		chains:   make(map[string]*Chain),
		paths:    make(map[string]*OrderedPath),
		sets:     make(map[string]*UnorderedSet),
	}
}

// claim registers id under kind, or returns a DuplicateError if id is
// already claimed by a different-kind element. Re-claiming the same id
// under the same kind is allowed (placeholder completion, attribute
// attachment) and is a no-op.
func (s *Section) claim(id string, kind Kind) error {
	if existing, ok := s.kindOf[id]; ok {
		if existing != kind {
			return tsgerrors.New(tsgerrors.CodeDuplicate, "id %q already used by a %s, cannot reuse as %s", id, existing, kind)
		}
		return nil
	}
	s.kindOf[id] = kind
	return nil
}

// KindOf returns the element kind registered for id, if any.
func (s *Section) KindOf(id string) (Kind, bool) {
	k, ok := s.kindOf[id]
	return k, ok
}

// AddNode inserts or completes a node.
//
// If id is unclaimed, it is inserted fresh. If id was previously claimed
// by a placeholder (inserted by AddEdge for a forward reference), the
// placeholder's fields are replaced by n's but its position in insertion
// order is preserved — this is the "conflict" case from spec §4.3,
// resolved by completion rather than error. If id was already claimed by
// a complete (non-placeholder) node, AddNode returns a DuplicateError. If
// id was claimed by a different element kind entirely, AddNode returns a
// DuplicateError naming the conflicting kind.
func (s *Section) AddNode(n Node) error {
	if n.ID == "" {
		return tsgerrors.New(tsgerrors.CodeValue, "node id must not be empty")
	}
	if existing, ok := s.nodes[n.ID]; ok {
		if !existing.Placeholder {
			return tsgerrors.New(tsgerrors.CodeDuplicate, "duplicate node id %q", n.ID)
		}
		n.Placeholder = false
		*existing = n
		return nil
	}
	if err := s.claim(n.ID, KindNode); err != nil {
		return err
	}
	node := n
	node.Placeholder = false
	s.nodes[node.ID] = &node
	s.nodeOrder = append(s.nodeOrder, node.ID)
	return nil
}

// ensurePlaceholder returns the existing node for id, inserting an empty
// placeholder node if none exists yet. Used by AddEdge to satisfy forward
// references without requiring two-pass parsing (spec §4.3 rationale).
func (s *Section) ensurePlaceholder(id string) (*Node, error) {
	if n, ok := s.nodes[id]; ok {
		return n, nil
	}
	if err := s.claim(id, KindNode); err != nil {
		return nil, err
	}
	n := &Node{ID: id, Placeholder: true}
	s.nodes[id] = n
	s.nodeOrder = append(s.nodeOrder, id)
	return n, nil
}

// AddEdge inserts a directed edge. If either endpoint id is unknown, a
// placeholder node is created for it first (spec §4.3); a later AddNode
// for the same id completes it in place.
func (s *Section) AddEdge(e Edge) error {
	if e.ID == "" {
		return tsgerrors.New(tsgerrors.CodeValue, "edge id must not be empty")
	}
	if _, ok := s.edges[e.ID]; ok {
		return tsgerrors.New(tsgerrors.CodeDuplicate, "duplicate edge id %q", e.ID)
	}
	if err := s.claim(e.ID, KindEdge); err != nil {
		return err
	}
	if _, err := s.ensurePlaceholder(e.Source); err != nil {
		return err
	}
	if _, err := s.ensurePlaceholder(e.Sink); err != nil {
		return err
	}

	edge := e
	s.edges[edge.ID] = &edge
	s.edgeOrder = append(s.edgeOrder, edge.ID)
	s.outgoing[edge.Source] = append(s.outgoing[edge.Source], edge.ID)
	s.incoming[edge.Sink] = append(s.incoming[edge.Sink], edge.ID)
	return nil
}

// AddChain registers a chain. Chain connectivity and odd-length
// validation happen at section-close time (spec §4.4), not here, since a
// chain referencing not-yet-seen elements is the normal case.
func (s *Section) AddChain(c Chain) error {
	if err := s.claim(c.ID, KindChain); err != nil {
		return err
	}
	chain := c
	s.chains[chain.ID] = &chain
	s.chainOrder = append(s.chainOrder, chain.ID)
	return nil
}

// AddPath registers an ordered path. Element resolution is validated at
// section-close time.
func (s *Section) AddPath(p OrderedPath) error {
	if err := s.claim(p.ID, KindPath); err != nil {
		return err
	}
	path := p
	s.paths[path.ID] = &path
	s.pathOrder = append(s.pathOrder, path.ID)
	return nil
}

// AddSet registers an unordered set.
func (s *Section) AddSet(u UnorderedSet) error {
	if err := s.claim(u.ID, KindSet); err != nil {
		return err
	}
	set := u
	s.sets[set.ID] = &set
	s.setOrder = append(s.setOrder, set.ID)
	return nil
}

// AddAttribute attaches attr to the element named id, which must already
// be claimed by some kind (node, edge, set, path, or chain).
func (s *Section) AddAttribute(id string, attr value.Attribute) error {
	kind, ok := s.kindOf[id]
	if !ok {
		return tsgerrors.New(tsgerrors.CodeReference, "attribute targets unknown element %q", id)
	}
	switch kind {
	case KindNode:
		s.nodes[id].Attributes = append(s.nodes[id].Attributes, attr)
	case KindEdge:
		s.edges[id].Attributes = append(s.edges[id].Attributes, attr)
	case KindSet:
		s.sets[id].Attributes = append(s.sets[id].Attributes, attr)
	case KindPath:
		s.paths[id].Attributes = append(s.paths[id].Attributes, attr)
	case KindChain:
		s.chains[id].Attributes = append(s.chains[id].Attributes, attr)
	}
	return nil
}

// Node returns the node with the given id.
func (s *Section) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (s *Section) Edge(id string) (*Edge, bool) {
	e, ok := s.edges[id]
	return e, ok
}

// Chain returns the chain with the given id.
func (s *Section) Chain(id string) (*Chain, bool) {
	c, ok := s.chains[id]
	return c, ok
}

// Path returns the ordered path with the given id.
func (s *Section) Path(id string) (*OrderedPath, bool) {
	p, ok := s.paths[id]
	return p, ok
}

// Set returns the unordered set with the given id.
func (s *Section) Set(id string) (*UnorderedSet, bool) {
	u, ok := s.sets[id]
	return u, ok
}

// Nodes returns all nodes in insertion order.
func (s *Section) Nodes() []*Node {
	out := make([]*Node, len(s.nodeOrder))
	for i, id := range s.nodeOrder {
		out[i] = s.nodes[id]
	}
	return out
}

// Edges returns all edges in insertion order.
func (s *Section) Edges() []*Edge {
	out := make([]*Edge, len(s.edgeOrder))
	for i, id := range s.edgeOrder {
		out[i] = s.edges[id]
	}
	return out
}

// Chains returns all chains in insertion order.
func (s *Section) Chains() []*Chain {
	out := make([]*Chain, len(s.chainOrder))
	for i, id := range s.chainOrder {
		out[i] = s.chains[id]
	}
	return out
}

// Paths returns all ordered paths in insertion order.
func (s *Section) Paths() []*OrderedPath {
	out := make([]*OrderedPath, len(s.pathOrder))
	for i, id := range s.pathOrder {
		out[i] = s.paths[id]
	}
	return out
}

// Sets returns all unordered sets in insertion order.
func (s *Section) Sets() []*UnorderedSet {
	out := make([]*UnorderedSet, len(s.setOrder))
	for i, id := range s.setOrder {
		out[i] = s.sets[id]
	}
	return out
}

// OutEdges returns the ids of edges leaving node id, in insertion order.
func (s *Section) OutEdges(id string) []string { return s.outgoing[id] }

// InEdges returns the ids of edges entering node id, in insertion order.
func (s *Section) InEdges(id string) []string { return s.incoming[id] }

// OutDegree returns the number of edges leaving node id.
func (s *Section) OutDegree(id string) int { return len(s.outgoing[id]) }

// InDegree returns the number of edges entering node id.
func (s *Section) InDegree(id string) int { return len(s.incoming[id]) }

// Successors returns the ids of nodes reachable from id via one outgoing
// edge, in edge insertion order (a node reachable by two parallel edges
// is listed twice).
func (s *Section) Successors(id string) []string {
	out := make([]string, 0, len(s.outgoing[id]))
	for _, eid := range s.outgoing[id] {
		out = append(out, s.edges[eid].Sink)
	}
	return out
}

// Predecessors returns the ids of nodes that reach id via one incoming
// edge, in edge insertion order.
func (s *Section) Predecessors(id string) []string {
	out := make([]string, 0, len(s.incoming[id]))
	for _, eid := range s.incoming[id] {
		out = append(out, s.edges[eid].Source)
	}
	return out
}

// Placeholders returns the ids of nodes still awaiting an explicit N
// record, in insertion order.
func (s *Section) Placeholders() []string {
	var out []string
	for _, id := range s.nodeOrder {
		if s.nodes[id].Placeholder {
			out = append(out, id)
		}
	}
	return out
}

// Sources returns nodes with in-degree 0, in insertion order.
func (s *Section) Sources() []*Node {
	var out []*Node
	for _, id := range s.nodeOrder {
		if s.InDegree(id) == 0 {
			out = append(out, s.nodes[id])
		}
	}
	return out
}

// Sinks returns nodes with out-degree 0, in insertion order.
func (s *Section) Sinks() []*Node {
	var out []*Node
	for _, id := range s.nodeOrder {
		if s.OutDegree(id) == 0 {
			out = append(out, s.nodes[id])
		}
	}
	return out
}

// NodeIDs returns node ids in insertion order.
func (s *Section) NodeIDs() []string { return slices.Clone(s.nodeOrder) }

// EdgeIDs returns edge ids in insertion order.
func (s *Section) EdgeIDs() []string { return slices.Clone(s.edgeOrder) }
