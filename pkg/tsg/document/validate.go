package document

import (
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
)

// finalize runs section-close construction and validation once all
// records have been dispatched (spec §4.4): chain-derived construction,
// chain/path reference validation, inter-graph link validation, and
// default-section cleanup.
func (d *Document) finalize() error {
	for _, s := range d.Sections() {
		if err := buildFromChains(s); err != nil {
			return err
		}
	}
	for _, s := range d.Sections() {
		if err := validateChains(s); err != nil {
			return err
		}
		if err := validatePaths(s); err != nil {
			return err
		}
	}
	if err := d.validateLinks(); err != nil {
		return err
	}
	d.dropEmptyDefaultSection()
	return nil
}

// buildFromChains synthesizes missing nodes and edges from a section's
// chains (construction mode 2, spec §4.4). If the section already has at
// least one explicit node and one explicit edge, it is assumed complete
// (explicit-first mode, mode 1) and chains are left to be checked for
// consistency rather than used to manufacture new elements.
func buildFromChains(s *graph.Section) error {
	if len(s.NodeIDs()) > 0 && len(s.EdgeIDs()) > 0 {
		return nil
	}
	for _, chain := range s.Chains() {
		for i, id := range chain.Elements {
			if i%2 == 0 {
				if _, ok := s.Node(id); !ok {
					if err := s.AddNode(graph.Node{ID: id}); err != nil {
						return err
					}
				}
				continue
			}
			if i+1 >= len(chain.Elements) {
				continue
			}
			if _, ok := s.Edge(id); ok {
				continue
			}
			source := chain.Elements[i-1]
			sink := chain.Elements[i+1]
			if err := s.AddEdge(graph.Edge{ID: id, Source: source, Sink: sink}); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateChains checks each chain has odd length and that every edge
// position in the chain actually connects the chain's neighboring node
// ids — catching a chain that names an edge explicitly defined with
// different endpoints (explicit-first mode, spec §4.4 point 1).
func validateChains(s *graph.Section) error {
	for _, chain := range s.Chains() {
		if len(chain.Elements)%2 == 0 || len(chain.Elements) == 0 {
			return tsgerrors.New(tsgerrors.CodeChain, "chain %q in section %q has even length %d", chain.ID, s.ID, len(chain.Elements))
		}
		for i := 1; i+1 < len(chain.Elements); i += 2 {
			edgeID := chain.Elements[i]
			edge, ok := s.Edge(edgeID)
			if !ok {
				return tsgerrors.New(tsgerrors.CodeChain, "chain %q in section %q references unknown edge %q", chain.ID, s.ID, edgeID)
			}
			wantSource, wantSink := chain.Elements[i-1], chain.Elements[i+1]
			if edge.Source != wantSource || edge.Sink != wantSink {
				return tsgerrors.New(tsgerrors.CodeChain, "chain %q in section %q: edge %q connects %s->%s, not %s->%s",
					chain.ID, s.ID, edgeID, edge.Source, edge.Sink, wantSource, wantSink)
			}
		}
	}
	return nil
}

// validatePaths checks every element an ordered path references actually
// exists somewhere in the section's shared id namespace (spec §4.4).
func validatePaths(s *graph.Section) error {
	for _, path := range s.Paths() {
		for _, elem := range path.Elements {
			if _, ok := s.KindOf(elem.ID); !ok {
				return tsgerrors.New(tsgerrors.CodeReference, "path %q in section %q references non-existent element %q", path.ID, s.ID, elem.ID)
			}
		}
	}
	return nil
}

// validateLinks checks every inter-graph link's endpoints resolve to a
// real element in the named section.
func (d *Document) validateLinks() error {
	for _, link := range d.Links {
		if err := d.validateLinkEndpoint(link.ID, link.SourceGraph, link.SourceElement); err != nil {
			return err
		}
		if err := d.validateLinkEndpoint(link.ID, link.TargetGraph, link.TargetElement); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) validateLinkEndpoint(linkID, graphID, elementID string) error {
	s, ok := d.Section(graphID)
	if !ok {
		return tsgerrors.New(tsgerrors.CodeReference, "link %q references non-existent graph %q", linkID, graphID)
	}
	if _, ok := s.KindOf(elementID); !ok {
		return tsgerrors.New(tsgerrors.CodeReference, "link %q references non-existent element %s:%s", linkID, graphID, elementID)
	}
	return nil
}
