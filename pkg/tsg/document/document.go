// Package document assembles graph.Section values parsed from a TSG byte
// stream into a Document: the ordered list of sections, the global headers
// that precede them, and the inter-graph links that relate them (spec
// §4.4). It also serializes a Document back to the canonical textual form
// (spec §4.5).
package document

import (
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/value"
)

// DefaultSectionID is the graph_id synthesized for N/E/U/P/C/A records that
// appear before any explicit G line, preserving compatibility with
// single-graph files that never declare a section.
const DefaultSectionID = "G.graph"

// Header is a top-level H record: an arbitrary tag/value pair that
// precedes every section.
type Header struct {
	Tag   string
	Value string
}

// InterGraphLink relates an element in one section to an element in
// another (spec §3's InterGraphLink).
type InterGraphLink struct {
	ID             string
	SourceGraph    string
	SourceElement  string
	TargetGraph    string
	TargetElement  string
	LinkType       string
	Attributes     []value.Attribute
}

// Document is a complete parsed TSG file.
type Document struct {
	Headers []Header
	Links   []InterGraphLink

	sections     map[string]*graph.Section
	sectionOrder []string
}

// New returns an empty document.
func New() *Document {
	return &Document{
		sections: make(map[string]*graph.Section),
	}
}

// Section returns the section with the given graph_id.
func (d *Document) Section(id string) (*graph.Section, bool) {
	s, ok := d.sections[id]
	return s, ok
}

// Sections returns all sections in the order their G lines appeared (or,
// for the implicit default section, the order it was first needed).
func (d *Document) Sections() []*graph.Section {
	out := make([]*graph.Section, len(d.sectionOrder))
	for i, id := range d.sectionOrder {
		out[i] = d.sections[id]
	}
	return out
}

// SectionIDs returns section ids in document order.
func (d *Document) SectionIDs() []string {
	out := make([]string, len(d.sectionOrder))
	copy(out, d.sectionOrder)
	return out
}

// openSection creates a new, explicitly declared section. It fails if a
// section with this id already exists (duplicate graph_id, spec §4.4).
func (d *Document) openSection(id string, attrs []value.Attribute) (*graph.Section, error) {
	if _, exists := d.sections[id]; exists {
		return nil, tsgerrors.New(tsgerrors.CodeDuplicate, "graph section %q already exists", id)
	}
	s := graph.New(id)
	s.Attributes = attrs
	d.sections[id] = s
	d.sectionOrder = append(d.sectionOrder, id)
	return s, nil
}

// defaultSection returns the implicit default section, creating it on
// first use.
func (d *Document) defaultSection() *graph.Section {
	if s, ok := d.sections[DefaultSectionID]; ok {
		return s
	}
	s := graph.New(DefaultSectionID)
	d.sections[DefaultSectionID] = s
	d.sectionOrder = append(d.sectionOrder, DefaultSectionID)
	return s
}

// dropEmptyDefaultSection removes the implicit default section if it was
// created but never given any nodes — mirroring the reference
// implementation's cleanup of an unused backward-compatibility section.
func (d *Document) dropEmptyDefaultSection() {
	s, ok := d.sections[DefaultSectionID]
	if !ok || len(s.NodeIDs()) > 0 {
		return
	}
	delete(d.sections, DefaultSectionID)
	for i, id := range d.sectionOrder {
		if id == DefaultSectionID {
			d.sectionOrder = append(d.sectionOrder[:i], d.sectionOrder[i+1:]...)
			break
		}
	}
}

// AddHeader appends a global header line.
func (d *Document) AddHeader(tag, value string) {
	d.Headers = append(d.Headers, Header{Tag: tag, Value: value})
}
