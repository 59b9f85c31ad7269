package document

import (
	"fmt"

	"github.com/tsgraph/tsg/pkg/tsg/graph"
)

// Merge concatenates docs into one document, preserving the order
// sections appeared across the input documents. A section's graph_id is
// renumbered (by appending "_2", "_3", ...) only when it collides with a
// graph_id already placed in the output; inter-graph links are rewritten
// to follow any renumbered endpoint.
func Merge(docs []*Document) (*Document, error) {
	out := New()
	rename := make(map[*Document]map[string]string)

	for _, doc := range docs {
		out.Headers = append(out.Headers, doc.Headers...)
		renamed := make(map[string]string)
		rename[doc] = renamed

		for _, sec := range doc.Sections() {
			id := sec.ID
			for n := 2; out.hasSection(id); n++ {
				id = fmt.Sprintf("%s_%d", sec.ID, n)
			}
			if id != sec.ID {
				renamed[sec.ID] = id
			}
			if err := out.adoptSection(sec, id); err != nil {
				return nil, err
			}
		}
	}

	for _, doc := range docs {
		renamed := rename[doc]
		for _, link := range doc.Links {
			l := link
			if id, ok := renamed[l.SourceGraph]; ok {
				l.SourceGraph = id
			}
			if id, ok := renamed[l.TargetGraph]; ok {
				l.TargetGraph = id
			}
			out.Links = append(out.Links, l)
		}
	}
	return out, nil
}

func (d *Document) hasSection(id string) bool {
	_, ok := d.sections[id]
	return ok
}

// adoptSection copies sec's elements into a new section with the given id
// and registers it on d. Copying element-by-element (rather than aliasing
// sec directly) keeps the merged document independent of its sources.
func (d *Document) adoptSection(sec *graph.Section, id string) error {
	dst, err := d.openSection(id, sec.Attributes)
	if err != nil {
		return err
	}
	for _, n := range sec.Nodes() {
		if err := dst.AddNode(*n); err != nil {
			return err
		}
	}
	for _, e := range sec.Edges() {
		if err := dst.AddEdge(*e); err != nil {
			return err
		}
	}
	for _, c := range sec.Chains() {
		if err := dst.AddChain(*c); err != nil {
			return err
		}
	}
	for _, p := range sec.Paths() {
		if err := dst.AddPath(*p); err != nil {
			return err
		}
	}
	for _, u := range sec.Sets() {
		if err := dst.AddSet(*u); err != nil {
			return err
		}
	}
	return nil
}

// Split produces one document per section of doc, each carrying doc's
// headers but only that section's elements. Inter-graph links are
// dropped, since both of their endpoints can no longer live in the same
// output file.
func Split(doc *Document) ([]*Document, error) {
	out := make([]*Document, 0, len(doc.Sections()))
	for _, sec := range doc.Sections() {
		single := New()
		single.Headers = append(single.Headers, doc.Headers...)
		if err := single.adoptSection(sec, sec.ID); err != nil {
			return nil, err
		}
		out = append(out, single)
	}
	return out, nil
}
