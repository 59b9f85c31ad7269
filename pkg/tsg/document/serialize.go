package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/value"
)

// attrTypeCode orders the A-line element-type field for stable sorting
// within a section's attribute block (spec §4.5: "sorted deterministically
// by (type_code, tag)"). G-targeted attributes are emitted in this same
// block rather than folded back into the G line, so that re-parsing is a
// pure function of the A lines and the G line never needs to be
// reconstructed from accumulated state.
var attrTypeCode = map[string]int{
	"G": 0,
	"N": 1,
	"E": 2,
	"C": 3,
	"P": 4,
	"U": 5,
}

// Serialize writes doc in the canonical textual form (spec §4.5).
func Serialize(doc *Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeDocument(doc, bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return tsgerrors.Wrap(tsgerrors.CodeIO, err, "flushing TSG output")
	}
	return nil
}

// WriteFile serializes doc to path, creating or truncating it.
func WriteFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return tsgerrors.Wrap(tsgerrors.CodeIO, err, "create %s", path)
	}
	defer f.Close()
	return Serialize(doc, f)
}

func writeDocument(doc *Document, w *bufio.Writer) error {
	for _, h := range doc.Headers {
		fmt.Fprintf(w, "H\t%s\t%s\n", h.Tag, h.Value)
	}

	for _, id := range doc.sectionOrder {
		s := doc.sections[id]
		fmt.Fprintf(w, "G\t%s\n", s.ID)

		for _, n := range s.Nodes() {
			writeNode(w, n)
		}
		for _, e := range s.Edges() {
			fmt.Fprintf(w, "E\t%s\t%s\t%s\t%s\n", e.ID, e.Source, e.Sink, e.SV.String())
		}
		for _, c := range s.Chains() {
			fmt.Fprintf(w, "C\t%s\t%s\n", c.ID, strings.Join(c.Elements, " "))
		}
		for _, p := range s.Paths() {
			fmt.Fprintf(w, "P\t%s\t%s\n", p.ID, joinOrientedRefs(p.Elements))
		}
		for _, u := range s.Sets() {
			fmt.Fprintf(w, "U\t%s\t%s\n", u.ID, strings.Join(u.Elements, " "))
		}

		writeAttributeBlock(w, s)
	}

	for _, link := range doc.Links {
		writeLink(w, link)
	}
	return nil
}

func writeNode(w *bufio.Writer, n *graph.Node) {
	// A node with no location (a placeholder or chain-derived node) gets an
	// empty location field, since ":?:" would not parse back.
	loc := ""
	if n.Location.Chromosome != "" || len(n.Location.Intervals) > 0 {
		loc = n.Location.String()
	}
	reads := value.FormatReads(n.Reads)
	if n.Sequence == "" {
		fmt.Fprintf(w, "N\t%s\t%s\t%s\n", n.ID, loc, reads)
		return
	}
	fmt.Fprintf(w, "N\t%s\t%s\t%s\t%s\n", n.ID, loc, reads, n.Sequence)
}

func joinOrientedRefs(refs []value.OrientedRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

type attrLine struct {
	elementType string
	elementID   string
	attr        value.Attribute
}

// writeAttributeBlock emits every attribute owned by a section's nodes,
// edges, chains, paths, sets, and the section itself, grouped by
// (element_type, element_id) and, within a group, sorted by the
// attribute's own (type_code, tag) for a stable diff (spec §4.5).
func writeAttributeBlock(w *bufio.Writer, s *graph.Section) {
	var lines []attrLine
	for _, n := range s.Nodes() {
		for _, a := range n.Attributes {
			lines = append(lines, attrLine{"N", n.ID, a})
		}
	}
	for _, e := range s.Edges() {
		for _, a := range e.Attributes {
			lines = append(lines, attrLine{"E", e.ID, a})
		}
	}
	for _, c := range s.Chains() {
		for _, a := range c.Attributes {
			lines = append(lines, attrLine{"C", c.ID, a})
		}
	}
	for _, p := range s.Paths() {
		for _, a := range p.Attributes {
			lines = append(lines, attrLine{"P", p.ID, a})
		}
	}
	for _, u := range s.Sets() {
		for _, a := range u.Attributes {
			lines = append(lines, attrLine{"U", u.ID, a})
		}
	}
	for _, a := range s.Attributes {
		lines = append(lines, attrLine{"G", s.ID, a})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		ci, cj := attrTypeCode[lines[i].elementType], attrTypeCode[lines[j].elementType]
		if ci != cj {
			return ci < cj
		}
		if lines[i].elementID != lines[j].elementID {
			return lines[i].elementID < lines[j].elementID
		}
		if lines[i].attr.Type != lines[j].attr.Type {
			return lines[i].attr.Type < lines[j].attr.Type
		}
		return lines[i].attr.Tag < lines[j].attr.Tag
	})

	for _, l := range lines {
		fmt.Fprintf(w, "A\t%s\t%s\t%s\n", l.elementType, l.elementID, l.attr.String())
	}
}

func writeLink(w *bufio.Writer, link InterGraphLink) {
	fmt.Fprintf(w, "L\t%s\t%s:%s\t%s:%s\t%s", link.ID, link.SourceGraph, link.SourceElement, link.TargetGraph, link.TargetElement, link.LinkType)
	for _, a := range link.Attributes {
		fmt.Fprintf(w, "\t%s", a.String())
	}
	fmt.Fprint(w, "\n")
}
