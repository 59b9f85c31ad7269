// Package emit implements the downstream projections a parsed document can
// be converted to: Graphviz DOT, GTF, VCF, FASTA, and JSON (spec §6). Each
// emitter is a mechanical, one-directional projection — none of them is
// re-parsed back into a Document.
package emit

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tsgraph/tsg/pkg/tsg/document"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

// ToDOT renders doc as Graphviz DOT: one subgraph per section, nodes
// labeled by id, edges labeled by id and sv_type (spec §6).
func ToDOT(doc *document.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph TSG {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n\n")

	for i, s := range doc.Sections() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", s.ID)
		for _, n := range s.Nodes() {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", sectionScopedID(s.ID, n.ID), n.ID)
		}
		for _, e := range s.Edges() {
			label := e.ID
			if e.SV.Type != "" {
				label = fmt.Sprintf("%s\\n%s", e.ID, e.SV.Type)
			}
			fmt.Fprintf(&buf, "    %q -> %q [label=%q];\n",
				sectionScopedID(s.ID, e.Source), sectionScopedID(s.ID, e.Sink), label)
		}
		buf.WriteString("  }\n\n")
	}

	for _, link := range doc.Links {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed];\n",
			sectionScopedID(link.SourceGraph, link.SourceElement),
			sectionScopedID(link.TargetGraph, link.TargetElement),
			link.LinkType)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// sectionScopedID disambiguates node ids that share the same string across
// sections, since DOT's node namespace is document-wide while TSG's is
// per-section (spec §4.3).
func sectionScopedID(sectionID, elementID string) string {
	return sectionID + "/" + elementID
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, tsgerrors.Wrap(tsgerrors.CodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, tsgerrors.Wrap(tsgerrors.CodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, tsgerrors.Wrap(tsgerrors.CodeInternal, err, "render SVG")
	}
	return buf.Bytes(), nil
}

// quoteIfNeeded quotes s with %q when it contains a space or tab and
// returns it unchanged otherwise. No emitter in this package calls it.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
