package document

import (
	"io"
	"os"
	"strings"

	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/lex"
	"github.com/tsgraph/tsg/pkg/tsg/value"
)

// Parse reads a complete TSG stream and returns the assembled, validated
// Document. Parse runs the full pipeline: lexing, per-record dispatch
// into the current section (the implicit default section until the first G
// line), chain-derived construction, and section-close validation
// (spec §4.4).
func Parse(r io.Reader) (*Document, error) {
	records, err := lex.Scan(r)
	if err != nil {
		return nil, err
	}

	doc := New()
	p := &parser{doc: doc}
	for _, rec := range records {
		if err := p.dispatch(rec); err != nil {
			return nil, err
		}
	}
	if err := doc.finalize(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseFile opens path and parses it as a TSG document.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tsgerrors.Wrap(tsgerrors.CodeIO, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// parser holds the mutable state threaded through record dispatch: which
// section is currently open, and the document being built.
type parser struct {
	doc     *Document
	current *graph.Section
}

func (p *parser) dispatch(rec lex.Record) error {
	switch rec.Tag {
	case lex.TagHeader:
		return p.parseHeader(rec)
	case lex.TagGraph:
		return p.parseGraphOpen(rec)
	case lex.TagNode:
		return p.parseNode(rec)
	case lex.TagEdge:
		return p.parseEdge(rec)
	case lex.TagSet:
		return p.parseSet(rec)
	case lex.TagPath:
		return p.parsePath(rec)
	case lex.TagChain:
		return p.parseChain(rec)
	case lex.TagAttr:
		return p.parseAttribute(rec)
	case lex.TagLink:
		return p.parseLink(rec)
	default:
		return tsgerrors.AtLine(tsgerrors.CodeLex, rec.Line, "unhandled record tag %q", string(rec.Tag))
	}
}

func (p *parser) parseHeader(rec lex.Record) error {
	if len(rec.Fields) < 2 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "H record needs tag and value")
	}
	p.doc.AddHeader(rec.Field(0), rec.Field(1))
	return nil
}

func (p *parser) parseGraphOpen(rec lex.Record) error {
	if len(rec.Fields) < 1 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "G record needs a graph id")
	}
	id := rec.Field(0)
	attrs, err := parseAttrFields(rec, 1)
	if err != nil {
		return atLine(rec.Line, err)
	}
	s, err := p.doc.openSection(id, attrs)
	if err != nil {
		return atLine(rec.Line, err)
	}
	p.current = s
	return nil
}

// section returns the currently open section, lazily opening the implicit
// default section if none has been declared yet (spec §4.4).
func (p *parser) section() *graph.Section {
	if p.current == nil {
		p.current = p.doc.defaultSection()
	}
	return p.current
}

func (p *parser) parseNode(rec lex.Record) error {
	if len(rec.Fields) < 1 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "N record needs an id")
	}
	id := rec.Field(0)
	loc := value.Location{}
	if rec.Field(1) != "" {
		l, err := value.ParseLocation(rec.Field(1))
		if err != nil {
			return atLine(rec.Line, err)
		}
		loc = l
	}
	var reads []value.Read
	if rec.Field(2) != "" {
		rs, err := value.ParseReads(rec.Field(2))
		if err != nil {
			return atLine(rec.Line, err)
		}
		reads = rs
	}
	seq := rec.Field(3)

	err := p.section().AddNode(graph.Node{
		ID:       id,
		Location: loc,
		Reads:    reads,
		Sequence: seq,
	})
	return atLine(rec.Line, err)
}

func (p *parser) parseEdge(rec lex.Record) error {
	if len(rec.Fields) < 4 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "E record needs id, source, sink, structural variant")
	}
	sv, err := value.ParseStructuralVariant(rec.Field(3))
	if err != nil {
		return atLine(rec.Line, err)
	}
	err = p.section().AddEdge(graph.Edge{
		ID:     rec.Field(0),
		Source: rec.Field(1),
		Sink:   rec.Field(2),
		SV:     sv,
	})
	return atLine(rec.Line, err)
}

func (p *parser) parseSet(rec lex.Record) error {
	if len(rec.Fields) < 1 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "U record needs an id")
	}
	elements := strings.Fields(strings.Join(rec.Fields[1:], " "))
	err := p.section().AddSet(graph.UnorderedSet{ID: rec.Field(0), Elements: elements})
	return atLine(rec.Line, err)
}

func (p *parser) parsePath(rec lex.Record) error {
	if len(rec.Fields) < 1 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "P record needs an id")
	}
	tokens := strings.Fields(strings.Join(rec.Fields[1:], " "))
	elems := make([]value.OrientedRef, 0, len(tokens))
	for _, tok := range tokens {
		ref, err := value.ParseOrientedRef(tok)
		if err != nil {
			return atLine(rec.Line, err)
		}
		elems = append(elems, ref)
	}
	err := p.section().AddPath(graph.OrderedPath{ID: rec.Field(0), Elements: elems})
	return atLine(rec.Line, err)
}

func (p *parser) parseChain(rec lex.Record) error {
	if len(rec.Fields) < 2 {
		return tsgerrors.AtLine(tsgerrors.CodeChain, rec.Line, "C record needs an id and at least one element")
	}
	elements := strings.Fields(strings.Join(rec.Fields[1:], " "))
	if len(elements)%2 == 0 {
		return tsgerrors.AtLine(tsgerrors.CodeChain, rec.Line, "chain %q must have an odd number of elements", rec.Field(0))
	}
	err := p.section().AddChain(graph.Chain{ID: rec.Field(0), Elements: elements})
	return atLine(rec.Line, err)
}

func (p *parser) parseAttribute(rec lex.Record) error {
	if len(rec.Fields) < 3 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "A record needs element type, element id, and at least one attribute")
	}
	elementType := rec.Field(0)
	elementID := rec.Field(1)
	attrs, err := parseAttrFields(rec, 2)
	if err != nil {
		return atLine(rec.Line, err)
	}

	if elementType == "G" {
		s, ok := p.doc.Section(elementID)
		if !ok {
			return tsgerrors.AtLine(tsgerrors.CodeReference, rec.Line, "attribute targets unknown graph section %q", elementID)
		}
		s.Attributes = append(s.Attributes, attrs...)
		return nil
	}

	sec := p.section()
	for _, a := range attrs {
		if err := sec.AddAttribute(elementID, a); err != nil {
			return atLine(rec.Line, err)
		}
	}
	return nil
}

func (p *parser) parseLink(rec lex.Record) error {
	if len(rec.Fields) < 4 {
		return tsgerrors.AtLine(tsgerrors.CodeValue, rec.Line, "L record needs id, source ref, target ref, link type")
	}
	sourceGraph, sourceElem, err := splitRef(rec.Field(1))
	if err != nil {
		return atLine(rec.Line, err)
	}
	targetGraph, targetElem, err := splitRef(rec.Field(2))
	if err != nil {
		return atLine(rec.Line, err)
	}
	if _, ok := p.doc.Section(sourceGraph); !ok {
		return tsgerrors.AtLine(tsgerrors.CodeReference, rec.Line, "link references unknown graph %q", sourceGraph)
	}
	if _, ok := p.doc.Section(targetGraph); !ok {
		return tsgerrors.AtLine(tsgerrors.CodeReference, rec.Line, "link references unknown graph %q", targetGraph)
	}
	attrs, err := parseAttrFields(rec, 4)
	if err != nil {
		return atLine(rec.Line, err)
	}

	p.doc.Links = append(p.doc.Links, InterGraphLink{
		ID:            rec.Field(0),
		SourceGraph:   sourceGraph,
		SourceElement: sourceElem,
		TargetGraph:   targetGraph,
		TargetElement: targetElem,
		LinkType:      rec.Field(3),
		Attributes:    attrs,
	})
	return nil
}

func splitRef(s string) (graphID, elementID string, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", tsgerrors.New(tsgerrors.CodeValue, "malformed element reference %q, want graph_id:element_id", s)
	}
	return parts[0], parts[1], nil
}

func parseAttrFields(rec lex.Record, from int) ([]value.Attribute, error) {
	if from >= len(rec.Fields) {
		return nil, nil
	}
	out := make([]value.Attribute, 0, len(rec.Fields)-from)
	for _, f := range rec.Fields[from:] {
		a, err := value.ParseAttribute(f)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func atLine(line int, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*tsgerrors.Error); ok && e.Line == 0 {
		e.Line = line
		return e
	}
	return err
}
