package document

import (
	"bytes"
	"strings"
	"testing"

	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

func mustParse(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func serializeString(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Serialize(doc, &buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	return buf.String()
}

// Scenario A: single-graph parse and round-trip.
func TestSingleGraphRoundTrip(t *testing.T) {
	input := "H\tTSG\t1.0\n" +
		"N\tn1\tchr1:+:1000-1200\tread1:SO\tACGT\n" +
		"N\tn2\tchr1:+:2000-2200\tread1:SI\tTGCA\n" +
		"E\te1\tn1\tn2\tchr1,chr1,1200,2000,splice\n" +
		"C\tchain1\tn1\te1\tn2\n" +
		"P\tt1\tn1+\te1+\tn2+\n"

	doc := mustParse(t, input)
	if len(doc.SectionIDs()) != 1 {
		t.Fatalf("SectionIDs() = %v, want 1 section", doc.SectionIDs())
	}
	s, _ := doc.Section(DefaultSectionID)
	if len(s.Nodes()) != 2 || len(s.Edges()) != 1 {
		t.Fatalf("nodes=%d edges=%d, want 2,1", len(s.Nodes()), len(s.Edges()))
	}
	if len(s.Chains()) != 1 || len(s.Paths()) != 1 {
		t.Fatalf("chains=%d paths=%d, want 1,1", len(s.Chains()), len(s.Paths()))
	}

	out := serializeString(t, doc)
	reparsed, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-parsing serialized document: %v", err)
	}
	out2 := serializeString(t, reparsed)
	if out != out2 {
		t.Errorf("serialize not idempotent:\n--- first ---\n%s\n--- second ---\n%s", out, out2)
	}
}

// Scenario B: multi-graph with inter-graph link.
func TestMultiGraphLink(t *testing.T) {
	input := "G\tgene_a\n" +
		"N\tn1\tchr1:+:1-100\t\t\n" +
		"N\tn2\tchr1:+:100-200\t\t\n" +
		"N\tn3\tchr1:+:200-300\t\t\n" +
		"E\tea1\tn1\tn2\tchr1,chr1,100,100,splice\n" +
		"E\tea2\tn2\tn3\tchr1,chr1,200,200,splice\n" +
		"G\tgene_b\n" +
		"N\tn1\tchr2:+:1-100\t\t\n" +
		"N\tn2\tchr2:+:100-200\t\t\n" +
		"N\tn3\tchr2:+:200-300\t\t\n" +
		"E\teb1\tn1\tn2\tchr2,chr2,100,100,splice\n" +
		"E\teb2\tn2\tn3\tchr2,chr2,200,200,splice\n" +
		"L\tfusion1\tgene_a:n3\tgene_b:n1\tfusion\n"

	doc := mustParse(t, input)
	if got := doc.SectionIDs(); len(got) != 2 || got[0] != "gene_a" || got[1] != "gene_b" {
		t.Fatalf("SectionIDs() = %v, want [gene_a gene_b]", got)
	}
	if len(doc.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(doc.Links))
	}
	link := doc.Links[0]
	if link.SourceGraph != "gene_a" || link.SourceElement != "n3" || link.TargetGraph != "gene_b" || link.TargetElement != "n1" {
		t.Errorf("link = %+v", link)
	}
}

func TestLinkUnknownGraphRejected(t *testing.T) {
	input := "G\tgene_a\nN\tn1\t\t\t\nL\tbad\tgene_a:n1\tgene_z:n1\tfusion\n"
	_, err := Parse(strings.NewReader(input))
	if err == nil || !tsgerrors.Is(err, tsgerrors.CodeReference) {
		t.Errorf("expected ReferenceError, got %v", err)
	}
}

// Scenario C: chain-only construction.
func TestChainOnlyConstruction(t *testing.T) {
	input := "C\tchain1\tn1\te1\tn2\te2\tn3\n"
	doc := mustParse(t, input)
	s, ok := doc.Section(DefaultSectionID)
	if !ok {
		t.Fatal("default section not found")
	}
	if len(s.Nodes()) != 3 {
		t.Fatalf("len(Nodes()) = %d, want 3", len(s.Nodes()))
	}
	if len(s.Edges()) != 2 {
		t.Fatalf("len(Edges()) = %d, want 2", len(s.Edges()))
	}
	e1, ok := s.Edge("e1")
	if !ok || e1.Source != "n1" || e1.Sink != "n2" {
		t.Errorf("e1 = %+v, ok=%v", e1, ok)
	}

	out := serializeString(t, doc)
	if !strings.Contains(out, "N\tn1") || !strings.Contains(out, "E\te1\tn1\tn2") {
		t.Errorf("expected synthesized N/E lines in output:\n%s", out)
	}
}

func TestDuplicateGraphIDRejected(t *testing.T) {
	input := "G\tg1\nG\tg1\n"
	_, err := Parse(strings.NewReader(input))
	if err == nil || !tsgerrors.Is(err, tsgerrors.CodeDuplicate) {
		t.Errorf("expected DuplicateError, got %v", err)
	}
}

func TestCrossFamilyDuplicateRejected(t *testing.T) {
	input := "N\tn1\t\t\t\nU\tn1\tn1\n"
	_, err := Parse(strings.NewReader(input))
	if err == nil || !tsgerrors.Is(err, tsgerrors.CodeDuplicate) {
		t.Errorf("expected DuplicateError for cross-family id reuse, got %v", err)
	}
}

func TestGraphAttributeRoundTrip(t *testing.T) {
	input := "G\tg1\tdepth:i:5\nN\tn1\t\t\t\nA\tG\tg1\tnotes:Z:hello\n"
	doc := mustParse(t, input)
	s, _ := doc.Section("g1")
	if len(s.Attributes) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(s.Attributes))
	}

	out := serializeString(t, doc)
	reparsed, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-parsing: %v", err)
	}
	s2, _ := reparsed.Section("g1")
	if len(s2.Attributes) != 2 {
		t.Errorf("after round trip len(Attributes) = %d, want 2", len(s2.Attributes))
	}
}
