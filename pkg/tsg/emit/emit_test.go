package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tsgraph/tsg/pkg/tsg/document"
)

func mustParse(t *testing.T, input string) *document.Document {
	t.Helper()
	doc, err := document.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

// Scenario G: an edge with a non-splice SV descriptor projects to one VCF
// record carrying SVTYPE, SVEND, CHR2, and SR_ID.
func TestWriteVCF(t *testing.T) {
	input := "N\tn1\tchr1:+:1000-1700\tr1:SO,r2:SO\tACGT\n" +
		"N\tn2\tchr1:+:2000-2500\tr1:SI,r2:SI\tTGCA\n" +
		"E\te1\tn1\tn2\tchr1,chr1,1700,2000,INV\n"
	doc := mustParse(t, input)

	var buf bytes.Buffer
	if err := WriteVCF(doc, &buf); err != nil {
		t.Fatalf("WriteVCF: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"SVTYPE=INV", "POS", "1700", "CHR2=chr1", "SVEND=2000", "SR_ID="} {
		if !strings.Contains(out, want) {
			t.Errorf("VCF output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "r1") || !strings.Contains(out, "r2") {
		t.Errorf("VCF output missing supporting read ids:\n%s", out)
	}
}

// A splice-type edge (the default inter-exon adjacency) must not produce a
// VCF record.
func TestWriteVCFSkipsSpliceEdges(t *testing.T) {
	input := "N\tn1\tchr1:+:1000-1200\t\t\n" +
		"N\tn2\tchr1:+:2000-2200\t\t\n" +
		"E\te1\tn1\tn2\tchr1,chr1,1200,2000,splice\n"
	doc := mustParse(t, input)

	var buf bytes.Buffer
	if err := WriteVCF(doc, &buf); err != nil {
		t.Fatalf("WriteVCF: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for _, l := range lines {
		if l != "" && !strings.HasPrefix(l, "#") {
			t.Errorf("unexpected data line for splice-only edge: %q", l)
		}
	}
}

func TestWriteGTF(t *testing.T) {
	input := "N\tn1\tchr1:+:1000-1200\t\tACGT\n" +
		"N\tn2\tchr1:+:2000-2200\t\tTGCA\n" +
		"E\te1\tn1\tn2\tchr1,chr1,1200,2000,splice\n" +
		"P\tt1\tn1+\te1+\tn2+\n"
	doc := mustParse(t, input)

	var buf bytes.Buffer
	if err := WriteGTF(doc, &buf); err != nil {
		t.Fatalf("WriteGTF: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "transcript") || !strings.Contains(out, "exon") {
		t.Errorf("GTF output missing transcript/exon features:\n%s", out)
	}
	if !strings.Contains(out, `transcript_id "t1"`) || !strings.Contains(out, `gene_id "G.graph"`) {
		t.Errorf("GTF output missing expected attributes:\n%s", out)
	}
}

func TestWriteFASTA(t *testing.T) {
	input := "N\tn1\tchr1:+:1000-1200\t\tACGT\n" +
		"N\tn2\tchr1:+:2000-2200\t\tTGCA\n" +
		"E\te1\tn1\tn2\tchr1,chr1,1200,2000,splice\n" +
		"P\tt1\tn1+\te1+\tn2+\n"
	doc := mustParse(t, input)

	var buf bytes.Buffer
	warnings, err := WriteFASTA(doc, &buf)
	if err != nil {
		t.Fatalf("WriteFASTA: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	out := buf.String()
	if !strings.Contains(out, ">t1") || !strings.Contains(out, "ACGTTGCA") {
		t.Errorf("FASTA output = %q", out)
	}
}

func TestWriteFASTAWarnsOnMissingSequence(t *testing.T) {
	input := "N\tn1\tchr1:+:1000-1200\t\t\n" +
		"N\tn2\tchr1:+:2000-2200\t\tTGCA\n" +
		"E\te1\tn1\tn2\tchr1,chr1,1200,2000,splice\n" +
		"P\tt1\tn1+\te1+\tn2+\n"
	doc := mustParse(t, input)

	var buf bytes.Buffer
	warnings, err := WriteFASTA(doc, &buf)
	if err != nil {
		t.Fatalf("WriteFASTA: %v", err)
	}
	if len(warnings) != 1 || warnings[0].NodeID != "n1" {
		t.Fatalf("warnings = %+v, want one warning for n1", warnings)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no FASTA output for the skipped path, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	input := "N\tn1\tchr1:+:1000-1200\t\t\n"
	doc := mustParse(t, input)

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf, false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"headers"`, `"sections"`, `"nodes"`, `"n1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q:\n%s", want, out)
		}
	}
}

func TestToDOT(t *testing.T) {
	input := "N\tn1\t\t\t\nN\tn2\t\t\t\nE\te1\tn1\tn2\tchr1,chr1,100,200,splice\n"
	doc := mustParse(t, input)
	out := ToDOT(doc)
	if !strings.Contains(out, "digraph TSG") {
		t.Errorf("DOT output missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, "subgraph cluster_0") {
		t.Errorf("DOT output missing section subgraph:\n%s", out)
	}
}
