package emit

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tsgraph/tsg/pkg/tsg/document"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/value"
)

const vcfHeader = `##fileformat=VCFv4.2
##INFO=<ID=SVTYPE,Number=1,Type=String,Description="Type of structural variant">
##INFO=<ID=CHR2,Number=1,Type=String,Description="Chromosome of second breakpoint">
##INFO=<ID=SVEND,Number=1,Type=Integer,Description="End position of the structural variant">
##INFO=<ID=STRAND1,Number=1,Type=String,Description="Strand of the first breakpoint">
##INFO=<ID=STRAND2,Number=1,Type=String,Description="Strand of the second breakpoint">
##INFO=<ID=SR_ID,Number=.,Type=String,Description="Supporting read ids">
##INFO=<ID=transcript_id,Number=.,Type=String,Description="Transcript path ids traversing this edge">
##INFO=<ID=gene_id,Number=1,Type=String,Description="Source section id">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
`

// WriteVCF projects every edge whose structural-variant descriptor is not
// the splice placeholder to one VCF record (spec §6, Scenario G).
func WriteVCF(doc *document.Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(vcfHeader); err != nil {
		return tsgerrors.Wrap(tsgerrors.CodeIO, err, "writing VCF header")
	}
	for _, s := range doc.Sections() {
		transcripts := edgeTranscripts(s)
		for _, e := range s.Edges() {
			if e.SV.IsSplice() {
				continue
			}
			if err := writeVCFRecord(bw, s, e, transcripts[e.ID]); err != nil {
				return err
			}
		}
	}
	return tsgerrors.Wrap(tsgerrors.CodeIO, bw.Flush(), "flushing VCF output")
}

// edgeTranscripts maps each edge id to the ids of paths traversing it, so
// INFO/transcript_id can cite every transcript an SV edge participates in.
func edgeTranscripts(s *graph.Section) map[string][]string {
	out := map[string][]string{}
	for _, p := range s.Paths() {
		for _, elem := range p.Elements {
			if _, ok := s.Edge(elem.ID); ok {
				out[elem.ID] = append(out[elem.ID], p.ID)
			}
		}
	}
	return out
}

func writeVCFRecord(w *bufio.Writer, s *graph.Section, e *graph.Edge, transcriptIDs []string) error {
	sv := e.SV
	readIDs := edgeReadIDs(s, e)

	info := []string{
		"SVTYPE=" + sv.Type,
		fmt.Sprintf("CHR2=%s", sv.Ref2),
		fmt.Sprintf("SVEND=%d", sv.Breakpoint2),
		fmt.Sprintf("STRAND1=%s", strandOf(s, e.Source)),
		fmt.Sprintf("STRAND2=%s", strandOf(s, e.Sink)),
		fmt.Sprintf("gene_id=%s", s.ID),
	}
	if len(readIDs) > 0 {
		info = append(info, "SR_ID="+strings.Join(readIDs, ","))
	}
	if len(transcriptIDs) > 0 {
		info = append(info, "transcript_id="+strings.Join(transcriptIDs, ","))
	}

	_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\t<%s>\t.\t.\t%s\n",
		sv.Ref1, sv.Breakpoint1, e.ID, refBase, sv.Type, strings.Join(info, ";"))
	return tsgerrors.Wrap(tsgerrors.CodeIO, err, "writing VCF record for edge %s", e.ID)
}

// refBase is a placeholder REF allele: TSG edges carry no base-level
// sequence, so every structural-variant record uses the VCF convention of
// an unresolved reference base.
const refBase = "N"

func strandOf(s *graph.Section, nodeID string) string {
	n, ok := s.Node(nodeID)
	if !ok {
		return "?"
	}
	return n.Location.Strand.String()
}

func edgeReadIDs(s *graph.Section, e *graph.Edge) []string {
	srcReads, sinkReads := map[string]struct{}{}, map[string]struct{}{}
	if n, ok := s.Node(e.Source); ok {
		srcReads = value.IDSet(n.Reads)
	}
	if n, ok := s.Node(e.Sink); ok {
		sinkReads = value.IDSet(n.Reads)
	}
	var out []string
	for id := range srcReads {
		if _, ok := sinkReads[id]; ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
