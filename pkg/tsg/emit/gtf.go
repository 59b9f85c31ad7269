package emit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tsgraph/tsg/pkg/tsg/document"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
)

// WriteGTF projects every ordered path in doc to a GTF transcript/exon
// pair: the path becomes one `transcript` feature, and each node element
// it visits becomes one `exon` feature with gene_id = section id,
// transcript_id = path id (spec §6).
func WriteGTF(doc *document.Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range doc.Sections() {
		for _, p := range s.Paths() {
			if err := writeGTFPath(bw, s, p); err != nil {
				return err
			}
		}
	}
	return tsgerrors.Wrap(tsgerrors.CodeIO, bw.Flush(), "flushing GTF output")
}

func writeGTFPath(w *bufio.Writer, s *graph.Section, p *graph.OrderedPath) error {
	nodes := pathNodes(s, p)
	if len(nodes) == 0 {
		return nil
	}
	start, end := nodes[0].Location.Span()
	for _, n := range nodes[1:] {
		ns, ne := n.Location.Span()
		if ns < start {
			start = ns
		}
		if ne > end {
			end = ne
		}
	}
	chrom := nodes[0].Location.Chromosome
	strand := nodes[0].Location.Strand.String()
	attrs := fmt.Sprintf("gene_id %q; transcript_id %q;", s.ID, p.ID)
	fmt.Fprintf(w, "%s\tTSG\ttranscript\t%d\t%d\t.\t%s\t.\t%s\n", chrom, start, end, strand, attrs)

	for _, n := range nodes {
		nStart, nEnd := n.Location.Span()
		fmt.Fprintf(w, "%s\tTSG\texon\t%d\t%d\t.\t%s\t.\t%s\n", n.Location.Chromosome, nStart, nEnd, strand, attrs)
	}
	return nil
}

// pathNodes resolves a path's node elements (skipping edge elements) to
// their Node records, in path order.
func pathNodes(s *graph.Section, p *graph.OrderedPath) []*graph.Node {
	var nodes []*graph.Node
	for _, elem := range p.Elements {
		n, ok := s.Node(elem.ID)
		if !ok {
			continue // edge or set element; not an exon-bearing node
		}
		nodes = append(nodes, n)
	}
	return nodes
}
