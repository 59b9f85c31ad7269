package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsgraph/tsg/pkg/tsg/document"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

// FASTAWarning reports one ordered path that could not contribute a
// complete sequence because one of its nodes has no inline sequence.
type FASTAWarning struct {
	SectionID string
	PathID    string
	NodeID    string
}

func (w FASTAWarning) String() string {
	return fmt.Sprintf("%s/%s: node %s has no inline sequence, skipped", w.SectionID, w.PathID, w.NodeID)
}

// WriteFASTA projects every ordered path to one FASTA record: the
// concatenation, in path order, of its constituent nodes' inline
// sequences. Unlike the original reference implementation, a node missing
// an inline sequence does not abort the whole emission — that path is
// skipped and a warning is returned for it instead (spec §6).
func WriteFASTA(doc *document.Document, w io.Writer) ([]FASTAWarning, error) {
	bw := bufio.NewWriter(w)
	var warnings []FASTAWarning

	for _, s := range doc.Sections() {
		for _, p := range s.Paths() {
			nodes := pathNodes(s, p)
			var seq strings.Builder
			skip := false
			for _, n := range nodes {
				if n.Sequence == "" {
					warnings = append(warnings, FASTAWarning{SectionID: s.ID, PathID: p.ID, NodeID: n.ID})
					skip = true
					break
				}
				seq.WriteString(n.Sequence)
			}
			if skip || seq.Len() == 0 {
				continue
			}
			if _, err := fmt.Fprintf(bw, ">%s %s\n", p.ID, s.ID); err != nil {
				return warnings, tsgerrors.Wrap(tsgerrors.CodeIO, err, "writing FASTA header for %s", p.ID)
			}
			if err := writeWrapped(bw, seq.String(), 70); err != nil {
				return warnings, err
			}
		}
	}
	return warnings, tsgerrors.Wrap(tsgerrors.CodeIO, bw.Flush(), "flushing FASTA output")
}

// writeWrapped writes seq wrapped at width characters per line, the
// conventional FASTA line length.
func writeWrapped(w *bufio.Writer, seq string, width int) error {
	for len(seq) > width {
		if _, err := fmt.Fprintln(w, seq[:width]); err != nil {
			return tsgerrors.Wrap(tsgerrors.CodeIO, err, "writing FASTA sequence line")
		}
		seq = seq[width:]
	}
	if len(seq) > 0 {
		if _, err := fmt.Fprintln(w, seq); err != nil {
			return tsgerrors.Wrap(tsgerrors.CodeIO, err, "writing FASTA sequence line")
		}
	}
	return nil
}
