package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/tsg/analysis"
	"github.com/tsgraph/tsg/pkg/tsg/document"
)

// parseCommand parses and validates a TSG file, printing a structural
// summary per section.
func (c *CLI) parseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file.tsg>",
		Short: "Parse and validate a TSG document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(loggerFromContext(cmd.Context()))

			doc, err := document.ParseFile(args[0])
			if err != nil {
				return err
			}

			printSuccess("parsed %s", StyleValue.Render(args[0]))
			for _, id := range doc.SectionIDs() {
				sec, _ := doc.Section(id)
				s := analysis.Summarize(sec)
				topo := analysis.ClassifyTopology(sec)
				printKeyValue(id, fmt.Sprintf("%d nodes, %d edges, %s", s.Nodes, s.Edges, topo))
			}
			if len(doc.Links) > 0 {
				printKeyValue("links", fmt.Sprintf("%d", len(doc.Links)))
			}
			p.done("parse complete")
			return nil
		},
	}
	return cmd
}
