package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/tsg/document"
)

// mergeCommand concatenates multiple TSG documents into one, preserving
// section order and renumbering graph_id only on collision.
func (c *CLI) mergeCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "merge <file.tsg>...",
		Short: "Merge multiple TSG documents into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(loggerFromContext(cmd.Context()))

			docs := make([]*document.Document, len(args))
			for i, path := range args {
				doc, err := document.ParseFile(path)
				if err != nil {
					return err
				}
				docs[i] = doc
			}

			merged, err := document.Merge(docs)
			if err != nil {
				return err
			}

			if out == "" {
				out = "merged.tsg"
			}
			if err := document.WriteFile(merged, out); err != nil {
				return err
			}

			printSuccess("merged %d documents into %d sections", len(docs), len(merged.SectionIDs()))
			printFile(out)
			p.done("merge complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default merged.tsg)")
	return cmd
}

// splitCommand produces one output file per section of a TSG document,
// named by graph_id, dropping inter-graph links (an endpoint can no
// longer live in a single output file once split).
func (c *CLI) splitCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "split <file.tsg>",
		Short: "Split a TSG document into one file per section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(loggerFromContext(cmd.Context()))

			doc, err := document.ParseFile(args[0])
			if err != nil {
				return err
			}

			docs, err := document.Split(doc)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = "."
			}
			for i, d := range docs {
				id := doc.SectionIDs()[i]
				path := filepath.Join(outDir, sanitizeFilename(id)+".tsg")
				if err := document.WriteFile(d, path); err != nil {
					return err
				}
				printFile(path)
			}

			printSuccess("split %s into %d sections", args[0], len(docs))
			p.done("split complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "output directory (default: current directory)")
	return cmd
}

// sanitizeFilename replaces path separators in a graph_id so it can be
// used as a filename component.
func sanitizeFilename(id string) string {
	r := strings.NewReplacer("/", "_", string(filepath.Separator), "_")
	return r.Replace(id)
}
