package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/tsg/document"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

// queryCommand looks up specific elements by id across a document's
// sections and prints what each id resolves to.
func (c *CLI) queryCommand() *cobra.Command {
	var ids string
	var idsFile string

	cmd := &cobra.Command{
		Use:   "query <file.tsg>",
		Short: "Look up elements by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(loggerFromContext(cmd.Context()))

			wanted, err := collectIDs(ids, idsFile)
			if err != nil {
				return err
			}
			if len(wanted) == 0 {
				return tsgerrors.New(tsgerrors.CodeUsage, "query requires --ids or --ids-file")
			}

			doc, err := document.ParseFile(args[0])
			if err != nil {
				return err
			}

			found := 0
			for _, sec := range doc.Sections() {
				for _, id := range wanted {
					kind, ok := sec.KindOf(id)
					if !ok {
						continue
					}
					found++
					printKeyValue(sec.ID+"/"+id, kind.String())
				}
			}
			if found == 0 {
				printWarning("no matching elements for %d id(s)", len(wanted))
			}
			p.done("query complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated list of element ids to look up")
	cmd.Flags().StringVar(&idsFile, "ids-file", "", "file with one element id per line")
	return cmd
}

// collectIDs merges ids from the --ids flag and --ids-file, if given.
func collectIDs(ids, idsFile string) ([]string, error) {
	var out []string
	if ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	if idsFile != "" {
		data, err := os.ReadFile(idsFile)
		if err != nil {
			return nil, tsgerrors.Wrap(tsgerrors.CodeIO, err, "reading %s", idsFile)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out, nil
}
