package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/tsg/document"
	"github.com/tsgraph/tsg/pkg/tsg/emit"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"
)

// emitCommand builds the fa/gtf/vcf/dot/json projection subcommands. They
// share the same shape: parse a document, project it, write it to a file
// or stdout.
func (c *CLI) emitCommand(format, short string) *cobra.Command {
	var out string
	var svg bool
	var pretty bool

	cmd := &cobra.Command{
		Use:   format + " <file.tsg>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(loggerFromContext(cmd.Context()))

			doc, err := document.ParseFile(args[0])
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(out)
			if err != nil {
				return err
			}
			defer closeFn()

			switch format {
			case "fa":
				warnings, err := emit.WriteFASTA(doc, w)
				if err != nil {
					return err
				}
				for _, warn := range warnings {
					printWarning("%s", warn.String())
				}
			case "gtf":
				if err := emit.WriteGTF(doc, w); err != nil {
					return err
				}
			case "vcf":
				if err := emit.WriteVCF(doc, w); err != nil {
					return err
				}
			case "json":
				if err := emit.WriteJSON(doc, w, pretty); err != nil {
					return err
				}
			case "dot":
				dot := emit.ToDOT(doc)
				if svg {
					rendered, err := emit.RenderSVG(dot)
					if err != nil {
						return err
					}
					if _, err := w.Write(rendered); err != nil {
						return err
					}
				} else if _, err := io.WriteString(w, dot); err != nil {
					return err
				}
			}

			if out != "" {
				printFile(out)
			}
			p.done(format + " complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	if format == "dot" {
		cmd.Flags().BoolVar(&svg, "svg", false, "render to SVG instead of DOT source")
	}
	if format == "json" {
		cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	}
	return cmd
}

// openOutput opens path for writing, or returns stdout when path is empty.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, tsgerrors.Wrap(tsgerrors.CodeIO, err, "create %s", path)
	}
	return f, func() { f.Close() }, nil
}
