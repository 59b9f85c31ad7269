package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/buildinfo"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute builds the root command through the CLI struct and runs it to
// completion against a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is like Execute but runs the root command against ctx, so
// a caller (main) can wire process-signal cancellation through to
// long-running commands like `tsg serve`. --verbose raises the shared
// logger to debug; --quiet raises it to warn-and-above; neither leaves it
// at info.
func ExecuteContext(ctx context.Context) error {
	var verbose, quiet bool

	// SetVersion is an alternate ldflags target to buildinfo's own
	// package-level vars; only apply it when the caller actually used it,
	// so a build that sets -X buildinfo.Version directly isn't clobbered
	// by these unset zero values.
	if version != "" {
		buildinfo.Version = version
	}
	if commit != "" {
		buildinfo.Commit = commit
	}
	if date != "" {
		buildinfo.Date = date
	}

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all but warning/error logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		switch {
		case verbose:
			level = LogDebug
		case quiet:
			level = LogWarn
		}
		c.SetLogLevel(level)
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	return root.ExecuteContext(ctx)
}
