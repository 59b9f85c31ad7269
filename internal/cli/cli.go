// Package cli implements the tsg command-line interface: parsing, emitting,
// traversing, merging/splitting, querying, and serving TSG documents.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/buildinfo"
	"github.com/tsgraph/tsg/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tsg"
)

// Log levels exported for use by the verbosity flags in root.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tsg",
		Short:        "tsg parses, analyzes, and projects Transcript Segment Graph documents",
		Long:         `tsg is a command-line tool for the Transcript Segment Graph (TSG) format: it parses TSG documents, classifies and traverses their section graphs, projects them into FASTA/GTF/VCF/DOT/JSON, merges and splits multi-section documents, and can serve a read-only query API over a loaded set of documents.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.emitCommand("fa", "Project section paths to FASTA"))
	root.AddCommand(c.emitCommand("gtf", "Project section paths to GTF"))
	root.AddCommand(c.emitCommand("vcf", "Project structural-variant (non-splice) edges to VCF"))
	root.AddCommand(c.emitCommand("dot", "Project a section to Graphviz DOT"))
	root.AddCommand(c.emitCommand("json", "Project a document to JSON"))
	root.AddCommand(c.traverseCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the cache backend a subcommand should use: a null cache
// when caching is disabled, otherwise a file cache rooted at cacheDir.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tsg/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default CLI config file path (~/.config/tsg/config.toml).
func configPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
