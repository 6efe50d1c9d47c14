// Package cli implements the reelkit command-line interface.
//
// This package provides commands for validating timeline specs, inspecting
// and diagramming compositions, managing the local composition store,
// listing and discovering effect plugins, and running the HTTP API. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check a spec document for structural and timing problems
//   - inspect: Summarize a composition, render diagrams, browse interactively
//   - plugins: List registered effects, transitions, and animations
//   - store: Save, list, fetch, and delete stored compositions
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reelkit/reelkit/pkg/buildinfo"
	"github.com/reelkit/reelkit/pkg/config"
	"github.com/reelkit/reelkit/pkg/registry"
	"github.com/reelkit/reelkit/pkg/spec"
	"github.com/reelkit/reelkit/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "reelkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
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
		Use:          "reelkit",
		Short:        "Reelkit composes short-form video timelines",
		Long:         `Reelkit is a CLI tool for composing, validating, and inspecting short-form video timeline specs, with a pluggable catalog of effects, transitions, and animations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.pluginsCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Wiring
// =============================================================================

// newRegistries seeds the built-in catalog and, when pluginDir is set,
// discovers descriptor files on top of it.
func (c *CLI) newRegistries(pluginDir string) (*registry.Set, error) {
	set := registry.NewSet()
	if pluginDir == "" {
		return set, nil
	}
	n, err := set.Discover(pluginDir, c.Logger)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("plugins discovered", "dir", pluginDir, "count", n)
	return set, nil
}

// newConfig loads the layered configuration cascade rooted at the
// working directory.
func newConfig() (*config.Layered, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return config.Standard(wd)
}

// newStore opens the local file-backed composition store.
func newStore(dir string) (store.Store, error) {
	return store.NewFileStore(dir)
}

// loadSpecFile reads and decodes a spec document from path. Both JSON
// and YAML documents are accepted.
func loadSpecFile(path string) (*spec.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return spec.Unmarshal(data)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/reelkit/).
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
