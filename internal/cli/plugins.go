package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelkit/reelkit/pkg/registry"
)

// pluginsCommand creates the plugins command for inspecting the catalog.
func (c *CLI) pluginsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect the effect, transition, and animation catalog",
	}

	cmd.AddCommand(c.pluginsListCommand())
	cmd.AddCommand(c.pluginsDiscoverCommand())

	return cmd
}

// pluginsDiscoverCommand creates the plugins discover subcommand.
func (c *CLI) pluginsDiscoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover [dir]",
		Short: "Scan a directory for plugin descriptors and report what loads",
		Long: `Scan a directory for plugin descriptors and report what loads.

The directory is scanned the same way validate and serve load plugins:
one subdirectory per category (effects/, transitions/, animations/), one
TOML descriptor per file. Malformed descriptors are reported as warnings
without aborting the scan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := registry.NewEmptySet()
			n, err := set.Discover(args[0], c.Logger)
			if err != nil {
				return err
			}
			printSuccess("Discovered %d descriptors", n)
			printCatalog(set.Effects)
			printCatalog(set.Transitions)
			printCatalog(set.Animations)
			return nil
		},
	}
}

// pluginsListCommand creates the plugins list subcommand.
func (c *CLI) pluginsListCommand() *cobra.Command {
	var pluginDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered effects, transitions, and animations",
		Long: `List registered effects, transitions, and animations.

Without flags, only the built-in catalog is shown. Pass --dir to discover
descriptor files from a plugin directory on top of the built-ins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.newRegistries(pluginDir)
			if err != nil {
				return err
			}
			printCatalog(set.Effects)
			printNewline()
			printCatalog(set.Transitions)
			printNewline()
			printCatalog(set.Animations)
			return nil
		},
	}

	cmd.Flags().StringVar(&pluginDir, "dir", "", "plugin descriptor directory")

	return cmd
}

// printCatalog prints one registry's entries with their summaries.
func printCatalog(r *registry.Registry) {
	fmt.Println(StyleTitle.Render(r.Category()) + StyleDim.Render(fmt.Sprintf("  %d registered", r.Len())))
	for _, name := range r.List() {
		line := "  " + StyleValue.Render(name)
		if meta, ok := r.Meta(name); ok {
			if summary, ok := meta["summary"].(string); ok && summary != "" {
				line += StyleDim.Render("  " + summary)
			}
		}
		fmt.Println(line)
	}
}
