package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/timeline"
)

// validateCommand creates the validate command for checking spec documents.
func (c *CLI) validateCommand() *cobra.Command {
	var pluginDir string

	cmd := &cobra.Command{
		Use:   "validate [spec.json|spec.yaml]",
		Short: "Check a timeline spec for structural and timing problems",
		Long: `Check a timeline spec for structural and timing problems.

The validate command decodes the document (JSON or YAML), rebuilds it
through the composition engine, and reports overlap conflicts, malformed
timing, and references to unknown effects, transitions, or animations.

Pass --plugins to resolve references against a plugin directory in
addition to the built-in catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], pluginDir)
		},
	}

	cmd.Flags().StringVar(&pluginDir, "plugins", "", "plugin descriptor directory")

	return cmd
}

// runValidate rebuilds the document and prints the verdict.
func (c *CLI) runValidate(input, pluginDir string) error {
	p := newProgress(c.Logger)

	doc, err := loadSpecFile(input)
	if err != nil {
		printError("Could not read %s", input)
		return err
	}

	registries, err := c.newRegistries(pluginDir)
	if err != nil {
		return err
	}

	cfg, err := newConfig()
	if err != nil {
		return err
	}

	b, err := timeline.FromSpec(doc,
		timeline.WithResolver(registries),
		timeline.WithConfig(cfg),
	)
	if err == nil {
		_, err = b.Build()
	}
	if err != nil {
		printError("%s is not a valid composition", input)
		printDetail("%s", errors.UserMessage(err))
		return err
	}

	p.done(fmt.Sprintf("Validated %d clips", doc.ClipCount()))
	printSuccess("%s is a valid composition", input)
	printStats(len(doc.Tracks), doc.ClipCount(), doc.Duration)
	printNextStep("Inspect it", "reelkit inspect "+input)
	return nil
}
