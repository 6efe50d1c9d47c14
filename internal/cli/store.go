package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reelkit/reelkit/pkg/spec"
	"github.com/reelkit/reelkit/pkg/store"
	"github.com/reelkit/reelkit/pkg/timeline"
)

// storeCommand creates the store command for managing saved compositions.
func (c *CLI) storeCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage locally saved compositions",
		Long: `Manage locally saved compositions.

Compositions are stored as JSON files under ~/.config/reelkit/compositions/
by default; pass --dir to use a different directory.`,
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", "", "composition store directory")

	cmd.AddCommand(c.storeSaveCommand(&dir))
	cmd.AddCommand(c.storeListCommand(&dir))
	cmd.AddCommand(c.storeGetCommand(&dir))
	cmd.AddCommand(c.storeDeleteCommand(&dir))

	return cmd
}

func (c *CLI) storeSaveCommand(dir *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [spec.json|spec.yaml]",
		Short: "Save a spec document as a named composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadSpecFile(args[0])
			if err != nil {
				printError("Could not read %s", args[0])
				return err
			}
			// Only buildable compositions are stored.
			b, err := timeline.FromSpec(doc)
			if err == nil {
				_, err = b.Build()
			}
			if err != nil {
				printError("%s is not a valid composition", args[0])
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			st, err := newStore(*dir)
			if err != nil {
				return err
			}
			comp := store.New(name, doc)
			if err := st.Put(cmd.Context(), comp); err != nil {
				return err
			}

			printSuccess("Saved %s", name)
			printKeyValue("id", comp.ID.String())
			printStats(len(doc.Tracks), doc.ClipCount(), doc.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "composition name (defaults to the file name)")

	return cmd
}

func (c *CLI) storeListCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved compositions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStore(*dir)
			if err != nil {
				return err
			}
			all, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				printInfo("No saved compositions")
				return nil
			}
			for _, comp := range all {
				clips := 0
				duration := 0.0
				if comp.Spec != nil {
					clips = comp.Spec.ClipCount()
					duration = comp.Spec.Duration
				}
				fmt.Println(StyleValue.Render(comp.Name) + StyleDim.Render(fmt.Sprintf(
					"  %s · %d clips · %.2fs · %s",
					comp.ID, clips, duration, comp.UpdatedAt.Format("2006-01-02 15:04"),
				)))
			}
			return nil
		},
	}
}

func (c *CLI) storeGetCommand(dir *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Write a saved composition's spec to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				printError("Malformed composition id %s", args[0])
				return err
			}
			st, err := newStore(*dir)
			if err != nil {
				return err
			}
			comp, err := st.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			data, err := encodeSpec(comp.Spec, output)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			printSuccess("Exported %s", comp.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .yaml); stdout when omitted")

	return cmd
}

func (c *CLI) storeDeleteCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				printError("Malformed composition id %s", args[0])
				return err
			}
			st, err := newStore(*dir)
			if err != nil {
				return err
			}
			if err := st.Delete(cmd.Context(), id); err != nil {
				return err
			}
			printSuccess("Deleted %s", id)
			return nil
		},
	}
}

// encodeSpec marshals a spec in the format implied by the output path.
// YAML for .yaml and .yml extensions, pretty JSON otherwise.
func encodeSpec(doc *spec.Spec, output string) ([]byte, error) {
	if spec.FormatForPath(output) == spec.FormatYAML {
		return spec.MarshalYAML(doc)
	}
	return spec.Marshal(doc)
}
