package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/pkg/errors"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the registry interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := requireRegistry(cmd.Context(), cfg.Artifact.URL)
			if err != nil {
				return err
			}
			if reg.Len() == 0 {
				printInfo("Registry is empty")
				return nil
			}

			model := NewComponentListModel(reg, cfg.Serve.Namespace, cfg.Serve.Extension)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run browser")
			}

			m, ok := final.(ComponentListModel)
			if !ok || m.Selected == nil {
				return nil
			}
			printSuccess("%s", StyleHighlight.Render(m.Selected.DisplayName))
			printDetail("%s", m.Selected.Description)
			printNextStep("Print its source", appName+" show "+m.Selected.Name+" --source-only")
			return nil
		},
	}

	addArtifactFlag(cmd)
	return cmd
}
