package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/pkg/registry"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the components in the registry artifact",
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

			out := cmd.OutOrStdout()
			if names {
				for _, n := range reg.Names() {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			fmt.Fprintln(out, componentTable(reg))
			printStats(reg.Len(), len(reg.DependencyCounts()), false)
			return nil
		},
	}

	addArtifactFlag(cmd)
	cmd.Flags().BoolVar(&names, "names", false, "print only component names, one per line")
	return cmd
}

// componentTable renders reg as a bordered table.
func componentTable(reg *registry.Registry) string {
	rows := make([][]string, 0, reg.Len())
	for _, e := range reg.Entries() {
		rows = append(rows, []string{
			e.Name,
			e.DisplayName,
			strings.Join(e.Dependencies, ", "),
			orDash(strings.Join(e.RegistryDependencies, ", ")),
			truncate(e.Description, 48),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(colorCyan)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite)
	dimStyle := lipgloss.NewStyle().Foreground(colorDim)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Title", "Dependencies", "Requires", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return nameStyle.Padding(0, 1)
			case col == 4:
				return dimStyle.Padding(0, 1)
			}
			return cellStyle.Padding(0, 1)
		})
	return t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
