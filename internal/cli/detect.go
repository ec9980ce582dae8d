package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/internal/config"
	"github.com/matzehuels/uiregistry/pkg/detect"
	"github.com/matzehuels/uiregistry/pkg/docmeta"
	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/naming"
)

// detectCommand creates the detect command.
func (c *CLI) detectCommand() *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "detect <file>...",
		Short: "Show the dependencies and description inferred for source files",
		Long: `Run dependency detection and metadata extraction on component files without
building the registry. Useful for checking why a component lists a package.`,
		Example: `  uiregistry detect components/ui/glass-button.tsx
  uiregistry detect --mode imports --explain components/ui/*.tsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			det, err := cfg.Detector()
			if err != nil {
				return err
			}

			for i, path := range args {
				if i > 0 {
					printNewline()
				}
				if err := describeFile(det, cfg, path, explain); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().String(flagMode, string(detect.ModeSubstring), "dependency detection mode ("+detect.ModeNames()+")")
	cmd.Flags().String(flagSuffix, config.DefaultSuffix, "component file suffix")
	cmd.Flags().BoolVar(&explain, "explain", false, "show which rules matched")
	return cmd
}

func describeFile(det *detect.Detector, cfg config.Config, path string, explain bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	src := string(data)

	base := filepath.Base(path)
	id, ok := naming.Identifier(base, cfg.Source.Suffix)
	if !ok {
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	printInfo("%s", StyleHighlight.Render(id))
	printKeyValue("Title", naming.DisplayName(id))
	printKeyValue("Description", docmeta.Description(src, id))
	printKeyValue("Dependencies", strings.Join(det.Detect(src), ", "))
	if block, ok := docmeta.Parse(src); ok {
		if deps := block.RegistryDependencies(); len(deps) > 0 {
			printKeyValue("Requires", strings.Join(deps, ", "))
		}
	}

	if !explain {
		return nil
	}
	rules := det.Matches(src)
	if len(rules) == 0 {
		printDetail("no rule matched; default %q applies", detect.DefaultDependency)
	} else {
		printDetail("rules: %s", strings.Join(rules, ", "))
	}
	if det.Mode() == detect.ModeImports {
		imports := detect.ImportedPackages(detect.StripComments(src))
		printDetail("imports: %s", orDash(strings.Join(imports, ", ")))
	}
	return nil
}
