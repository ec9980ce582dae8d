package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/registry"
	"github.com/matzehuels/uiregistry/pkg/store"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the registry artifact from component sources",
		Long: `Scan the source directory for component files, infer each component's npm
dependencies and description, and write the registry artifact.

The artifact is regenerated in full on every run. If any component cannot be
read the build stops and the previous artifact is left untouched.`,
		Example: `  # Build with defaults (components/ui -> registry/__generated__/registry.ts)
  uiregistry build

  # Detect dependencies from import statements as well
  uiregistry build --mode imports

  # Publish the artifact to Redis for a fleet of servers
  uiregistry build --artifact redis://localhost:6379/0?key=uiregistry:artifact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			det, err := cfg.Detector()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			st, err := store.Open(ctx, cfg.Artifact.URL)
			if err != nil {
				return errors.Wrap(errors.ErrCodeStore, err, "open artifact store")
			}
			defer st.Close()

			b := &registry.Builder{
				SourceDir: cfg.Source.Dir,
				Suffix:    cfg.Source.Suffix,
				Detector:  det,
				Logger:    logger,
			}
			logger.Debug("building registry", "source", cfg.Source.Dir, "mode", det.Mode(), "artifact", st.Location())

			res, err := b.Run(ctx, st)
			if err != nil {
				return err
			}
			prog.done("Registry built", "components", res.Registry.Len())

			printSuccess("Built registry with %s components", StyleNumber.Render(strconv.Itoa(res.Registry.Len())))
			printStats(res.Registry.Len(), len(res.Registry.DependencyCounts()), true)
			printFile(res.Location)
			printDetail("sha256 %s", res.Checksum[:12])
			printNextStep("Serve it", appName+" serve")
			return nil
		},
	}

	addSourceFlags(cmd)
	addArtifactFlag(cmd)
	return cmd
}
