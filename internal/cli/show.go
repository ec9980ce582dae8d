package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/pkg/service"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var sourceOnly bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the registry document for a component",
		Long: `Resolve a component exactly as the server would and print its document.

Components missing from the artifact are read from the source directory.`,
		Example: `  uiregistry show glass-button
  uiregistry show glass-button --source-only > glass-button.tsx`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return c.completeComponents(cmd, args)
		},
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

			reg, _, err := loadRegistry(ctx, cfg.Artifact.URL)
			if err != nil {
				return err
			}
			svc := service.New(reg, service.Config{
				SourceDir: cfg.Source.Dir,
				Suffix:    cfg.Source.Suffix,
				Namespace: cfg.Serve.Namespace,
				Extension: cfg.Serve.Extension,
				Detector:  det,
				Logger:    logger,
			})

			doc, state, err := svc.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			logger.Debug("resolved component", "name", doc.Name, "state", state)

			out := cmd.OutOrStdout()
			if sourceOnly {
				_, err := fmt.Fprint(out, doc.Files[0].Content)
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	addSourceFlags(cmd)
	addArtifactFlag(cmd)
	cmd.Flags().BoolVar(&sourceOnly, "source-only", false, "print only the component source")
	return cmd
}

// completeComponents offers component names from the configured artifact.
func (c *CLI) completeComponents(cmd *cobra.Command, args []string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	reg, _, err := loadRegistry(ctx, cfg.Artifact.URL)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return reg.Names(), cobra.ShellCompDirectiveNoFileComp
}
