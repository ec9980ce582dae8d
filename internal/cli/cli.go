package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/internal/config"
	"github.com/matzehuels/uiregistry/pkg/buildinfo"
	"github.com/matzehuels/uiregistry/pkg/detect"
	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/registry"
	"github.com/matzehuels/uiregistry/pkg/store"
)

// appName is the binary name used in help text and the version template.
const appName = "uiregistry"

// Log levels accepted by New.
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

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "uiregistry builds and serves a UI component registry",
		Long: `uiregistry scans a directory of React component sources, infers their npm
dependencies and metadata, and writes a static registry artifact. The serve
command answers shadcn-style registry requests from that artifact, falling
back to the source files for components that are not in it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.detectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// Flag names shared by several commands. Each maps onto one config key.
const (
	flagSource   = "source"
	flagSuffix   = "suffix"
	flagMode     = "mode"
	flagArtifact = "artifact"
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagSource, config.DefaultSourceDir, "component source directory")
	cmd.Flags().String(flagSuffix, config.DefaultSuffix, "component file suffix")
	cmd.Flags().String(flagMode, string(detect.ModeSubstring), "dependency detection mode ("+detect.ModeNames()+")")
}

func addArtifactFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagArtifact, config.DefaultArtifactURL, "artifact location (path, file://, redis://, mongodb://)")
}

// loadConfig reads the config file and applies flags the user set
// explicitly on cmd.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}

	overrideString(cmd, flagSource, &cfg.Source.Dir)
	overrideString(cmd, flagSuffix, &cfg.Source.Suffix)
	overrideString(cmd, flagMode, &cfg.Detect.Mode)
	overrideString(cmd, flagArtifact, &cfg.Artifact.URL)
	overrideString(cmd, "addr", &cfg.Serve.Addr)
	overrideString(cmd, "namespace", &cfg.Serve.Namespace)
	overrideString(cmd, "extension", &cfg.Serve.Extension)
	overrideBool(cmd, "fallback", &cfg.Serve.Fallback)
	overrideBool(cmd, "coalesce", &cfg.Serve.Coalesce)
	overrideBool(cmd, "metrics", &cfg.Serve.Metrics)

	return cfg, cfg.Validate()
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetString(name); err == nil {
		*dst = v
	}
}

func overrideBool(cmd *cobra.Command, name string, dst *bool) {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetBool(name); err == nil {
		*dst = v
	}
}

// =============================================================================
// Artifact Helpers
// =============================================================================

// loadRegistry opens the artifact at location and parses it. A missing
// artifact yields an empty registry and found=false.
func loadRegistry(ctx context.Context, location string) (reg *registry.Registry, found bool, err error) {
	st, err := store.Open(ctx, location)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "open artifact store")
	}
	defer st.Close()

	data, err := st.Load(ctx)
	if err == store.ErrNotFound {
		return registry.Empty(), false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "load artifact from %s", st.Location())
	}

	reg, err = registry.Parse(data)
	if err != nil {
		return nil, false, err
	}
	return reg, true, nil
}

// requireRegistry is loadRegistry for commands that need an artifact.
func requireRegistry(ctx context.Context, location string) (*registry.Registry, error) {
	reg, found, err := loadRegistry(ctx, location)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.ErrCodeNotFound, "no registry artifact at %s (run `%s build` first)", location, appName)
	}
	return reg, nil
}
