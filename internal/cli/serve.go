package cli

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/internal/metrics"
	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/service"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve registry documents over HTTP",
		Long: `Serve shadcn-style registry documents.

Components are answered from the registry artifact. Components missing from
the artifact are read from the source directory on each request, unless
--fallback=false is given.

Routes:
  GET /r/{name}.json   component document
  GET /registry.json   registry index
  GET /healthz         liveness probe
  GET /metrics         Prometheus metrics`,
		Example: `  uiregistry serve --addr :3001
  npx shadcn@latest add http://localhost:3001/r/glass-button.json`,
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

			var m *metrics.Metrics
			var metricsHandler http.Handler
			if cfg.Serve.Metrics {
				m = metrics.New()
				m.Install()
				metricsHandler = m.Handler()
			}

			reg, found, err := loadRegistry(ctx, cfg.Artifact.URL)
			if err != nil {
				return err
			}
			if !found {
				printWarning("No registry artifact at %s; serving from sources only", cfg.Artifact.URL)
			}

			svcCfg := service.Config{
				Suffix:    cfg.Source.Suffix,
				Namespace: cfg.Serve.Namespace,
				Extension: cfg.Serve.Extension,
				Name:      cfg.Serve.Name,
				Detector:  det,
				Coalesce:  cfg.Serve.Coalesce,
				Logger:    logger,
			}
			if cfg.Serve.Fallback {
				svcCfg.SourceDir = cfg.Source.Dir
			}
			svc := service.New(reg, svcCfg)

			srv := &http.Server{
				Addr:         cfg.Serve.Addr,
				Handler:      svc.Handler(metricsHandler),
				ReadTimeout:  cfg.Serve.ReadTimeout.Duration,
				WriteTimeout: cfg.Serve.WriteTimeout.Duration,
				BaseContext:  func(net.Listener) context.Context { return ctx },
			}

			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", srv.Addr)
			}

			printSuccess("Serving %s components", StyleNumber.Render(strconv.Itoa(reg.Len())))
			printKeyValue("Address", StyleLink.Render("http://"+displayAddr(ln.Addr())))
			if svcCfg.SourceDir != "" {
				printKeyValue("Fallback", svcCfg.SourceDir)
			}
			if m != nil {
				printKeyValue("Metrics", "/metrics")
			}

			return serve(ctx, srv, ln, logger)
		},
	}

	addSourceFlags(cmd)
	addArtifactFlag(cmd)
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("namespace", "ui", "install namespace (components/<namespace>/...)")
	cmd.Flags().String("extension", "tsx", "installed file extension")
	cmd.Flags().Bool("fallback", true, "read components missing from the artifact from the source directory")
	cmd.Flags().Bool("coalesce", false, "merge concurrent fallback reads of the same component")
	cmd.Flags().Bool("metrics", true, "expose Prometheus metrics at /metrics")
	return cmd
}

// serve runs srv on ln until ctx is canceled, then drains connections.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

// displayAddr turns ":8080" style listen addresses into something clickable.
func displayAddr(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
