package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/gearrs/internal/config"
	"github.com/vango-dev/gearrs/internal/watch"
	"github.com/vango-dev/gearrs/pkg/document"
	"github.com/vango-dev/gearrs/pkg/server"
)

func serveCmd(root *rootOptions) *cobra.Command {
	var (
		port int
		host string
		live bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start the preview server.

The document is rebuilt from gearrs.json on every request. With --live,
open pages reload whenever gearrs.json changes.

Examples:
  gearrs serve
  gearrs serve --port=8080
  gearrs serve --host=0.0.0.0 --live`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if live {
				cfg.Server.LiveReload = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, root, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from gearrs.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from gearrs.json)")
	cmd.Flags().BoolVarP(&live, "live", "l", false, "Reload open pages when gearrs.json changes")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, root *rootOptions, cfg *config.Config) error {
	shutdown, err := cfg.ShutdownTimeout()
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Address:         cfg.Address(),
		Source:          configSource(root, cfg),
		LiveReload:      cfg.Server.LiveReload,
		Namespace:       cfg.Metrics.Namespace,
		ConstLabels:     prometheus.Labels{"version": version},
		TracerName:      cfg.Metrics.TracerName,
		Logger:          slog.Default().With("component", "server"),
		ShutdownTimeout: shutdown,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srvCfg.Registry = reg
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printBanner(out)
	success(out, "Serving on %s", cfg.URL())
	if cfg.Metrics.Enabled {
		info(out, "Metrics at %s/metrics", cfg.URL())
	} else if cfg.Server.LiveReload {
		warn(out, "Metrics disabled, live client count is not exported")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})

	if cfg.Server.LiveReload {
		path := filepath.Join(root.configDir, config.ConfigFileName)
		w := watch.New(0, path)
		w.OnChange(func(c watch.Change) {
			slog.Debug("config changed", "path", c.Path, "removed", c.Removed)
			srv.Reload()
			success(out, "Reloaded %d browsers", srv.Live().ClientCount())
		})
		info(out, "Watching %s", path)

		g.Go(func() error {
			if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// configSource rebuilds the page from gearrs.json on each request in live
// mode, so edits show up on reload. Otherwise the loaded config is served.
func configSource(root *rootOptions, cfg *config.Config) server.Source {
	if !cfg.Server.LiveReload {
		return server.StaticSource(buildPage(cfg.Document))
	}
	return func(ctx context.Context) (*document.Page, error) {
		current, err := root.loadConfig()
		if err != nil {
			return nil, err
		}
		return buildPage(current.Document), nil
	}
}
