package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vnative/internal/config"
	"github.com/vango-dev/vnative/internal/dev"
	vnerrors "github.com/vango-dev/vnative/internal/errors"
	"github.com/vango-dev/vnative/pkg/inspector"
)

func devCmd(dir *string) *cobra.Command {
	var (
		addr        string
		noInspector bool
	)

	cmd := &cobra.Command{
		Use:   "dev [document]",
		Short: "Render a document and re-render it on every change",
		Long: `Render an application document and watch it for changes.

Every save re-renders the document into the same root, so the
reconciler updates the existing views in place. The inspector serves
the live tree, metrics and a stream of commits while dev runs.

Examples:
  vnative dev
  vnative dev app.yaml --addr=localhost:9000
  vnative dev --no-inspector`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*dir)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.App = args[0]
			}
			if addr != "" {
				cfg.Inspector.Addr = addr
			}
			if noInspector {
				disabled := false
				cfg.Inspector.Enabled = &disabled
			}
			return runDev(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Inspector listen address (default from config)")
	cmd.Flags().BoolVar(&noInspector, "no-inspector", false, "Do not start the inspector")

	return cmd
}

func runDev(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)
	reg := prometheus.NewRegistry()
	renderer := newRenderer(cfg, logger, reg)
	lock := &sync.Mutex{}

	var notifier dev.Notifier
	var insp *inspector.Inspector
	if cfg.InspectorEnabled() {
		insp = inspector.New(renderer,
			inspector.WithLogger(logger),
			inspector.WithGatherer(reg),
			inspector.WithLock(lock),
		)
		defer insp.Close()
		notifier = insp.Hub()
	}

	reloader := dev.NewReloader(renderer, dev.ReloaderConfig{
		Document: cfg.AppPath(),
		RootKey:  cfg.RootKey,
		Lock:     lock,
		Notifier: notifier,
		Logger:   logger,
	})
	if err := reloader.Reload(); err != nil {
		return err
	}
	success("Rendered %s into root %q", cfg.AppPath(), cfg.RootKey)

	errCh := make(chan error, 2)
	if insp != nil {
		go func() {
			if err := insp.ListenAndServe(ctx, cfg.Inspector.Addr); err != nil {
				errCh <- vnerrors.New("E031").WithDetail(cfg.Inspector.Addr).Wrap(err)
			}
		}()
		info("Inspector:  http://%s/roots", cfg.Inspector.Addr)
	} else {
		warn("Inspector disabled")
	}

	watcher := dev.NewWatcher(dev.WatcherConfig{
		Paths:    cfg.WatchPaths(),
		Debounce: cfg.DebounceDuration(),
	})
	watcher.OnChange(reloader.HandleChange)
	go func() {
		errCh <- watcher.Start(ctx)
	}()
	info("Watching:   %d path(s), press Ctrl+C to stop", len(cfg.WatchPaths()))

	select {
	case <-ctx.Done():
		watcher.Stop()
		return nil
	case err := <-errCh:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}
