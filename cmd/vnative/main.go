package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vnative"
	"github.com/vango-dev/vnative/internal/config"
	"github.com/vango-dev/vnative/pkg/hostconfig"
	"github.com/vango-dev/vnative/pkg/widget"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "vnative",
		Short: "Render declarative application documents into native views",
		Long: `vnative renders element trees into a native widget tree.

Application documents are YAML descriptions of a view tree. The CLI can
render a document once and print the resulting views, or watch it and
re-render into the same root on every save.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "Project directory holding vnative.json or vnative.toml")

	cmd.AddCommand(
		renderCmd(&dir),
		devCmd(&dir),
		typesCmd(),
		versionCmd(),
	)
	return cmd
}

// newLogger builds the CLI logger at the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

// newRenderer builds a renderer recording metrics into reg.
func newRenderer(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) *vnative.Renderer {
	app := widget.DefaultApplication()
	host := hostconfig.New(
		hostconfig.WithLogger(logger),
		hostconfig.WithLoop(app.Loop()),
		hostconfig.WithMetrics(hostconfig.NewMetrics(
			hostconfig.WithNamespace(cfg.Metrics.Namespace),
			hostconfig.WithRegistry(reg),
		)),
	)
	return vnative.NewRenderer(
		vnative.WithHostConfig(host),
		vnative.WithApplication(app),
		vnative.WithLogger(logger),
	)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
