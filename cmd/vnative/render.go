package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vnative/internal/config"
	"github.com/vango-dev/vnative/pkg/appdoc"
	"github.com/vango-dev/vnative/pkg/inspector"
	"github.com/vango-dev/vnative/pkg/widget"
)

func renderCmd(dir *string) *cobra.Command {
	var rootKey string

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a document and print the native view tree",
		Long: `Render an application document into a ContentView and print the
resulting native views.

The document defaults to the app entry of vnative.json.

Examples:
  vnative render
  vnative render screens/login.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*dir)
			if err != nil {
				return err
			}
			path := cfg.AppPath()
			if len(args) == 1 {
				path = args[0]
			}
			if rootKey == "" {
				rootKey = cfg.RootKey
			}

			doc, err := appdoc.Load(path, appdoc.Options{})
			if err != nil {
				return err
			}

			renderer := newRenderer(cfg, newLogger(cfg), prometheus.NewRegistry())
			container := widget.NewContentView()
			if _, err := renderer.Render(doc.Element(), container, nil, rootKey); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatTree(inspector.Snapshot(container)))
			return nil
		},
	}

	cmd.Flags().StringVar(&rootKey, "root", "", "Root key to render into (default from config)")
	return cmd
}
