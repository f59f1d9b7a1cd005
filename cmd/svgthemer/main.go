// Command svgthemer renders SVG images through a theme, checks
// theme documents and lists the shapes a theme can address.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgtheme/config"
	"github.com/benoitkugler/svgtheme/logging"
	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/themecache"
)

var appVersion = "0.3.0"

// app is the state shared by the sub-commands,
// set up before any of them runs.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
	sink   logging.Sink
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "svgthemer",
		Short:         "svgthemer – draw-time theming of SVG images",
		Long:          "svgthemer renders SVG images with the styles of a JSON or YAML theme applied to their shapes.",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the configuration)")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newCheckCmd(a),
		newLintCmd(a),
		newShapesCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// without a file, the logger is configured from the environment only
	opts := logging.FromEnv()
	if a.configPath != "" {
		opts = logging.Options{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.Source,
			File:      cfg.Logging.File,
		}
	}
	if cmd.Flags().Changed("log-level") {
		opts.Level = a.logLevel
	}
	opts.Console = cmd.ErrOrStderr()
	a.logger = logging.Init(opts)
	a.sink = logging.Slog(logging.WithComponent(a.logger, cmd.Name()))
	a.logger.Debug("configuration loaded", slog.String("path", a.configPath), slog.String("command", cmd.Name()))
	return nil
}

// newCache returns a cache reporting to the command sink,
// with the configured SVG error mode.
func (a *app) newCache() *themecache.Cache {
	mode, ok := svgicon.ParseErrorMode(a.cfg.SVG.ErrorMode)
	if !ok {
		mode = svgicon.WarnErrorMode
	}
	return themecache.New(themecache.WithSink(a.sink), themecache.WithErrorMode(mode))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "svgthemer:", err)
		os.Exit(1)
	}
}
