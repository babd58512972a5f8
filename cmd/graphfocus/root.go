package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/anthonybishopric/graphfocus/internal/config"
	"github.com/anthonybishopric/graphfocus/internal/logging"
	"github.com/anthonybishopric/graphfocus/internal/ui"
	"github.com/anthonybishopric/graphfocus/pkg/settings"
)

var version = "0.1.0"

// app holds state shared by every command once flags are parsed.
type app struct {
	cfgPath      string
	settingsPath string
	logLevel     string
	logFormat    string
	width        int
	height       int
	filterOrphan bool
	selected     string
	title        string

	cfg      *config.Config
	logger   *slog.Logger
	settings settings.Overrides
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "graphfocus",
		Short: "graphfocus: interactive directed graph highlighting",
		Long: ui.Brand.Sprint("graphfocus") + ": draw a directed graph and explore it\n" +
			ui.Subtle.Sprint("Hover to highlight neighbours, hold Shift to trace what refers to a node and Control to trace what it refers to"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetVersionTemplate("graphfocus {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	pf.StringVar(&a.settingsPath, "settings", "", "Graph settings overrides file (.json, .yaml or .toml)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	pf.IntVar(&a.width, "width", 0, "Drawing width")
	pf.IntVar(&a.height, "height", 0, "Drawing height")
	pf.BoolVar(&a.filterOrphan, "filter-orphan", false, "Hide nodes without edges")
	pf.StringVar(&a.selected, "selected", "", "Initially selected node ID")
	pf.StringVar(&a.title, "title", "", "Page title")

	root.AddCommand(
		renderCmd(a),
		snapshotCmd(a),
		relatedCmd(a),
		filterCmd(a),
		exploreCmd(a),
		serveCmd(a),
	)
	return root
}

// setup loads the config file and layers flags over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("width") {
		cfg.Render.Width = a.width
	}
	if flags.Changed("height") {
		cfg.Render.Height = a.height
	}
	if flags.Changed("filter-orphan") {
		cfg.Render.FilterOrphan = a.filterOrphan
	}
	if flags.Changed("title") {
		cfg.Render.Title = a.title
	}

	a.settings = cfg.Graph
	if a.settingsPath != "" {
		o, err := settings.LoadOverrides(a.settingsPath)
		if err != nil {
			return err
		}
		a.settings = settings.Combine(a.settings, o)
	}
	cfg.Graph = a.settings
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(cfg.Log.Format, cfg.Log.Level, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", "config", a.cfgPath, "settings", a.settingsPath)
	return nil
}

// Execute runs the root command.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		ui.Bad.Fprintf(os.Stderr, "graphfocus: %v\n", err)
	}
	return err
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Written to %s\n", ui.StatusIcon(true), path)
	return nil
}

func resolvedSettings(a *app) settings.Settings {
	return settings.Resolve(a.settings)
}

func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
