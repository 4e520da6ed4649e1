package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neal-igolgi/h265-benchmark/src/config"
	"github.com/neal-igolgi/h265-benchmark/src/figure"
	"github.com/neal-igolgi/h265-benchmark/src/render"
	"github.com/neal-igolgi/h265-benchmark/src/report"
)

// plotFlags are the root command's flag values before the config file is merged in.
type plotFlags struct {
	line       bool
	overlay    bool
	verbosity  int
	saveFig    string
	frameRate  float64
	find       []string
	autoscale  bool
	strictIDs  bool
	summary    bool
	configPath string
	logLevel   string
}

// runSettings is everything one run needs, flags and config file combined.
type runSettings struct {
	Figure   figure.Options
	Render   render.Options
	Report   report.Options
	SaveFig  string
	Summary  bool
	LogLevel string
}

func newRootCommand() *cobra.Command {
	var flags plotFlags

	rootCmd := &cobra.Command{
		Use:           "vmafplot [flags] FILE...",
		Short:         "Plot per-frame VMAF/ETC scores from XML reports",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, &flags)
			if err != nil {
				return err
			}
			return runPlot(cmd, args, settings)
		},
	}

	f := rootCmd.Flags()
	f.BoolVarP(&flags.line, "line", "l", false, "Plot lines instead of scatter points")
	f.BoolVarP(&flags.overlay, "overlay", "o", false, "Overlay every input on the same figure")
	f.IntVarP(&flags.verbosity, "verbosity", "v", 0, "Annotations: 1 mean & std.dev., 2 plus min & max")
	f.StringVarP(&flags.saveFig, "savefig", "s", "", "Save the figure to this path (.png, .svg, .pdf) and print statistics")
	f.Float64VarP(&flags.frameRate, "framerate", "r", 0, "Frame rate; shows time in seconds on the x axis")
	f.StringSliceVarP(&flags.find, "find", "f", nil, "Only plot reports whose label contains this text (repeatable)")
	f.BoolVarP(&flags.autoscale, "autoscale", "a", false, "Autoscale the y axis instead of 0..100")
	f.BoolVar(&flags.strictIDs, "strict-ids", false, "Abandon a file on the first unrecognized asset identifier")
	f.BoolVar(&flags.summary, "summary", false, "Print a table of every plotted series")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(&flags.configPath))
	return rootCmd
}

// resolveSettings loads the config file and lets explicitly set flags override it.
func resolveSettings(cmd *cobra.Command, flags *plotFlags) (runSettings, error) {
	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return runSettings{}, err
	}
	changed := cmd.Flags().Changed
	if changed("line") {
		cfg.Plot.Line = flags.line
	}
	if changed("overlay") {
		cfg.Plot.Overlay = flags.overlay
	}
	if changed("verbosity") {
		cfg.Plot.Verbosity = flags.verbosity
	}
	if changed("framerate") {
		cfg.Plot.FrameRate = flags.frameRate
	}
	if changed("autoscale") {
		cfg.Plot.Autoscale = flags.autoscale
	}
	if changed("strict-ids") {
		cfg.Plot.StrictIDs = flags.strictIDs
	}
	if changed("log-level") {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(flags.logLevel))
	}
	if err := cfg.Validate(); err != nil {
		return runSettings{}, fmt.Errorf("invalid options: %w", err)
	}

	mode := figure.Scatter
	if cfg.Plot.Line {
		mode = figure.Line
	}
	return runSettings{
		Figure: figure.Options{
			Mode:      mode,
			Overlay:   cfg.Plot.Overlay,
			FrameRate: cfg.Plot.FrameRate,
			Autoscale: cfg.Plot.Autoscale,
			Verbosity: cfg.Plot.Verbosity,
		},
		Render: render.Options{
			Width:     cfg.Output.Width,
			Height:    cfg.Output.Height,
			DPI:       cfg.Output.DPI,
			Mode:      mode,
			Verbosity: cfg.Plot.Verbosity,
		},
		Report: report.Options{
			LabelFilters:         flags.find,
			AbortOnBadIdentifier: cfg.Plot.StrictIDs,
		},
		SaveFig:  strings.TrimSpace(flags.saveFig),
		Summary:  flags.summary,
		LogLevel: cfg.Logging.Level,
	}, nil
}
