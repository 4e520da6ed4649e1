package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neal-igolgi/h265-benchmark/src/figure"
	"github.com/neal-igolgi/h265-benchmark/src/render"
	"github.com/neal-igolgi/h265-benchmark/src/report"
	"github.com/neal-igolgi/h265-benchmark/src/vlog"
)

// display shows every figure and blocks until the windows are closed. Tests replace it.
var display = showFigures

func runPlot(cmd *cobra.Command, files []string, settings runSettings) error {
	vlog.SetLogLevel(settings.LogLevel)
	defer vlog.Sync()

	reg := figure.NewRegistry(settings.Figure)
	loadReports(reg, files, settings.Report)

	if settings.Summary && len(reg.Figures()) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(reg))
	}

	if settings.SaveFig != "" {
		saved, err := saveFigure(cmd, reg, settings)
		if saved || !errors.Is(err, figure.ErrMultipleFigures) {
			return err
		}
		vlog.Errorf("Cannot save as more than one figure exist; showing %d figures instead", len(reg.Figures()))
	}

	if len(reg.Figures()) == 0 {
		return fmt.Errorf("nothing to plot: %w", figure.ErrNoFigures)
	}
	return display(reg, settings.Render)
}

// loadReports reads every file and draws its reports. File and block problems are logged and
// skipped so one bad input never hides the others.
func loadReports(reg *figure.Registry, files []string, opts report.Options) {
	defer vlog.TimeTrack(time.Now(), "load reports")
	for _, path := range files {
		f, err := report.ReadFile(path, opts)
		if err != nil {
			if errors.Is(err, report.ErrNotFound) {
				vlog.Warnf("%s not found, skipped", path)
			} else {
				vlog.Errorf("%v", err)
			}
			continue
		}
		for _, be := range f.Skipped {
			vlog.Warnf("skipped %v", be)
		}
		if f.Aborted != nil {
			vlog.Errorf("stopped reading %s: %v", path, f.Aborted)
		}
		if f.Filtered > 0 {
			vlog.Debugf("%s: %d reports filtered by label", path, f.Filtered)
		}
		for _, rep := range f.Reports {
			fig, s := reg.Add(rep)
			vlog.Debugf("figure %d %q: added %s (%s, %d frames)", fig.ID, fig.Title(), s.Label, s.ScoreType, len(s.Values))
		}
	}
}

// saveFigure writes the single figure and prints its statistics. saved is false when nothing
// was written.
func saveFigure(cmd *cobra.Command, reg *figure.Registry, settings runSettings) (saved bool, err error) {
	fig, err := reg.Single()
	if err != nil {
		return false, err
	}
	lines, err := reg.StatLines()
	if err != nil {
		return false, err
	}
	if err := render.Save(settings.SaveFig, fig, settings.Render); err != nil {
		return false, err
	}
	vlog.Infof("saved %s as %s", settings.SaveFig, render.FormatFromPath(settings.SaveFig))
	out := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return true, nil
}
