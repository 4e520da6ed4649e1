// Package render draws figures with go-chart and writes them as PNG, SVG or PDF.
package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/neal-igolgi/h265-benchmark/src/figure"
)

// Default figure size: 16x9 inches at 100 dpi.
const (
	DefaultWidth  = 1600
	DefaultHeight = 900
	DefaultDPI    = 100
)

// Options controls image size and what goes on it.
type Options struct {
	Width     int
	Height    int
	DPI       float64
	Mode      figure.Mode
	Verbosity int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	return o
}

// Result is one encoded figure.
type Result struct {
	Format Format
	Data   []byte
	Layout Layout
}

var noteColor = drawing.ColorFromHex("333333")

// Render draws fig and encodes it as PNG or SVG. Use Save or WritePDF for PDF output.
func Render(fig *figure.Figure, opts Options, format Format) (*Result, error) {
	if fig == nil || len(fig.Series) == 0 {
		return nil, fmt.Errorf("render: figure has no series")
	}
	opts = opts.withDefaults()
	ch, lay := buildChart(fig, opts)

	var provider chart.RendererProvider
	switch format {
	case FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return nil, fmt.Errorf("render: %s is not a raster/vector chart format", format)
	}
	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("render figure %d: %w", fig.ID, err)
	}
	return &Result{Format: format, Data: buf.Bytes(), Layout: *lay}, nil
}

// yRange is the fixed axis range, or a padded range around the data when autoscaling.
func yRange(fig *figure.Figure) (float64, float64) {
	if fig.Axis.YFixed {
		return fig.Axis.YMin, fig.Axis.YMax
	}
	lo, hi := fig.DataRange()
	return niceAxisBounds(lo, hi)
}

func seriesStyle(s *figure.Series, mode figure.Mode) chart.Style {
	col := s.Color()
	if mode == figure.Line {
		return chart.Style{StrokeColor: col, StrokeWidth: 1}
	}
	// points only, half transparent like the dense per-frame scatter needs
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    2.5,
		DotColor:    col.WithAlpha(128),
		StrokeColor: col,
	}
}

func buildChart(fig *figure.Figure, opts Options) (*chart.Chart, *Layout) {
	ymin, ymax := yRange(fig)
	lay := &Layout{
		Width: opts.Width, Height: opts.Height,
		XMin: fig.Axis.XMin, XMax: fig.Axis.XMax,
		YMin: ymin, YMax: ymax,
	}
	if lay.XMax <= lay.XMin {
		lay.XMax = lay.XMin + 1
	}

	series := make([]chart.Series, 0, len(fig.Series))
	for _, s := range fig.Series {
		xs := fig.XValues(len(s.Values))
		ys := append([]float64(nil), s.Values...)
		// go-chart needs two points to lay out a series
		if len(xs) == 1 {
			xs = append(xs, xs[0]+fig.XValue(1))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fig.LegendLabel(s),
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(s, opts.Mode),
		})
	}

	rightPad := 24
	if opts.Verbosity > 0 {
		rightPad = int(float64(opts.Width) * (1 - figure.AnnotationXFraction + 0.01))
	}
	ch := &chart.Chart{
		Title:      fig.Title(),
		TitleStyle: chart.Style{FontSize: 14},
		Width:      opts.Width,
		Height:     opts.Height,
		DPI:        opts.DPI,
		Background: chart.Style{Padding: chart.Box{Top: 56, Left: 24, Right: rightPad, Bottom: 64}},
		XAxis: chart.XAxis{
			Name:  fig.Axis.XLabel,
			Range: &chart.ContinuousRange{Min: lay.XMin, Max: lay.XMax},
			Ticks: chartTicks(numericTicks(lay.XMin, lay.XMax, 11)),
		},
		YAxis: chart.YAxis{
			Name:  fig.YLabel(),
			Range: &chart.ContinuousRange{Min: ymin, Max: ymax},
			Ticks: chartTicks(numericTicks(ymin, ymax, 6)),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{
		chart.Legend(ch),
		captureLayout(lay),
		cornerNotes(fig, opts),
		statNotes(fig, opts, lay),
	}
	return ch, lay
}

// captureLayout stores the final plot box; go-chart only knows it once axes are measured.
func captureLayout(lay *Layout) chart.Renderable {
	return func(_ chart.Renderer, canvasBox chart.Box, _ chart.Style) {
		lay.Plot = canvasBox
	}
}

// drawText writes possibly multi-line text; x is the left edge (or centre when centered), y the
// vertical centre of the block.
func drawText(r chart.Renderer, defaults chart.Style, text string, x, y int, size float64, col drawing.Color, centered bool) {
	if defaults.Font == nil {
		return
	}
	r.SetFont(defaults.Font)
	r.SetFontSize(size)
	r.SetFontColor(col)
	lines := strings.Split(text, "\n")
	lineH := r.MeasureText("Ay").Height() + 3
	top := y - (lineH*len(lines))/2 + lineH
	for i, ln := range lines {
		lx := x
		if centered {
			lx = x - r.MeasureText(ln).Width()/2
		}
		r.Text(ln, lx, top+i*lineH)
	}
}

// cornerNotes draws the resolution (bottom-left) and frame count (bottom-right) in figure
// fraction coordinates.
func cornerNotes(fig *figure.Figure, opts Options) chart.Renderable {
	res, frames := fig.Notes()
	return func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
		y := opts.Height - int(0.03*float64(opts.Height)) - 6
		drawText(r, defaults, res, int(0.01*float64(opts.Width)), y, 9, noteColor, false)
		drawText(r, defaults, frames, int(0.945*float64(opts.Width)), y, 9, noteColor, true)
	}
}

// statNotes draws mean/dev and min/max labels at the value's height in the right margin.
func statNotes(fig *figure.Figure, opts Options, lay *Layout) chart.Renderable {
	anns := fig.Annotations(opts.Verbosity)
	return func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
		x := int(figure.AnnotationXFraction * float64(opts.Width))
		for _, a := range anns {
			if a.Y < lay.YMin || a.Y > lay.YMax || math.IsNaN(a.Y) {
				continue
			}
			size := 7.0
			if a.Kind != figure.AnnotateMean {
				size = 6
			}
			y := int(math.Round(lay.PixelY(a.Y)))
			drawText(r, defaults, a.Text, x, y, size, figure.Palette[a.ColorIndex%figure.MaxOverlays], false)
		}
	}
}
