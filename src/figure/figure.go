// Package figure assigns parsed reports to figures and keeps the per-figure bookkeeping:
// the overlay cap, the per-frame min/max envelope, the score types drawn so far, per-series
// statistics and the cursor marker.
//
// A Registry is the context for one program run. Reports are added in input order; rendering
// and the interactive viewer read the resulting figures afterwards.
package figure

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MaxOverlays caps the number of series drawn on one figure. The next series for the same
// title opens a new linked figure.
const MaxOverlays = 10

// Mode selects how series are drawn.
type Mode int

const (
	Scatter Mode = iota
	Line
)

func (m Mode) String() string {
	if m == Line {
		return "line"
	}
	return "scatter"
}

// Palette is the tab10 colour cycle; series n on a figure uses Palette[n%MaxOverlays].
var Palette = [MaxOverlays]drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// CursorColor is used for the click marker and its readout (goldenrod).
var CursorColor = drawing.ColorFromHex("daa520")

// Bounds is one envelope entry.
type Bounds struct {
	Min, Max float64
}

// unsetBounds is the sentinel for a frame no series has touched yet.
var unsetBounds = Bounds{Min: 100, Max: 0}

// Axis holds the one-time axis setup of a figure.
type Axis struct {
	XLabel    string
	XMin      float64
	XMax      float64
	FrameRate float64 // >0 when the x axis is in seconds
	YFixed    bool    // fixed [YMin,YMax] instead of autoscale
	YMin      float64
	YMax      float64
}

// TimeMode reports whether x values are seconds rather than frame indexes.
func (a Axis) TimeMode() bool { return a.FrameRate > 0 }

// Series is one dataset drawn on a figure.
type Series struct {
	Label      string // raw label; see Figure.LegendLabel for the displayed form
	ScoreType  string
	Source     string
	Values     []float64
	Stats      Stats
	ColorIndex int
}

// Color returns the palette colour of the series.
func (s *Series) Color() drawing.Color { return Palette[s.ColorIndex%MaxOverlays] }

// Figure is the state of one open figure.
type Figure struct {
	ID           int    // 1-based creation order across the run
	Key          string // group key (title)
	Page         int    // 0 for the first figure of a group, 1 for the first linked one, ...
	DisplayTitle string
	Resolution   string
	Frames       int

	Axis       Axis
	ScoreTypes []string
	Series     []*Series
	Envelope   []Bounds

	cursorDrawn bool
}

func newFigure(id int, key string, page int, displayTitle, resolution string, frames int, scoreType string, opts Options) *Figure {
	f := &Figure{
		ID:           id,
		Key:          key,
		Page:         page,
		DisplayTitle: displayTitle,
		Resolution:   resolution,
		Frames:       frames,
		ScoreTypes:   []string{scoreType},
		Envelope:     make([]Bounds, frames),
	}
	for i := range f.Envelope {
		f.Envelope[i] = unsetBounds
	}
	f.Axis = Axis{XLabel: "Frame", XMax: float64(frames)}
	if opts.FrameRate > 0 {
		f.Axis.XLabel = "Time (s)"
		f.Axis.FrameRate = opts.FrameRate
		f.Axis.XMax = float64(frames) / opts.FrameRate
	}
	if !opts.Autoscale {
		f.Axis.YFixed = true
		f.Axis.YMin, f.Axis.YMax = 0, 100
	}
	return f
}

// Full reports whether the figure reached MaxOverlays.
func (f *Figure) Full() bool { return len(f.Series) >= MaxOverlays }

// Title is the heading shown above the plot.
func (f *Figure) Title() string {
	if f.Page == 0 {
		return f.DisplayTitle
	}
	return fmt.Sprintf("%s (%d)", f.DisplayTitle, f.Page+1)
}

// UpdateEnvelope folds one series into the per-frame envelope. The first series on a figure
// sets the baseline, later ones only widen it.
func (f *Figure) UpdateEnvelope(values []float64, first bool) {
	n := len(values)
	if n > len(f.Envelope) {
		n = len(f.Envelope)
	}
	for i := 0; i < n; i++ {
		v := values[i]
		if first {
			f.Envelope[i] = Bounds{Min: v, Max: v}
			continue
		}
		if v < f.Envelope[i].Min {
			f.Envelope[i].Min = v
		}
		if v > f.Envelope[i].Max {
			f.Envelope[i].Max = v
		}
	}
}

// RegisterScoreType records scoreType on the figure. It returns true when the type is new.
func (f *Figure) RegisterScoreType(scoreType string) bool {
	for _, t := range f.ScoreTypes {
		if t == scoreType {
			return false
		}
	}
	f.ScoreTypes = append(f.ScoreTypes, scoreType)
	return true
}

// MixedScoreTypes reports whether more than one score type is on the figure.
func (f *Figure) MixedScoreTypes() bool { return len(f.ScoreTypes) >= 2 }

// YLabel joins the score types drawn on the figure, e.g. "VMAF & ETC Score".
func (f *Figure) YLabel() string {
	return strings.Join(f.ScoreTypes, " & ") + " Score"
}

// LegendLabel is the displayed label of s. Once a figure carries two score types every label,
// including those added before, names its score type.
func (f *Figure) LegendLabel(s *Series) string {
	if f.MixedScoreTypes() {
		return fmt.Sprintf("%s (%s)", s.Label, s.ScoreType)
	}
	return s.Label
}

// XValue maps frame index i to its x coordinate.
func (f *Figure) XValue(i int) float64 {
	if f.Axis.TimeMode() {
		return float64(i) / f.Axis.FrameRate
	}
	return float64(i)
}

// XValues returns the x coordinates of n frames.
func (f *Figure) XValues(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = f.XValue(i)
	}
	return xs
}

// FrameAt snaps an x coordinate to the nearest frame index inside the figure.
func (f *Figure) FrameAt(x float64) int {
	pos := x
	if f.Axis.TimeMode() {
		pos = x * f.Axis.FrameRate
	}
	if math.IsNaN(pos) {
		return 0
	}
	i := int(math.Round(pos))
	if i < 0 {
		i = 0
	}
	if i > f.Frames-1 {
		i = f.Frames - 1
	}
	return i
}

// DataRange returns the smallest and largest value drawn on the figure.
func (f *Figure) DataRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range f.Series {
		if s.Stats.Min < lo {
			lo = s.Stats.Min
		}
		if s.Stats.Max > hi {
			hi = s.Stats.Max
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 100
	}
	return lo, hi
}

// Notes returns the fixed corner annotations set at figure creation.
func (f *Figure) Notes() (resolution, frames string) {
	return "Resolution:\n" + f.Resolution, fmt.Sprintf("# frames:\n%d", f.Frames)
}
