package figure

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neal-igolgi/h265-benchmark/src/report"
)

func rep(title, label, scoreType string, agg float64, scores ...float64) *report.Report {
	return &report.Report{
		Source:       "test.xml",
		ScoreType:    scoreType,
		Scores:       scores,
		Aggregate:    agg,
		Title:        title + "_576x324",
		DisplayTitle: title,
		Label:        label,
		Resolution:   "576x324",
	}
}

func TestSingleReport_PointsAndMean(t *testing.T) {
	reg := NewRegistry(Options{})
	fig, s := reg.Add(rep("src01", "hrc01", "VMAF", 42.5, 40, 45, 50, 35))
	if len(s.Values) != 4 || len(fig.XValues(len(s.Values))) != 4 {
		t.Fatalf("series has %d points, want 4", len(s.Values))
	}
	if s.Stats.Mean != 42.5 {
		t.Fatalf("mean = %v, want the aggregate 42.5", s.Stats.Mean)
	}
	if fig.Frames != 4 || fig.Axis.XMax != 4 || fig.Axis.XLabel != "Frame" {
		t.Fatalf("axis = %+v frames=%d", fig.Axis, fig.Frames)
	}
	if !fig.Axis.YFixed || fig.Axis.YMin != 0 || fig.Axis.YMax != 100 {
		t.Fatalf("y axis should be fixed [0,100]: %+v", fig.Axis)
	}
	if fig.Title() != "src01" || fig.ID != 1 {
		t.Fatalf("title=%q id=%d", fig.Title(), fig.ID)
	}
}

func TestOverlayCap_EleventhSeriesOpensLinkedFigure(t *testing.T) {
	reg := NewRegistry(Options{})
	var figs []*Figure
	for i := 0; i < MaxOverlays+1; i++ {
		fig, s := reg.Add(rep("src01", fmt.Sprintf("hrc%02d", i), "VMAF", 50, 50, 60))
		figs = append(figs, fig)
		if s.ColorIndex != i%MaxOverlays {
			t.Fatalf("series %d color index = %d", i, s.ColorIndex)
		}
	}
	for i := 1; i < MaxOverlays; i++ {
		if figs[i] != figs[0] {
			t.Fatalf("series %d landed on a different figure", i)
		}
	}
	if figs[MaxOverlays] == figs[0] {
		t.Fatalf("11th series must open a new figure")
	}
	g, ok := reg.Group("src01_576x324")
	if !ok || len(g.Figures) != 2 {
		t.Fatalf("group should hold 2 linked figures, got %+v", g)
	}
	linked := figs[MaxOverlays]
	if linked.Page != 1 || linked.Key != figs[0].Key || linked.Title() != "src01 (2)" || linked.ID != 2 {
		t.Fatalf("linked figure = %+v", linked)
	}
	if len(linked.Series) != 1 || linked.Series[0].ColorIndex != 0 {
		t.Fatalf("linked figure series = %+v", linked.Series)
	}
	// the fresh figure's envelope is its own first series, not the old figure's
	if linked.Envelope[0] != (Bounds{Min: 50, Max: 50}) {
		t.Fatalf("linked envelope = %+v", linked.Envelope)
	}
	if len(reg.Figures()) != 2 || len(reg.Groups()) != 1 {
		t.Fatalf("figures=%d groups=%d", len(reg.Figures()), len(reg.Groups()))
	}
}

func TestDifferentTitlesOpenSeparateFigures(t *testing.T) {
	reg := NewRegistry(Options{})
	a, _ := reg.Add(rep("src01", "x", "VMAF", 1, 1))
	b, _ := reg.Add(rep("src02", "x", "VMAF", 1, 1))
	if a == b {
		t.Fatalf("different titles shared a figure")
	}
	if _, err := reg.Single(); err == nil {
		t.Fatalf("Single should fail with two figures")
	}
}

func TestOverlayRedirectsToFirstGroup(t *testing.T) {
	reg := NewRegistry(Options{Overlay: true})
	a, _ := reg.Add(rep("src01", "x", "VMAF", 1, 1, 2))
	b, _ := reg.Add(rep("src02", "y", "VMAF", 1, 3, 4))
	if a != b {
		t.Fatalf("overlay mode should force one figure")
	}
	if reg.Resolve("anything") != "src01_576x324" {
		t.Fatalf("Resolve = %q", reg.Resolve("anything"))
	}
}

func TestEnvelope(t *testing.T) {
	reg := NewRegistry(Options{})
	fig, _ := reg.Add(rep("src01", "a", "VMAF", 0, 10, 80, 55))
	want := []Bounds{{10, 10}, {80, 80}, {55, 55}}
	if diff := cmp.Diff(want, fig.Envelope); diff != "" {
		t.Fatalf("after one series (-want +got):\n%s", diff)
	}
	reg.Add(rep("src01", "b", "VMAF", 0, 20, 70, 55))
	want = []Bounds{{10, 20}, {70, 80}, {55, 55}}
	if diff := cmp.Diff(want, fig.Envelope); diff != "" {
		t.Fatalf("after two series (-want +got):\n%s", diff)
	}
	reg.Add(rep("src01", "c", "VMAF", 0, 5, 90, 100))
	want = []Bounds{{5, 20}, {70, 90}, {55, 100}}
	if diff := cmp.Diff(want, fig.Envelope); diff != "" {
		t.Fatalf("after three series (-want +got):\n%s", diff)
	}
}

func TestEnvelope_SentinelAndLengthMismatch(t *testing.T) {
	f := newFigure(1, "k", 0, "k", "1x1", 3, "VMAF", Options{})
	for i, b := range f.Envelope {
		if b != unsetBounds {
			t.Fatalf("envelope[%d] = %+v, want unset sentinel", i, b)
		}
	}
	f.UpdateEnvelope([]float64{1, 2, 3, 4, 5}, true)
	f.UpdateEnvelope([]float64{0}, false)
	want := []Bounds{{0, 1}, {2, 2}, {3, 3}}
	if diff := cmp.Diff(want, f.Envelope); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestMixedScoreTypes_LabelsAndYAxis(t *testing.T) {
	reg := NewRegistry(Options{})
	fig, first := reg.Add(rep("src01", "hrc01", "VMAF", 1, 1))
	if fig.LegendLabel(first) != "hrc01" || fig.YLabel() != "VMAF Score" {
		t.Fatalf("single type: label=%q y=%q", fig.LegendLabel(first), fig.YLabel())
	}
	_, second := reg.Add(rep("src01", "hrc01", "ETC", 1, 1))
	if fig.YLabel() != "VMAF & ETC Score" {
		t.Fatalf("ylabel = %q", fig.YLabel())
	}
	// the earlier label is disambiguated once the second type shows up
	if got := fig.LegendLabel(first); got != "hrc01 (VMAF)" {
		t.Fatalf("first label = %q", got)
	}
	if got := fig.LegendLabel(second); got != "hrc01 (ETC)" {
		t.Fatalf("second label = %q", got)
	}
	_, third := reg.Add(rep("src01", "hrc02", "VMAF", 1, 1))
	if got := fig.LegendLabel(third); got != "hrc02 (VMAF)" {
		t.Fatalf("third label = %q", got)
	}
	if diff := cmp.Diff([]string{"VMAF", "ETC"}, fig.ScoreTypes); diff != "" {
		t.Fatalf("score types (-want +got):\n%s", diff)
	}
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats([]float64{50, 40, 60}, 50)
	if st.Mean != 50 || st.Min != 40 || st.Max != 60 {
		t.Fatalf("stats = %+v", st)
	}
	want := math.Sqrt(200.0 / 3)
	if math.Abs(st.Stdev-want) > 1e-12 {
		t.Fatalf("stdev = %v, want %v", st.Stdev, want)
	}
	// decreasing input must still report the right max
	st = ComputeStats([]float64{90, 80, 70}, 80)
	if st.Max != 90 || st.Min != 70 {
		t.Fatalf("decreasing stats = %+v", st)
	}
}

func TestStatsLine(t *testing.T) {
	st := Stats{Mean: 91.23456, Stdev: 1.5, Min: 80.126, Max: 99.999}
	if got := st.Line(); got != "mean=91.235,stdev=1.500,min=80.13,max=100.00" {
		t.Fatalf("line = %q", got)
	}
}

func TestAnnotations_SuppressionAtBounds(t *testing.T) {
	cases := []struct {
		scores    []float64
		wantKinds []AnnotationKind
	}{
		{[]float64{0, 50, 100}, []AnnotationKind{AnnotateMean}},
		{[]float64{0.001, 50, 100}, []AnnotationKind{AnnotateMean, AnnotateMin}},
		{[]float64{0, 50, 99.999}, []AnnotationKind{AnnotateMean, AnnotateMax}},
		{[]float64{10, 50, 90}, []AnnotationKind{AnnotateMean, AnnotateMin, AnnotateMax}},
	}
	for _, tc := range cases {
		reg := NewRegistry(Options{Verbosity: 2})
		fig, _ := reg.Add(rep("src01", "a", "VMAF", 50, tc.scores...))
		var kinds []AnnotationKind
		for _, a := range fig.Annotations(2) {
			kinds = append(kinds, a.Kind)
		}
		if diff := cmp.Diff(tc.wantKinds, kinds); diff != "" {
			t.Fatalf("scores %v (-want +got):\n%s", tc.scores, diff)
		}
	}
}

func TestAnnotations_Verbosity(t *testing.T) {
	reg := NewRegistry(Options{})
	fig, _ := reg.Add(rep("src01", "a", "VMAF", 50, 10, 90))
	if n := len(fig.Annotations(0)); n != 0 {
		t.Fatalf("verbosity 0 gave %d annotations", n)
	}
	ann := fig.Annotations(1)
	if len(ann) != 1 || ann[0].Text != "mean=50.00, dev=40.00" || ann[0].Y != 50 {
		t.Fatalf("verbosity 1 = %+v", ann)
	}
	ann = fig.Annotations(2)
	if len(ann) != 3 || ann[1].Text != "min=10.000" || ann[2].Text != "max=90.000" {
		t.Fatalf("verbosity 2 = %+v", ann)
	}
}

func TestTimeMode_RoundTrip(t *testing.T) {
	for _, fps := range []float64{23.976, 25, 29.97, 59.94, 60} {
		reg := NewRegistry(Options{FrameRate: fps})
		scores := make([]float64, 500)
		fig, _ := reg.Add(rep("src01", "a", "VMAF", 1, scores...))
		if fig.Axis.XLabel != "Time (s)" || math.Abs(fig.Axis.XMax-500/fps) > 1e-9 {
			t.Fatalf("fps %v axis = %+v", fps, fig.Axis)
		}
		for i := 0; i < 500; i++ {
			x := fig.XValue(i)
			if x != float64(i)/fps {
				t.Fatalf("fps %v: XValue(%d) = %v", fps, i, x)
			}
			if got := fig.FrameAt(x); got != i {
				t.Fatalf("fps %v: FrameAt(%v) = %d, want %d", fps, x, got, i)
			}
		}
	}
}

func TestFrameAt_ClampsAndRounds(t *testing.T) {
	f := newFigure(1, "k", 0, "k", "r", 10, "VMAF", Options{})
	cases := map[float64]int{-3: 0, 0.49: 0, 0.5: 1, 4.6: 5, 9.4: 9, 42: 9, math.NaN(): 0}
	for x, want := range cases {
		if got := f.FrameAt(x); got != want {
			t.Fatalf("FrameAt(%v) = %d, want %d", x, got, want)
		}
	}
}

func TestClick_SingleAndMulti(t *testing.T) {
	reg := NewRegistry(Options{})
	fig, _ := reg.Add(rep("src01", "a", "VMAF", 1, 10, 20, 30))
	if _, ok := fig.Click(1, false); ok {
		t.Fatalf("click outside axes must be ignored")
	}
	if fig.CursorDrawn() {
		t.Fatalf("ignored click changed cursor state")
	}
	m, ok := fig.Click(1.2, true)
	if !ok || m.Frame != 1 || !m.Single || m.Text != "frame = 1, score = 20.0000" {
		t.Fatalf("single marker = %+v", m)
	}
	if m.ReplacePrevious {
		t.Fatalf("first click after init must not remove anything")
	}
	reg.Add(rep("src01", "b", "VMAF", 1, 15, 5, 30))
	m, ok = fig.Click(0.6, true)
	if !ok || m.Single || m.Frame != 1 || m.Min != 5 || m.Max != 20 {
		t.Fatalf("multi marker = %+v", m)
	}
	if m.Text != "frame = 1, min = 5.00, max = 20.00, range = 15.00" {
		t.Fatalf("multi text = %q", m.Text)
	}
	if !m.ReplacePrevious {
		t.Fatalf("second click must replace the first marker")
	}
	fig.ResetCursor()
	if m, _ = fig.Click(2, true); m.ReplacePrevious {
		t.Fatalf("click after reset must not replace")
	}
}

func TestClick_TimeMode(t *testing.T) {
	reg := NewRegistry(Options{FrameRate: 25})
	fig, _ := reg.Add(rep("src01", "a", "VMAF", 1, 10, 20, 30, 40))
	m, ok := fig.Click(0.09, true) // 2.25 frames
	if !ok || m.Frame != 2 || m.X != 0.08 {
		t.Fatalf("marker = %+v", m)
	}
	if !strings.HasPrefix(m.Text, "time = 0.080s, frame = 2") {
		t.Fatalf("text = %q", m.Text)
	}
}

func TestStatLines(t *testing.T) {
	reg := NewRegistry(Options{})
	if _, err := reg.StatLines(); err != ErrNoFigures {
		t.Fatalf("empty registry err = %v", err)
	}
	reg.Add(rep("src01", "a", "VMAF", 50, 40, 60))
	lines, err := reg.StatLines()
	if err != nil {
		t.Fatalf("StatLines: %v", err)
	}
	if diff := cmp.Diff([]string{"mean=50.000,stdev=10.000,min=40.00,max=60.00"}, lines); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	reg.Add(rep("src01", "a", "ETC", 20, 20))
	reg.Add(rep("src01", "b", "VMAF", 70, 70))
	lines, _ = reg.StatLines()
	want := []string{
		"VMAF/a: mean=50.000,stdev=10.000,min=40.00,max=60.00",
		"ETC: mean=20.000,stdev=0.000,min=20.00,max=20.00",
		"VMAF/b: mean=70.000,stdev=0.000,min=70.00,max=70.00",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	reg.Add(rep("src02", "a", "VMAF", 1, 1))
	if _, err := reg.StatLines(); err == nil {
		t.Fatalf("StatLines should fail with two figures")
	}
}

func TestAutoscaleLeavesYFree(t *testing.T) {
	reg := NewRegistry(Options{Autoscale: true})
	fig, _ := reg.Add(rep("src01", "a", "VMAF", 1, 60, 95))
	if fig.Axis.YFixed {
		t.Fatalf("autoscale figure has fixed y")
	}
	lo, hi := fig.DataRange()
	if lo != 60 || hi != 95 {
		t.Fatalf("DataRange = %v,%v", lo, hi)
	}
}
