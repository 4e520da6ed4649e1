package figure

import "fmt"

// Marker is the cursor read-out for one click.
type Marker struct {
	Frame  int
	X      float64 // where the vertical line goes
	Min    float64
	Max    float64
	Single bool // only one series on the figure; Min is its value
	Text   string
	// ReplacePrevious is true when an earlier marker on this figure must be removed first.
	// It is false for the first click after the figure was set up.
	ReplacePrevious bool
}

// Click handles a pointer click at data coordinate x. Clicks outside the plotting area are
// ignored and leave the cursor state untouched.
func (f *Figure) Click(x float64, inAxes bool) (Marker, bool) {
	if !inAxes || f.Frames == 0 || len(f.Series) == 0 {
		return Marker{}, false
	}
	i := f.FrameAt(x)
	env := f.Envelope[i]
	m := Marker{
		Frame:           i,
		X:               f.XValue(i),
		Min:             env.Min,
		Max:             env.Max,
		Single:          len(f.Series) == 1,
		ReplacePrevious: f.cursorDrawn,
	}
	var prefix string
	if f.Axis.TimeMode() {
		prefix = fmt.Sprintf("time = %.3fs, ", m.X)
	}
	if m.Single {
		m.Text = fmt.Sprintf("%sframe = %d, score = %.4f", prefix, i, env.Min)
	} else {
		m.Text = fmt.Sprintf("%sframe = %d, min = %.2f, max = %.2f, range = %.2f", prefix, i, env.Min, env.Max, env.Max-env.Min)
	}
	f.cursorDrawn = true
	return m, true
}

// CursorDrawn reports whether a marker is currently on the figure.
func (f *Figure) CursorDrawn() bool { return f.cursorDrawn }

// ResetCursor forgets the marker, e.g. after the figure was redrawn from scratch.
func (f *Figure) ResetCursor() { f.cursorDrawn = false }
