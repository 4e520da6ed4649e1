package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/neal-igolgi/h265-benchmark/cmd/vmafplot/uihelpers"
	"github.com/neal-igolgi/h265-benchmark/src/figure"
	"github.com/neal-igolgi/h265-benchmark/src/render"
	"github.com/neal-igolgi/h265-benchmark/src/vlog"
)

// showFigures opens one window per figure and runs the event loop until all are closed.
func showFigures(reg *figure.Registry, opts render.Options) error {
	a := app.NewWithID("vmafplot")
	for _, fig := range reg.Figures() {
		w := a.NewWindow(fmt.Sprintf("Figure %d: %s", fig.ID, fig.Title()))
		w.SetContent(newFigureView(fig, opts))
		ww, wh := uihelpers.ComputeChartDimensions(1280)
		w.Resize(fyne.NewSize(float32(ww), float32(wh)))
		w.Show()
	}
	a.Run()
	return nil
}

// newFigureView renders fig and stacks a click overlay on top of the image.
func newFigureView(fig *figure.Figure, opts render.Options) fyne.CanvasObject {
	img, lay := figureImage(fig, opts)
	imgCanvas := canvas.NewImageFromImage(img)
	imgCanvas.FillMode = canvas.ImageFillContain
	overlay := newCursorOverlay(fig, lay)
	return container.NewStack(imgCanvas, overlay)
}

// figureImage renders fig as PNG. On failure it returns a blank image carrying the error.
func figureImage(fig *figure.Figure, opts render.Options) (image.Image, render.Layout) {
	res, err := render.Render(fig, opts, render.FormatPNG)
	if err == nil {
		img, derr := png.Decode(bytes.NewReader(res.Data))
		if derr == nil {
			return img, res.Layout
		}
		err = derr
	}
	vlog.Errorf("figure %d: render: %v", fig.ID, err)
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = render.DefaultWidth, render.DefaultHeight
	}
	return render.DrawHint(render.Blank(w, h), "render failed: "+err.Error()), render.Layout{Width: w, Height: h}
}

// cursorOverlay is a transparent layer over the chart image. A tap inside the plot area moves
// the vertical cursor line and its read-out to the nearest frame.
type cursorOverlay struct {
	widget.BaseWidget
	fig    *figure.Figure
	layout render.Layout
	marker *figure.Marker
}

func newCursorOverlay(fig *figure.Figure, lay render.Layout) *cursorOverlay {
	c := &cursorOverlay{fig: fig, layout: lay}
	c.ExtendBaseWidget(c)
	return c
}

// Tapped implements fyne.Tappable.
func (c *cursorOverlay) Tapped(ev *fyne.PointEvent) {
	size := c.Size()
	imgW, imgH := float32(c.layout.Width), float32(c.layout.Height)
	ix, iy, ok := uihelpers.ViewToImage(ev.Position.X, ev.Position.Y, imgW, imgH, size.Width, size.Height)
	inAxes := ok && c.layout.Contains(ix, iy)
	var x float64
	if inAxes {
		x = c.layout.DataX(ix)
	}
	m, drawn := c.fig.Click(x, inAxes)
	if !drawn {
		return
	}
	c.marker = &m
	vlog.Debugf("figure %d: %s", c.fig.ID, m.Text)
	c.Refresh()
}

// readout returns the text currently shown, empty before the first click.
func (c *cursorOverlay) readout() string {
	if c.marker == nil {
		return ""
	}
	return c.marker.Text
}

var _ fyne.Tappable = (*cursorOverlay)(nil)

func (c *cursorOverlay) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{})
	line := canvas.NewLine(figure.CursorColor)
	line.StrokeWidth = 1
	label := canvas.NewText("", figure.CursorColor)
	label.TextSize = 13
	label.Alignment = fyne.TextAlignCenter
	return &cursorRenderer{c: c, bg: bg, line: line, label: label, objs: []fyne.CanvasObject{bg, line, label}}
}

type cursorRenderer struct {
	c     *cursorOverlay
	bg    *canvas.Rectangle
	line  *canvas.Line
	label *canvas.Text
	objs  []fyne.CanvasObject
}

func (r *cursorRenderer) Destroy() {}

func (r *cursorRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	m := r.c.marker
	if m == nil {
		r.line.Position1 = fyne.NewPos(-10, -10)
		r.line.Position2 = fyne.NewPos(-10, -10)
		r.label.Move(fyne.NewPos(-1000, -1000))
		return
	}
	lay := r.c.layout
	imgW, imgH := float32(lay.Width), float32(lay.Height)
	px := lay.PixelX(m.X)
	x, top := uihelpers.ImageToView(px, float64(lay.Plot.Top), imgW, imgH, size.Width, size.Height)
	_, bottom := uihelpers.ImageToView(px, float64(lay.Plot.Bottom), imgW, imgH, size.Width, size.Height)
	r.line.Position1 = fyne.NewPos(x, top)
	r.line.Position2 = fyne.NewPos(x, bottom)

	r.label.Text = m.Text
	ts := r.label.MinSize()
	lx := x - ts.Width/2
	if lx < 0 {
		lx = 0
	}
	if lx+ts.Width > size.Width {
		lx = size.Width - ts.Width
	}
	ly := top - ts.Height - 2
	if ly < 0 {
		ly = 0
	}
	r.label.Resize(ts)
	r.label.Move(fyne.NewPos(lx, ly))
}

func (r *cursorRenderer) MinSize() fyne.Size { return fyne.NewSize(10, 10) }

func (r *cursorRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *cursorRenderer) Refresh() {
	r.Layout(r.c.Size())
	r.line.Refresh()
	r.label.Refresh()
	canvas.Refresh(r.c)
}
