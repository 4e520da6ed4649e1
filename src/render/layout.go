package render

import chart "github.com/wcharczuk/go-chart/v2"

// Layout records where the plot area ended up in a rendered image, in image pixels, together
// with the data ranges of both axes. The viewer uses it to turn clicks into data coordinates.
type Layout struct {
	Width, Height int
	Plot          chart.Box
	XMin, XMax    float64
	YMin, YMax    float64
}

// Contains reports whether pixel (px,py) lies inside the plot area.
func (l Layout) Contains(px, py float64) bool {
	return px >= float64(l.Plot.Left) && px <= float64(l.Plot.Right) &&
		py >= float64(l.Plot.Top) && py <= float64(l.Plot.Bottom)
}

// DataX maps an image x pixel to the x data coordinate.
func (l Layout) DataX(px float64) float64 {
	w := float64(l.Plot.Right - l.Plot.Left)
	if w <= 0 {
		return l.XMin
	}
	return l.XMin + (px-float64(l.Plot.Left))/w*(l.XMax-l.XMin)
}

// PixelX maps an x data coordinate to an image x pixel.
func (l Layout) PixelX(x float64) float64 {
	d := l.XMax - l.XMin
	if d == 0 {
		return float64(l.Plot.Left)
	}
	return float64(l.Plot.Left) + (x-l.XMin)/d*float64(l.Plot.Right-l.Plot.Left)
}

// PixelY maps a y data coordinate to an image y pixel.
func (l Layout) PixelY(y float64) float64 {
	d := l.YMax - l.YMin
	if d == 0 {
		return float64(l.Plot.Bottom)
	}
	return float64(l.Plot.Bottom) - (y-l.YMin)/d*float64(l.Plot.Bottom-l.Plot.Top)
}
