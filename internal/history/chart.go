package history

import (
	"strconv"
	"strings"
)

// Canvas is the logical drawing area of the trend sparkline.
type Canvas struct {
	Width   float64
	Height  float64
	Padding float64
}

// DefaultCanvas matches the dashboard's 300x56 sparkline.
var DefaultCanvas = Canvas{Width: 300, Height: 56, Padding: 4}

// yMargin widens the vertical range so flat lines sit mid-canvas.
const yMargin = 10.0

// Point is a plot coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project maps values onto the canvas. X is spaced evenly by index; Y is
// scaled between min-10 and max+10 and flipped so larger values plot higher.
func Project(values []float64, c Canvas) []Point {
	n := len(values)
	if n == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	lo -= yMargin
	hi += yMargin

	xDen := float64(n - 1)
	if xDen == 0 {
		xDen = 1
	}
	yRange := hi - lo
	if yRange == 0 {
		yRange = 1
	}

	innerW := c.Width - 2*c.Padding
	innerH := c.Height - 2*c.Padding

	pts := make([]Point, n)
	for i, v := range values {
		pts[i] = Point{
			X: c.Padding + float64(i)/xDen*innerW,
			Y: c.Height - c.Padding - (v-lo)/yRange*innerH,
		}
	}
	return pts
}

// Polyline renders points as an SVG points attribute ("x,y x,y ...").
func Polyline(pts []Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return b.String()
}
