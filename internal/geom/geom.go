// Package geom holds the shared geometry types and the device pixel ratio
// transform used by both drawing and pointer hit-testing.
package geom

import "math"

type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in logical canvas units.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Aspect returns W/H, or 1 for a degenerate box.
func (r Rect) Aspect() float64 {
	if r.H == 0 {
		return 1
	}
	return r.W / r.H
}

// Viewport maps between the three coordinate spaces of a canvas: the client
// (displayed) space a pointer reports in, the logical space layout works in,
// and the device space pixels are written in.
type Viewport struct {
	LogicalW float64 `json:"logicalWidth"`
	LogicalH float64 `json:"logicalHeight"`
	// DisplayW/DisplayH is the size the canvas is shown at. Zero means 1:1.
	DisplayW   float64 `json:"displayWidth"`
	DisplayH   float64 `json:"displayHeight"`
	PixelRatio float64 `json:"pixelRatio"`
}

func NewViewport(w, h, pixelRatio float64) Viewport {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return Viewport{LogicalW: w, LogicalH: h, DisplayW: w, DisplayH: h, PixelRatio: pixelRatio}
}

// WithDisplay returns v shown at the given client size.
func (v Viewport) WithDisplay(w, h float64) Viewport {
	v.DisplayW, v.DisplayH = w, h
	return v
}

// ClientToLogical converts a pointer position relative to the displayed canvas
// origin into logical canvas coordinates.
func (v Viewport) ClientToLogical(p Point) Point {
	sx, sy := 1.0, 1.0
	if v.DisplayW > 0 {
		sx = v.LogicalW / v.DisplayW
	}
	if v.DisplayH > 0 {
		sy = v.LogicalH / v.DisplayH
	}
	return Point{X: p.X * sx, Y: p.Y * sy}
}

// DevicePixels is the backing pixel count of the canvas, computed in floating
// point so oversized canvases can be rejected before allocation.
func (v Viewport) DevicePixels() float64 {
	return v.LogicalW * v.PixelRatio * v.LogicalH * v.PixelRatio
}

// DeviceSize is the backing pixel size of the canvas.
func (v Viewport) DeviceSize() (int, int) {
	return int(math.Ceil(v.LogicalW * v.PixelRatio)), int(math.Ceil(v.LogicalH * v.PixelRatio))
}

func (v Viewport) RectToDevice(r Rect) Rect {
	return Rect{X: r.X * v.PixelRatio, Y: r.Y * v.PixelRatio, W: r.W * v.PixelRatio, H: r.H * v.PixelRatio}
}

// Length scales a logical length (font size, line width) to device pixels.
func (v Viewport) Length(l float64) float64 {
	return l * v.PixelRatio
}
