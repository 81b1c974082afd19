package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/style"
)

// GradientPattern spans g over r, given in device pixels. Linear runs from
// the top-left to the bottom-right corner; radial runs from the centre to
// half the width.
func GradientPattern(g style.Gradient, r geom.Rect) gg.Pattern {
	var grad gg.Gradient
	if g.Type == style.GradientRadial {
		c := r.Center()
		grad = gg.NewRadialGradient(c.X, c.Y, 0, c.X, c.Y, r.W/2)
	} else {
		grad = gg.NewLinearGradient(r.X, r.Y, r.Right(), r.Bottom())
	}
	grad.AddColorStop(0, g.Start)
	grad.AddColorStop(1, g.End)
	return grad
}

// DeviceRect maps r from dc's user space to device pixels. Only scale and
// translation are expected on the matrix.
func DeviceRect(dc *gg.Context, r geom.Rect) geom.Rect {
	x0, y0 := dc.TransformPoint(r.X, r.Y)
	x1, y1 := dc.TransformPoint(r.Right(), r.Bottom())
	return geom.Rect{X: math.Min(x0, x1), Y: math.Min(y0, y1), W: math.Abs(x1 - x0), H: math.Abs(y1 - y0)}
}

// SymbolPaint is the module paint for a symbol of the given side drawn at
// dc's current origin. gg evaluates gradients in device space, so the box is
// transformed first.
func SymbolPaint(dc *gg.Context, cfg style.Config, size float64) gg.Pattern {
	if !cfg.Gradient.Enabled() {
		return gg.NewSolidPattern(cfg.Foreground)
	}
	return GradientPattern(cfg.Gradient, DeviceRect(dc, geom.Rect{W: size, H: size}))
}

// SVGPaint returns the <defs> content and fill attribute for cfg over the
// symbol box r in SVG user units.
func SVGPaint(cfg style.Config, id string, r geom.Rect) (defs, paint string) {
	if !cfg.Gradient.Enabled() {
		return "", style.Hex(cfg.Foreground)
	}
	g := cfg.Gradient
	stops := fmt.Sprintf(`<stop offset="0" stop-color="%s" stop-opacity="%s"/><stop offset="1" stop-color="%s" stop-opacity="%s"/>`,
		style.Hex(g.Start), formatFloat(style.Opacity(g.Start)), style.Hex(g.End), formatFloat(style.Opacity(g.End)))
	if g.Type == style.GradientRadial {
		c := r.Center()
		defs = fmt.Sprintf(`<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">%s</radialGradient>`,
			id, formatFloat(c.X), formatFloat(c.Y), formatFloat(r.W/2), stops)
	} else {
		defs = fmt.Sprintf(`<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">%s</linearGradient>`,
			id, formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Right()), formatFloat(r.Bottom()), stops)
	}
	return defs, "url(#" + id + ")"
}

// ClearRect makes r (user space) fully transparent on dc's backing image.
func ClearRect(dc *gg.Context, r geom.Rect) {
	dst, ok := dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	d := DeviceRect(dc, r)
	rect := image.Rect(int(math.Floor(d.X)), int(math.Floor(d.Y)), int(math.Ceil(d.Right())), int(math.Ceil(d.Bottom())))
	draw.Draw(dst, rect, image.Transparent, image.Point{}, draw.Src)
}

// maxImageCover bounds a drawn image to this many times the canvas area.
const maxImageCover = 4

// DrawImage draws img stretched into r (user space). The image is resampled
// once to device pixels and blitted without further transform so it stays
// sharp at any pixel ratio. Boxes far larger than the canvas are skipped.
func DrawImage(dc *gg.Context, img image.Image, r geom.Rect) {
	if img == nil {
		return
	}
	d := DeviceRect(dc, r)
	if d.W*d.H > maxImageCover*float64(dc.Width())*float64(dc.Height()) {
		return
	}
	w, h := int(math.Round(d.W)), int(math.Round(d.H))
	if w <= 0 || h <= 0 {
		return
	}
	var src image.Image = img
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		src = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	dc.Push()
	dc.Identity()
	dc.DrawImage(src, int(math.Round(d.X)), int(math.Round(d.Y)))
	dc.Pop()
}

// Logo places logo centred on a symbol of side symbolSize at dc's origin.
// Excavation clears the logo box and backfills it with bg first.
type Logo struct {
	Image    image.Image
	Size     float64
	Excavate bool
}

func (l Logo) Rect(symbolSize float64) geom.Rect {
	off := (symbolSize - l.Size) / 2
	return geom.Rect{X: off, Y: off, W: l.Size, H: l.Size}
}

func DrawLogo(dc *gg.Context, l Logo, symbolSize float64, bg color.Color) {
	if l.Image == nil || l.Size <= 0 {
		return
	}
	r := l.Rect(symbolSize)
	if l.Excavate {
		ClearRect(dc, r)
		if !style.IsTransparent(bg) {
			dc.SetColor(bg)
			dc.DrawRectangle(r.X, r.Y, r.W, r.H)
			dc.Fill()
		}
	}
	DrawImage(dc, l.Image, r)
}
