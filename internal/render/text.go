package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/card"
	"github.com/cristianadrielbraun/qrick/internal/fonts"
	"github.com/cristianadrielbraun/qrick/internal/geom"
)

// textStyle is one run of text.
type textStyle struct {
	Family fonts.Family
	SizePx float64
	Color  color.Color
}

// drawText draws s at logical (x, y) with gg anchors ax/ay and a rotation
// about the anchor point. Glyphs are rasterised at the device resolution of vp.
func drawText(dc *gg.Context, vp geom.Viewport, faces *fonts.Faces, ts textStyle, s string, x, y, ax, ay, rotation float64) error {
	size := vp.Length(ts.SizePx)
	if size > float64(max(dc.Width(), dc.Height())) {
		return fmt.Errorf("font size %.0fpx exceeds the canvas", size)
	}
	face, err := faces.Face(ts.Family, size)
	if err != nil {
		return err
	}
	dx, dy := dc.TransformPoint(x, y)

	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetFontFace(face)
	dc.SetColor(ts.Color)
	if rotation != 0 {
		dc.RotateAbout(rotation, dx, dy)
	}
	dc.DrawStringAnchored(s, dx, dy, ax, ay)
	return nil
}

// cardFamily maps a card element's CSS-like font onto an embedded family.
// Card text is set bold unless a styled family is named.
func cardFamily(font string) fonts.Family {
	if f := fonts.ParseFamily(font); f != fonts.Regular {
		return f
	}
	return fonts.Bold
}

// cardMeasure measures card text the way it is drawn.
func cardMeasure(faces *fonts.Faces) card.Measure {
	return func(font, s string, sizePx float64) float64 {
		widest := 0.0
		for _, line := range strings.Split(s, "\n") {
			widest = math.Max(widest, faces.Measure(cardFamily(font), line, sizePx))
		}
		return widest
	}
}
