package render

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/scene"
	"github.com/cristianadrielbraun/qrick/internal/style"
)

var (
	selectionStroke = style.ParseColorOr("rgba(0,123,255,0.7)", color.RGBA{0, 86, 178, 178})
	selectionHandle = style.ParseColorOr("rgba(0,123,255,0.9)", color.RGBA{0, 111, 229, 229})
)

// drawSelection outlines r with a two device pixel stroke and draws the
// four resize handles.
func drawSelection(dc *gg.Context, r geom.Rect) {
	dc.Push()
	defer dc.Pop()

	dc.SetColor(selectionStroke)
	dc.SetLineWidth(2)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()

	dc.SetColor(selectionHandle)
	for _, h := range scene.HandleRects(r) {
		dc.DrawRectangle(h.X, h.Y, h.W, h.H)
	}
	dc.Fill()
}
