package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/fonts"
	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/layout"
	"github.com/cristianadrielbraun/qrick/internal/style"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

// Barcode-only canvas: a 320x80 display area at a fixed 4x scale.
const (
	BarcodeDisplayWidth  = 320.0
	BarcodeDisplayHeight = 80.0
	BarcodeScale         = 4.0
	// barcodeModuleWidth is the logical width of one bar module.
	barcodeModuleWidth = 2.0
	// barcodeTextLine is the vertical room a text line takes per pixel of
	// font size.
	barcodeTextLine = 1.25
)

// BarcodeLayout is the geometry of barcode-only mode.
type BarcodeLayout struct {
	Canvas geom.Rect
	Bars   geom.Rect
	// TextY is the text baseline, zero when the text is hidden.
	TextY float64
}

// BarcodeGeometry places bars of the given module width on the canvas.
func BarcodeGeometry(b BarcodeOptions, pos layout.Position, modules int) BarcodeLayout {
	margin := *b.Margin
	show := *b.ShowText

	textH := 0.0
	if show {
		textH = b.TextSize * barcodeTextLine
	}
	canvas := geom.Rect{W: BarcodeDisplayWidth + 2*margin, H: BarcodeDisplayHeight + textH + 2*margin}

	barsW := float64(modules) * barcodeModuleWidth
	if barsW > BarcodeDisplayWidth {
		barsW = BarcodeDisplayWidth
	}
	barsH := BarcodeDisplayHeight * b.HeightPercent / 100
	top := margin
	if show && pos == layout.Top {
		top += textH
	}
	l := BarcodeLayout{
		Canvas: canvas,
		Bars:   geom.Rect{X: (canvas.W - barsW) / 2, Y: top, W: barsW, H: barsH},
	}
	if show {
		if pos == layout.Top {
			l.TextY = b.TextSize + margin
		} else {
			l.TextY = barsH + b.TextSize + margin
		}
	}
	return l
}

func (r *Renderer) renderBarcode(comp Composition, res *Resolved, faces *fonts.Faces) (*Frame, error) {
	b := comp.Barcode
	bars, barsErr := symbol.BuildBarcode(res.Payload, res.Format)
	modules := 0
	if barsErr == nil {
		modules = bars.Width()
	}
	geo := BarcodeGeometry(b, res.TextPosition, modules)

	vp := geom.NewViewport(geo.Canvas.W, geo.Canvas.H, BarcodeScale)
	dc, err := r.newCanvas(vp)
	if err != nil {
		return nil, err
	}
	f := &Frame{Viewport: vp}

	if !style.IsTransparent(res.Style.Background) {
		dc.SetColor(res.Style.Background)
		dc.DrawRectangle(0, 0, geo.Canvas.W, geo.Canvas.H)
		dc.Fill()
	}

	if barsErr != nil {
		f.Err = symbol.UserMessage(barsErr)
		f.Image = dc.Image().(*image.RGBA)
		return f, nil
	}

	paintBars(dc, bars, geo.Bars, res.Style.Foreground)
	if *b.ShowText {
		ts := textStyle{
			Family: fonts.Mono,
			SizePx: b.TextSize,
			Color:  style.ParseColorOr(b.TextColor, style.DefaultForeground),
		}
		if err := drawText(dc, vp, faces, ts, res.Payload, geo.Canvas.W/2, geo.TextY, 0.5, 0, 0); err != nil {
			r.log.Warnf("skipping barcode text: %v", err)
		}
	}

	f.Image = dc.Image().(*image.RGBA)
	return f, nil
}

// paintBars fills every bar run of bars stretched into r.
func paintBars(dc *gg.Context, bars *symbol.Bars, r geom.Rect, c color.Color) {
	if bars.Width() == 0 {
		return
	}
	mw := r.W / float64(bars.Width())
	dc.SetColor(c)
	for _, run := range bars.Runs() {
		dc.DrawRectangle(r.X+float64(run[0])*mw, r.Y, float64(run[1])*mw, r.H)
	}
	dc.Fill()
}
