package render

import (
	"image"
	"strings"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/card"
	"github.com/cristianadrielbraun/qrick/internal/fonts"
	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/layout"
	"github.com/cristianadrielbraun/qrick/internal/raster"
	"github.com/cristianadrielbraun/qrick/internal/scene"
	"github.com/cristianadrielbraun/qrick/internal/style"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

// InvalidCardBarcodeMessage is shown when a card's barcode element cannot
// be encoded.
const InvalidCardBarcodeMessage = "Invalid barcode content for card."

// barcodeTextGap separates a card barcode from its text.
const barcodeTextGap = 10.0

func cardElements(res *Resolved, comp Composition, faces *fonts.Faces) []scene.Element {
	return card.Initialize(res.Design, res.CodeKind, res.Payload, comp.Card.Colors, cardMeasure(faces))
}

func (r *Renderer) cardPixelRatio(comp Composition) float64 {
	if comp.PixelRatio > 0 {
		return comp.PixelRatio
	}
	if r.cfg.CardPixelRatio > 0 {
		return r.cfg.CardPixelRatio
	}
	return card.PixelRatio
}

func (r *Renderer) renderCard(comp Composition, res *Resolved, images map[string]image.Image, faces *fonts.Faces) (*Frame, error) {
	vp := geom.NewViewport(card.Width, card.Height, r.cardPixelRatio(comp))
	dc, err := r.newCanvas(vp)
	if err != nil {
		return nil, err
	}
	f := &Frame{Viewport: vp}

	card.PaintBackground(dc, vp, card.Background{
		Design: res.Design,
		Colors: comp.Card.Colors,
		Image:  images[comp.Card.BackgroundImage],
		Seed:   int64(r.cfg.MarriageSeed),
	})

	for _, e := range comp.Card.Elements {
		switch e.Kind {
		case scene.KindImage:
			raster.DrawImage(dc, images[e.Content], e.Rect())
		case scene.KindText:
			if err := r.drawCardText(dc, vp, faces, comp, e); err != nil {
				r.log.Warnf("skipping text element %s: %v", e.ID, err)
			}
		case scene.KindBarcode:
			if e.Content == "" {
				continue
			}
			if err := r.drawCardBarcode(dc, vp, faces, comp, res, e); err != nil {
				f.Err = InvalidCardBarcodeMessage
			}
		case scene.KindQRCode:
			if e.Content == "" {
				continue
			}
			if err := drawCardQR(dc, res, e); err != nil {
				f.Err = symbol.UserMessage(err)
			}
		}
	}

	for _, e := range comp.Card.Elements {
		if e.ID != "" && e.ID == comp.Selected {
			drawSelection(dc, e.Rect())
		}
	}

	f.Image = dc.Image().(*image.RGBA)
	return f, nil
}

// drawCardText sets each line top-aligned inside the element box,
// horizontally aligned within it.
func (r *Renderer) drawCardText(dc *gg.Context, vp geom.Viewport, faces *fonts.Faces, comp Composition, e scene.Element) error {
	if e.Content == "" {
		return nil
	}
	size := e.FontSize
	if size <= 0 {
		size = 16
	}
	c := e.Color
	if c == "" {
		c = comp.Card.Colors.Text
	}
	ts := textStyle{Family: cardFamily(e.Font), SizePx: size, Color: style.ParseColorOr(c, style.DefaultForeground)}

	align := layout.AlignLeft
	if a, err := layout.ParseAlign(e.Align); err == nil && e.Align != "" {
		align = a
	}
	x := e.X
	switch align {
	case layout.AlignCenter:
		x = e.X + e.Width/2
	case layout.AlignRight:
		x = e.X + e.Width
	}

	for i, line := range strings.Split(e.Content, "\n") {
		y := e.Y + float64(i)*size*card.LineHeight
		if err := drawText(dc, vp, faces, ts, line, x, y, align.Anchor(), 1, 0); err != nil {
			return err
		}
	}
	return nil
}

// drawCardBarcode draws the bars into the element box with the optional
// text above or below it.
func (r *Renderer) drawCardBarcode(dc *gg.Context, vp geom.Viewport, faces *fonts.Faces, comp Composition, res *Resolved, e scene.Element) error {
	bars, err := symbol.BuildBarcode(e.Content, res.Format)
	if err != nil {
		return err
	}
	b := comp.Barcode
	show := b.ShowText != nil && *b.ShowText

	textH := 0.0
	if show {
		textH = b.TextSize + barcodeTextGap
	}
	top := 0.0
	if res.TextPosition == layout.Top {
		top = textH
	}
	paintBars(dc, bars, geom.Rect{X: e.X, Y: e.Y + top, W: e.Width, H: e.Height}, res.Style.Foreground)

	if show {
		y := e.Y + e.Height + textH
		if res.TextPosition == layout.Top {
			y = e.Y + b.TextSize
		}
		ts := textStyle{Family: fonts.Mono, SizePx: b.TextSize, Color: style.ParseColorOr(b.TextColor, style.DefaultForeground)}
		if err := drawText(dc, vp, faces, ts, e.Content, e.X+e.Width/2, y, 0.5, 0, 0); err != nil {
			r.log.Warnf("skipping barcode text: %v", err)
		}
	}
	return nil
}

// drawCardQR draws a square-module QR with a one module margin, foreground
// only, into the element box.
func drawCardQR(dc *gg.Context, res *Resolved, e scene.Element) error {
	grid, err := symbol.BuildQRModules(e.Content, res.Level)
	if err != nil {
		return err
	}
	const margin = 1
	ms := e.Width / float64(grid.Size()+2*margin)
	msY := e.Height / float64(grid.Size()+2*margin)

	dc.Push()
	defer dc.Pop()
	dc.Translate(e.X+margin*ms, e.Y+margin*msY)
	dc.Scale(1, msY/ms)
	dc.SetColor(res.Style.Foreground)
	raster.PaintModules(dc, grid, ms, style.Squares, false)
	return nil
}
