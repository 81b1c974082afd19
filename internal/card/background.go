package card

import (
	"image"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/style"
)

const marriageCircles = 20

// Background is everything PaintBackground needs.
type Background struct {
	Design Design
	Colors Colors
	// Image, when set, is tiled over the card instead of the colour and
	// design accents.
	Image image.Image
	// Seed drives the marriage design's circles.
	Seed int64
}

// PaintBackground fills a card-sized region of dc, which is expected to be
// scaled to logical card units by vp.
func PaintBackground(dc *gg.Context, vp geom.Viewport, bg Background) {
	if bg.Image != nil {
		paintTiled(dc, vp, bg.Image)
		return
	}

	dc.SetColor(style.ParseColorOr(bg.Colors.Background, style.ParseColorOr(DefaultColors().Background, style.DefaultBackground)))
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	accent := style.ParseColorOr(bg.Colors.Accent, style.ParseColorOr(DefaultColors().Accent, style.DefaultForeground))
	dc.SetColor(accent)
	// gg strokes in device pixels
	dc.SetLineWidth(vp.Length(2))
	switch bg.Design {
	case Modern:
		dc.DrawRectangle(0, 0, modernAccent, Height)
		dc.Fill()
	case Sleek, VCard:
		dc.DrawRectangle(0, 0, Width, 60)
		dc.Fill()
	case Professional:
		dc.DrawLine(50, 95, Width-50, 95)
		dc.Stroke()
	case Marriage:
		dc.SetLineWidth(vp.Length(1))
		rng := rand.New(rand.NewSource(bg.Seed))
		for i := 0; i < marriageCircles; i++ {
			x, y, r := rng.Float64()*Width, rng.Float64()*Height, rng.Float64()*20
			dc.NewSubPath()
			dc.DrawCircle(x, y, r)
			dc.Stroke()
		}
	}
}

// paintTiled repeats img from the card origin at one image pixel per
// logical unit.
func paintTiled(dc *gg.Context, vp geom.Viewport, img image.Image) {
	tile := img
	if b := img.Bounds(); vp.PixelRatio > 0 && vp.PixelRatio != 1 {
		w, h := int(math.Round(vp.Length(float64(b.Dx())))), int(math.Round(vp.Length(float64(b.Dy()))))
		if w > 0 && h > 0 {
			tile = imaging.Resize(img, w, h, imaging.Lanczos)
		}
	}
	dc.SetFillStyle(gg.NewSurfacePattern(tile, gg.RepeatBoth))
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()
}
