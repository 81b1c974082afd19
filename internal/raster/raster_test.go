package raster

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/style"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

// recorder counts Painter calls.
type recorder struct {
	quads, fills, rects, circles int
}

func (r *recorder) MoveTo(x, y float64)                {}
func (r *recorder) LineTo(x, y float64)                {}
func (r *recorder) QuadraticTo(x1, y1, x2, y2 float64) { r.quads++ }
func (r *recorder) ClosePath()                         {}
func (r *recorder) NewSubPath()                        {}
func (r *recorder) DrawRectangle(x, y, w, h float64)   { r.rects++ }
func (r *recorder) DrawCircle(x, y, rad float64)       { r.circles++ }
func (r *recorder) Fill()                              { r.fills++ }

var _ Painter = (*gg.Context)(nil)
var _ Painter = (*SVGPainter)(nil)

func TestPaintModulesCountsEveryStyle(t *testing.T) {
	g, err := symbol.BuildQRModules("https://example.com", symbol.LevelM)
	require.NoError(t, err)

	for _, ms := range style.ModuleStyles {
		for _, shield := range []bool{false, true} {
			rec := &recorder{}
			n := PaintModules(rec, g, 4, ms, shield)
			assert.Equal(t, g.Count(), n, "style %s shield %v", ms, shield)
			assert.Equal(t, n, rec.fills, "style %s shield %v", ms, shield)
		}
	}
}

func TestRoundedBlockHasNoInteriorCorners(t *testing.T) {
	block := symbol.NewGrid([][]bool{
		{true, true},
		{true, true},
	})
	for _, ms := range []style.ModuleStyle{style.Rounded, style.Fluid} {
		rec := &recorder{}
		PaintModules(rec, block, 10, ms, false)
		assert.Equal(t, 4, rec.quads, "style %s", ms)
	}

	single := symbol.NewGrid([][]bool{{true}})
	rec := &recorder{}
	PaintModules(rec, single, 10, style.Rounded, false)
	assert.Equal(t, 4, rec.quads)
}

func TestShieldOnlyTouchesFinders(t *testing.T) {
	g, err := symbol.BuildQRModules("shield", symbol.LevelL)
	require.NoError(t, err)

	finders := 0
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			if g.At(row, col) && g.IsFinder(row, col) {
				finders++
			}
		}
	}

	rec := &recorder{}
	PaintModules(rec, g, 1, style.Squares, true)
	assert.Equal(t, 4*finders, rec.quads)
	assert.Equal(t, g.Count()-finders, rec.rects)
}

func TestCrossAndDots(t *testing.T) {
	g := symbol.NewGrid([][]bool{{true, false}, {false, true}})

	rec := &recorder{}
	PaintModules(rec, g, 3, style.Cross, false)
	assert.Equal(t, 4, rec.rects)

	rec = &recorder{}
	PaintModules(rec, g, 3, style.Dots, false)
	assert.Equal(t, 2, rec.circles)
}

func TestSVGPainter(t *testing.T) {
	p := NewSVGPainter("#000000")
	assert.Equal(t, "", p.String())

	p.OffsetX, p.OffsetY = 1, 2
	p.DrawRectangle(0, 0, 2, 2)
	p.Fill()
	p.DrawCircle(5, 5, 1)
	p.Fill()
	p.Fill()

	assert.Equal(t, 2, p.Fills())
	assert.True(t, strings.HasPrefix(p.PathData(), "M1 2 L3 2 L3 4 L1 4 Z"))
	assert.Contains(t, p.PathData(), "A1 1 0 1 1 7 7")
	assert.Equal(t, `<path d="`+p.PathData()+`" fill="#000000"/>`, p.String())
}

func TestSVGPainterModules(t *testing.T) {
	g, err := symbol.BuildQRModules("svg", symbol.LevelL)
	require.NoError(t, err)

	p := NewSVGPainter("url(#qrGradient)")
	n := PaintModules(p, g, 1, style.Wavy, false)
	assert.Equal(t, n, p.Fills())
	assert.Contains(t, p.String(), `fill="url(#qrGradient)"`)
}

func TestSVGPaint(t *testing.T) {
	cfg := style.Default()
	defs, paint := SVGPaint(cfg, "g", geom.Rect{W: 10, H: 10})
	assert.Empty(t, defs)
	assert.Equal(t, "#000000", paint)

	cfg.Gradient.Type = style.GradientLinear
	defs, paint = SVGPaint(cfg, "g", geom.Rect{X: 1, Y: 1, W: 10, H: 10})
	assert.Equal(t, "url(#g)", paint)
	assert.Contains(t, defs, `<linearGradient id="g" gradientUnits="userSpaceOnUse" x1="1" y1="1" x2="11" y2="11">`)
	assert.Contains(t, defs, `stop-color="#8a2be2"`)

	cfg.Gradient.Type = style.GradientRadial
	defs, _ = SVGPaint(cfg, "g", geom.Rect{W: 10, H: 10})
	assert.Contains(t, defs, `cx="5" cy="5" r="5"`)
}

func TestSymbolPaintUsesDeviceSpace(t *testing.T) {
	dc := gg.NewContext(40, 40)
	dc.Scale(2, 2)
	cfg := style.Default()
	cfg.Gradient.Type = style.GradientLinear

	p := SymbolPaint(dc, cfg, 20)
	start := color.RGBAModel.Convert(p.ColorAt(0, 0)).(color.RGBA)
	end := color.RGBAModel.Convert(p.ColorAt(40, 40)).(color.RGBA)
	assert.Equal(t, style.DefaultGradientStart, start)
	assert.Equal(t, style.DefaultGradientEnd, end)
}

func TestDrawLogoExcavates(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 5, 5)) // fully transparent

	dc := gg.NewContext(40, 40)
	dc.Scale(2, 2)
	dc.SetColor(color.Black)
	dc.Clear()
	DrawLogo(dc, Logo{Image: logo, Size: 10, Excavate: true}, 20, style.Transparent)

	img := dc.Image()
	_, _, _, a := img.At(20, 20).RGBA()
	assert.Zero(t, a)
	_, _, _, a = img.At(2, 2).RGBA()
	assert.NotZero(t, a)

	dc = gg.NewContext(20, 20)
	dc.SetColor(color.Black)
	dc.Clear()
	DrawLogo(dc, Logo{Image: logo, Size: 10, Excavate: true}, 20, color.RGBA{255, 255, 255, 255})
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dc.Image().At(10, 10))
}

func TestDrawImageScalesToDevice(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	dc := gg.NewContext(40, 40)
	dc.Scale(2, 2)
	DrawImage(dc, src, geom.Rect{X: 5, Y: 5, W: 5, H: 5})

	img := dc.Image()
	_, _, _, a := img.At(15, 15).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = img.At(25, 25).RGBA()
	assert.Zero(t, a)
}

func TestDrawFrame(t *testing.T) {
	red := gg.NewSolidPattern(color.RGBA{255, 0, 0, 255})

	for _, p := range []style.FramePattern{style.FrameSimple, style.FrameDashed, style.FrameDotted, style.FrameDouble} {
		dc := gg.NewContext(100, 100)
		DrawFrame(dc, style.Frame{Pattern: p, Width: 10}, 1, red)
		img := dc.Image()
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.At(0, 20), "pattern %s", p)
		_, _, _, a := img.At(50, 50).RGBA()
		assert.Zero(t, a, "pattern %s", p)
	}

	dc := gg.NewContext(100, 100)
	DrawFrame(dc, style.Frame{Pattern: style.FrameSimple, Width: 10, Rounded: true}, 1, red)
	_, _, _, a := dc.Image().At(0, 0).RGBA()
	assert.Zero(t, a)

	dc = gg.NewContext(100, 100)
	DrawFrame(dc, style.Frame{Pattern: style.FrameNone, Width: 10}, 1, red)
	_, _, _, a = dc.Image().At(0, 50).RGBA()
	assert.Zero(t, a)
}
