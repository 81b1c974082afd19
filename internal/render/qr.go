package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/fonts"
	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/layout"
	"github.com/cristianadrielbraun/qrick/internal/raster"
	"github.com/cristianadrielbraun/qrick/internal/style"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

// newCanvas allocates the backing image of vp, refusing canvases larger
// than the configured pixel budget.
func (r *Renderer) newCanvas(vp geom.Viewport) (*gg.Context, error) {
	px := vp.DevicePixels()
	if !(px > 0) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidComposition, errNoCanvas)
	}
	if limit := r.MaxPixels(); px > float64(limit) {
		return nil, fmt.Errorf("%w: %w: %.0f device pixels, limit %d", ErrInvalidComposition, ErrCanvasTooLarge, px, limit)
	}
	w, h := vp.DeviceSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidComposition, errNoCanvas)
	}
	dc := gg.NewContext(w, h)
	dc.Scale(vp.PixelRatio, vp.PixelRatio)
	return dc, nil
}

func (r *Renderer) pixelRatio(comp Composition) float64 {
	if comp.PixelRatio > 0 {
		return comp.PixelRatio
	}
	if r.cfg.PixelRatio > 0 {
		return r.cfg.PixelRatio
	}
	return 1
}

// QRLayout computes the canvas geometry of a QR composition.
func QRLayout(comp Composition, faces *fonts.Faces) layout.Box {
	q := comp.QR
	rects := make([]geom.Rect, 0, len(q.Images))
	for _, e := range q.Images {
		rects = append(rects, e.Rect())
	}
	padding := 0.0
	if q.Padding != nil {
		padding = *q.Padding
	}
	return layout.Compute(q.Size, q.Texts, rects, padding, fonts.Measurer{Faces: faces, Family: fonts.Regular})
}

func (r *Renderer) renderQR(comp Composition, res *Resolved, images map[string]image.Image, faces *fonts.Faces) (*Frame, error) {
	q := comp.QR
	box := QRLayout(comp, faces)
	vp := geom.NewViewport(box.CanvasWidth, box.CanvasHeight, r.pixelRatio(comp))
	dc, err := r.newCanvas(vp)
	if err != nil {
		return nil, err
	}
	f := &Frame{Viewport: vp, Layout: &box}
	st := res.Style

	// background
	if !style.IsTransparent(st.Background) {
		dc.SetColor(st.Background)
		dc.DrawRectangle(0, 0, box.CanvasWidth, box.CanvasHeight)
		dc.Fill()
	}

	// frame
	if st.Frame.Enabled() {
		var paint gg.Pattern = gg.NewSolidPattern(st.FrameColor())
		if st.Gradient.Enabled() && st.Frame.Color.A == 0 {
			paint = raster.GradientPattern(st.Gradient, vp.RectToDevice(geom.Rect{W: vp.LogicalW, H: vp.LogicalH}))
		}
		raster.DrawFrame(dc, st.Frame, vp.PixelRatio, paint)
	}

	// modules and logo
	if res.Payload != "" {
		logo := raster.Logo{Image: images[q.Logo], Size: q.LogoSize, Excavate: q.Excavate != nil && *q.Excavate}
		painted, err := paintSymbol(dc, vp, res, box, logo)
		if err != nil {
			f.Err = symbol.UserMessage(err)
		}
		f.Painted = painted
	}

	// free overlays
	for _, e := range q.Images {
		raster.DrawImage(dc, images[e.Content], e.Rect())
	}

	// captions
	measurer := fonts.Measurer{Faces: faces, Family: fonts.Regular}
	for _, p := range layout.Placements(box, q.Texts, measurer) {
		ts := textStyle{
			Family: fonts.Regular,
			SizePx: p.Text.SizePx,
			Color:  style.ParseColorOr(p.Text.Color, style.DefaultForeground),
		}
		if err := drawText(dc, vp, faces, ts, p.Text.Text, p.X, p.Y, p.AnchorX, p.AnchorY, p.Rotation); err != nil {
			r.log.Warnf("skipping caption %q: %v", p.Text.ID, err)
		}
	}

	// selection
	for _, e := range q.Images {
		if e.ID != "" && e.ID == comp.Selected {
			drawSelection(dc, e.Rect())
		}
	}

	f.Image = dc.Image().(*image.RGBA)
	return f, nil
}

// paintSymbol draws the QR modules and the logo at the symbol origin and
// returns the number of modules painted.
func paintSymbol(dc *gg.Context, vp geom.Viewport, res *Resolved, box layout.Box, logo raster.Logo) (int, error) {
	grid, err := symbol.BuildQRModules(res.Payload, res.Level)
	if err != nil {
		return 0, err
	}
	st := res.Style
	size := box.SymbolSize

	dc.Push()
	defer dc.Pop()
	dc.Translate(box.SymbolX, box.SymbolY)

	painted := grid.Count()
	if st.Module.IsLibrary() {
		img, err := libraryImage(vp, res, grid.Size(), size)
		if err != nil {
			return 0, err
		}
		raster.DrawImage(dc, img, geom.Rect{W: size, H: size})
	} else {
		dc.SetFillStyle(raster.SymbolPaint(dc, st, size))
		painted = raster.PaintModules(dc, grid, size/float64(grid.Size()), st.Module, st.ShieldCorner)
	}

	raster.DrawLogo(dc, logo, size, st.Background)
	return painted, nil
}

// libraryImage renders the standard-writer shapes at roughly device
// resolution; DrawImage resamples the rest.
func libraryImage(vp geom.Viewport, res *Resolved, modules int, size float64) (image.Image, error) {
	st := res.Style
	px := math.Ceil(vp.Length(size) / float64(modules))
	if px < 1 {
		px = 1
	}
	if px > 255 {
		px = 255
	}
	opts := symbol.StandardOptions{
		Shape:      symbol.LibraryShape(st.Module),
		ModulePx:   uint8(px),
		Foreground: st.Foreground,
		Background: style.Transparent,
	}
	// the library only has linear gradients
	if st.Gradient.Enabled() {
		opts.GradientStart, opts.GradientEnd = st.Gradient.Start, st.Gradient.End
	}
	return symbol.RenderStandard(res.Payload, res.Level, opts)
}
