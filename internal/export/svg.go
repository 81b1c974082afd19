package export

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/layout"
	"github.com/cristianadrielbraun/qrick/internal/raster"
	"github.com/cristianadrielbraun/qrick/internal/render"
	"github.com/cristianadrielbraun/qrick/internal/style"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

const (
	// svgMarginDivisor converts canvas padding into quiet-zone modules.
	svgMarginDivisor = 8.0
	barcodeSVGModule = 2.0
	barcodeSVGHeight = 0.8
	barcodeSVGText   = 5.0
	gradientID       = "qrFill"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func openSVG(b *strings.Builder, w, h float64) {
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`, num(w), num(h), num(w), num(h))
}

func rect(b *strings.Builder, r geom.Rect, fill string) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`, num(r.X), num(r.Y), num(r.W), num(r.H), fill)
}

// qrSVG serialises the symbol with its module shapes, fill and logo. The
// quiet zone is padding/8 modules. Library shapes have no vector form and
// are written as squares.
func (e *Exporter) qrSVG(comp render.Composition, res *render.Resolved) (string, error) {
	grid, err := symbol.BuildQRModules(res.Payload, res.Level)
	if err != nil {
		return "", &SymbolError{Message: symbol.UserMessage(err)}
	}
	st := res.Style
	if st.Module.IsLibrary() {
		st.Module = style.Squares
	}

	size := comp.QR.Size
	ms := size / float64(grid.Size())
	margin := 0.0
	if comp.QR.Padding != nil {
		margin = *comp.QR.Padding / svgMarginDivisor * ms
	}
	side := size + 2*margin
	symbolBox := geom.Rect{X: margin, Y: margin, W: size, H: size}

	var b strings.Builder
	openSVG(&b, side, side)
	defs, paint := raster.SVGPaint(st, gradientID, symbolBox)
	if defs != "" {
		b.WriteString("<defs>" + defs + "</defs>")
	}
	if !style.IsTransparent(st.Background) {
		rect(&b, geom.Rect{W: side, H: side}, style.Hex(st.Background))
	}

	p := raster.NewSVGPainter(paint)
	p.OffsetX, p.OffsetY = margin, margin
	raster.PaintModules(p, grid, ms, st.Module, st.ShieldCorner)
	b.WriteString(p.String())

	if res.Logo != "" {
		if _, err := e.loader.Load(res.Logo); err != nil {
			e.log.Warnf("leaving logo out of svg: %v", err)
		} else {
			logo := raster.Logo{Size: comp.QR.LogoSize, Excavate: comp.QR.Excavate != nil && *comp.QR.Excavate}
			r := logo.Rect(size)
			r.X += margin
			r.Y += margin
			if logo.Excavate && !style.IsTransparent(st.Background) {
				rect(&b, r, style.Hex(st.Background))
			}
			fmt.Fprintf(&b, `<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet" href="%s"/>`,
				num(r.X), num(r.Y), num(r.W), num(r.H), html.EscapeString(res.Logo))
		}
	}
	b.WriteString("</svg>")
	return b.String(), nil
}

// BarcodeSVG draws the bars as rects with the content under or over them.
func BarcodeSVG(comp render.Composition, res *render.Resolved) (string, error) {
	bars, err := symbol.BuildBarcode(res.Payload, res.Format)
	if err != nil {
		return "", &SymbolError{Message: symbol.UserMessage(err)}
	}
	opts := comp.Barcode
	margin := *opts.Margin
	show := *opts.ShowText
	barH := render.BarcodeDisplayHeight * opts.HeightPercent / 100 * barcodeSVGHeight

	textH := 0.0
	if show {
		textH = opts.TextSize + barcodeSVGText
	}
	w := float64(bars.Width())*barcodeSVGModule + 2*margin
	h := barH + textH + 2*margin

	barsY := margin
	textY := margin + barH + barcodeSVGText + opts.TextSize
	if res.TextPosition == layout.Top {
		barsY = margin + textH
		textY = margin + opts.TextSize
	}

	var b strings.Builder
	openSVG(&b, w, h)
	if !style.IsTransparent(res.Style.Background) {
		rect(&b, geom.Rect{W: w, H: h}, style.Hex(res.Style.Background))
	}
	fg := style.Hex(res.Style.Foreground)
	for _, run := range bars.Runs() {
		rect(&b, geom.Rect{
			X: margin + float64(run[0])*barcodeSVGModule,
			Y: barsY,
			W: float64(run[1]) * barcodeSVGModule,
			H: barH,
		}, fg)
	}
	if show {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-family="monospace" font-size="%s" fill="%s">%s</text>`,
			num(w/2), num(textY), num(opts.TextSize),
			style.Hex(style.ParseColorOr(opts.TextColor, style.DefaultForeground)), html.EscapeString(res.Payload))
	}
	b.WriteString("</svg>")
	return b.String(), nil
}
