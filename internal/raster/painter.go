// Package raster paints QR module grids through a small path interface
// implemented by gg contexts and by the SVG path recorder.
package raster

import (
	"fmt"
	"strconv"
	"strings"
)

// Painter is the subset of *gg.Context the module shapes need.
type Painter interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	ClosePath()
	NewSubPath()
	DrawRectangle(x, y, w, h float64)
	DrawCircle(x, y, r float64)
	Fill()
}

// SVGPainter records Painter calls as SVG path data. Filled shapes share
// one paint, so they are merged into a single nonzero <path>.
type SVGPainter struct {
	// OffsetX/OffsetY translate every coordinate.
	OffsetX, OffsetY float64
	// Paint is the fill attribute value, e.g. "#000000" or "url(#qrGradient)".
	Paint string

	commands []string
	filled   []string
	fills    int
}

func NewSVGPainter(paint string) *SVGPainter {
	return &SVGPainter{Paint: paint}
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// coord rounds to 1/1000 unit to keep documents small.
func (p *SVGPainter) coord(x, y float64) string {
	rx := float64(int64((x+p.OffsetX)*1000+signHalf(x+p.OffsetX))) / 1000
	ry := float64(int64((y+p.OffsetY)*1000+signHalf(y+p.OffsetY))) / 1000
	return formatFloat(rx) + " " + formatFloat(ry)
}

func signHalf(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}

func (p *SVGPainter) MoveTo(x, y float64) {
	p.commands = append(p.commands, "M"+p.coord(x, y))
}

func (p *SVGPainter) LineTo(x, y float64) {
	p.commands = append(p.commands, "L"+p.coord(x, y))
}

func (p *SVGPainter) QuadraticTo(x1, y1, x2, y2 float64) {
	p.commands = append(p.commands, "Q"+p.coord(x1, y1)+" "+p.coord(x2, y2))
}

func (p *SVGPainter) ClosePath() {
	p.commands = append(p.commands, "Z")
}

func (p *SVGPainter) NewSubPath() {}

func (p *SVGPainter) DrawRectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

func (p *SVGPainter) DrawCircle(x, y, r float64) {
	rs := formatFloat(r)
	p.commands = append(p.commands,
		"M"+p.coord(x-r, y),
		fmt.Sprintf("A%s %s 0 1 1 %s", rs, rs, p.coord(x+r, y)),
		fmt.Sprintf("A%s %s 0 1 1 %s", rs, rs, p.coord(x-r, y)),
		"Z")
}

func (p *SVGPainter) Fill() {
	if len(p.commands) == 0 {
		return
	}
	p.filled = append(p.filled, strings.Join(p.commands, " "))
	p.commands = p.commands[:0]
	p.fills++
}

// Fills is the number of Fill calls that closed a non-empty path.
func (p *SVGPainter) Fills() int { return p.fills }

// PathData returns the merged path data of everything filled so far.
func (p *SVGPainter) PathData() string {
	return strings.Join(p.filled, " ")
}

// String renders the recorded shapes as one <path> element, or "" when
// nothing was filled.
func (p *SVGPainter) String() string {
	if len(p.filled) == 0 {
		return ""
	}
	if p.Paint == "" {
		return fmt.Sprintf(`<path d="%s"/>`, p.PathData())
	}
	return fmt.Sprintf(`<path d="%s" fill="%s"/>`, p.PathData(), p.Paint)
}
