package raster

import (
	"math"

	"github.com/cristianadrielbraun/qrick/internal/style"
)

// Neighbors reports which orthogonal neighbours of a module are dark.
type Neighbors struct {
	Top, Right, Bottom, Left bool
}

// Cell is one dark module in symbol-local coordinates.
type Cell struct {
	X, Y, Size float64
	Row, Col   int
	Neighbors  Neighbors
}

// shapeFunc builds the path of one module; the caller fills it.
type shapeFunc func(p Painter, c Cell)

var shapes = map[style.ModuleStyle]shapeFunc{
	style.Squares: drawSquare,
	style.Dots:    drawDot,
	style.Rounded: roundedShape(0.25),
	style.Fluid:   roundedShape(0.5),
	style.Wavy:    drawWavy,
	style.Diamond: drawDiamond,
	style.Star:    drawStar,
	style.Cross:   drawCross,
}

// shapeFor returns the draw function for s; unknown and library styles
// fall back to squares.
func shapeFor(s style.ModuleStyle) shapeFunc {
	if f, ok := shapes[s]; ok {
		return f
	}
	return drawSquare
}

func drawSquare(p Painter, c Cell) {
	p.DrawRectangle(c.X, c.Y, c.Size, c.Size)
}

// dotRadiusDivisor gives dots a small gap between neighbours.
const dotRadiusDivisor = 2.2

func drawDot(p Painter, c Cell) {
	p.DrawCircle(c.X+c.Size/2, c.Y+c.Size/2, c.Size/dotRadiusDivisor)
}

// roundedShape rounds only corners whose two adjacent orthogonal
// neighbours are both light, so runs of modules merge into blobs.
func roundedShape(ratio float64) shapeFunc {
	return func(p Painter, c Cell) {
		x, y, s := c.X, c.Y, c.Size
		r := ratio * s
		n := c.Neighbors

		p.MoveTo(x+r, y)
		p.LineTo(x+s-r, y)
		if !n.Top && !n.Right {
			p.QuadraticTo(x+s, y, x+s, y+r)
		} else {
			p.LineTo(x+s, y)
			p.LineTo(x+s, y+r)
		}

		p.LineTo(x+s, y+s-r)
		if !n.Bottom && !n.Right {
			p.QuadraticTo(x+s, y+s, x+s-r, y+s)
		} else {
			p.LineTo(x+s, y+s)
			p.LineTo(x+s-r, y+s)
		}

		p.LineTo(x+r, y+s)
		if !n.Bottom && !n.Left {
			p.QuadraticTo(x, y+s, x, y+s-r)
		} else {
			p.LineTo(x, y+s)
			p.LineTo(x, y+s-r)
		}

		p.LineTo(x, y+r)
		if !n.Top && !n.Left {
			p.QuadraticTo(x, y, x+r, y)
		} else {
			p.LineTo(x, y)
			p.LineTo(x+r, y)
		}
		p.ClosePath()
	}
}

func drawWavy(p Painter, c Cell) {
	x, y, s := c.X, c.Y, c.Size
	p.MoveTo(x, y+s/2)
	p.QuadraticTo(x+s/2, y-s/2, x+s, y+s/2)
	p.QuadraticTo(x+s/2, y+s*1.5, x, y+s/2)
	p.ClosePath()
}

func drawDiamond(p Painter, c Cell) {
	x, y, s := c.X, c.Y, c.Size
	p.MoveTo(x+s/2, y)
	p.LineTo(x+s, y+s/2)
	p.LineTo(x+s/2, y+s)
	p.LineTo(x, y+s/2)
	p.ClosePath()
}

const starPoints = 5

func drawStar(p Painter, c Cell) {
	cx, cy := c.X+c.Size/2, c.Y+c.Size/2
	outer := c.Size / 2
	inner := outer / 2
	for i := 0; i < starPoints*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/starPoints - math.Pi/2
		x, y := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.ClosePath()
}

func drawCross(p Painter, c Cell) {
	arm := c.Size / 3
	p.DrawRectangle(c.X+arm, c.Y, arm, c.Size)
	p.DrawRectangle(c.X, c.Y+arm, c.Size, arm)
}

// drawShield is the fixed finder-module shape: a square with every corner
// rounded by half a module.
func drawShield(p Painter, c Cell) {
	x, y, s := c.X, c.Y, c.Size
	r := 0.5 * s
	p.MoveTo(x, y+r)
	p.LineTo(x, y+s-r)
	p.QuadraticTo(x, y+s, x+r, y+s)
	p.LineTo(x+s-r, y+s)
	p.QuadraticTo(x+s, y+s, x+s, y+s-r)
	p.LineTo(x+s, y+r)
	p.QuadraticTo(x+s, y, x+s-r, y)
	p.LineTo(x+r, y)
	p.QuadraticTo(x, y, x, y+r)
	p.ClosePath()
}
