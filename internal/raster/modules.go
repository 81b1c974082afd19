package raster

import (
	"github.com/cristianadrielbraun/qrick/internal/style"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

// PaintModules draws every dark module of g with its top-left at the
// painter's origin and returns how many modules were filled. The painter's
// current fill paint is used. With shield set, finder modules use the fixed
// shield shape whatever ms is.
func PaintModules(p Painter, g *symbol.Grid, moduleSize float64, ms style.ModuleStyle, shield bool) int {
	draw := shapeFor(ms)
	painted := 0
	n := g.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !g.At(row, col) {
				continue
			}
			c := Cell{
				X:    float64(col) * moduleSize,
				Y:    float64(row) * moduleSize,
				Size: moduleSize,
				Row:  row,
				Col:  col,
				Neighbors: Neighbors{
					Top:    g.At(row-1, col),
					Right:  g.At(row, col+1),
					Bottom: g.At(row+1, col),
					Left:   g.At(row, col-1),
				},
			}
			p.NewSubPath()
			if shield && g.IsFinder(row, col) {
				drawShield(p, c)
			} else {
				draw(p, c)
			}
			p.Fill()
			painted++
		}
	}
	return painted
}
