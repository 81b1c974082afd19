package raster

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/cristianadrielbraun/qrick/internal/style"
)

// DrawFrame paints a decorative border of f.Width logical pixels along the
// canvas edges. Pixels are painted in device space with paint; pixels the
// pattern leaves out keep whatever was drawn underneath.
func DrawFrame(dc *gg.Context, f style.Frame, pixelRatio float64, paint gg.Pattern) {
	if !f.Enabled() {
		return
	}
	dst, ok := dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	fw := int(math.Round(f.Width * pixelRatio))
	if fw < 1 {
		fw = 1
	}
	if 2*fw > w || 2*fw > h {
		return
	}

	radius := 0
	if f.Rounded {
		radius = fw * 2
	}
	mask := frameMask(f.Pattern, fw, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inBand := x < fw || x >= w-fw || y < fw || y >= h-fw
			if f.Rounded {
				// Rounded frames follow the outer and inner rounded outline
				// instead of the square band.
				inBand = insideRoundedRect(x, y, 0, 0, w-1, h-1, radius) &&
					!insideRoundedRect(x, y, fw, fw, w-1-fw, h-1-fw, radius-fw)
			}
			if !inBand || !mask(x, y) {
				continue
			}
			dst.Set(b.Min.X+x, b.Min.Y+y, paint.ColorAt(x, y))
		}
	}
}

// frameMask reports, for a pixel in the band, whether the pattern paints it.
func frameMask(p style.FramePattern, fw, w, h int) func(x, y int) bool {
	inCorner := func(x, y int) bool {
		return (x < fw || x >= w-fw) && (y < fw || y >= h-fw)
	}

	switch p {
	case style.FrameDashed:
		dash := fw * 3
		if dash < 6 {
			dash = 6
		}
		total := dash + dash/2
		return func(x, y int) bool {
			if inCorner(x, y) {
				return true
			}
			if y < fw || y >= h-fw {
				return (x-fw)%total < dash
			}
			return (y-fw)%total < dash
		}

	case style.FrameDotted:
		// Perforated stamp edge: a solid band with round holes.
		spacing := fw
		if spacing < 6 {
			spacing = 6
		}
		r := fw / 3
		if r < 2 {
			r = 2
		}
		return func(x, y int) bool {
			var dx, dy int
			switch {
			case y < fw || y >= h-fw:
				if x%spacing >= r*2 {
					return true
				}
				cy := fw / 2
				if y >= h-fw {
					cy = h - fw/2
				}
				dx, dy = x-((x/spacing)*spacing+r), y-cy
			default:
				if y%spacing >= r*2 {
					return true
				}
				cx := fw / 2
				if x >= w-fw {
					cx = w - fw/2
				}
				dx, dy = x-cx, y-((y/spacing)*spacing+r)
			}
			return dx*dx+dy*dy > r*r
		}

	case style.FrameDouble:
		outer := int(math.Max(1, math.Round(float64(fw)*0.4)))
		gap := int(math.Max(1, math.Round(float64(fw)*0.2)))
		if outer+gap >= fw {
			gap = 0
		}
		return func(x, y int) bool {
			d := x
			for _, v := range []int{w - 1 - x, y, h - 1 - y} {
				if v < d {
					d = v
				}
			}
			return d < outer || d >= outer+gap
		}
	}

	return func(int, int) bool { return true }
}

func insideRoundedRect(x, y, left, top, right, bottom, r int) bool {
	if left > right || top > bottom {
		return false
	}
	if r <= 0 {
		return x >= left && x <= right && y >= top && y <= bottom
	}
	if x >= left+r && x <= right-r && y >= top && y <= bottom {
		return true
	}
	if y >= top+r && y <= bottom-r && x >= left && x <= right {
		return true
	}
	for _, c := range [][2]int{{left + r, top + r}, {right - r, top + r}, {left + r, bottom - r}, {right - r, bottom - r}} {
		dx, dy := x-c[0], y-c[1]
		if dx*dx+dy*dy <= r*r {
			return true
		}
	}
	return false
}
