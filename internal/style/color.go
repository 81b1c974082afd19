package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Transparent is the zero colour used for "transparent" backgrounds.
var Transparent = color.RGBA{}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa (with or without '#'),
// rgb()/rgba() and "transparent".
func ParseColor(s string) (color.RGBA, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	switch {
	case v == "":
		return color.RGBA{}, fmt.Errorf("empty colour")
	case v == "transparent":
		return Transparent, nil
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v)
	}

	v = strings.TrimPrefix(v, "#")
	alpha := uint8(255)
	if len(v) == 8 {
		a, err := strconv.ParseUint(v[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		alpha = uint8(a)
		v = v[:6]
	}

	c, err := colorful.Hex("#" + v)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return premultiply(r, g, b, alpha), nil
}

// ParseColorOr returns def when s is empty or malformed.
func ParseColorOr(s string, def color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

func parseRGBFunc(v string) (color.RGBA, error) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", v)
	}
	parts := strings.Split(v[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", v)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, fmt.Errorf("invalid colour %q", v)
		}
		ch[i] = uint8(n + 0.5)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("invalid colour %q", v)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return premultiply(ch[0], ch[1], ch[2], alpha), nil
}

// premultiply builds the alpha-premultiplied color.RGBA for straight RGBA input.
func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 255 {
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	m := func(c uint8) uint8 { return uint8(uint16(c) * uint16(a) / 255) }
	return color.RGBA{R: m(r), G: m(g), B: m(b), A: a}
}

// Hex formats c as #rrggbb for SVG attributes; alpha is reported separately by Opacity.
func Hex(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "#000000"
	}
	// un-premultiply
	cf := colorful.Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
	}
	return cf.Clamped().Hex()
}

// Opacity returns the alpha of c in [0,1].
func Opacity(c color.Color) float64 {
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

// IsTransparent reports whether c has zero alpha.
func IsTransparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0
}

// Blend mixes two colours in sRGB; t=0 gives a, t=1 gives b.
func Blend(a, b color.Color, t float64) color.RGBA {
	ca, okA := colorful.MakeColor(a)
	cb, okB := colorful.MakeColor(b)
	if !okA {
		return toRGBA(b)
	}
	if !okB {
		return toRGBA(a)
	}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	_, _, _, aa := a.RGBA()
	_, _, _, ab := b.RGBA()
	alpha := uint8((float64(aa)+(float64(ab)-float64(aa))*t)/0xffff*255 + 0.5)
	return premultiply(r, g, bl, alpha)
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
