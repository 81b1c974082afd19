// Package style holds the visual configuration shared by the rasterizer,
// the render pipeline and the exporters.
package style

import (
	"fmt"
	"image/color"
	"strings"
)

// ModuleStyle selects how each dark QR module is drawn.
type ModuleStyle string

const (
	Squares ModuleStyle = "squares"
	Dots    ModuleStyle = "dots"
	Rounded ModuleStyle = "rounded"
	Fluid   ModuleStyle = "fluid"
	Wavy    ModuleStyle = "wavy"
	Diamond ModuleStyle = "diamond"
	Star    ModuleStyle = "star"
	Cross   ModuleStyle = "cross"

	// Library styles are drawn by the yeqown standard writer shapes.
	Liquid  ModuleStyle = "liquid"
	Chain   ModuleStyle = "chain"
	HStripe ModuleStyle = "hstripe"
	VStripe ModuleStyle = "vstripe"
)

var ModuleStyles = []ModuleStyle{Squares, Dots, Rounded, Fluid, Wavy, Diamond, Star, Cross, Liquid, Chain, HStripe, VStripe}

// IsLibrary reports whether s is rendered through the standard writer.
func (s ModuleStyle) IsLibrary() bool {
	switch s {
	case Liquid, Chain, HStripe, VStripe:
		return true
	}
	return false
}

func ParseModuleStyle(s string) (ModuleStyle, error) {
	if s == "" {
		return Squares, nil
	}
	for _, m := range ModuleStyles {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module style %q", s)
}

type GradientType string

const (
	GradientNone   GradientType = "none"
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

func ParseGradientType(s string) (GradientType, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return GradientNone, nil
	case "linear":
		return GradientLinear, nil
	case "radial":
		return GradientRadial, nil
	}
	return "", fmt.Errorf("unknown gradient type %q", s)
}

// Gradient is a two-stop fill spanning the symbol box.
type Gradient struct {
	Type  GradientType
	Start color.RGBA
	End   color.RGBA
}

func (g Gradient) Enabled() bool {
	return g.Type == GradientLinear || g.Type == GradientRadial
}

// FramePattern selects the decorative border drawn in the padding band.
type FramePattern string

const (
	FrameNone   FramePattern = "none"
	FrameSimple FramePattern = "simple"
	FrameDashed FramePattern = "dashed"
	FrameDotted FramePattern = "dotted"
	FrameDouble FramePattern = "double"
)

func ParseFramePattern(s string) (FramePattern, error) {
	switch FramePattern(strings.ToLower(s)) {
	case "", FrameNone:
		return FrameNone, nil
	case FrameSimple, FrameDashed, FrameDotted, FrameDouble:
		return FramePattern(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown frame pattern %q", s)
}

type Frame struct {
	Pattern FramePattern
	Rounded bool
	Width   float64
	Color   color.RGBA
}

func (f Frame) Enabled() bool {
	return f.Pattern != "" && f.Pattern != FrameNone && f.Width > 0
}

// Config is the full look of a QR symbol.
type Config struct {
	Module       ModuleStyle
	Foreground   color.RGBA
	Background   color.RGBA
	Gradient     Gradient
	ShieldCorner bool
	Frame        Frame
}

var (
	DefaultForeground    = color.RGBA{0, 0, 0, 255}
	DefaultBackground    = color.RGBA{255, 255, 255, 255}
	DefaultGradientStart = color.RGBA{0x8a, 0x2b, 0xe2, 255}
	DefaultGradientEnd   = color.RGBA{0x46, 0x82, 0xb4, 255}
)

func Default() Config {
	return Config{
		Module:     Squares,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
		Gradient: Gradient{
			Type:  GradientNone,
			Start: DefaultGradientStart,
			End:   DefaultGradientEnd,
		},
	}
}

// FrameColor is the frame colour, falling back to the foreground or the
// gradient start like the symbol does.
func (c Config) FrameColor() color.RGBA {
	if c.Frame.Color.A != 0 {
		return c.Frame.Color
	}
	if c.Gradient.Enabled() {
		return c.Gradient.Start
	}
	return c.Foreground
}

// Preset is a named foreground/background pair.
type Preset struct {
	Name       string
	Foreground string
	Background string
}

var Presets = []Preset{
	{"Classic", "#000000", "#ffffff"},
	{"Ocean", "#0A74DA", "#F0F8FF"},
	{"Forest", "#228B22", "#F5F5F5"},
	{"Sunset", "#FF4500", "#FFF8DC"},
	{"Royal", "#4169E1", "#F8F8FF"},
	{"Charcoal", "#36454F", "#F5F5F5"},
	{"Mint", "#3EB489", "#F5FFFA"},
}

// ApplyPreset sets the colours of the named preset (case-insensitive).
func (c *Config) ApplyPreset(name string) error {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			c.Foreground = ParseColorOr(p.Foreground, DefaultForeground)
			c.Background = ParseColorOr(p.Background, DefaultBackground)
			return nil
		}
	}
	return fmt.Errorf("unknown preset %q", name)
}
