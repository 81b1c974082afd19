// Package layout sizes the canvas around a fixed-size symbol, its text
// annotations and its free image overlays.
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/cristianadrielbraun/qrick/internal/geom"
)

type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
)

func ParsePosition(s string) (Position, error) {
	switch Position(strings.ToLower(s)) {
	case "", Bottom:
		return Bottom, nil
	case Top:
		return Top, nil
	case Left:
		return Left, nil
	case Right:
		return Right, nil
	}
	return "", fmt.Errorf("unknown text position %q", s)
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

func ParseAlign(s string) (Align, error) {
	switch Align(strings.ToLower(s)) {
	case "", AlignCenter:
		return AlignCenter, nil
	case AlignLeft:
		return AlignLeft, nil
	case AlignRight:
		return AlignRight, nil
	}
	return "", fmt.Errorf("unknown alignment %q", s)
}

// Anchor is the horizontal anchor fraction for a, as used by gg.
func (a Align) Anchor() float64 {
	switch a {
	case AlignLeft:
		return 0
	case AlignRight:
		return 1
	}
	return 0.5
}

// Text is a caption placed on one side of the symbol.
type Text struct {
	ID       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Position Position `json:"position" yaml:"position"`
	Align    Align    `json:"align" yaml:"align"`
	Color    string   `json:"color" yaml:"color"`
	SizePx   float64  `json:"size" yaml:"size"`
	MarginPx float64  `json:"margin" yaml:"margin"`
	Vertical bool     `json:"vertical" yaml:"vertical"`
}

// NewText returns a caption with the editor's defaults.
func NewText(id string) Text {
	return Text{
		ID:       id,
		Text:     "Your Text Here",
		Position: Bottom,
		Align:    AlignCenter,
		Color:    "#000000",
		SizePx:   20,
		MarginPx: 12,
	}
}

// Measurer measures the advance width of a single line of text.
type Measurer interface {
	MeasureText(s string, sizePx float64) float64
}

// Insets are per-side extents in logical pixels.
type Insets struct {
	Top, Bottom, Left, Right float64
}

func (i Insets) add(o Insets) Insets {
	return Insets{Top: i.Top + o.Top, Bottom: i.Bottom + o.Bottom, Left: i.Left + o.Left, Right: i.Right + o.Right}
}

// Box is the computed canvas geometry.
type Box struct {
	CanvasWidth  float64
	CanvasHeight float64
	// SymbolX/SymbolY is the symbol's top-left corner.
	SymbolX, SymbolY float64
	SymbolSize       float64
	Padding          float64
	TextInsets       Insets
	ImageInsets      Insets
	Insets           Insets
}

// SymbolRect returns the symbol's box.
func (b Box) SymbolRect() geom.Rect {
	return geom.Rect{X: b.SymbolX, Y: b.SymbolY, W: b.SymbolSize, H: b.SymbolSize}
}

// Contains reports whether the symbol lies inside the padded canvas.
func (b Box) Contains() bool {
	const eps = 1e-9
	return b.SymbolX >= b.Padding-eps && b.SymbolY >= b.Padding-eps &&
		b.SymbolX+b.SymbolSize <= b.CanvasWidth-b.Padding+eps &&
		b.SymbolY+b.SymbolSize <= b.CanvasHeight-b.Padding+eps
}

// textExtent is the room a caption takes across its side, never negative.
func textExtent(t Text, m Measurer) float64 {
	if t.Position == Top || t.Position == Bottom || t.Vertical {
		return math.Max(0, t.SizePx)
	}
	if m == nil {
		return 0
	}
	return math.Max(0, m.MeasureText(t.Text, t.SizePx))
}

func textMargin(t Text) float64 { return math.Max(0, t.MarginPx) }

// TextInsets accumulates the space every caption needs on its side.
func TextInsets(texts []Text, m Measurer) Insets {
	var in Insets
	for _, t := range texts {
		d := textExtent(t, m) + textMargin(t)
		switch t.Position {
		case Top:
			in.Top += d
		case Bottom:
			in.Bottom += d
		case Left:
			in.Left += d
		case Right:
			in.Right += d
		}
	}
	return in
}

// ImageInsets is the per-side overhang of overlays beyond the symbol box
// placed at the text insets. Overhangs take the max, not the sum.
func ImageInsets(symbolSize float64, text Insets, images []geom.Rect) Insets {
	baseX, baseY := text.Left, text.Top
	right, bottom := baseX+symbolSize, baseY+symbolSize

	var in Insets
	for _, r := range images {
		if r.X < baseX {
			in.Left = math.Max(in.Left, baseX-r.X)
		}
		if r.Y < baseY {
			in.Top = math.Max(in.Top, baseY-r.Y)
		}
		if r.Right() > right {
			in.Right = math.Max(in.Right, r.Right()-right)
		}
		if r.Bottom() > bottom {
			in.Bottom = math.Max(in.Bottom, r.Bottom()-bottom)
		}
	}
	return in
}

// Compute reconciles the symbol, captions and overlays into one canvas.
func Compute(symbolSize float64, texts []Text, images []geom.Rect, padding float64, m Measurer) Box {
	if padding < 0 {
		padding = 0
	}
	textIn := TextInsets(texts, m)
	imageIn := ImageInsets(symbolSize, textIn, images)
	total := textIn.add(imageIn)

	return Box{
		CanvasWidth:  symbolSize + total.Left + total.Right + 2*padding,
		CanvasHeight: symbolSize + total.Top + total.Bottom + 2*padding,
		SymbolX:      total.Left + padding,
		SymbolY:      total.Top + padding,
		SymbolSize:   symbolSize,
		Padding:      padding,
		TextInsets:   textIn,
		ImageInsets:  imageIn,
		Insets:       total,
	}
}

// Placement is where and how to draw one caption: the anchor point, the
// gg-style anchor fractions and the rotation in radians.
type Placement struct {
	Text     Text
	X, Y     float64
	AnchorX  float64
	AnchorY  float64
	Rotation float64
}

// Placements positions every caption. Captions on the same side stack
// outward from the symbol in insertion order.
func Placements(box Box, texts []Text, m Measurer) []Placement {
	var used Insets
	out := make([]Placement, 0, len(texts))
	for _, t := range texts {
		ext, margin := textExtent(t, m), textMargin(t)
		p := Placement{Text: t, AnchorX: 0.5, AnchorY: 0.5}

		switch t.Position {
		case Top, Bottom:
			if t.Position == Top {
				p.Y = box.Insets.Top - used.Top - margin - t.SizePx/2
				used.Top += ext + margin
			} else {
				p.Y = box.SymbolY + box.SymbolSize + box.Padding + used.Bottom + margin + t.SizePx/2
				used.Bottom += ext + margin
			}
			switch t.Align {
			case AlignLeft:
				p.X, p.AnchorX = box.Insets.Left, 0
			case AlignRight:
				p.X, p.AnchorX = box.CanvasWidth-box.Insets.Right, 1
			default:
				p.X = box.CanvasWidth / 2
			}
		case Left, Right:
			p.Y = box.CanvasHeight / 2
			if t.Position == Left {
				p.X = box.Insets.Left - used.Left - margin - ext/2
				used.Left += ext + margin
			} else {
				p.X = box.SymbolX + box.SymbolSize + box.Padding + used.Right + margin + ext/2
				used.Right += ext + margin
			}
			if t.Vertical {
				p.Rotation = -math.Pi / 2
			}
		}
		out = append(out, p)
	}
	return out
}
