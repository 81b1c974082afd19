// Package card holds the business-card designs: the initial element layout
// each design starts from and the background it paints.
package card

import (
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/qrick/internal/scene"
)

const (
	Width      = 400.0
	Height     = 225.0
	PixelRatio = 4.0

	// LineHeight is the box height of one text line per pixel of font size.
	LineHeight = 1.2
)

type Design string

const (
	Classic      Design = "classic"
	Modern       Design = "modern"
	Sleek        Design = "sleek"
	Professional Design = "professional"
	VCard        Design = "vcard"
	Marriage     Design = "marriage"
)

var Designs = []Design{Classic, Modern, Sleek, Professional, VCard, Marriage}

func ParseDesign(s string) (Design, error) {
	if s == "" {
		return Classic, nil
	}
	for _, d := range Designs {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown card design %q", s)
}

// Colors are the card-level colours.
type Colors struct {
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
	Accent     string `json:"accent" yaml:"accent"`
}

func DefaultColors() Colors {
	return Colors{Background: "#FDFBF7", Text: "#5C3A21", Accent: "#E0A97E"}
}

// Font names understood by the renderer.
const (
	FontSans      = "sans-serif"
	FontItalic    = "italic sans-serif"
	FontScript    = "'Great Vibes', cursive"
	FontMonospace = "monospace"
)

const (
	codeWidth      = 120.0
	barcodeHeight  = 40.0
	modernAccent   = 100.0
	vcardCodeSize  = 80.0
	vcardInfoStart = 80.0
	vcardInfoStep  = 25.0
)

// Measure returns the advance width of s set in font at sizePx.
type Measure func(font, s string, sizePx float64) float64

// TextHeight is the box height of a possibly multi-line text.
func TextHeight(s string, sizePx float64) float64 {
	return LineHeight * sizePx * float64(strings.Count(s, "\n")+1)
}

type textSpec struct {
	id, content, font, color, align string
	size, x, y                      float64
	centered                        bool
}

// Initialize builds the starting elements of design d around a code element
// of kind codeKind carrying content.
func Initialize(d Design, codeKind scene.Kind, content string, colors Colors, measure Measure) []scene.Element {
	title, subtitle := "John Doe", "Software Engineer"
	if d == Marriage {
		title, subtitle = "John & Jane", "December 31, 2024"
	}

	codeH := barcodeHeight
	if codeKind == scene.KindQRCode {
		codeH = codeWidth
	}
	centeredCode := func(x, y float64) scene.Element {
		return scene.Element{ID: "code", Kind: codeKind, X: x, Y: y, Width: codeWidth, Height: codeH, Content: content}
	}

	var texts []textSpec
	var code scene.Element
	switch d {
	case Modern:
		texts = []textSpec{
			{id: "title", content: title, size: 22, x: modernAccent + 20, y: 60, align: "left"},
			{id: "subtitle", content: subtitle, size: 14, x: modernAccent + 20, y: 90, align: "left"},
		}
		code = centeredCode((Width-codeWidth+modernAccent)/2, 120)
	case Sleek:
		texts = []textSpec{
			{id: "title", content: title, size: 20, x: 20, y: 40, align: "left", color: colors.Background},
			{id: "subtitle", content: subtitle, size: 14, x: 20, y: 90, align: "left"},
		}
		code = centeredCode((Width-codeWidth)/2, 110)
	case Professional:
		texts = []textSpec{
			{id: "title", content: title, size: 22, y: 50, centered: true},
			{id: "subtitle", content: subtitle, size: 14, y: 75, centered: true},
		}
		code = centeredCode((Width-codeWidth)/2, 115)
	case VCard:
		texts = []textSpec{
			{id: "title", content: title, size: 20, x: 20, y: 30, align: "left", color: colors.Background},
			{id: "subtitle", content: subtitle, size: 12, x: 20, y: 50, align: "left", color: colors.Background, font: FontItalic},
			{id: "email", content: "john.doe@example.com", size: 14, x: 40, y: vcardInfoStart, align: "left"},
			{id: "phone", content: "+1 (123) 456-7890", size: 14, x: 40, y: vcardInfoStart + vcardInfoStep, align: "left"},
			{id: "website", content: "example.com", size: 14, x: 40, y: vcardInfoStart + 2*vcardInfoStep, align: "left"},
		}
		code = scene.Element{
			ID: "code", Kind: scene.KindQRCode,
			X: Width - vcardCodeSize - 20, Y: vcardInfoStart,
			Width: vcardCodeSize, Height: vcardCodeSize, Content: content,
		}
	case Marriage:
		texts = []textSpec{
			{id: "title", content: title, size: 36, y: 80, centered: true, font: FontScript},
			{id: "subtitle", content: subtitle, size: 16, y: 120, centered: true, font: FontItalic},
		}
		code = centeredCode((Width-codeWidth)/2, 155)
	default:
		texts = []textSpec{
			{id: "title", content: title, size: 24, y: 50, centered: true},
			{id: "subtitle", content: subtitle, size: 16, y: 80, centered: true},
		}
		code = centeredCode((Width-codeWidth)/2, 120)
	}

	out := make([]scene.Element, 0, len(texts)+1)
	for _, t := range texts {
		if t.font == "" {
			t.font = FontSans
		}
		if t.color == "" {
			t.color = colors.Text
		}
		w := 0.0
		if measure != nil {
			w = measure(t.font, t.content, t.size)
		}
		if w <= 0 {
			w = t.size * float64(len(t.content)) / 2
		}
		if t.centered {
			t.x = (Width - w) / 2
			t.align = "center"
		}
		out = append(out, scene.Element{
			ID:       t.id,
			Kind:     scene.KindText,
			X:        t.x,
			Y:        t.y,
			Width:    w,
			Height:   TextHeight(t.content, t.size),
			Content:  t.content,
			Font:     t.font,
			FontSize: t.size,
			Color:    t.color,
			Align:    t.align,
		})
	}
	return append(out, code)
}
