// Package scene is the editable canvas of absolutely positioned elements
// shared by the card composer and the QR overlay mode.
package scene

import (
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/qrick/internal/geom"
)

type Kind string

const (
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindBarcode Kind = "barcode"
	KindQRCode  Kind = "qrcode"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindText, KindImage, KindBarcode, KindQRCode:
		return k, nil
	}
	return "", fmt.Errorf("unknown element kind %q", s)
}

// Element is one node of the scene. Content is the text for text elements,
// a data URI for images and the encoded payload for codes.
type Element struct {
	ID       string  `json:"id" yaml:"id"`
	Kind     Kind    `json:"kind" yaml:"kind"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Content  string  `json:"content,omitempty" yaml:"content,omitempty"`
	Font     string  `json:"font,omitempty" yaml:"font,omitempty"`
	FontSize float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty" yaml:"color,omitempty"`
	Align    string  `json:"align,omitempty" yaml:"align,omitempty"`
}

func (e Element) Rect() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// KeepsAspect reports whether resizing e locks its aspect ratio.
func (e Element) KeepsAspect() bool {
	return e.Kind != KindText
}

// NewTextElement is the element the composer adds for "add text".
func NewTextElement(color string) Element {
	return Element{
		Kind:     KindText,
		X:        50,
		Y:        50,
		Width:    150,
		Height:   30,
		Content:  "New Text",
		Font:     "sans-serif",
		FontSize: 16,
		Color:    color,
		Align:    "left",
	}
}

// NewImageElement is a freshly uploaded overlay image.
func NewImageElement(uri string) Element {
	return Element{Kind: KindImage, X: 50, Y: 50, Width: 100, Height: 100, Content: uri}
}
