// Package render turns a composition (everything the editor knows about one
// symbol, barcode or card) into a painted frame. Every call recomputes the
// whole frame from the composition; nothing is cached between calls except
// decoded images.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/qrick/internal/card"
	"github.com/cristianadrielbraun/qrick/internal/config"
	"github.com/cristianadrielbraun/qrick/internal/layout"
	"github.com/cristianadrielbraun/qrick/internal/payload"
	"github.com/cristianadrielbraun/qrick/internal/scene"
	"github.com/cristianadrielbraun/qrick/internal/style"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

type Mode string

const (
	ModeQR      Mode = "qr"
	ModeBarcode Mode = "barcode"
	ModeCard    Mode = "card"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case "":
		return ModeQR, nil
	case ModeQR, ModeBarcode, ModeCard:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// ErrEmptyContent means there is nothing to encode.
var ErrEmptyContent = errors.New("no content to encode")

// ErrInvalidComposition wraps every validation failure of a composition.
var ErrInvalidComposition = errors.New("invalid composition")

// EmptyContentMessage is what users see for ErrEmptyContent.
const EmptyContentMessage = "Could not find code to download."

type Gradient struct {
	Type  string `json:"type" yaml:"type"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// FrameOptions describe the decorative frame around a QR canvas.
type FrameOptions struct {
	Pattern string  `json:"pattern" yaml:"pattern"`
	Rounded bool    `json:"rounded" yaml:"rounded"`
	Width   float64 `json:"width" yaml:"width"`
	Color   string  `json:"color" yaml:"color"`
}

// QROptions are the QR-mode settings.
type QROptions struct {
	Size     float64  `json:"size" yaml:"size"`
	Padding  *float64 `json:"padding,omitempty" yaml:"padding,omitempty"`
	Style    string   `json:"style" yaml:"style"`
	Shield   bool     `json:"shield" yaml:"shield"`
	Gradient Gradient `json:"gradient" yaml:"gradient"`
	Frame    FrameOptions `json:"frame" yaml:"frame"`
	Preset   string   `json:"preset,omitempty" yaml:"preset,omitempty"`
	// Logo is a data URI drawn centred on the symbol.
	Logo     string  `json:"logo,omitempty" yaml:"logo,omitempty"`
	LogoSize float64 `json:"logoSize" yaml:"logoSize"`
	Excavate *bool   `json:"excavate,omitempty" yaml:"excavate,omitempty"`
	// Texts are captions around the symbol; Images are free overlays in
	// canvas coordinates.
	Texts  []layout.Text   `json:"texts,omitempty" yaml:"texts,omitempty"`
	Images []scene.Element `json:"images,omitempty" yaml:"images,omitempty"`
}

// BarcodeOptions drive barcode-only mode and the barcode elements of cards.
type BarcodeOptions struct {
	Format        string   `json:"format" yaml:"format"`
	Margin        *float64 `json:"margin,omitempty" yaml:"margin,omitempty"`
	TextSize      float64  `json:"textSize" yaml:"textSize"`
	ShowText      *bool    `json:"showText,omitempty" yaml:"showText,omitempty"`
	TextPosition  string   `json:"textPosition" yaml:"textPosition"`
	HeightPercent float64  `json:"heightPercent" yaml:"heightPercent"`
	TextColor     string   `json:"textColor" yaml:"textColor"`
}

// CardOptions are the card-mode settings. Empty Elements are filled from
// the design's initial layout.
type CardOptions struct {
	Design          string          `json:"design" yaml:"design"`
	Code            string          `json:"code" yaml:"code"`
	Colors          card.Colors     `json:"colors" yaml:"colors"`
	BackgroundImage string          `json:"backgroundImage,omitempty" yaml:"backgroundImage,omitempty"`
	Elements        []scene.Element `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// Composition is the full input of one render.
type Composition struct {
	Mode Mode `json:"mode" yaml:"mode"`
	// Content is the encoded payload. When empty it is built from DataType
	// and Fields.
	Content    string         `json:"content" yaml:"content"`
	DataType   string         `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Fields     payload.Fields `json:"fields" yaml:"fields"`
	Level      string         `json:"level" yaml:"level"`
	Foreground string         `json:"foreground" yaml:"foreground"`
	Background string         `json:"background" yaml:"background"`
	PixelRatio float64        `json:"pixelRatio,omitempty" yaml:"pixelRatio,omitempty"`
	// Selected is the id of the element that gets the selection outline.
	Selected string `json:"selected,omitempty" yaml:"selected,omitempty"`

	QR      QROptions      `json:"qr" yaml:"qr"`
	Barcode BarcodeOptions `json:"barcode" yaml:"barcode"`
	Card    CardOptions    `json:"card" yaml:"card"`
}

// Decode reads a YAML or JSON composition document.
func Decode(data []byte) (Composition, error) {
	var c Composition
	if err := json.Unmarshal(data, &c); err == nil {
		return c, nil
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Composition{}, fmt.Errorf("failed to parse composition: %w", err)
	}
	return c, nil
}

func ptr[T any](v T) *T { return &v }

// WithDefaults fills unset values from cfg and the editor defaults.
func (c Composition) WithDefaults(cfg config.RenderConfig) Composition {
	if c.Mode == "" {
		c.Mode = ModeQR
	}
	if c.Foreground == "" {
		c.Foreground = style.Hex(style.DefaultForeground)
	}
	if c.Background == "" {
		c.Background = style.Hex(style.DefaultBackground)
	}

	q := &c.QR
	if q.Size <= 0 {
		q.Size = cfg.Size
	}
	if q.Padding == nil || *q.Padding < 0 {
		q.Padding = ptr(max(cfg.Padding, 0))
	}
	if q.LogoSize <= 0 {
		q.LogoSize = cfg.ImageSize
	}
	if q.Excavate == nil {
		q.Excavate = ptr(true)
	}
	if q.Gradient.Start == "" {
		q.Gradient.Start = style.Hex(style.DefaultGradientStart)
	}
	if q.Gradient.End == "" {
		q.Gradient.End = style.Hex(style.DefaultGradientEnd)
	}
	if q.Frame.Pattern != "" && q.Frame.Width <= 0 {
		q.Frame.Width = *q.Padding / 2
	}
	texts := make([]layout.Text, len(q.Texts))
	for i, t := range q.Texts {
		def := layout.NewText(t.ID)
		if t.SizePx <= 0 {
			t.SizePx = def.SizePx
		}
		if t.Color == "" {
			t.Color = def.Color
		}
		if t.Position == "" {
			t.Position = def.Position
		}
		if t.Align == "" {
			t.Align = def.Align
		}
		t.MarginPx = max(t.MarginPx, 0)
		texts[i] = t
	}
	q.Texts = texts

	b := &c.Barcode
	if b.Format == "" {
		b.Format = string(symbol.CODE128)
	}
	if b.Margin == nil {
		b.Margin = ptr(10.0)
	} else if *b.Margin < 0 {
		b.Margin = ptr(0.0)
	}
	if b.TextSize <= 0 {
		b.TextSize = 20
	}
	if b.ShowText == nil {
		b.ShowText = ptr(true)
	}
	if b.TextPosition == "" {
		b.TextPosition = string(layout.Bottom)
	}
	if b.HeightPercent <= 0 {
		b.HeightPercent = 100
	}
	if b.TextColor == "" {
		b.TextColor = "#000000"
	}

	def := card.DefaultColors()
	if c.Card.Colors.Background == "" {
		c.Card.Colors.Background = def.Background
	}
	if c.Card.Colors.Text == "" {
		c.Card.Colors.Text = def.Text
	}
	if c.Card.Colors.Accent == "" {
		c.Card.Colors.Accent = def.Accent
	}
	if c.Card.Design == "" {
		c.Card.Design = string(card.Classic)
	}
	if c.Card.Code == "" {
		c.Card.Code = string(ModeQR)
	}
	return c
}

// Payload is the string the symbol encodes.
func (c Composition) Payload() (string, error) {
	if c.Content != "" || c.DataType == "" {
		return c.Content, nil
	}
	dt, err := payload.ParseDataType(c.DataType)
	if err != nil {
		return "", err
	}
	return payload.Encode(dt, c.Fields), nil
}

// Resolved is a composition with every enumerated value parsed.
type Resolved struct {
	Mode         Mode
	Payload      string
	Level        symbol.Level
	Style        style.Config
	Logo         string
	Format       symbol.Format
	TextPosition layout.Position
	Design       card.Design
	CodeKind     scene.Kind
}

// Resolve validates c, which should already carry defaults.
func (c Composition) Resolve() (*Resolved, error) {
	r := &Resolved{Mode: c.Mode, Logo: c.QR.Logo}
	var err error

	if r.Mode, err = ParseMode(string(c.Mode)); err != nil {
		return nil, err
	}
	if r.Payload, err = c.Payload(); err != nil {
		return nil, err
	}
	if r.Level, err = symbol.ParseLevel(c.Level); err != nil {
		return nil, err
	}
	if r.Format, err = symbol.ParseFormat(c.Barcode.Format); err != nil {
		return nil, err
	}
	if r.TextPosition, err = layout.ParsePosition(c.Barcode.TextPosition); err != nil {
		return nil, err
	}
	if r.TextPosition != layout.Top && r.TextPosition != layout.Bottom {
		return nil, fmt.Errorf("barcode text position must be top or bottom, got %q", r.TextPosition)
	}
	if r.Design, err = card.ParseDesign(c.Card.Design); err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Card.Code) {
	case "", string(ModeQR), string(scene.KindQRCode):
		r.CodeKind = scene.KindQRCode
	case string(ModeBarcode):
		r.CodeKind = scene.KindBarcode
	default:
		return nil, fmt.Errorf("unknown card code kind %q", c.Card.Code)
	}
	for _, t := range c.QR.Texts {
		if _, err := layout.ParsePosition(string(t.Position)); err != nil {
			return nil, err
		}
		if _, err := layout.ParseAlign(string(t.Align)); err != nil {
			return nil, err
		}
	}

	r.Style, err = c.styleConfig()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (c Composition) styleConfig() (style.Config, error) {
	cfg := style.Default()
	var err error

	if c.QR.Preset != "" {
		if err := cfg.ApplyPreset(c.QR.Preset); err != nil {
			return cfg, err
		}
	} else {
		if cfg.Foreground, err = style.ParseColor(c.Foreground); err != nil {
			return cfg, fmt.Errorf("foreground: %w", err)
		}
		if cfg.Background, err = style.ParseColor(c.Background); err != nil {
			return cfg, fmt.Errorf("background: %w", err)
		}
	}
	if cfg.Module, err = style.ParseModuleStyle(c.QR.Style); err != nil {
		return cfg, err
	}
	cfg.ShieldCorner = c.QR.Shield

	if cfg.Gradient.Type, err = style.ParseGradientType(c.QR.Gradient.Type); err != nil {
		return cfg, err
	}
	cfg.Gradient.Start = style.ParseColorOr(c.QR.Gradient.Start, style.DefaultGradientStart)
	cfg.Gradient.End = style.ParseColorOr(c.QR.Gradient.End, style.DefaultGradientEnd)

	if cfg.Frame.Pattern, err = style.ParseFramePattern(c.QR.Frame.Pattern); err != nil {
		return cfg, err
	}
	cfg.Frame.Rounded = c.QR.Frame.Rounded
	cfg.Frame.Width = c.QR.Frame.Width
	if c.QR.Frame.Color != "" {
		cfg.Frame.Color = style.ParseColorOr(c.QR.Frame.Color, style.Transparent)
	}
	return cfg, nil
}

// ImageURIs lists every data URI the composition draws.
func (c Composition) ImageURIs() []string {
	var uris []string
	if c.Mode == ModeCard {
		if c.Card.BackgroundImage != "" {
			uris = append(uris, c.Card.BackgroundImage)
		}
		for _, e := range c.Card.Elements {
			if e.Kind == scene.KindImage && e.Content != "" {
				uris = append(uris, e.Content)
			}
		}
		return uris
	}
	if c.Mode == ModeQR {
		if c.QR.Logo != "" {
			uris = append(uris, c.QR.Logo)
		}
		for _, e := range c.QR.Images {
			if e.Content != "" {
				uris = append(uris, e.Content)
			}
		}
	}
	return uris
}
