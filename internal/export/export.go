// Package export turns compositions into downloadable PNG, JPEG or SVG
// blobs.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/cristianadrielbraun/qrick/internal/logger"
	"github.com/cristianadrielbraun/qrick/internal/media"
	"github.com/cristianadrielbraun/qrick/internal/render"
	"github.com/cristianadrielbraun/qrick/internal/style"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	SVG  Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

func (f Format) MIME() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case SVG:
		return "image/svg+xml"
	}
	return "image/png"
}

// JPEGQuality matches the download quality of the editor.
const JPEGQuality = 92

// ErrNotSupported is returned for SVG exports of cards.
var ErrNotSupported = errors.New("svg export is not supported for cards")

// NotSupportedMessage is what users see for ErrNotSupported.
const NotSupportedMessage = "SVG download is not supported for cards yet."

// SymbolError is a symbol that could not be encoded; Message is user facing.
type SymbolError struct {
	Message string
}

func (e *SymbolError) Error() string { return e.Message }

// Blob is one exported file.
type Blob struct {
	MIME     string
	Filename string
	Data     []byte
}

// Exporter renders compositions into files.
type Exporter struct {
	renderer *render.Renderer
	loader   *media.Loader
	log      logger.Logger
}

func NewExporter(r *render.Renderer, loader *media.Loader, log logger.Logger) *Exporter {
	if log == nil {
		log = logger.NewNop()
	}
	if loader == nil {
		loader = media.NewLoader(media.Options{}, log)
	}
	return &Exporter{renderer: r, loader: loader, log: log}
}

// Export renders comp as format. The selection outline is never exported.
func (e *Exporter) Export(ctx context.Context, comp render.Composition, format Format) (*Blob, error) {
	mode, err := render.ParseMode(string(comp.Mode))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", render.ErrInvalidComposition, err)
	}
	if mode == render.ModeCard && format == SVG {
		return nil, ErrNotSupported
	}

	comp.Selected = ""
	comp, res, err := e.renderer.Prepare(comp)
	if err != nil {
		return nil, err
	}
	if mode != render.ModeCard && res.Payload == "" {
		return nil, render.ErrEmptyContent
	}

	blob := &Blob{MIME: format.MIME(), Filename: filename(res, format)}
	if format == SVG {
		var doc string
		if mode == render.ModeBarcode {
			doc, err = BarcodeSVG(comp, res)
		} else {
			doc, err = e.qrSVG(comp, res)
		}
		if err != nil {
			return nil, err
		}
		blob.Data = []byte(doc)
		e.log.Debugf("exported %s (%d bytes)", blob.Filename, len(blob.Data))
		return blob, nil
	}

	f, err := e.renderer.Render(ctx, comp)
	if err != nil {
		return nil, err
	}
	if f.Err != "" {
		return nil, &SymbolError{Message: f.Err}
	}
	if blob.Data, err = Encode(f.Image, format, flattenColor(comp, res)); err != nil {
		return nil, err
	}
	e.log.Debugf("exported %s (%d bytes)", blob.Filename, len(blob.Data))
	return blob, nil
}

func filename(res *render.Resolved, format Format) string {
	switch res.Mode {
	case render.ModeCard:
		return "card." + format.Ext()
	case render.ModeBarcode:
		return strings.ToLower(string(res.Format)) + "." + format.Ext()
	}
	return "qr-code." + format.Ext()
}

// flattenColor is the opaque colour JPEG exports are composited onto.
func flattenColor(comp render.Composition, res *render.Resolved) color.RGBA {
	bg := res.Style.Background
	if res.Mode == render.ModeCard {
		bg = style.ParseColorOr(comp.Card.Colors.Background, style.DefaultBackground)
	}
	if bg.A == 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{bg.R, bg.G, bg.B, 255}
}

// Encode writes img as a PNG or JPEG. JPEGs are composited onto bg first.
func Encode(img image.Image, format Format, bg color.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case JPEG:
		b := img.Bounds()
		out := image.NewRGBA(b)
		draw.Draw(out, b, &image.Uniform{C: bg}, image.Point{}, draw.Src)
		draw.Draw(out, b, img, b.Min, draw.Over)
		if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case PNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot raster-encode %s", format)
	}
	return buf.Bytes(), nil
}

// Preview scales img so its longer side is size pixels. Nearest-neighbour
// keeps module edges crisp.
func Preview(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || max(b.Dx(), b.Dy()) == size {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, size, 0, imaging.NearestNeighbor)
	}
	return imaging.Resize(img, 0, size, imaging.NearestNeighbor)
}
