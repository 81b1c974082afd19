package symbol

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
)

// LibraryShape names a module shape drawn by the standard writer.
type LibraryShape string

const (
	ShapeLiquid  LibraryShape = "liquid"
	ShapeChain   LibraryShape = "chain"
	ShapeHStripe LibraryShape = "hstripe"
	ShapeVStripe LibraryShape = "vstripe"
)

// StandardOptions configures RenderStandard.
type StandardOptions struct {
	Shape      LibraryShape
	ModulePx   uint8
	Foreground color.RGBA
	Background color.RGBA
	// GradientStart/End enable a 45 degree gradient when both are opaque.
	GradientStart color.RGBA
	GradientEnd   color.RGBA
}

// customShape implements standard.IShape by wrapping a shapes draw function.
type customShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

func (cs *customShape) Draw(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

// DrawFinder uses the same function so finder patterns match the body.
func (cs *customShape) DrawFinder(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

func (s LibraryShape) drawFunc() (func(ctx *standard.DrawContext), error) {
	switch s {
	case ShapeLiquid:
		return shapes.LiquidBlock(), nil
	case ShapeChain:
		return shapes.ChainBlock(), nil
	case ShapeHStripe:
		return shapes.HStripeBlock(0.85), nil
	case ShapeVStripe:
		return shapes.VStripeBlock(0.85), nil
	}
	return nil, fmt.Errorf("unknown library shape %q", s)
}

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

// RenderStandard draws payload through the yeqown standard writer and
// returns the decoded symbol image, borderless, moduleCount*ModulePx wide.
func RenderStandard(payload string, level Level, opts StandardOptions) (image.Image, error) {
	draw, err := opts.Shape.drawFunc()
	if err != nil {
		return nil, err
	}
	qrc, err := qrcode.NewWith(payload, level.option())
	if err != nil {
		return nil, encodeError(err)
	}

	modulePx := opts.ModulePx
	if modulePx == 0 {
		modulePx = 16
	}
	writerOptions := []standard.ImageOption{
		standard.WithQRWidth(modulePx),
		standard.WithBorderWidth(0),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithCustomShape(&customShape{drawFunc: draw}),
	}
	if opts.Background.A == 0 {
		writerOptions = append(writerOptions, standard.WithBgTransparent())
	} else {
		writerOptions = append(writerOptions, standard.WithBgColor(opts.Background))
	}
	if opts.GradientStart.A != 0 && opts.GradientEnd.A != 0 {
		gradient := standard.NewGradient(45, []standard.ColorStop{
			{T: 0, Color: opts.GradientStart},
			{T: 1, Color: opts.GradientEnd},
		}...)
		writerOptions = append(writerOptions, standard.WithFgGradient(gradient))
	} else {
		writerOptions = append(writerOptions, standard.WithFgColor(opts.Foreground))
	}

	buf := &bytes.Buffer{}
	writer := standard.NewWithWriter(nopCloser{buf}, writerOptions...)
	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("failed to generate QR code image: %w", err)
	}

	img, _, err := image.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR image: %w", err)
	}
	return img, nil
}
