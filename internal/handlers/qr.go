package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrick/internal/export"
	"github.com/cristianadrielbraun/qrick/internal/payload"
	"github.com/cristianadrielbraun/qrick/internal/render"
)

// maxContentLength caps query payloads.
const maxContentLength = 4096

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > maxContentLength {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

func queryBool(c *gin.Context, key string) *bool {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	v := s == "true" || s == "1" || s == "on"
	return &v
}

// contentFromQuery reads the payload from content, url, or dataType plus
// the payload form fields.
func contentFromQuery(c *gin.Context, comp *render.Composition) error {
	switch {
	case c.Query("url") != "":
		u, err := normalizeHTTPURL(c.Query("url"))
		if err != nil {
			return err
		}
		comp.Content = u
	case c.Query("dataType") != "":
		var f payload.Fields
		if err := c.ShouldBindQuery(&f); err != nil {
			return fmt.Errorf("invalid fields: %v", err)
		}
		comp.DataType = c.Query("dataType")
		comp.Fields = f
	default:
		comp.Content = c.Query("content")
	}
	if len(comp.Content) > maxContentLength {
		return fmt.Errorf("content is too long")
	}
	return nil
}

// qrComposition builds a QR composition from query parameters.
func qrComposition(c *gin.Context) (render.Composition, error) {
	comp := render.Composition{
		Mode:       render.ModeQR,
		Level:      c.Query("level"),
		Foreground: c.Query("fg"),
		Background: c.Query("bg"),
		QR: render.QROptions{
			Style:  c.Query("style"),
			Shield: c.Query("shield") == "true",
			Preset: c.Query("preset"),
			Gradient: render.Gradient{
				Type:  c.Query("gradient"),
				Start: c.Query("gradientStart"),
				End:   c.Query("gradientEnd"),
			},
			Frame: render.FrameOptions{
				Pattern: c.Query("frame"),
				Rounded: c.Query("frameRounded") == "true",
				Color:   c.Query("frameColor"),
			},
		},
	}
	if err := contentFromQuery(c, &comp); err != nil {
		return comp, err
	}

	var err error
	if comp.QR.Padding, err = queryFloat(c, "padding"); err != nil {
		return comp, err
	}
	for key, dst := range map[string]*float64{"size": &comp.QR.Size, "frameWidth": &comp.QR.Frame.Width, "pixelRatio": &comp.PixelRatio} {
		v, err := queryFloat(c, key)
		if err != nil {
			return comp, err
		}
		if v != nil {
			*dst = *v
		}
	}
	return comp, nil
}

// QRCodeHandler renders a QR code from query parameters. previewSize scales
// raster output to that many pixels on its longer side.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	comp, err := qrComposition(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, comp)
}

// respond exports comp in the requested format, applying previewSize.
func (h *Handler) respond(c *gin.Context, comp render.Composition) {
	format, err := export.ParseFormat(c.DefaultQuery("format", "png"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ps, _ := strconv.Atoi(c.Query("previewSize"))
	if float64(ps)*float64(ps) > float64(h.renderer.MaxPixels()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "previewSize is too large"})
		return
	}

	blob, err := h.exporter.Export(c.Request.Context(), comp, format)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if ps > 0 && format != export.SVG {
		if blob, err = preview(blob, format, ps); err != nil {
			h.writeError(c, err)
			return
		}
	}
	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;mode=%s", format, comp.Mode))
	sendBlob(c, blob)
}

// preview rescales an exported raster. JPEGs are already opaque so the
// flatten colour is irrelevant.
func preview(b *export.Blob, format export.Format, size int) (*export.Blob, error) {
	img, _, err := image.Decode(bytes.NewReader(b.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode exported image: %w", err)
	}
	data, err := export.Encode(export.Preview(img, size), format, color.RGBA{255, 255, 255, 255})
	if err != nil {
		return nil, err
	}
	return &export.Blob{MIME: b.MIME, Filename: b.Filename, Data: data}, nil
}
