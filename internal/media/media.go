// Package media decodes the data-URI images users attach to symbols and
// cards (logos, overlays, card pictures and backgrounds).
package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"net/url"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/cristianadrielbraun/qrick/internal/config"
	"github.com/cristianadrielbraun/qrick/internal/logger"
)

var (
	ErrNotDataURI = errors.New("not a data URI")
	ErrTooLarge   = errors.New("image exceeds size limit")
)

// svgRasterSide is the longest side SVG images are rasterised at.
const svgRasterSide = 1024

// maxParallelDecodes bounds LoadAll.
const maxParallelDecodes = 4

// DataURI is a parsed "data:" URI.
type DataURI struct {
	MIME string
	Data []byte
}

// ParseDataURI splits a data URI into its media type and payload. Both
// base64 and percent-encoded payloads are accepted.
func ParseDataURI(uri string, maxBytes int64) (*DataURI, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, ErrNotDataURI
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("%w: missing ','", ErrNotDataURI)
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]

	isBase64 := false
	mime := "text/plain"
	for i, part := range strings.Split(meta, ";") {
		switch {
		case i == 0 && part != "":
			mime = strings.ToLower(strings.TrimSpace(part))
		case part == "base64":
			isBase64 = true
		}
	}

	if maxBytes > 0 && int64(len(payload)) > maxBytes*4/3+4 {
		return nil, ErrTooLarge
	}

	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some encoders drop the padding
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return &DataURI{MIME: mime, Data: data}, nil
}

// EncodeDataURI is the base64 inverse of ParseDataURI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode turns a data URI into an image. PNG, JPEG, GIF and WebP go through
// the registered image decoders; SVG is rasterised. Raster images whose
// header declares more than maxPixels pixels are rejected before decoding.
// Zero limits are unbounded.
func Decode(uri string, maxBytes int64, maxPixels int) (image.Image, error) {
	d, err := ParseDataURI(uri, maxBytes)
	if err != nil {
		return nil, err
	}
	if d.MIME == "image/svg+xml" || looksLikeSVG(d.Data) {
		return decodeSVG(d.Data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(d.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s image header: %w", d.MIME, err)
	}
	if maxPixels > 0 && float64(cfg.Width)*float64(cfg.Height) > float64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(d.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", d.MIME, err)
	}
	return img, nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

func decodeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = svgRasterSide, svgRasterSide
	}
	scale := svgRasterSide / math.Max(vw, vh)
	w, h := int(math.Round(vw*scale)), int(math.Round(vh*scale))

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

// Options bound what the loader accepts and keeps.
type Options struct {
	MaxBytes  int64
	MaxPixels int
	// CacheEntries is the number of decoded images kept, least recently
	// used first out.
	CacheEntries int
}

// Loader decodes data URIs through a bounded LRU cache keyed by the URI
// digest. It is safe for concurrent use.
type Loader struct {
	opts Options
	log  logger.Logger

	mu    sync.Mutex
	cache *lru.Cache
}

// NewLoader fills zero pixel and cache limits from the config defaults.
func NewLoader(opts Options, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = config.DefaultMediaMaxPixels
	}
	if opts.CacheEntries <= 0 {
		opts.CacheEntries = config.DefaultCacheEntries
	}
	return &Loader{opts: opts, log: log, cache: lru.New(opts.CacheEntries)}
}

// Load decodes uri, reusing an earlier result for the same URI.
func (l *Loader) Load(uri string) (image.Image, error) {
	key := sha256.Sum256([]byte(uri))

	l.mu.Lock()
	v, ok := l.cache.Get(key)
	l.mu.Unlock()
	if ok {
		return v.(image.Image), nil
	}

	img, err := Decode(uri, l.opts.MaxBytes, l.opts.MaxPixels)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache.Add(key, img)
	l.mu.Unlock()
	return img, nil
}

// Cached is the number of decoded images held.
func (l *Loader) Cached() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Len()
}

// LoadAll decodes every non-empty URI concurrently. Images that fail to
// decode are logged and left out of the result; only cancellation of ctx
// fails the batch.
func (l *Loader) LoadAll(ctx context.Context, uris []string) (map[string]image.Image, error) {
	out := make(map[string]image.Image, len(uris))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDecodes)

	seen := make(map[string]bool, len(uris))
	for _, uri := range uris {
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true

		uri := uri
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := l.Load(uri)
			if err != nil {
				l.log.Warnf("skipping image (%d bytes): %v", len(uri), err)
				return nil
			}
			mu.Lock()
			out[uri] = img
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("image decoding cancelled: %w", err)
	}
	return out, nil
}
