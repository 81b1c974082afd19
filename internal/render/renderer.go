package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/cristianadrielbraun/qrick/internal/config"
	"github.com/cristianadrielbraun/qrick/internal/fonts"
	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/layout"
	"github.com/cristianadrielbraun/qrick/internal/logger"
	"github.com/cristianadrielbraun/qrick/internal/media"
)

// Frame is the output of one render pass.
type Frame struct {
	Image    *image.RGBA
	Viewport geom.Viewport
	// Layout is the QR canvas geometry; nil in other modes.
	Layout *layout.Box
	// Painted is the number of QR modules drawn.
	Painted int
	// Err is the user-facing message of a symbol error. The rest of the
	// frame is still painted when it is set.
	Err        string
	Generation uint64
	// Stale is set when a newer render committed before this one finished.
	Stale bool
}

// Renderer runs the recompute pipeline. It is safe for concurrent use;
// the most recently started render that finishes wins.
type Renderer struct {
	cfg    config.RenderConfig
	loader *media.Loader
	log    logger.Logger

	generation atomic.Uint64

	mu        sync.Mutex
	committed uint64
	latest    *Frame
}

func NewRenderer(cfg config.RenderConfig, loader *media.Loader, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewNop()
	}
	if loader == nil {
		loader = media.NewLoader(media.Options{}, log)
	}
	return &Renderer{cfg: cfg, loader: loader, log: log}
}

func (r *Renderer) Config() config.RenderConfig { return r.cfg }

// Prepare applies defaults, resolves the composition and lays out a card
// that has no elements yet.
func (r *Renderer) Prepare(comp Composition) (Composition, *Resolved, error) {
	comp = comp.WithDefaults(r.cfg)
	res, err := comp.Resolve()
	if err != nil {
		return comp, nil, fmt.Errorf("%w: %v", ErrInvalidComposition, err)
	}
	if res.Mode == ModeCard && len(comp.Card.Elements) == 0 {
		faces := fonts.NewFaces()
		defer faces.Close()
		comp.Card.Elements = cardElements(res, comp, faces)
	}
	return comp, res, nil
}

// Render paints comp. Symbol errors are reported in Frame.Err; the returned
// error is only set for invalid compositions and cancellation.
func (r *Renderer) Render(ctx context.Context, comp Composition) (*Frame, error) {
	gen := r.generation.Add(1)

	comp, res, err := r.Prepare(comp)
	if err != nil {
		return nil, err
	}

	images, err := r.loader.LoadAll(ctx, comp.ImageURIs())
	if err != nil {
		return nil, err
	}

	faces := fonts.NewFaces()
	defer faces.Close()

	var f *Frame
	switch res.Mode {
	case ModeBarcode:
		f, err = r.renderBarcode(comp, res, faces)
	case ModeCard:
		f, err = r.renderCard(comp, res, images, faces)
	default:
		f, err = r.renderQR(comp, res, images, faces)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.Generation = gen
	r.commit(f)
	if f.Err != "" {
		r.log.Debugf("render %d (%s): %s", gen, res.Mode, f.Err)
	}
	return f, nil
}

func (r *Renderer) commit(f *Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.Generation < r.committed {
		f.Stale = true
		return
	}
	r.committed = f.Generation
	r.latest = f
}

// Latest returns the most recent committed frame, or nil.
func (r *Renderer) Latest() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

var errNoCanvas = errors.New("canvas has no area")

// ErrCanvasTooLarge is returned, wrapped in ErrInvalidComposition, when a
// composition asks for more device pixels than render.maxpixels allows.
var ErrCanvasTooLarge = errors.New("canvas is too large")

// MaxPixels is the device pixel budget of one canvas.
func (r *Renderer) MaxPixels() int {
	if r.cfg.MaxPixels > 0 {
		return r.cfg.MaxPixels
	}
	return config.DefaultMaxPixels
}
