// Package session keeps in-memory editor sessions: a composition plus the
// interactive canvas its elements live on.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cristianadrielbraun/qrick/internal/export"
	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/logger"
	"github.com/cristianadrielbraun/qrick/internal/render"
	"github.com/cristianadrielbraun/qrick/internal/scene"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrUnknownAction = errors.New("unknown pointer action")
	ErrUnknownZOrder = errors.New("unknown z-order operation")
)

// Session is one editor. QR sessions hold free image overlays; card
// sessions hold every element kind.
type Session struct {
	ID   string
	Mode render.Mode

	mu     sync.Mutex
	comp   render.Composition
	canvas *scene.Canvas
}

// Canvas is the session's interactive surface.
func (s *Session) Canvas() *scene.Canvas { return s.canvas }

// Composition returns the composition with the canvas elements and the
// current selection folded in.
func (s *Session) Composition() render.Composition {
	s.mu.Lock()
	comp := s.comp
	s.mu.Unlock()

	elements := s.canvas.Elements()
	if s.Mode == render.ModeCard {
		comp.Card.Elements = elements
	} else {
		comp.QR.Images = elements
	}
	comp.Selected = s.canvas.SelectedID()
	return comp
}

// SetComposition replaces the non-element settings. A nil element list
// keeps the canvas contents; any other list, empty included, replaces them.
func (s *Session) SetComposition(comp render.Composition) error {
	comp.Mode = s.Mode
	elements := comp.QR.Images
	if s.Mode == render.ModeCard {
		elements = comp.Card.Elements
	}
	if elements != nil {
		if err := s.canvas.Replace(elements); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.comp = comp
	s.mu.Unlock()
	return nil
}

// Pointer is one pointer event in client coordinates of a canvas displayed
// at DisplayW x DisplayH.
type Pointer struct {
	Action   string  `json:"action"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	DisplayW float64 `json:"displayWidth"`
	DisplayH float64 `json:"displayHeight"`
}

// HandlePointer feeds ev to the canvas state machine and returns the cursor
// to show.
func (s *Session) HandlePointer(ev Pointer) (scene.Cursor, error) {
	if ev.DisplayW > 0 && ev.DisplayH > 0 {
		s.canvas.SetViewport(s.canvas.Viewport().WithDisplay(ev.DisplayW, ev.DisplayH))
	}
	p := geom.Point{X: ev.X, Y: ev.Y}
	switch strings.ToLower(ev.Action) {
	case "down":
		return s.canvas.PointerDown(p), nil
	case "move":
		return s.canvas.PointerMove(p), nil
	case "up", "leave":
		s.canvas.PointerUp()
		return s.canvas.Cursor(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
}

// ZOrder moves element id one step or all the way forward or backward.
func (s *Session) ZOrder(id, op string) error {
	switch strings.ToLower(op) {
	case "forward":
		return s.canvas.BringForward(id)
	case "backward":
		return s.canvas.SendBackward(id)
	case "front":
		return s.canvas.BringToFront(id)
	case "back":
		return s.canvas.SendToBack(id)
	}
	return fmt.Errorf("%w: %q", ErrUnknownZOrder, op)
}

// Render paints the session and resizes the canvas viewport to the frame,
// keeping the display size the client reported last.
func (s *Session) Render(ctx context.Context, r *render.Renderer) (*render.Frame, error) {
	f, err := r.Render(ctx, s.Composition())
	if err != nil {
		return nil, err
	}
	old := s.canvas.Viewport()
	vp := f.Viewport
	if old.DisplayW > 0 && old.LogicalW != old.DisplayW {
		vp = vp.WithDisplay(old.DisplayW, old.DisplayH)
	}
	s.canvas.SetViewport(vp)
	return f, nil
}

// Export writes the session without its selection outline.
func (s *Session) Export(ctx context.Context, e *export.Exporter, format export.Format) (*export.Blob, error) {
	return e.Export(ctx, s.Composition(), format)
}

// Store holds every live session.
type Store struct {
	renderer *render.Renderer
	log      logger.Logger
	sessions sync.Map
}

func NewStore(r *render.Renderer, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{renderer: r, log: log}
}

// Create starts a session for comp. Cards without elements get their
// design's initial layout.
func (st *Store) Create(ctx context.Context, comp render.Composition) (*Session, error) {
	prepared, _, err := st.renderer.Prepare(comp)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: uuid.NewString(), Mode: prepared.Mode}
	if s.Mode == render.ModeBarcode {
		return nil, fmt.Errorf("sessions are not available in %s mode", s.Mode)
	}
	if s.Mode == render.ModeCard {
		s.canvas = scene.NewCanvas(geom.Viewport{}, scene.KindText, scene.KindImage, scene.KindBarcode, scene.KindQRCode)
		comp.Card.Elements = prepared.Card.Elements
	} else {
		s.canvas = scene.NewCanvas(geom.Viewport{}, scene.KindImage)
	}
	if err := s.SetComposition(comp); err != nil {
		return nil, err
	}
	if _, err := s.Render(ctx, st.renderer); err != nil {
		return nil, err
	}

	st.sessions.Store(s.ID, s)
	st.log.Infof("created %s session %s", s.Mode, s.ID)
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	v, ok := st.sessions.Load(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*Session), nil
}

func (st *Store) Delete(id string) bool {
	_, ok := st.sessions.LoadAndDelete(id)
	return ok
}

// Len counts live sessions.
func (st *Store) Len() int {
	n := 0
	st.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
