package scene

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/cristianadrielbraun/qrick/internal/geom"
)

const (
	// HandleSize is the side of a resize handle and the hit tolerance
	// around each corner.
	HandleSize = 8.0
	// MinSize is the smallest width or height a resize can produce.
	MinSize = 20.0
	// LineHeight relates a text element's box height to its font size.
	LineHeight = 1.2
)

var (
	ErrNotFound       = errors.New("element not found")
	ErrKindNotAllowed = errors.New("element kind not allowed on this canvas")
	ErrInvalidSize    = errors.New("element width and height must be positive")
)

type Handle string

const (
	HandleNone        Handle = ""
	HandleTopLeft     Handle = "tl"
	HandleTopRight    Handle = "tr"
	HandleBottomLeft  Handle = "bl"
	HandleBottomRight Handle = "br"
)

type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorGrab    Cursor = "grab"
	CursorNWSE    Cursor = "nwse-resize"
	CursorNESW    Cursor = "nesw-resize"
)

func (h Handle) Cursor() Cursor {
	switch h {
	case HandleTopLeft, HandleBottomRight:
		return CursorNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorNESW
	}
	return CursorDefault
}

type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

// corners lists a rect's handles in hit-test order.
func corners(r geom.Rect) [4]struct {
	h Handle
	p geom.Point
} {
	return [4]struct {
		h Handle
		p geom.Point
	}{
		{HandleTopLeft, geom.Point{X: r.X, Y: r.Y}},
		{HandleTopRight, geom.Point{X: r.Right(), Y: r.Y}},
		{HandleBottomLeft, geom.Point{X: r.X, Y: r.Bottom()}},
		{HandleBottomRight, geom.Point{X: r.Right(), Y: r.Bottom()}},
	}
}

// HandleAt returns the corner of r within HandleSize of p.
func HandleAt(r geom.Rect, p geom.Point) Handle {
	for _, c := range corners(r) {
		if math.Abs(p.X-c.p.X) <= HandleSize && math.Abs(p.Y-c.p.Y) <= HandleSize {
			return c.h
		}
	}
	return HandleNone
}

// HandleRects are the squares drawn for r's resize handles.
func HandleRects(r geom.Rect) []geom.Rect {
	out := make([]geom.Rect, 0, 4)
	for _, c := range corners(r) {
		out = append(out, geom.Rect{X: c.p.X - HandleSize/2, Y: c.p.Y - HandleSize/2, W: HandleSize, H: HandleSize})
	}
	return out
}

// Canvas holds the elements of one interactive surface and its pointer
// state machine. Elements later in the list are drawn on top. All methods
// are safe for concurrent use.
type Canvas struct {
	mu sync.Mutex

	allowed  map[Kind]bool
	viewport geom.Viewport
	elements []Element
	selected string

	state  State
	active string
	handle Handle
	offset geom.Point
	origin geom.Rect
	cursor Cursor
}

// NewCanvas returns an empty canvas accepting only the given kinds.
func NewCanvas(vp geom.Viewport, kinds ...Kind) *Canvas {
	allowed := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	return &Canvas{allowed: allowed, viewport: vp, cursor: CursorDefault}
}

func (c *Canvas) SetViewport(vp geom.Viewport) {
	c.mu.Lock()
	c.viewport = vp
	c.mu.Unlock()
}

func (c *Canvas) Viewport() geom.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *Canvas) Allows(k Kind) bool {
	return c.allowed[k]
}

func (c *Canvas) indexOf(id string) int {
	for i, e := range c.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Add appends e on top of the scene, assigning an id when it has none.
func (c *Canvas) Add(e Element) (Element, error) {
	if !c.Allows(e.Kind) {
		return Element{}, fmt.Errorf("%w: %s", ErrKindNotAllowed, e.Kind)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return Element{}, ErrInvalidSize
	}
	if e.ID == "" {
		e.ID = string(e.Kind) + "-" + uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(e.ID) >= 0 {
		return Element{}, fmt.Errorf("duplicate element id %q", e.ID)
	}
	c.elements = append(c.elements, e)
	return e, nil
}

// Remove deletes the element; removing the selection clears it.
func (c *Canvas) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(id)
}

func (c *Canvas) removeLocked(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	c.elements = append(c.elements[:i], c.elements[i+1:]...)
	if c.selected == id {
		c.selected = ""
	}
	if c.active == id {
		c.state, c.active, c.handle = Idle, "", HandleNone
	}
	return nil
}

// DeleteSelected removes the selected element, if any.
func (c *Canvas) DeleteSelected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == "" {
		return false
	}
	return c.removeLocked(c.selected) == nil
}

// Select marks id as selected; an empty id clears the selection.
func (c *Canvas) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != "" && c.indexOf(id) < 0 {
		return ErrNotFound
	}
	c.selected = id
	return nil
}

func (c *Canvas) Selected() (Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(c.selected); i >= 0 {
		return c.elements[i], true
	}
	return Element{}, false
}

func (c *Canvas) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Update applies fn to a copy of the element and stores it if the result
// is still valid. The id and kind cannot change.
func (c *Canvas) Update(id string, fn func(*Element)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	e := c.elements[i]
	fn(&e)
	e.ID, e.Kind = c.elements[i].ID, c.elements[i].Kind
	if e.Width <= 0 || e.Height <= 0 {
		return ErrInvalidSize
	}
	c.elements[i] = e
	return nil
}

// Get returns a copy of the element.
func (c *Canvas) Get(id string) (Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.elements[i], true
	}
	return Element{}, false
}

// Elements returns a snapshot in drawing order.
func (c *Canvas) Elements() []Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Element, len(c.elements))
	copy(out, c.elements)
	return out
}

// Replace swaps the whole element list, dropping a selection that no
// longer exists.
func (c *Canvas) Replace(elements []Element) error {
	for _, e := range elements {
		if !c.Allows(e.Kind) {
			return fmt.Errorf("%w: %s", ErrKindNotAllowed, e.Kind)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return ErrInvalidSize
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements = make([]Element, len(elements))
	copy(c.elements, elements)
	for i := range c.elements {
		if c.elements[i].ID == "" {
			c.elements[i].ID = string(c.elements[i].Kind) + "-" + uuid.NewString()
		}
	}
	if c.indexOf(c.selected) < 0 {
		c.selected = ""
	}
	c.state, c.active, c.handle = Idle, "", HandleNone
	return nil
}

func (c *Canvas) move(id string, to func(i, n int) int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	n := len(c.elements)
	j := to(i, n)
	if j < 0 {
		j = 0
	}
	if j >= n {
		j = n - 1
	}
	e := c.elements[i]
	c.elements = append(c.elements[:i], c.elements[i+1:]...)
	c.elements = append(c.elements[:j], append([]Element{e}, c.elements[j:]...)...)
	return nil
}

func (c *Canvas) BringForward(id string) error {
	return c.move(id, func(i, _ int) int { return i + 1 })
}

func (c *Canvas) SendBackward(id string) error {
	return c.move(id, func(i, _ int) int { return i - 1 })
}

func (c *Canvas) BringToFront(id string) error {
	return c.move(id, func(_, n int) int { return n - 1 })
}

func (c *Canvas) SendToBack(id string) error {
	return c.move(id, func(int, int) int { return 0 })
}

func (c *Canvas) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Canvas) Cursor() Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}
