package scene

import (
	"math"

	"github.com/cristianadrielbraun/qrick/internal/geom"
)

// topmostAt returns the index of the last element whose box contains p.
func (c *Canvas) topmostAt(p geom.Point) int {
	for i := len(c.elements) - 1; i >= 0; i-- {
		if c.elements[i].Rect().Contains(p) {
			return i
		}
	}
	return -1
}

// PointerDown starts a resize when the pointer is on a handle of the
// selected element, otherwise selects and starts dragging the topmost
// element under the pointer, otherwise clears the selection. client is
// relative to the displayed canvas origin.
func (c *Canvas) PointerDown(client geom.Point) Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.viewport.ClientToLogical(client)

	if i := c.indexOf(c.selected); i >= 0 {
		e := c.elements[i]
		if h := HandleAt(e.Rect(), p); h != HandleNone {
			c.state, c.active, c.handle = Resizing, e.ID, h
			c.origin = e.Rect()
			c.cursor = h.Cursor()
			return c.cursor
		}
	}

	if i := c.topmostAt(p); i >= 0 {
		e := c.elements[i]
		c.selected = e.ID
		c.state, c.active, c.handle = Dragging, e.ID, HandleNone
		c.offset = geom.Point{X: p.X - e.X, Y: p.Y - e.Y}
		c.cursor = CursorGrab
		return c.cursor
	}

	c.selected = ""
	c.state, c.active, c.handle = Idle, "", HandleNone
	c.cursor = CursorDefault
	return c.cursor
}

// PointerMove drags or resizes the active element. While idle it only
// updates the hover cursor.
func (c *Canvas) PointerMove(client geom.Point) Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.viewport.ClientToLogical(client)

	switch c.state {
	case Dragging:
		if i := c.indexOf(c.active); i >= 0 {
			c.elements[i].X = p.X - c.offset.X
			c.elements[i].Y = p.Y - c.offset.Y
		}
	case Resizing:
		if i := c.indexOf(c.active); i >= 0 {
			c.elements[i] = resize(c.elements[i], c.origin, c.handle, p)
		}
	default:
		c.cursor = c.hoverCursor(p)
	}
	return c.cursor
}

func (c *Canvas) hoverCursor(p geom.Point) Cursor {
	if i := c.indexOf(c.selected); i >= 0 {
		if h := HandleAt(c.elements[i].Rect(), p); h != HandleNone {
			return h.Cursor()
		}
	}
	if c.topmostAt(p) >= 0 {
		return CursorGrab
	}
	return CursorDefault
}

// PointerUp ends any drag or resize; the last geometry is kept.
func (c *Canvas) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state, c.active, c.handle = Idle, "", HandleNone
}

// resize moves handle h of the box captured at pointer-down to p, keeping
// the opposite corner fixed.
func resize(e Element, origin geom.Rect, h Handle, p geom.Point) Element {
	left := h == HandleTopLeft || h == HandleBottomLeft
	top := h == HandleTopLeft || h == HandleTopRight

	w := p.X - origin.X
	if left {
		w = origin.Right() - p.X
	}

	var height float64
	if e.KeepsAspect() {
		aspect := origin.Aspect()
		w = math.Max(w, math.Max(MinSize, MinSize*aspect))
		height = w / aspect
	} else {
		height = p.Y - origin.Y
		if top {
			height = origin.Bottom() - p.Y
		}
		w = math.Max(w, MinSize)
		height = math.Max(height, MinSize)
		e.FontSize = height / LineHeight
	}

	e.Width, e.Height = w, height
	e.X, e.Y = origin.X, origin.Y
	if left {
		e.X = origin.Right() - w
	}
	if top {
		e.Y = origin.Bottom() - height
	}
	return e
}
