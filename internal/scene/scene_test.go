package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrick/internal/geom"
)

func newCard(t *testing.T) *Canvas {
	t.Helper()
	return NewCanvas(geom.NewViewport(400, 225, 4), KindText, KindImage, KindBarcode, KindQRCode)
}

func mustAdd(t *testing.T, c *Canvas, e Element) Element {
	t.Helper()
	out, err := c.Add(e)
	require.NoError(t, err)
	return out
}

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

func TestAddValidates(t *testing.T) {
	qr := NewCanvas(geom.NewViewport(300, 300, 1), KindImage)

	_, err := qr.Add(Element{Kind: KindText, Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrKindNotAllowed)

	_, err = qr.Add(Element{Kind: KindImage, Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidSize)

	e := mustAdd(t, qr, NewImageElement("data:image/png;base64,"))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, geom.Rect{X: 50, Y: 50, W: 100, H: 100}, e.Rect())

	_, err = qr.Add(e)
	assert.Error(t, err)
}

func TestPointerDownSelectsTopmost(t *testing.T) {
	c := newCard(t)
	below := mustAdd(t, c, Element{ID: "below", Kind: KindImage, X: 0, Y: 0, Width: 100, Height: 100})
	above := mustAdd(t, c, Element{ID: "above", Kind: KindImage, X: 50, Y: 50, Width: 100, Height: 100})

	assert.Equal(t, CursorGrab, c.PointerDown(pt(75, 75)))
	assert.Equal(t, above.ID, c.SelectedID())
	assert.Equal(t, Dragging, c.State())
	c.PointerUp()

	c.PointerDown(pt(25, 25))
	assert.Equal(t, below.ID, c.SelectedID())
	c.PointerUp()

	assert.Equal(t, CursorDefault, c.PointerDown(pt(300, 200)))
	assert.Empty(t, c.SelectedID())
	assert.Equal(t, Idle, c.State())
}

func TestDragKeepsOffsetWithoutClamping(t *testing.T) {
	c := newCard(t)
	e := mustAdd(t, c, Element{Kind: KindBarcode, X: 10, Y: 10, Width: 120, Height: 40})

	c.PointerDown(pt(20, 30))
	c.PointerMove(pt(-50, 500))
	c.PointerUp()

	got, ok := c.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, -60.0, got.X)
	assert.Equal(t, 480.0, got.Y)
	assert.Equal(t, Idle, c.State())
}

func TestPointerUsesViewport(t *testing.T) {
	c := NewCanvas(geom.NewViewport(400, 200, 2).WithDisplay(200, 100), KindImage)
	e := mustAdd(t, c, Element{Kind: KindImage, X: 100, Y: 50, Width: 20, Height: 20})

	c.PointerDown(pt(55, 30)) // logical (110, 60)
	assert.Equal(t, e.ID, c.SelectedID())
}

func TestResizeKeepsAspect(t *testing.T) {
	c := newCard(t)
	e := mustAdd(t, c, Element{Kind: KindImage, X: 100, Y: 100, Width: 120, Height: 40})
	require.NoError(t, c.Select(e.ID))

	assert.Equal(t, CursorNWSE, c.PointerDown(pt(220, 140)))
	assert.Equal(t, Resizing, c.State())
	c.PointerMove(pt(280, 150))
	got, _ := c.Get(e.ID)
	assert.InDelta(t, 180, got.Width, 1e-9)
	assert.InDelta(t, 3, got.Width/got.Height, 1e-9)
	assert.Equal(t, 100.0, got.X)
	assert.Equal(t, 100.0, got.Y)

	// shrinking past the minimum stops at both sides >= 20
	c.PointerMove(pt(90, 90))
	got, _ = c.Get(e.ID)
	assert.InDelta(t, 60, got.Width, 1e-9)
	assert.InDelta(t, 20, got.Height, 1e-9)
	c.PointerUp()
}

func TestResizeTopLeftAnchorsBottomRight(t *testing.T) {
	c := newCard(t)
	e := mustAdd(t, c, Element{Kind: KindQRCode, X: 100, Y: 100, Width: 80, Height: 80})
	require.NoError(t, c.Select(e.ID))

	c.PointerDown(pt(103, 97))
	c.PointerMove(pt(60, 10))
	c.PointerUp()

	got, _ := c.Get(e.ID)
	assert.InDelta(t, 120, got.Width, 1e-9)
	assert.InDelta(t, 120, got.Height, 1e-9)
	assert.InDelta(t, 180, got.X+got.Width, 1e-9)
	assert.InDelta(t, 180, got.Y+got.Height, 1e-9)
}

func TestResizeTallElementMinimum(t *testing.T) {
	c := newCard(t)
	e := mustAdd(t, c, Element{Kind: KindImage, X: 0, Y: 0, Width: 40, Height: 80})
	require.NoError(t, c.Select(e.ID))

	c.PointerDown(pt(40, 80))
	c.PointerMove(pt(-100, -100))
	got, _ := c.Get(e.ID)
	assert.InDelta(t, 20, got.Width, 1e-9)
	assert.InDelta(t, 40, got.Height, 1e-9)
}

func TestResizeTextIsFree(t *testing.T) {
	c := newCard(t)
	e := mustAdd(t, c, NewTextElement("#5C3A21"))
	require.NoError(t, c.Select(e.ID))

	// bottom-right handle of (50,50,150,30)
	c.PointerDown(pt(200, 80))
	c.PointerMove(pt(300, 110))
	got, _ := c.Get(e.ID)
	assert.InDelta(t, 250, got.Width, 1e-9)
	assert.InDelta(t, 60, got.Height, 1e-9)
	assert.InDelta(t, 50, got.FontSize, 1e-9)

	c.PointerMove(pt(0, 0))
	got, _ = c.Get(e.ID)
	assert.Equal(t, MinSize, got.Width)
	assert.Equal(t, MinSize, got.Height)
	assert.InDelta(t, MinSize/LineHeight, got.FontSize, 1e-9)
}

func TestHoverCursor(t *testing.T) {
	c := newCard(t)
	e := mustAdd(t, c, Element{Kind: KindImage, X: 100, Y: 100, Width: 50, Height: 50})

	assert.Equal(t, CursorGrab, c.PointerMove(pt(120, 120)))
	assert.Equal(t, CursorDefault, c.PointerMove(pt(10, 10)))

	require.NoError(t, c.Select(e.ID))
	assert.Equal(t, CursorNESW, c.PointerMove(pt(150, 100)))
	assert.Equal(t, CursorNESW, c.PointerMove(pt(95, 155)))
	assert.Equal(t, CursorNWSE, c.PointerMove(pt(157, 157)))
}

func TestHandleAt(t *testing.T) {
	r := geom.Rect{X: 10, Y: 10, W: 100, H: 50}
	assert.Equal(t, HandleTopLeft, HandleAt(r, pt(2, 18)))
	assert.Equal(t, HandleNone, HandleAt(r, pt(1, 10)))
	assert.Equal(t, HandleBottomRight, HandleAt(r, pt(110, 60)))
	assert.Len(t, HandleRects(r), 4)
	assert.Equal(t, geom.Rect{X: 6, Y: 6, W: 8, H: 8}, HandleRects(r)[0])
}

func TestDeleteSelected(t *testing.T) {
	c := newCard(t)
	assert.False(t, c.DeleteSelected())

	e := mustAdd(t, c, NewTextElement("#000"))
	require.NoError(t, c.Select(e.ID))
	assert.True(t, c.DeleteSelected())
	assert.Empty(t, c.Elements())
	assert.Empty(t, c.SelectedID())

	assert.ErrorIs(t, c.Select("missing"), ErrNotFound)
	assert.ErrorIs(t, c.Remove("missing"), ErrNotFound)
}

func TestUpdate(t *testing.T) {
	c := newCard(t)
	e := mustAdd(t, c, NewTextElement("#000"))

	require.NoError(t, c.Update(e.ID, func(el *Element) {
		el.Content = "Hello"
		el.Kind = KindImage
	}))
	got, _ := c.Get(e.ID)
	assert.Equal(t, "Hello", got.Content)
	assert.Equal(t, KindText, got.Kind)

	assert.ErrorIs(t, c.Update(e.ID, func(el *Element) { el.Width = 0 }), ErrInvalidSize)
}

func TestZOrder(t *testing.T) {
	c := newCard(t)
	for _, id := range []string{"a", "b", "c"} {
		mustAdd(t, c, Element{ID: id, Kind: KindImage, Width: 1, Height: 1})
	}
	ids := func() []string {
		var out []string
		for _, e := range c.Elements() {
			out = append(out, e.ID)
		}
		return out
	}

	require.NoError(t, c.BringForward("a"))
	assert.Equal(t, []string{"b", "a", "c"}, ids())
	require.NoError(t, c.BringToFront("b"))
	assert.Equal(t, []string{"a", "c", "b"}, ids())
	require.NoError(t, c.SendToBack("b"))
	assert.Equal(t, []string{"b", "a", "c"}, ids())
	require.NoError(t, c.SendBackward("b"))
	assert.Equal(t, []string{"b", "a", "c"}, ids())
	assert.ErrorIs(t, c.BringForward("zzz"), ErrNotFound)
}

func TestElementsIsSnapshot(t *testing.T) {
	c := newCard(t)
	mustAdd(t, c, Element{ID: "a", Kind: KindImage, Width: 1, Height: 1})
	snap := c.Elements()
	snap[0].X = 99
	got, _ := c.Get("a")
	assert.Zero(t, got.X)
}
