package session

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrick/internal/config"
	"github.com/cristianadrielbraun/qrick/internal/export"
	"github.com/cristianadrielbraun/qrick/internal/media"
	"github.com/cristianadrielbraun/qrick/internal/render"
	"github.com/cristianadrielbraun/qrick/internal/scene"
)

var cfg = config.RenderConfig{PixelRatio: 1, CardPixelRatio: 2, Size: 256, Padding: 8, ImageSize: 60, MarriageSeed: 20241231}

func newStore() (*Store, *render.Renderer) {
	r := render.NewRenderer(cfg, nil, nil)
	return NewStore(r, nil), r
}

func pngURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return media.EncodeDataURI("image/png", buf.Bytes())
}

func TestCreateQRSession(t *testing.T) {
	st, _ := newStore()
	s, err := st.Create(context.Background(), render.Composition{Content: "session"})
	require.NoError(t, err)
	assert.Equal(t, render.ModeQR, s.Mode)
	assert.True(t, s.Canvas().Allows(scene.KindImage))
	assert.False(t, s.Canvas().Allows(scene.KindText))
	assert.Equal(t, 272.0, s.Canvas().Viewport().LogicalW)

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	assert.True(t, st.Delete(s.ID))
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCardSessionLaysOutElements(t *testing.T) {
	st, _ := newStore()
	s, err := st.Create(context.Background(), render.Composition{Mode: render.ModeCard, Content: "https://example.com"})
	require.NoError(t, err)

	elements := s.Canvas().Elements()
	require.Len(t, elements, 3)
	code, ok := s.Canvas().Get("code")
	require.True(t, ok)
	assert.Equal(t, scene.KindQRCode, code.Kind)
	assert.Equal(t, 400.0, s.Canvas().Viewport().LogicalW)
}

func TestCreateBarcodeSessionRejected(t *testing.T) {
	st, _ := newStore()
	_, err := st.Create(context.Background(), render.Composition{Mode: render.ModeBarcode, Content: "ABC"})
	assert.Error(t, err)
	assert.Zero(t, st.Len())
}

func TestPointerDragWithScaledDisplay(t *testing.T) {
	st, _ := newStore()
	s, err := st.Create(context.Background(), render.Composition{Content: "drag"})
	require.NoError(t, err)

	img, err := s.Canvas().Add(scene.NewImageElement(pngURI(t)))
	require.NoError(t, err)

	// canvas shown at half size: client (50,50) is logical (100,100)
	cur, err := s.HandlePointer(Pointer{Action: "down", X: 50, Y: 50, DisplayW: 136, DisplayH: 136})
	require.NoError(t, err)
	assert.Equal(t, scene.CursorGrab, cur)
	assert.Equal(t, img.ID, s.Canvas().SelectedID())

	_, err = s.HandlePointer(Pointer{Action: "move", X: 60, Y: 65})
	require.NoError(t, err)
	_, err = s.HandlePointer(Pointer{Action: "up"})
	require.NoError(t, err)

	moved, ok := s.Canvas().Get(img.ID)
	require.True(t, ok)
	assert.InDelta(t, 70, moved.X, 1e-9)
	assert.InDelta(t, 80, moved.Y, 1e-9)
	assert.Equal(t, scene.Idle, s.Canvas().State())

	comp := s.Composition()
	require.Len(t, comp.QR.Images, 1)
	assert.Equal(t, img.ID, comp.Selected)

	_, err = s.HandlePointer(Pointer{Action: "tap"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRenderKeepsDisplaySize(t *testing.T) {
	st, r := newStore()
	s, err := st.Create(context.Background(), render.Composition{Content: "display"})
	require.NoError(t, err)

	_, err = s.HandlePointer(Pointer{Action: "move", X: 1, Y: 1, DisplayW: 136, DisplayH: 136})
	require.NoError(t, err)
	_, err = s.Render(context.Background(), r)
	require.NoError(t, err)

	vp := s.Canvas().Viewport()
	assert.Equal(t, 272.0, vp.LogicalW)
	assert.Equal(t, 136.0, vp.DisplayW)
}

func TestZOrderAndDelete(t *testing.T) {
	st, _ := newStore()
	s, err := st.Create(context.Background(), render.Composition{Mode: render.ModeCard, Content: "z"})
	require.NoError(t, err)

	require.NoError(t, s.ZOrder("title", "front"))
	elements := s.Canvas().Elements()
	assert.Equal(t, "title", elements[len(elements)-1].ID)
	assert.ErrorIs(t, s.ZOrder("title", "sideways"), ErrUnknownZOrder)

	require.NoError(t, s.Canvas().Select("title"))
	assert.True(t, s.Canvas().DeleteSelected())
	_, ok := s.Canvas().Get("title")
	assert.False(t, ok)
}

func TestSessionExportDropsSelection(t *testing.T) {
	st, r := newStore()
	s, err := st.Create(context.Background(), render.Composition{Mode: render.ModeCard, Content: "export"})
	require.NoError(t, err)
	require.NoError(t, s.Canvas().Select("code"))

	blob, err := s.Export(context.Background(), export.NewExporter(r, nil, nil), export.PNG)
	require.NoError(t, err)
	assert.Equal(t, "card.png", blob.Filename)

	_, err = s.Export(context.Background(), export.NewExporter(r, nil, nil), export.SVG)
	assert.ErrorIs(t, err, export.ErrNotSupported)
}

func TestSetCompositionReplacesElements(t *testing.T) {
	st, _ := newStore()
	s, err := st.Create(context.Background(), render.Composition{Content: "replace"})
	require.NoError(t, err)

	overlay := scene.NewImageElement(pngURI(t))
	overlay.ID = "logo-2"
	require.NoError(t, s.SetComposition(render.Composition{Content: "new", QR: render.QROptions{Images: []scene.Element{overlay}}}))

	comp := s.Composition()
	assert.Equal(t, "new", comp.Content)
	assert.Equal(t, render.ModeQR, comp.Mode)
	require.Len(t, comp.QR.Images, 1)
	assert.Equal(t, "logo-2", comp.QR.Images[0].ID)

	assert.Error(t, s.SetComposition(render.Composition{QR: render.QROptions{Images: []scene.Element{{Kind: scene.KindText, Width: 1, Height: 1}}}}))
}

func TestSetCompositionElementLists(t *testing.T) {
	st, _ := newStore()
	s, err := st.Create(context.Background(), render.Composition{Mode: render.ModeCard, Content: "https://example.com"})
	require.NoError(t, err)
	require.Len(t, s.Canvas().Elements(), 3)

	require.NoError(t, s.SetComposition(render.Composition{Content: "kept"}))
	assert.Len(t, s.Canvas().Elements(), 3)

	require.NoError(t, s.SetComposition(render.Composition{Content: "cleared", Card: render.CardOptions{Elements: []scene.Element{}}}))
	assert.Empty(t, s.Canvas().Elements())
	assert.Equal(t, "cleared", s.Composition().Content)
}
