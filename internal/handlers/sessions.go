package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrick/internal/export"
	"github.com/cristianadrielbraun/qrick/internal/geom"
	"github.com/cristianadrielbraun/qrick/internal/render"
	"github.com/cristianadrielbraun/qrick/internal/scene"
	"github.com/cristianadrielbraun/qrick/internal/session"
)

type sessionView struct {
	ID          string             `json:"id"`
	Mode        render.Mode        `json:"mode"`
	Cursor      scene.Cursor       `json:"cursor"`
	State       string             `json:"state"`
	Selected    string             `json:"selected,omitempty"`
	Viewport    geom.Viewport      `json:"viewport"`
	Elements    []scene.Element    `json:"elements"`
	Composition render.Composition `json:"composition"`
}

func viewOf(s *session.Session) sessionView {
	cv := s.Canvas()
	return sessionView{
		ID:          s.ID,
		Mode:        s.Mode,
		Cursor:      cv.Cursor(),
		State:       cv.State().String(),
		Selected:    cv.SelectedID(),
		Viewport:    cv.Viewport(),
		Elements:    cv.Elements(),
		Composition: s.Composition(),
	}
}

func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return s, true
}

// CreateSession starts an editor session from a posted composition.
func (h *Handler) CreateSession(c *gin.Context) {
	comp, err := readComposition(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.sessions.Create(c.Request.Context(), comp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, viewOf(s))
}

func (h *Handler) GetSession(c *gin.Context) {
	if s, ok := h.session(c); ok {
		c.JSON(http.StatusOK, viewOf(s))
	}
}

// UpdateSession replaces the session's settings and re-renders it.
func (h *Handler) UpdateSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	comp, err := readComposition(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SetComposition(comp); err != nil {
		h.writeError(c, err)
		return
	}
	if _, err := s.Render(c.Request.Context(), h.renderer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		h.writeError(c, session.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// SessionPointer feeds one pointer event to the session canvas.
func (h *Handler) SessionPointer(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var ev session.Pointer
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.HandlePointer(ev); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

// AddElement puts a new element on top of the session canvas. Text and
// image elements start from the editor defaults.
func (h *Handler) AddElement(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var in scene.Element
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := scene.ParseKind(string(in.Kind))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.Kind = kind

	e := in
	switch kind {
	case scene.KindText:
		e = scene.NewTextElement(s.Composition().Card.Colors.Text)
		if in.Content != "" {
			e.Content = in.Content
		}
	case scene.KindImage:
		e = scene.NewImageElement(in.Content)
	}
	if in.Width > 0 && in.Height > 0 {
		e.X, e.Y, e.Width, e.Height = in.X, in.Y, in.Width, in.Height
	}

	added, err := s.Canvas().Add(e)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

func (h *Handler) DeleteSelection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": s.Canvas().DeleteSelected()})
}

type zOrderRequest struct {
	ID string `json:"id" binding:"required"`
	Op string `json:"op" binding:"required"`
}

func (h *Handler) ZOrder(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req zOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.ZOrder(req.ID, req.Op); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

// ExportSession downloads the session in ?format=png|jpeg|svg.
func (h *Handler) ExportSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", "png"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	blob, err := s.Export(c.Request.Context(), h.exporter, format)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+blob.Filename+`"`)
	c.Data(http.StatusOK, blob.MIME, blob.Data)
}
