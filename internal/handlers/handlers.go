package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrick/internal/export"
	"github.com/cristianadrielbraun/qrick/internal/logger"
	"github.com/cristianadrielbraun/qrick/internal/render"
	"github.com/cristianadrielbraun/qrick/internal/scene"
	"github.com/cristianadrielbraun/qrick/internal/session"
)

// Handler holds the dependencies of the HTTP API.
type Handler struct {
	renderer *render.Renderer
	exporter *export.Exporter
	sessions *session.Store
	log      logger.Logger
}

// New returns a new Handler instance.
func New(r *render.Renderer, e *export.Exporter, s *session.Store, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{renderer: r, exporter: e, sessions: s, log: log}
}

// Router wires every API route onto a fresh gin engine.
func Router(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(AccessLog(h.log))
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.GET("/barcode", h.BarcodeHandler)
		api.POST("/render", h.RenderHandler)

		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:id", h.GetSession)
		api.PUT("/sessions/:id", h.UpdateSession)
		api.DELETE("/sessions/:id", h.DeleteSession)
		api.POST("/sessions/:id/pointer", h.SessionPointer)
		api.POST("/sessions/:id/elements", h.AddElement)
		api.DELETE("/sessions/:id/selection", h.DeleteSelection)
		api.POST("/sessions/:id/zorder", h.ZOrder)
		api.GET("/sessions/:id/export", h.ExportSession)
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Len()})
	})
	return r
}

// AccessLog logs every request and its response through log.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	access, ok := log.(logger.AccessLogger)
	return func(c *gin.Context) {
		start := time.Now()
		if ok {
			access.RequestLog(c.Request.Method, c.Request.URL.Path)
		}
		c.Next()
		if ok {
			access.ResponseLog(c.Writer.Status(), c.Writer.Size(), time.Since(start))
		} else {
			log.Debugf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
		}
	}
}

// writeError maps engine errors onto JSON error responses.
func (h *Handler) writeError(c *gin.Context, err error) {
	var se *export.SymbolError
	switch {
	case errors.As(err, &se):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": se.Message})
	case errors.Is(err, export.ErrNotSupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": export.NotSupportedMessage})
	case errors.Is(err, render.ErrInvalidComposition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, render.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": render.EmptyContentMessage})
	case errors.Is(err, session.ErrNotFound), errors.Is(err, scene.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, scene.ErrKindNotAllowed), errors.Is(err, scene.ErrInvalidSize),
		errors.Is(err, session.ErrUnknownAction), errors.Is(err, session.ErrUnknownZOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf("request %s failed: %v", c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func sendBlob(c *gin.Context, b *export.Blob) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Content-Disposition", `inline; filename="`+b.Filename+`"`)
	c.Data(http.StatusOK, b.MIME, b.Data)
}
