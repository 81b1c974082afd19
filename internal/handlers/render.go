package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrick/internal/render"
)

// maxBodyBytes bounds composition documents, which may embed images.
const maxBodyBytes = 16 << 20

func readComposition(c *gin.Context) (render.Composition, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return render.Composition{}, err
	}
	return render.Decode(body)
}

// RenderHandler renders a posted JSON or YAML composition.
func (h *Handler) RenderHandler(c *gin.Context) {
	comp, err := readComposition(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, comp)
}
