package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrick/internal/render"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

// BarcodeHandler renders a 1D barcode. Content the symbology cannot encode
// is a 422.
func (h *Handler) BarcodeHandler(c *gin.Context) {
	comp := render.Composition{
		Mode:       render.ModeBarcode,
		Foreground: c.Query("fg"),
		Background: c.Query("bg"),
		Barcode: render.BarcodeOptions{
			Format:       c.Query("type"),
			ShowText:     queryBool(c, "showText"),
			TextPosition: c.Query("textPosition"),
			TextColor:    c.Query("textColor"),
		},
	}
	if err := contentFromQuery(c, &comp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if comp.Content == "" && comp.DataType == "" {
		f, err := symbol.ParseFormat(comp.Barcode.Format)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		comp.Content = symbol.DefaultContent(f)
	}

	var err error
	if comp.Barcode.Margin, err = queryFloat(c, "margin"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for key, dst := range map[string]*float64{"textSize": &comp.Barcode.TextSize, "height": &comp.Barcode.HeightPercent} {
		v, err := queryFloat(c, key)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if v != nil {
			*dst = *v
		}
	}
	h.respond(c, comp)
}
