package v1

import (
	"errors"
	"io/fs"
	"net/http"

	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/thumbnail"

	"github.com/gin-gonic/gin"
)

// ThumbnailSource produces scaled project images
type ThumbnailSource interface {
	Thumbnail(ref string) ([]byte, error)
}

type ThumbnailHandler struct {
	source ThumbnailSource
}

// NewThumbnailHandler serves gallery thumbnails below /thumbnails
func NewThumbnailHandler(r gin.IRoutes, source ThumbnailSource) {
	h := &ThumbnailHandler{source: source}
	r.GET("/thumbnails/*path", h.Get)
}

func (h *ThumbnailHandler) Get(c *gin.Context) {
	data, err := h.source.Thumbnail(c.Param("path"))
	if err != nil {
		switch {
		case errors.Is(err, thumbnail.ErrInvalidPath), errors.Is(err, fs.ErrNotExist):
			c.Error(apperror.NotFound("Thumbnail not found"))
		default:
			c.Error(apperror.New(http.StatusUnprocessableEntity, "Thumbnail could not be generated", err))
		}
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/jpeg", data)
}
