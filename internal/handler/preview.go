package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/foliogen-api/internal/preview"
	"github.com/yourusername/foliogen-api/internal/service"
)

type PreviewHandler struct {
	snapshotter *service.Snapshotter
}

func NewPreviewHandler(snapshotter *service.Snapshotter) *PreviewHandler {
	return &PreviewHandler{snapshotter: snapshotter}
}

type previewRequest struct {
	Files     map[string]string `json:"files" binding:"required"`
	Framework string            `json:"framework" binding:"required"`
}

// render parses and renders the request body, writing the error response
// itself on failure
func (h *PreviewHandler) render(c *gin.Context) *preview.Result {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files and framework are required"})
		return nil
	}

	fw, err := preview.ParseFramework(req.Framework)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported framework. Use one of: react, nextjs, vue, svelte."})
		return nil
	}

	result, err := preview.Render(req.Files, fw)
	if err != nil {
		if errors.Is(err, preview.ErrUnsupportedFramework) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported framework. Use one of: react, nextjs, vue, svelte."})
			return nil
		}
		log.Error().Err(err).Str("framework", req.Framework).Msg("Failed to render preview")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Preview rendering failed"})
		return nil
	}

	if len(result.Missing) > 0 {
		log.Warn().
			Str("framework", string(fw)).
			Strs("missing", result.Missing).
			Msg("Preview rendered with missing fragments")
	}
	return result
}

// Render handles POST /preview
// Transforms a project file map into a self-contained HTML preview document
func (h *PreviewHandler) Render(c *gin.Context) {
	result := h.render(c)
	if result == nil {
		return
	}
	c.JSON(http.StatusOK, result)
}

// Screenshot handles POST /preview/screenshot
// Renders the preview in headless Chrome and returns a PNG
func (h *PreviewHandler) Screenshot(c *gin.Context) {
	result := h.render(c)
	if result == nil {
		return
	}

	png, err := h.snapshotter.Screenshot(c.Request.Context(), result.Document)
	if err != nil {
		log.Error().Err(err).Msg("Failed to capture preview screenshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Screenshot capture failed"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// PDF handles POST /preview/pdf
// Renders the preview in headless Chrome and returns an A4 PDF
func (h *PreviewHandler) PDF(c *gin.Context) {
	result := h.render(c)
	if result == nil {
		return
	}

	pdf, err := h.snapshotter.PDF(c.Request.Context(), result.Document)
	if err != nil {
		log.Error().Err(err).Msg("Failed to capture preview PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF capture failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="portfolio-preview.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
