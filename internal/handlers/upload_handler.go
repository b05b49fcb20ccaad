package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// UploadImages handles POST /api/upload. Accepts one or more files under the
// "files" multipart field and returns their public URLs.
func (h *Handler) UploadImages(c *gin.Context) {
	if h.uploader == nil {
		response.Fail(c, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.Fail(c, http.StatusBadRequest, "No files provided")
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Could not read uploaded file")
			return
		}

		url, err := h.uploader.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
		f.Close()
		if err != nil {
			h.log.Error("image upload failed", zap.String("filename", fh.Filename), zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, "Upload failed")
			return
		}
		urls = append(urls, url)
	}

	response.OK(c, gin.H{"urls": urls})
}

// DeleteImage handles DELETE /api/upload.
func (h *Handler) DeleteImage(c *gin.Context) {
	if h.uploader == nil {
		response.Fail(c, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		response.Fail(c, http.StatusBadRequest, "URL is required")
		return
	}

	if err := h.uploader.Delete(c.Request.Context(), req.URL); err != nil {
		h.log.Error("image delete failed", zap.String("url", req.URL), zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "Delete failed")
		return
	}

	response.Message(c, http.StatusOK, "Image deleted")
}
