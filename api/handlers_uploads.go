package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"catering-backend/storage"
)

// uploadImage stores a menu or event image and returns its public URL.
// Oversized requests are rejected before the file is read.
func (s *Server) uploadImage(c *gin.Context) {
	if c.Request.ContentLength > s.cfg.HTTP.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file field is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.AllowedImageType(contentType) {
		badRequest(c, "only jpeg, png, webp and gif images are accepted")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	url, err := s.files.Save(c.Request.Context(), name, contentType, src)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
