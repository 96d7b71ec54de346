package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoang-11jjk/RealEstatePro/internal/storage"
)

// UploadHandler accepts asset uploads and returns their URLs. Listings use
// the returned URL as their image field; the core treats it as opaque.
type UploadHandler struct {
	assetStorage storage.IAssetStorage
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(assetStorage storage.IAssetStorage) *UploadHandler {
	return &UploadHandler{assetStorage: assetStorage}
}

// Upload handles POST /api/upload (multipart, field "file").
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing file"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read upload"})
		return
	}
	defer f.Close()

	url, err := h.assetStorage.Save(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), f)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store upload"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
