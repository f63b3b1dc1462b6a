package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sodo-hospital/admin-api/internal/constants"
	apierrors "github.com/sodo-hospital/admin-api/internal/errors"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// FileHandler exposes the blob-storage facility: upload URL issuance, the
// upload sink itself, download URL lookup and blob serving.
type FileHandler struct {
	storage *services.StorageService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(storage *services.StorageService) *FileHandler {
	return &FileHandler{storage: storage}
}

// GenerateUploadURL issues a short-lived URL the client can PUT a file to.
func (h *FileHandler) GenerateUploadURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"upload_url": h.storage.GenerateUploadURL(),
	})
}

// GetDownloadURL resolves a storage id to a download URL. Unknown ids answer
// with a null URL rather than an error.
func (h *FileHandler) GetDownloadURL(c *gin.Context) {
	storageID := c.Query("storage_id")
	if storageID == "" {
		apierrors.BadRequest(c, "storage_id is required")
		return
	}

	url, ok := h.storage.GetDownloadURL(storageID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"url": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Upload accepts one file for a valid upload token and returns the storage id.
func (h *FileHandler) Upload(c *gin.Context) {
	token := c.Param("token")

	if !h.storage.ConsumeUploadToken(token) {
		apierrors.NotFound(c, "Upload URL is invalid or has expired")
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxUploadSize)
	storageID, err := h.storage.Save(body)
	if err != nil {
		apierrors.BadRequest(c, "Failed to store file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"storage_id": storageID})
}

// Content streams a stored blob.
func (h *FileHandler) Content(c *gin.Context) {
	path, ok := h.storage.Path(c.Param("id"))
	if !ok {
		apierrors.NotFound(c, "File not found")
		return
	}

	c.File(path)
}
