package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sodo-hospital/admin-api/internal/dto"
	apierrors "github.com/sodo-hospital/admin-api/internal/errors"
	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// DocumentHandler coordinates document-related HTTP handlers.
type DocumentHandler struct {
	docService *services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// ListDocuments returns documents, scoped to one task when task_id is given,
// each with its uploader hydrated where one is set.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	var taskID *uint64

	if taskIDStr := c.Query("task_id"); taskIDStr != "" {
		id, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task_id")
			return
		}
		taskID = &id
	}

	docs, err := h.docService.ListDocuments(taskID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch documents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": dto.ToDocumentDTOs(docs),
	})
}

// CreateDocument creates a document attached to a task and returns its id.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	type CreateDocumentRequest struct {
		Name         string                `json:"name" binding:"required"`
		Type         string                `json:"type" binding:"required"`
		Status       models.DocumentStatus `json:"status" binding:"required,docstatus"`
		FileURL      string                `json:"file_url"`
		TaskID       uint64                `json:"task_id" binding:"required"`
		UploadedByID *uint64               `json:"uploaded_by_id"`
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.docService.CreateDocument(services.CreateDocumentInput{
		Name:         req.Name,
		Type:         req.Type,
		Status:       req.Status,
		FileURL:      req.FileURL,
		TaskID:       req.TaskID,
		UploadedByID: req.UploadedByID,
	})
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": doc.ID})
}

// UpdateDocument applies a partial merge over status, file_url and
// uploaded_by_id. Sending a file_url stamps uploaded_at to now.
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	docID, ok := parseID(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := documentUpdateInputFromRaw(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	doc, err := h.docService.UpdateDocument(docID, input)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*doc))
}

func documentUpdateInputFromRaw(raw map[string]any) (services.UpdateDocumentInput, error) {
	var input services.UpdateDocumentInput

	if v, ok := raw["status"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("status must be a string")
		}
		status := models.DocumentStatus(s)
		input.Status = &status
	}
	if v, ok := raw["file_url"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("file_url must be a string")
		}
		input.FileURL = &s
	}
	if v, ok := raw["uploaded_by_id"]; ok {
		n, ok := v.(float64)
		if !ok || n < 0 {
			return input, errors.New("uploaded_by_id must be a positive number")
		}
		uploaderID := uint64(n)
		input.UploadedByID = &uploaderID
	}

	return input, nil
}

func respondDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, "Document not found")
	case errors.Is(err, services.ErrUnknownTask),
		errors.Is(err, services.ErrUnknownUploader),
		errors.Is(err, services.ErrInvalidDocumentStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
