package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/sodo-hospital/admin-api/internal/errors"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// SeedHandler exposes the demo-data generator.
type SeedHandler struct {
	seedService *services.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedService *services.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed populates demo users, tasks and documents. Re-running duplicates
// tasks and documents; only users are deduplicated.
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seedService.Seed()
	if err != nil {
		apierrors.InternalError(c, "Seeding failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Seed data created",
		"inserted": result,
	})
}
