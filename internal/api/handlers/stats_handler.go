package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoang-11jjk/RealEstatePro/internal/services"
)

// StatsHandler serves derived read-only views over the listing collection.
type StatsHandler struct {
	propertyService services.IPropertyService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(propertyService services.IPropertyService) *StatsHandler {
	return &StatsHandler{propertyService: propertyService}
}

// ByLocation handles GET /api/stats/by-location: approved listing counts
// grouped by exact location string.
func (h *StatsHandler) ByLocation(c *gin.Context) {
	stats, err := h.propertyService.StatsByLocation(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to compute location stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
