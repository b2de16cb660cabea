package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partnerleads/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// @Summary      Dashboard metrics
// @Description  Summary tiles: totals, partner share, conversions, pipeline value
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.Service.Metrics()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"metrics": metrics})
}
