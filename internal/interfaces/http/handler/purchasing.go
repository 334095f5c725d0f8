package handler

import (
	"github.com/firf18/red-salud-sub010/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// PurchasingHandler exposes price comparison and reorder suggestions over
// HTTP
type PurchasingHandler struct {
	BaseHandler
	service *purchasing.PurchasingService
}

// NewPurchasingHandler creates a new PurchasingHandler
func NewPurchasingHandler(service *purchasing.PurchasingService) *PurchasingHandler {
	return &PurchasingHandler{service: service}
}

// ComparePrices handles POST /api/v1/purchasing/comparisons
func (h *PurchasingHandler) ComparePrices(c *gin.Context) {
	var req purchasing.ComparePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.ComparePrices(req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Recommendations handles POST /api/v1/purchasing/recommendations
func (h *PurchasingHandler) Recommendations(c *gin.Context) {
	var req purchasing.RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.Success(c, h.service.Recommendations(req))
}
