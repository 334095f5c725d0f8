package handler

import (
	"github.com/firf18/red-salud-sub010/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryHandler exposes the cost layer ledger over HTTP
type InventoryHandler struct {
	BaseHandler
	service *inventory.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RecordPurchase handles POST /api/v1/inventory/purchases
func (h *InventoryHandler) RecordPurchase(c *gin.Context) {
	var req inventory.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.RecordPurchase(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// RecordSale handles POST /api/v1/inventory/sales
func (h *InventoryHandler) RecordSale(c *gin.Context) {
	var req inventory.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.RecordSale(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ApproveLayer handles POST /api/v1/inventory/layers/:id/approve
func (h *InventoryHandler) ApproveLayer(c *gin.Context) {
	layerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid layer id")
		return
	}
	var req inventory.ApproveLayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.service.ApproveLayer(c.Request.Context(), layerID, req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"approved": true})
}

// GetPricing handles GET /api/v1/inventory/products/:productId/pricing
func (h *InventoryHandler) GetPricing(c *gin.Context) {
	rate, err := decimal.NewFromString(c.Query("exchange_rate"))
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		h.BadRequest(c, "exchange_rate must be a positive decimal")
		return
	}

	productID := c.Param("productId")
	if marginStr := c.Query("margin"); marginStr != "" {
		margin, err := decimal.NewFromString(marginStr)
		if err != nil || margin.IsNegative() {
			h.BadRequest(c, "margin must be a non-negative decimal")
			return
		}
		h.Success(c, h.service.GetPricingWithMargin(productID, rate, margin))
		return
	}
	h.Success(c, h.service.GetPricing(productID, rate))
}

// GetStatistics handles GET /api/v1/inventory/products/:productId/statistics
func (h *InventoryHandler) GetStatistics(c *gin.Context) {
	h.Success(c, h.service.GetStatistics(c.Param("productId")))
}

// ListLayers handles GET /api/v1/inventory/products/:productId/layers
func (h *InventoryHandler) ListLayers(c *gin.Context) {
	h.Success(c, h.service.ListLayers(c.Param("productId")))
}

// ListConsumptions handles GET /api/v1/inventory/consumptions
func (h *InventoryHandler) ListConsumptions(c *gin.Context) {
	h.Success(c, h.service.ListConsumptions())
}
