package handler

import (
	"github.com/firf18/red-salud-sub010/internal/application/receiving"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceivingHandler exposes the blind receiving workflow over HTTP
type ReceivingHandler struct {
	BaseHandler
	service *receiving.ReceivingService
}

// NewReceivingHandler creates a new ReceivingHandler
func NewReceivingHandler(service *receiving.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{service: service}
}

// StartSession handles POST /api/v1/receiving/sessions
func (h *ReceivingHandler) StartSession(c *gin.Context) {
	var req receiving.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	session, err := h.service.StartSession(req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, session)
}

// CountItem handles POST /api/v1/receiving/sessions/:id/counts
func (h *ReceivingHandler) CountItem(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid session id")
		return
	}
	var req receiving.CountItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.CountItem(sessionID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CompleteSession handles POST /api/v1/receiving/sessions/:id/complete
func (h *ReceivingHandler) CompleteSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid session id")
		return
	}
	var req receiving.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.CompleteSession(c.Request.Context(), sessionID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetSession handles GET /api/v1/receiving/sessions/:id
func (h *ReceivingHandler) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid session id")
		return
	}
	session, err := h.service.GetSession(sessionID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, session)
}

// ListActiveSessions handles GET /api/v1/receiving/sessions
func (h *ReceivingHandler) ListActiveSessions(c *gin.Context) {
	h.Success(c, h.service.ActiveSessions())
}
