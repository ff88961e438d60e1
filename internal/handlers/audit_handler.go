package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loomhouse/internal/pagination"
	"loomhouse/internal/services"
	"loomhouse/internal/uuid"
)

// AuditHandler exposes the admin edit history
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

type auditQuery struct {
	pagination.PageRequest
	ResourceType string `form:"resource_type" binding:"omitempty,max=50"`
	ResourceID   string `form:"resource_id" binding:"omitempty,uuid_id"`
	UserID       string `form:"user_id" binding:"omitempty,uuid_id"`
}

// ListAuditLogs returns the audit trail, newest first
// @Summary     List audit log entries
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       resource_type query string false "e.g. category, product"
// @Param       resource_id   query string false "Resource UUID"
// @Param       user_id       query string false "Admin UUID"
// @Param       page          query int    false "Page number"
// @Param       page_size     query int    false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[models.AuditLog] "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var q auditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	// uuid_id already validated both ids; Parse only canonicalises them.
	filter := services.AuditFilter{ResourceType: q.ResourceType}
	if q.ResourceID != "" {
		filter.ResourceID, _ = uuid.Parse(q.ResourceID)
	}
	if q.UserID != "" {
		filter.UserID, _ = uuid.Parse(q.UserID)
	}

	result, err := h.auditService.ListAuditLogs(c.Request.Context(), filter, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
