package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/services"
)

type AuditHandler struct {
	auditService     *services.AuditService
	systemLogService *services.SystemLogService
}

func NewAuditHandler(auditService *services.AuditService, systemLogService *services.SystemLogService) *AuditHandler {
	return &AuditHandler{auditService: auditService, systemLogService: systemLogService}
}

// @Summary List Audit Logs
// @Description Lists audit log entries, newest first
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param action query string false "Filter by action"
// @Param entity_type query string false "Filter by entity type"
// @Param user_id query int false "Filter by user"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/audit-logs [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := listQueryFromParams(c)
	query.Filters["action"] = c.Query("action")
	query.Filters["entity_type"] = c.Query("entity_type")
	query.Filters["user_id"] = c.Query("user_id")

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, logs, total, query.Page, query.PerPage)
}

// @Summary List System Logs
// @Description Lists captured server errors, newest first
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param level query string false "Filter by level"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/system-logs [get]
func (h *AuditHandler) SystemLogs(c *gin.Context) {
	query := listQueryFromParams(c)
	query.Filters["level"] = c.Query("level")

	logs, total, err := h.systemLogService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, logs, total, query.Page, query.PerPage)
}
