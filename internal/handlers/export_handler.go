package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func sendAttachment(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// @Summary Export Quotes CSV
// @Description Downloads all quote requests matching the filters as CSV
// @Tags Export
// @Produce text/csv
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/export/quotes [get]
func (h *ExportHandler) Quotes(c *gin.Context) {
	query := listQueryFromParams(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["category"] = c.Query("category")

	data, filename, err := h.exportService.ExportQuotesCSV(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	sendAttachment(c, data, filename, "text/csv")
}

// @Summary Export Claims CSV
// @Description Downloads all claims matching the filters as CSV
// @Tags Export
// @Produce text/csv
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/export/claims [get]
func (h *ExportHandler) Claims(c *gin.Context) {
	query := listQueryFromParams(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["category"] = c.Query("category")

	data, filename, err := h.exportService.ExportClaimsCSV(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	sendAttachment(c, data, filename, "text/csv")
}

// @Summary Export Users XLSX
// @Description Downloads the user list with activity counts as a spreadsheet
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "active or inactive"
// @Param search query string false "Search name, email or username"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/export/users [get]
func (h *ExportHandler) Users(c *gin.Context) {
	params := services.AdminUserListParams{
		Status:            c.Query("status"),
		Search:            c.Query("search"),
		RecentlyContacted: c.Query("recently_contacted"),
		SortBy:            c.DefaultQuery("sort_by", "activity"),
		SortOrder:         c.DefaultQuery("sort_order", "desc"),
	}

	data, filename, err := h.exportService.ExportUsersXLSX(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	sendAttachment(c, data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// @Summary Export Attention Items PDF
// @Description Downloads the current attention list as a PDF report
// @Tags Export
// @Produce application/pdf
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/export/attention [get]
func (h *ExportHandler) Attention(c *gin.Context) {
	data, filename, err := h.exportService.ExportAttentionPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendAttachment(c, data, filename, "application/pdf")
}
