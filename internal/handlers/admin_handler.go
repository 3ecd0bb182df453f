package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/middleware"
	"github.com/whittakeragency/agency-api/internal/repository"
	"github.com/whittakeragency/agency-api/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// listQueryFromParams builds a ListQuery from the common list query params
func listQueryFromParams(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	query.Search = c.Query("search")
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 || query.PerPage > 100 {
		query.PerPage = 20
	}
	return query
}

// @Summary Dashboard Stats
// @Description Returns per-status counts and a recent activity summary
// @Tags Admin
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Attention Items
// @Description Returns the prioritized list of items needing admin attention
// @Tags Admin
// @Produce json
// @Success 200 {object} models.AttentionItemsResponse
// @Security BearerAuth
// @Router /admin/attention-items [get]
func (h *AdminHandler) AttentionItems(c *gin.Context) {
	items, err := h.adminService.AttentionItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Recent Activity
// @Description Returns the newest submissions across quotes, claims and messages
// @Tags Admin
// @Produce json
// @Param limit query int false "Max items" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/recent-activity [get]
func (h *AdminHandler) RecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	activity, err := h.adminService.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activity, "total": len(activity)})
}

// @Summary List Quote Requests
// @Description Lists all quote requests with customer info
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param search query string false "Search customer name or email"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/quotes [get]
func (h *AdminHandler) ListQuotes(c *gin.Context) {
	query := listQueryFromParams(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["category"] = c.Query("category")
	query.Filters["subcategory"] = c.Query("subcategory")

	items, total, err := h.adminService.ListQuotes(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, items, total, query.Page, query.PerPage)
}

// @Summary Quote Request Detail
// @Tags Admin
// @Produce json
// @Param id path int true "Quote Request ID"
// @Success 200 {object} models.AdminQuoteDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/quotes/{id} [get]
func (h *AdminHandler) QuoteDetail(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	detail, err := h.adminService.QuoteDetail(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Update Quote Request
// @Description Updates status, amount or agent notes on a quote request
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Quote Request ID"
// @Param request body services.AdminQuoteUpdate true "Fields to update"
// @Success 200 {object} models.AdminQuoteDetail
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/quotes/{id} [put]
func (h *AdminHandler) UpdateQuote(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.AdminQuoteUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.adminService.UpdateQuote(c.Request.Context(), uint(id), req, middleware.GetUserID(c), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary List Claims
// @Description Lists all claims with customer info
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param search query string false "Search customer name or email"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/claims [get]
func (h *AdminHandler) ListClaims(c *gin.Context) {
	query := listQueryFromParams(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["category"] = c.Query("category")
	query.Filters["subcategory"] = c.Query("subcategory")

	items, total, err := h.adminService.ListClaims(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, items, total, query.Page, query.PerPage)
}

// @Summary Claim Detail
// @Tags Admin
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {object} models.AdminClaimDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/claims/{id} [get]
func (h *AdminHandler) ClaimDetail(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	detail, err := h.adminService.ClaimDetail(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Update Claim
// @Description Updates status, notes or the appointment on a claim
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Claim ID"
// @Param request body services.AdminClaimUpdate true "Fields to update"
// @Success 200 {object} models.AdminClaimDetail
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/claims/{id} [put]
func (h *AdminHandler) UpdateClaim(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.AdminClaimUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.adminService.UpdateClaim(c.Request.Context(), uint(id), req, middleware.GetUserID(c), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary List Contact Messages
// @Description Lists all contact messages, guest messages included by default
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param subject query string false "Filter by subject"
// @Param include_guest query bool false "Include guest messages" default(true)
// @Param search query string false "Search sender name or email"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/messages [get]
func (h *AdminHandler) ListMessages(c *gin.Context) {
	query := listQueryFromParams(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["subject"] = c.Query("subject")
	query.Filters["include_guest"] = c.DefaultQuery("include_guest", "true")

	items, total, err := h.adminService.ListMessages(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, items, total, query.Page, query.PerPage)
}

// @Summary Message Detail
// @Tags Admin
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.AdminMessageDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/messages/{id} [get]
func (h *AdminHandler) MessageDetail(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	detail, err := h.adminService.MessageDetail(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Update Message
// @Description Updates status or records an admin response on a message
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param request body services.AdminMessageUpdate true "Fields to update"
// @Success 200 {object} models.AdminMessageDetail
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/messages/{id} [put]
func (h *AdminHandler) UpdateMessage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.AdminMessageUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.adminService.UpdateMessage(c.Request.Context(), uint(id), req, middleware.GetUserID(c), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary List Users
// @Description Lists users with activity counts and last activity
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "active or inactive"
// @Param search query string false "Search name, email or username"
// @Param recently_contacted query string false "2weeks, 1month, 3months, 6months or 1year"
// @Param sort_by query string false "activity, name or status" default(activity)
// @Param sort_order query string false "asc or desc" default(desc)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := services.AdminUserListParams{
		Status:            c.Query("status"),
		Search:            c.Query("search"),
		RecentlyContacted: c.Query("recently_contacted"),
		SortBy:            c.DefaultQuery("sort_by", "activity"),
		SortOrder:         c.DefaultQuery("sort_order", "desc"),
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	items, total, err := h.adminService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, items, total, params.Page, params.Limit)
}

// @Summary User Detail
// @Description Returns a user with their activity over the chosen date range
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Param date_range query string false "all, 30days, 6months, ytd or last_year"
// @Success 200 {object} models.AdminUserDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *AdminHandler) UserDetail(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	detail, err := h.adminService.UserDetail(c.Request.Context(), uint(id), c.Query("date_range"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Update User
// @Description Toggles a user's active or admin flags
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body services.AdminUserUpdate true "Fields to update"
// @Success 200 {object} models.AdminUserDetail
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req services.AdminUserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.adminService.UpdateUser(c.Request.Context(), uint(id), req, middleware.GetUserID(c), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
