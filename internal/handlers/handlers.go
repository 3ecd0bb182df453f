package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Quote   *QuoteHandler
	Claim   *ClaimHandler
	Contact *ContactHandler
	Admin   *AdminHandler
	Audit   *AuditHandler
	Export  *ExportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(),
		Auth:    NewAuthHandler(svcs.Auth),
		Quote:   NewQuoteHandler(svcs.Quote),
		Claim:   NewClaimHandler(svcs.Claim),
		Contact: NewContactHandler(svcs.Contact),
		Admin:   NewAdminHandler(svcs.Admin),
		Audit:   NewAuditHandler(svcs.Audit, svcs.SystemLog),
		Export:  NewExportHandler(svcs.Export),
	}
}

// respondError maps service errors onto HTTP statuses. Unknown errors
// answer 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// paginated writes a paginated list envelope
func paginated(c *gin.Context, items any, total int64, page, limit int) {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": pages,
	})
}
