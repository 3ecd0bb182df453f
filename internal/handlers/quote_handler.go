package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/middleware"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/services"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// @Summary Request Quote
// @Description Submits a new insurance quote request
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body services.CreateQuoteInput true "Quote Data"
// @Success 201 {object} models.QuoteResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req services.CreateQuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote.ToResponse())
}

// @Summary My Quotes
// @Description Lists the current customer's quote requests
// @Tags Quotes
// @Produce json
// @Success 200 {array} models.QuoteResponse
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) Index(c *gin.Context) {
	quotes, err := h.quoteService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		responses = append(responses, q.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get Quote
// @Description Gets one of the current customer's quote requests
// @Tags Quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	quote, err := h.quoteService.GetForUser(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote.ToResponse())
}
