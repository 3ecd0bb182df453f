package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/middleware"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// @Summary Send Message
// @Description Submits a contact message. Works for guests and logged-in customers.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body services.CreateMessageInput true "Message Data"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} map[string]string
// @Router /contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req services.CreateMessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.contactService.Create(c.Request.Context(), middleware.GetUserIDPtr(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message.ToResponse())
}

// @Summary My Messages
// @Description Lists the current customer's contact messages
// @Tags Contact
// @Produce json
// @Success 200 {array} models.MessageResponse
// @Security BearerAuth
// @Router /contact [get]
func (h *ContactHandler) Index(c *gin.Context) {
	messages, err := h.contactService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, m.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get Message
// @Description Gets one of the current customer's contact messages
// @Tags Contact
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contact/{id} [get]
func (h *ContactHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	message, err := h.contactService.GetForUser(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message.ToResponse())
}
