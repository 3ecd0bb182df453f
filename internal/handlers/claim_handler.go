package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/whittakeragency/agency-api/internal/middleware"
	"github.com/whittakeragency/agency-api/internal/models"
	"github.com/whittakeragency/agency-api/internal/services"
)

type ClaimHandler struct {
	claimService *services.ClaimService
}

func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// @Summary File Claim
// @Description Submits a new claim report
// @Tags Claims
// @Accept json
// @Produce json
// @Param request body services.CreateClaimInput true "Claim Data"
// @Success 201 {object} models.ClaimResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	var req services.CreateClaimInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim, err := h.claimService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claim.ToResponse())
}

// @Summary My Claims
// @Description Lists the current customer's claims
// @Tags Claims
// @Produce json
// @Success 200 {array} models.ClaimResponse
// @Security BearerAuth
// @Router /claims [get]
func (h *ClaimHandler) Index(c *gin.Context) {
	claims, err := h.claimService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ClaimResponse, 0, len(claims))
	for _, cl := range claims {
		responses = append(responses, cl.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get Claim
// @Description Gets one of the current customer's claims
// @Tags Claims
// @Produce json
// @Param id path int true "Claim ID"
// @Success 200 {object} models.ClaimResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /claims/{id} [get]
func (h *ClaimHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	claim, err := h.claimService.GetForUser(c.Request.Context(), uint(id), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim.ToResponse())
}

// @Summary Withdraw Claim
// @Description Removes a claim while no agent has worked it yet
// @Tags Claims
// @Produce json
// @Param id path int true "Claim ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /claims/{id} [delete]
func (h *ClaimHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	err := h.claimService.DeleteForUser(c.Request.Context(), uint(id), middleware.GetUserID(c), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
