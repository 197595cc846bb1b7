package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/services"
)

// ProfileHandler serves the caller's profile and the plan table
type ProfileHandler struct {
	service services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// GetProfile handles GET /api/v1/profile
//
// @Summary Get the caller's profile
// @Description Returns tier, remaining credits and the limits of the caller's plan
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "Profile"
// @Failure 401 {object} errors.APIError "Unauthorized"
// @Failure 404 {object} errors.APIError "User profile not found"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	response, err := h.service.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListPlans handles GET /api/v1/plans
//
// @Summary List subscription plans
// @Description Returns the plan table, the credit rate and the supported languages
// @Tags profile
// @Produce json
// @Success 200 {object} dto.PlansResponse "Plan table"
// @Router /plans [get]
func (h *ProfileHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ListPlans(c.Request.Context()))
}
