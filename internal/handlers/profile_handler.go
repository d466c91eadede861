package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type ProfileHandler struct {
	BaseHandler
	service   services.ProfileService
	validator *validator.Validator
}

func NewProfileHandler(service services.ProfileService, validator *validator.Validator, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

// GetProfile returns the caller's profile.
// @Summary Get profile
// @Tags profile
// @Produce json
// @Success 200 {object} services.ProfileResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	h.LogRequest(c, "Getting profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial profile edit. Changing the academic year
// resets the semester when it no longer belongs to the new year.
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body validator.ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} services.ProfileResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	h.LogRequest(c, "Updating profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	profile, err := h.service.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateSoundSetting toggles the interaction sound preference.
// @Summary Update sound setting
// @Tags profile
// @Accept json
// @Produce json
// @Param request body validator.SoundSettingRequest true "Sound setting"
// @Success 204 "No content"
// @Router /profile/sound [put]
func (h *ProfileHandler) UpdateSoundSetting(c *gin.Context) {
	h.LogRequest(c, "Updating sound setting")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req validator.SoundSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.service.SetSoundMuted(c.Request.Context(), userID, req.Muted); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
