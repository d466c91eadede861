package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

// SessionHandler exposes the view router. Every endpoint operates on the
// session of the authenticated caller only.
type SessionHandler struct {
	BaseHandler
	service   services.SessionService
	validator *validator.Validator
}

func NewSessionHandler(service services.SessionService, validator *validator.Validator, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

// GetSession returns the caller's current session and profile.
// @Summary Get current session
// @Tags session
// @Produce json
// @Success 200 {object} services.SessionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	h.LogRequest(c, "Getting session")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	session, err := h.service.Current(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Navigate moves the session to a target view, subject to the router guards.
// @Summary Navigate to a view
// @Tags session
// @Accept json
// @Produce json
// @Param request body validator.NavigateRequest true "Target view"
// @Success 200 {object} services.NavigationResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 403 {object} ErrorResponse "Profile incomplete"
// @Failure 409 {object} ErrorResponse "Navigation not allowed"
// @Router /session/navigate [post]
func (h *SessionHandler) Navigate(c *gin.Context) {
	h.LogRequest(c, "Navigating session")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req validator.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.Navigate(c.Request.Context(), userID, req.To)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Resolve redirects a freshly signed-in session to dashboard or onboarding.
// From any view other than landing or auth it confirms the current view.
// @Summary Resolve the post-signin view
// @Tags session
// @Produce json
// @Success 200 {object} services.NavigationResponse
// @Router /session/resolve [post]
func (h *SessionHandler) Resolve(c *gin.Context) {
	h.LogRequest(c, "Resolving session")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	result, err := h.service.Resolve(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StartAuth opens the auth view in the requested mode.
// @Summary Start an auth flow
// @Tags session
// @Accept json
// @Produce json
// @Param request body validator.AuthStartRequest true "Auth mode"
// @Success 200 {object} services.NavigationResponse
// @Failure 409 {object} ErrorResponse "Navigation not allowed"
// @Router /session/auth [post]
func (h *SessionHandler) StartAuth(c *gin.Context) {
	h.LogRequest(c, "Starting auth flow")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req validator.AuthStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.StartAuth(c.Request.Context(), userID, req.Mode)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CompleteOnboarding records the academic identity and moves to dashboard.
// @Summary Complete onboarding
// @Tags session
// @Accept json
// @Produce json
// @Param request body validator.OnboardingRequest true "Academic identity"
// @Success 200 {object} services.NavigationResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Not on the onboarding view"
// @Router /session/onboarding [post]
func (h *SessionHandler) CompleteOnboarding(c *gin.Context) {
	h.LogRequest(c, "Completing onboarding")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.CompleteOnboarding(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SignOut resets the session to the landing view.
// @Summary Sign out
// @Tags session
// @Produce json
// @Success 200 {object} services.NavigationResponse
// @Router /session/signout [post]
func (h *SessionHandler) SignOut(c *gin.Context) {
	h.LogRequest(c, "Signing out")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	result, err := h.service.SignOut(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
