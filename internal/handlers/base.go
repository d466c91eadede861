package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
)

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromGinContext(c, h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

func (h BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.FromGinContext(c, h.logger).Error(msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// parseIDParam parses a numeric path parameter. On failure it writes the
// error response and returns 0, so callers can simply return.
func (h BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID must be a positive number",
		})
		return 0
	}
	return uint(id)
}

// handleServiceError maps service errors to HTTP status codes.
func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.Is(err, services.ErrProfileIncomplete):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Profile incomplete",
			Details: "complete onboarding before opening this view",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Navigation not allowed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrRoomFull):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Room is full",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Conflict",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Room not found",
		})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Session not found",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
