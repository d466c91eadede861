package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type EventHandler struct {
	BaseHandler
	service   services.EventService
	validator *validator.Validator
}

func NewEventHandler(service services.EventService, validator *validator.Validator, logger utils.Logger) *EventHandler {
	return &EventHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

// ListEvents returns club events, soonest first.
// @Summary List club events
// @Tags events
// @Produce json
// @Param club query string false "Club name"
// @Param after query string false "Only events starting after (RFC3339)"
// @Param before query string false "Only events starting before (RFC3339)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.EventListResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	h.LogRequest(c, "Listing events")

	var filters repositories.EventFilters
	if club := c.Query("club"); club != "" {
		filters.ClubName = &club
	}
	if afterStr := c.Query("after"); afterStr != "" {
		if parsed, err := time.Parse(time.RFC3339, afterStr); err == nil {
			filters.After = &parsed
		}
	}
	if beforeStr := c.Query("before"); beforeStr != "" {
		if parsed, err := time.Parse(time.RFC3339, beforeStr); err == nil {
			filters.Before = &parsed
		}
	}
	filters.Limit, filters.Offset = parsePagination(c)

	result, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateEvent announces a club event. Admin only.
// @Summary Create club event
// @Tags events
// @Accept json
// @Produce json
// @Param request body validator.EventCreateRequest true "Event"
// @Success 201 {object} models.ClubEvent
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	h.LogRequest(c, "Creating event")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	event, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// DeleteEvent removes a club event. Admin only.
// @Summary Delete club event
// @Tags events
// @Param id path string true "Event ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	h.LogRequest(c, "Deleting event")

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
