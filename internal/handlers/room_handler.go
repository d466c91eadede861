package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

// RoomHandler exposes the study room registry. Joining and leaving go
// through the session service so the caller's view and room membership stay
// in step.
type RoomHandler struct {
	BaseHandler
	service   services.RoomService
	sessions  services.SessionService
	validator *validator.Validator
}

func NewRoomHandler(service services.RoomService, sessions services.SessionService, validator *validator.Validator, logger utils.Logger) *RoomHandler {
	return &RoomHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		sessions:    sessions,
		validator:   validator,
	}
}

// ListRooms returns the active study rooms, newest first.
// @Summary List study rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} services.RoomListResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	h.LogRequest(c, "Listing rooms")

	result, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateRoom opens a new study room with the caller as its first member.
// @Summary Create study room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body validator.RoomCreateRequest true "Room settings"
// @Success 201 {object} services.RoomResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	h.LogRequest(c, "Creating room")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.RoomCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	room, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRoom returns a single room.
// @Summary Get study room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} services.RoomResponse
// @Failure 404 {object} ErrorResponse "Room not found"
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	h.LogRequest(c, "Getting room")

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid id"})
		return
	}

	room, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// JoinRoom enters the room and moves the session to the live room view.
// @Summary Join study room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} services.NavigationResponse
// @Failure 403 {object} ErrorResponse "Profile incomplete"
// @Failure 404 {object} ErrorResponse "Room not found"
// @Failure 409 {object} ErrorResponse "Room is full"
// @Router /rooms/{id}/join [post]
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	h.LogRequest(c, "Joining room")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid id"})
		return
	}

	result, err := h.sessions.EnterRoom(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteRoom closes a room for everyone. Only the creator or an admin may
// close a room.
// @Summary Close study room
// @Tags rooms
// @Param id path string true "Room ID"
// @Success 204 "Room closed"
// @Failure 403 {object} ErrorResponse "Not the room creator"
// @Failure 404 {object} ErrorResponse "Room not found"
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	h.LogRequest(c, "Closing room")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid id"})
		return
	}

	role, _ := GetUserRoleFromContext(c)
	if err := h.service.Close(c.Request.Context(), id, userID, role == models.RoleAdmin); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LeaveRoom exits the live room and returns to the room browser.
// @Summary Leave study room
// @Tags rooms
// @Produce json
// @Success 200 {object} services.NavigationResponse
// @Failure 409 {object} ErrorResponse "Not in a live room"
// @Router /rooms/leave [post]
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	h.LogRequest(c, "Leaving room")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	result, err := h.sessions.LeaveRoom(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
