package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type AdminHandler struct {
	BaseHandler
	service   services.AdminService
	validator *validator.Validator
}

func NewAdminHandler(service services.AdminService, validator *validator.Validator, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

// Login checks the console credential pair and mints an admin session token.
// @Summary Admin console login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body validator.AdminLoginRequest true "Credentials"
// @Success 200 {object} services.AdminSessionResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Admin login attempt")

	var req validator.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetStats returns the admin console overview.
// @Summary Admin stats overview
// @Tags admin
// @Produce json
// @Success 200 {object} services.AdminStatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Getting admin stats")

	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportStats streams the stats overview as an xlsx workbook.
// @Summary Export admin stats
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/stats/export [get]
func (h *AdminHandler) ExportStats(c *gin.Context) {
	h.LogRequest(c, "Exporting admin stats")

	data, err := h.service.ExportStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("campus-stats-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
