package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type MaterialHandler struct {
	BaseHandler
	service   services.MaterialService
	validator *validator.Validator
}

func NewMaterialHandler(service services.MaterialService, validator *validator.Validator, logger utils.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

// ListMaterials returns study materials filtered by the query parameters.
// @Summary List study materials
// @Tags materials
// @Produce json
// @Param branch query string false "Branch code"
// @Param semester query string false "Semester code"
// @Param subject query string false "Subject name"
// @Param type query string false "Material type (notes, syllabus, book, lab)"
// @Param q query string false "Search term"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.MaterialListResponse
// @Router /materials [get]
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	h.LogRequest(c, "Listing materials")

	filters := repositories.MaterialFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if branch := c.Query("branch"); branch != "" {
		b := models.Branch(branch)
		filters.Branch = &b
	}
	if semester := c.Query("semester"); semester != "" {
		s := models.Semester(semester)
		filters.Semester = &s
	}
	if subject := c.Query("subject"); subject != "" {
		filters.Subject = &subject
	}
	if materialType := c.Query("type"); materialType != "" {
		t := models.MaterialType(materialType)
		filters.Type = &t
	}
	if q := c.Query("q"); q != "" {
		filters.Query = &q
	}
	filters.Limit, filters.Offset = parsePagination(c)

	result, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListSubjects returns the distinct subjects with materials for a branch and
// semester pair.
// @Summary List material subjects
// @Tags materials
// @Produce json
// @Param branch query string true "Branch code"
// @Param semester query string true "Semester code"
// @Success 200 {object} map[string][]string
// @Router /materials/subjects [get]
func (h *MaterialHandler) ListSubjects(c *gin.Context) {
	h.LogRequest(c, "Listing material subjects")

	branch := models.Branch(c.Query("branch"))
	semester := models.Semester(c.Query("semester"))
	if branch == "" || semester == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: "branch and semester query parameters are required",
		})
		return
	}

	subjects, err := h.service.Subjects(c.Request.Context(), branch, semester)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// GetMaterial returns a single material by ID.
// @Summary Get material
// @Tags materials
// @Produce json
// @Param id path uint true "Material ID"
// @Success 200 {object} models.Material
// @Failure 404 {object} ErrorResponse "Material not found"
// @Router /materials/{id} [get]
func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	h.LogRequest(c, "Getting material")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	material, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// RecordView bumps the material's view counter.
// @Summary Record a material view
// @Tags materials
// @Param id path uint true "Material ID"
// @Success 204 "No content"
// @Router /materials/{id}/view [post]
func (h *MaterialHandler) RecordView(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, _ := GetUserIDFromContext(c)
	if err := h.service.RecordView(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateMaterial adds a material to the catalog. Admin only.
// @Summary Create material
// @Tags materials
// @Accept json
// @Produce json
// @Param request body validator.MaterialCreateRequest true "Material"
// @Success 201 {object} models.Material
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /materials [post]
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	h.LogRequest(c, "Creating material")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.MaterialCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	material, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// UpdateMaterial edits catalog fields of a material. Admin only.
// @Summary Update material
// @Tags materials
// @Accept json
// @Produce json
// @Param id path uint true "Material ID"
// @Param request body validator.MaterialUpdateRequest true "Fields to change"
// @Success 200 {object} models.Material
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Material not found"
// @Router /materials/{id} [put]
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	h.LogRequest(c, "Updating material")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.MaterialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	material, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// DeleteMaterial removes a material from the catalog. Admin only.
// @Summary Delete material
// @Tags materials
// @Param id path uint true "Material ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Material not found"
// @Router /materials/{id} [delete]
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	h.LogRequest(c, "Deleting material")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
