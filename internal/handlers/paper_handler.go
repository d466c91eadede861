package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type PaperHandler struct {
	BaseHandler
	service   services.PaperService
	validator *validator.Validator
}

func NewPaperHandler(service services.PaperService, validator *validator.Validator, logger utils.Logger) *PaperHandler {
	return &PaperHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

// ListPapers returns past papers filtered by the query parameters.
// @Summary List past papers
// @Tags papers
// @Produce json
// @Param branch query string false "Branch code (CSE, ECE, ME, CE, IT)"
// @Param semester query string false "Semester code (S1..S8)"
// @Param subject query string false "Subject name"
// @Param exam_year query int false "Exam year"
// @Param q query string false "Search term"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} services.PaperListResponse
// @Router /papers [get]
func (h *PaperHandler) ListPapers(c *gin.Context) {
	h.LogRequest(c, "Listing papers")

	filters := repositories.PaperFilters{
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
	if yearStr := c.Query("exam_year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filters.ExamYear = &year
		}
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

// ListSubjects returns the distinct subjects with papers for a branch and
// semester pair.
// @Summary List paper subjects
// @Tags papers
// @Produce json
// @Param branch query string true "Branch code"
// @Param semester query string true "Semester code"
// @Success 200 {object} map[string][]string
// @Router /papers/subjects [get]
func (h *PaperHandler) ListSubjects(c *gin.Context) {
	h.LogRequest(c, "Listing paper subjects")

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

// GetPaper returns a single paper by ID.
// @Summary Get paper
// @Tags papers
// @Produce json
// @Param id path uint true "Paper ID"
// @Success 200 {object} models.Paper
// @Failure 404 {object} ErrorResponse "Paper not found"
// @Router /papers/{id} [get]
func (h *PaperHandler) GetPaper(c *gin.Context) {
	h.LogRequest(c, "Getting paper")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	paper, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paper)
}

// RecordView bumps the paper's view counter.
// @Summary Record a paper view
// @Tags papers
// @Param id path uint true "Paper ID"
// @Success 204 "No content"
// @Router /papers/{id}/view [post]
func (h *PaperHandler) RecordView(c *gin.Context) {
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

// RecordDownload bumps the paper's download counter.
// @Summary Record a paper download
// @Tags papers
// @Param id path uint true "Paper ID"
// @Success 204 "No content"
// @Router /papers/{id}/download [post]
func (h *PaperHandler) RecordDownload(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, _ := GetUserIDFromContext(c)
	if err := h.service.RecordDownload(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePaper adds a paper to the catalog. Admin only.
// @Summary Create paper
// @Tags papers
// @Accept json
// @Produce json
// @Param request body validator.PaperCreateRequest true "Paper"
// @Success 201 {object} models.Paper
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /papers [post]
func (h *PaperHandler) CreatePaper(c *gin.Context) {
	h.LogRequest(c, "Creating paper")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.PaperCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	paper, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, paper)
}

// UpdatePaper edits catalog fields of a paper. Admin only.
// @Summary Update paper
// @Tags papers
// @Accept json
// @Produce json
// @Param id path uint true "Paper ID"
// @Param request body validator.PaperUpdateRequest true "Fields to change"
// @Success 200 {object} models.Paper
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Paper not found"
// @Router /papers/{id} [put]
func (h *PaperHandler) UpdatePaper(c *gin.Context) {
	h.LogRequest(c, "Updating paper")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.PaperUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	paper, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paper)
}

// DeletePaper removes a paper from the catalog. Admin only.
// @Summary Delete paper
// @Tags papers
// @Param id path uint true "Paper ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Paper not found"
// @Router /papers/{id} [delete]
func (h *PaperHandler) DeletePaper(c *gin.Context) {
	h.LogRequest(c, "Deleting paper")

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

// parsePagination reads limit/offset query parameters with sane bounds.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if n, err := strconv.Atoi(offsetStr); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
