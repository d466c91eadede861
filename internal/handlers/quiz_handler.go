package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type QuizHandler struct {
	BaseHandler
	service   services.QuizService
	validator *validator.Validator
}

func NewQuizHandler(service services.QuizService, validator *validator.Validator, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		validator:   validator,
	}
}

// GenerateQuiz builds a mock test on the requested topic. When the inference
// backend is unavailable the response carries a fixed fallback quiz with the
// fallback flag set, never an error.
// @Summary Generate a mock test
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body validator.QuizGenerateRequest true "Quiz parameters"
// @Success 200 {object} models.Quiz
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	h.LogRequest(c, "Generating quiz")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.QuizGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	quiz, err := h.service.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}
