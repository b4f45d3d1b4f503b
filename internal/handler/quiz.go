package handler

import (
	"quiz-tutor/internal/domain"
	"quiz-tutor/internal/dto"
	"quiz-tutor/internal/logger"
	"quiz-tutor/internal/service"
	"quiz-tutor/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	questions     service.QuestionService
	quiz          service.QuizService
	validator     *validation.Validator
	exposeAnswers bool
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(questions service.QuestionService, quiz service.QuizService, validator *validation.Validator, exposeAnswers bool) *QuizHandler {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &QuizHandler{
		questions:     questions,
		quiz:          quiz,
		validator:     validator,
		exposeAnswers: exposeAnswers,
	}
}

// GetQuestions godoc
// @Summary List all questions
// @Description Returns every stored question ordered by id. Options are present only for mcq questions.
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/questions [get]
func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	questions, err := h.questions.GetQuestions(c.UserContext())
	if err != nil {
		return err
	}

	resp := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		if q == nil {
			continue
		}
		resp = append(resp, dto.NewQuestionResponse(q, h.exposeAnswers))
	}
	return c.JSON(resp)
}

// Submit godoc
// @Summary Submit answers for scoring
// @Description Scores all answers of a quiz session at once. Unknown question ids and blank answers score 0.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Answers"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/submit [post]
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Rejected submission body", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}

	answers := req.ToDomain()
	if errs := h.validator.ValidateSubmission(answers); len(errs) > 0 {
		return errs
	}

	score, err := h.quiz.Submit(c.UserContext(), answers)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubmitResponse{Score: score})
}
