package handler

import (
	"errors"

	"quiz-tutor/internal/domain"
	"quiz-tutor/internal/dto"
	"quiz-tutor/internal/service"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports backend reachability.
type HealthHandler struct {
	questions service.QuestionService
}

func NewHealthHandler(questions service.QuestionService) *HealthHandler {
	return &HealthHandler{questions: questions}
}

// Health godoc
// @Summary Health check
// @Description Pings the question store and, when enabled, the question cache.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if err := h.questions.Ping(c.UserContext()); err != nil {
		msg := "unavailable"
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			msg = domainErr.Message
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status: "unavailable",
			Error:  msg,
		})
	}
	return c.JSON(dto.HealthResponse{Status: "ok"})
}
