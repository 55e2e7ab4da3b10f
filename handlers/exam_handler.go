package handlers

import (
	"github.com/anjiri1684/quiz_backend/middleware"
	"github.com/anjiri1684/quiz_backend/services"
	"github.com/anjiri1684/quiz_backend/utils"
	"github.com/gofiber/fiber/v2"
)

// ViewQuiz returns the questionnaire of an active quiz without answer
// correctness.
func (h *Handler) ViewQuiz(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	questionnaire, err := h.Quiz.View(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(questionnaire)
}

func (h *Handler) SubmitQuiz(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var sub services.Submission
	if err := parseBody(c, &sub); err != nil {
		return respondError(c, err)
	}

	score, _, err := h.Quiz.Submit(c.UserContext(), middleware.CurrentUser(c), id, sub)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(score)
}
