package handlers

import (
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type AnswerRequest struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	AnswerText string `json:"answer_text" validate:"required,max=1024"`
	IsCorrect  bool   `json:"is_correct"`
}

type AnswerPatchRequest struct {
	QuestionID *uint   `json:"question_id" validate:"omitempty,gt=0"`
	AnswerText *string `json:"answer_text" validate:"omitempty,min=1,max=1024"`
	IsCorrect  *bool   `json:"is_correct"`
}

func (h *Handler) CreateAnswer(c *fiber.Ctx) error {
	var req AnswerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	answer, err := h.Answers.Create(c.UserContext(), repository.AnswerCreate{
		QuestionID: req.QuestionID,
		AnswerText: req.AnswerText,
		IsCorrect:  req.IsCorrect,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(answer)
}

func (h *Handler) ListAnswers(c *fiber.Ctx) error {
	skip, limit, err := utils.Pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	answers, err := h.Answers.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(answers)
}

func (h *Handler) GetAnswer(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	answer, err := h.Answers.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(answer)
}

func (h *Handler) UpdateAnswer(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req AnswerPatchRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	answer, err := h.Answers.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.Answers.Update(c.UserContext(), answer, repository.AnswerPatch{
		QuestionID: req.QuestionID,
		AnswerText: req.AnswerText,
		IsCorrect:  req.IsCorrect,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteAnswer(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	deleted, err := h.Answers.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deleted)
}
