package handlers

import (
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type QuestionRequest struct {
	QuizID       uint   `json:"quiz_id" validate:"required"`
	QuestionText string `json:"question_text" validate:"required,max=1024"`
	CategoryIDs  []uint `json:"category_ids"`
}

// QuestionPatchRequest replaces the category set when category_ids is
// present, including an empty list.
type QuestionPatchRequest struct {
	QuizID       *uint   `json:"quiz_id" validate:"omitempty,gt=0"`
	QuestionText *string `json:"question_text" validate:"omitempty,min=1,max=1024"`
	CategoryIDs  *[]uint `json:"category_ids"`
}

func (h *Handler) CreateQuestion(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	question, err := h.Questions.Create(c.UserContext(), repository.QuestionCreate{
		QuizID:       req.QuizID,
		QuestionText: req.QuestionText,
		CategoryIDs:  req.CategoryIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

func (h *Handler) ListQuestions(c *fiber.Ctx) error {
	skip, limit, err := utils.Pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	questions, err := h.Questions.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(questions)
}

func (h *Handler) GetQuestion(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	question, err := h.Questions.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(question)
}

func (h *Handler) UpdateQuestion(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req QuestionPatchRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	question, err := h.Questions.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.Questions.Update(c.UserContext(), question, repository.QuestionPatch{
		QuizID:       req.QuizID,
		QuestionText: req.QuestionText,
		CategoryIDs:  req.CategoryIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	deleted, err := h.Questions.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deleted)
}
