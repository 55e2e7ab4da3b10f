package handlers

import (
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type QuizRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1024"`
	IsActive    *bool  `json:"is_active"`
}

type QuizPatchRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) CreateQuiz(c *fiber.Ctx) error {
	var req QuizRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	quiz, err := h.Quizzes.Create(c.UserContext(), repository.QuizCreate{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func (h *Handler) ListQuizzes(c *fiber.Ctx) error {
	skip, limit, err := utils.Pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	quizzes, err := h.Quizzes.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quizzes)
}

func (h *Handler) GetQuiz(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	quiz, err := h.Quizzes.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quiz)
}

func (h *Handler) UpdateQuiz(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req QuizPatchRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	quiz, err := h.Quizzes.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.Quizzes.Update(c.UserContext(), quiz, repository.QuizPatch{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteQuiz(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	deleted, err := h.Quizzes.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deleted)
}
