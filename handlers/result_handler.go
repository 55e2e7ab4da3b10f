package handlers

import (
	"github.com/anjiri1684/quiz_backend/middleware"
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type ResultPatchRequest struct {
	UserScore *int `json:"user_score"`
	MaxScore  *int `json:"max_score" validate:"omitempty,gt=0"`
}

func (h *Handler) ListResults(c *fiber.Ctx) error {
	skip, limit, err := utils.Pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	results, err := h.Results.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(results)
}

func (h *Handler) MyResults(c *fiber.Ctx) error {
	skip, limit, err := utils.Pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	results, err := h.Results.ListByUser(c.UserContext(), middleware.CurrentUser(c).ID, skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(results)
}

func (h *Handler) GetResult(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.Results.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) UpdateResult(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req ResultPatchRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	result, err := h.Results.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.Results.Update(c.UserContext(), result, repository.ResultPatch{
		UserScore: req.UserScore,
		MaxScore:  req.MaxScore,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteResult(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	deleted, err := h.Results.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deleted)
}
