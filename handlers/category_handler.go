package handlers

import (
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

type CategoryPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	category, err := h.Categories.Create(c.UserContext(), repository.CategoryCreate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *Handler) ListCategories(c *fiber.Ctx) error {
	skip, limit, err := utils.Pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	categories, err := h.Categories.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (h *Handler) GetCategory(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	category, err := h.Categories.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req CategoryPatchRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	category, err := h.Categories.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.Categories.Update(c.UserContext(), category, repository.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	deleted, err := h.Categories.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deleted)
}
