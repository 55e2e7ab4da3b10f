package handlers

import (
	"errors"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/middleware"
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type UpdateMeRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type SuperuserRequest struct {
	IsSuperuser *bool `json:"is_superuser" validate:"required"`
}

func (h *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	skip, limit, err := utils.Pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	users, err := h.Users.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) UpdateMe(c *fiber.Ctx) error {
	var req UpdateMeRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	patch := repository.UserPatch{Name: req.Name, Email: req.Email}
	if req.Password != nil {
		hashed, err := h.Hasher.Hash(*req.Password)
		if err != nil {
			return respondError(c, err)
		}
		patch.PasswordHash = &hashed
	}

	user := middleware.CurrentUser(c)
	if req.Email != nil {
		existing, err := h.Users.GetByEmail(c.UserContext(), *req.Email)
		switch {
		case err == nil && existing.ID != user.ID:
			return respondError(c, apperrors.Conflict("Email already registered"))
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return respondError(c, err)
		}
	}

	updated, err := h.Users.Update(c.UserContext(), user, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) SetSuperuser(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req SuperuserRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.Users.SetSuperuser(c.UserContext(), user, *req.IsSuperuser)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteUser is open to superusers and to the user deleting themselves.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	current := middleware.CurrentUser(c)
	if !current.IsSuperuser && current.ID != id {
		return respondError(c, apperrors.Forbidden("The user doesn't have enough privileges"))
	}

	deleted, err := h.Users.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deleted)
}
