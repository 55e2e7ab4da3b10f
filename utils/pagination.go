package utils

import (
	"strconv"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Pagination reads the skip and limit query parameters. Missing values fall
// back to 0 and 100; limit is capped at 1000.
func Pagination(c *fiber.Ctx) (skip, limit int, err error) {
	if skip, err = queryInt(c, "skip", 0); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(c, "limit", defaultLimit); err != nil {
		return 0, 0, err
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.Validation(key + " must be a non-negative integer")
	}
	return n, nil
}

// ParamID reads a positive numeric path parameter.
func ParamID(c *fiber.Ctx, key string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || n == 0 {
		return 0, apperrors.Validation("Invalid " + key)
	}
	return uint(n), nil
}
