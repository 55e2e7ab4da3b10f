package handlers

import (
	"log"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/middleware"
	"github.com/anjiri1684/quiz_backend/notifications"
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/gofiber/fiber/v2"
)

type SignInRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type SignUpRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	PasswordRepeat string `json:"password_repeat" validate:"required,eqfield=Password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// SignIn exchanges form credentials for a token pair. The username field
// carries the email.
func (h *Handler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.Auth.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	pair, err := h.Auth.IssueTokenPair(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pair)
}

// Refresh issues a new token pair. The refresh token comes from the query
// string, which is where the expired-token redirect puts it, or the body.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	token := c.Query("refresh_token")
	if token == "" && len(c.Body()) > 0 {
		var req RefreshRequest
		if err := c.BodyParser(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		return respondError(c, apperrors.Validation("Refresh token is required"))
	}

	pair, err := h.Auth.Refresh(c.UserContext(), token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pair)
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	hashed, err := h.Hasher.Hash(req.Password)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.Users.Create(c.UserContext(), repository.UserCreate{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
	})
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("✅ User %d signed up", user.ID)

	subject, body := notifications.WelcomeEmail(user.Name)
	notifications.SendAsync(h.Mailer, user.Name, user.Email, subject, body)

	return c.JSON(user)
}

func (h *Handler) TestToken(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}
