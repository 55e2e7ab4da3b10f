package middleware

import (
	"context"
	"net/url"
	"strings"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/models"
	"github.com/anjiri1684/quiz_backend/services"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

const (
	CurrentUserKey = "current_user"
	RefreshPath    = "/refresh"
)

type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, raw string) services.Resolution
}

// Protected verifies the bearer token and stores the resolved user in the
// request locals. An expired access token is answered with a temporary
// redirect to the refresh endpoint carrying its embedded refresh token.
//
// jwtware only extracts the bearer token and answers the missing case. Both
// its outcomes go through ResolveCurrentUser, which also rejects refresh
// tokens and stale user ids and is the only place that can tell an expired
// token apart from a forged one.
func Protected(secret string, auth UserResolver) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals("user").(*jwt.Token)
			return resolve(c, auth, token.Raw)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if err.Error() == "Missing or malformed JWT" {
				return respond(c, apperrors.Unauthenticated("Not authenticated"))
			}
			return resolve(c, auth, bearerToken(c))
		},
	})
}

func resolve(c *fiber.Ctx, auth UserResolver, raw string) error {
	res := auth.ResolveCurrentUser(c.UserContext(), raw)
	switch res.Status {
	case services.Resolved:
		c.Locals(CurrentUserKey, res.User)
		return c.Next()
	case services.NeedsRefresh:
		return c.Redirect(RefreshPath+"?refresh_token="+url.QueryEscape(res.RefreshToken), fiber.StatusTemporaryRedirect)
	default:
		return respond(c, res.Err)
	}
}

func respond(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// CurrentUser returns the user stored by Protected, or nil outside it.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CurrentUserKey).(*models.User)
	return user
}

func SuperuserRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperuser {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "The user doesn't have enough privileges",
			})
		}
		return c.Next()
	}
}
