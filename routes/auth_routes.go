package routes

import (
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/anjiri1684/quiz_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.Handler) {
	app.Post("/signin", h.SignIn)
	app.Post("/signup", h.SignUp)

	// GET serves clients following the expired-token redirect.
	app.Get(middleware.RefreshPath, h.Refresh)
	app.Post(middleware.RefreshPath, h.Refresh)
}
