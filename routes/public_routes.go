package routes

import (
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/", handlers.Home)
	app.Get("/health", handlers.Health)
}
