package routes

import (
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func ResultRoutes(app *fiber.App, h *handlers.Handler, g guards) {
	app.Get("/results/me", g.protected, h.MyResults)
	app.Get("/results", g.protected, g.superuser, h.ListResults)
	app.Get("/result/:id", g.protected, g.superuser, h.GetResult)
	app.Patch("/result/:id", g.protected, g.superuser, h.UpdateResult)
	app.Delete("/result/:id", g.protected, g.superuser, h.DeleteResult)
}
