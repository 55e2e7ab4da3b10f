package routes

import (
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App, h *handlers.Handler, g guards) {
	app.Post("/test-token", g.protected, h.TestToken)
	app.Get("/users/me", g.protected, h.Me)
	app.Get("/users", g.protected, h.ListUsers)
	app.Put("/update/me", g.protected, h.UpdateMe)
	app.Patch("/users/:id/superuser", g.protected, g.superuser, h.SetSuperuser)
	app.Delete("/user/:id", g.protected, h.DeleteUser)
}
