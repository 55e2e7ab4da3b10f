package routes

import (
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func ExamRoutes(app *fiber.App, h *handlers.Handler, g guards) {
	app.Get("/quiz/:id/view", g.protected, h.ViewQuiz)
	app.Get("/quiz/:id/start", g.protected, h.ViewQuiz)
	app.Post("/quiz/:id/submit", g.protected, h.SubmitQuiz)
}
