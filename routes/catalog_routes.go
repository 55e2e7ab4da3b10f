package routes

import (
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/gofiber/fiber/v2"
)

// CatalogRoutes exposes quizzes, questions, categories and answers. Reads
// need a valid token, writes need a superuser.
func CatalogRoutes(app *fiber.App, h *handlers.Handler, g guards) {
	app.Post("/quiz", g.protected, g.superuser, h.CreateQuiz)
	app.Get("/quizzes", g.protected, h.ListQuizzes)
	app.Get("/quiz/:id", g.protected, h.GetQuiz)
	app.Patch("/quiz/:id", g.protected, g.superuser, h.UpdateQuiz)
	app.Delete("/quiz/:id", g.protected, g.superuser, h.DeleteQuiz)

	app.Post("/question", g.protected, g.superuser, h.CreateQuestion)
	app.Get("/questions", g.protected, h.ListQuestions)
	app.Get("/question/:id", g.protected, h.GetQuestion)
	app.Patch("/question/:id", g.protected, g.superuser, h.UpdateQuestion)
	app.Delete("/question/:id", g.protected, g.superuser, h.DeleteQuestion)

	app.Post("/category", g.protected, g.superuser, h.CreateCategory)
	app.Get("/categories", g.protected, h.ListCategories)
	app.Get("/category/:id", g.protected, h.GetCategory)
	app.Patch("/category/:id", g.protected, g.superuser, h.UpdateCategory)
	app.Delete("/category/:id", g.protected, g.superuser, h.DeleteCategory)

	app.Post("/answer", g.protected, g.superuser, h.CreateAnswer)
	app.Get("/answers", g.protected, h.ListAnswers)
	app.Get("/answer/:id", g.protected, h.GetAnswer)
	app.Patch("/answer/:id", g.protected, g.superuser, h.UpdateAnswer)
	app.Delete("/answer/:id", g.protected, g.superuser, h.DeleteAnswer)
}
