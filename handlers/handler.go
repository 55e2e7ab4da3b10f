// Package handlers holds the fiber handlers. They parse and validate the
// request, call a store or a service and shape the response; errors go
// through respondError so every failure has the same {"error": ...} body.
package handlers

import (
	"log"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/notifications"
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/services"
	"github.com/anjiri1684/quiz_backend/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Handler struct {
	Users      *repository.UserRepository
	Quizzes    *repository.QuizRepository
	Questions  *repository.QuestionRepository
	Categories *repository.CategoryRepository
	Answers    *repository.AnswerRepository
	Results    *repository.ResultRepository

	Auth   *services.Authenticator
	Hasher *services.PasswordHasher
	Quiz   *services.QuizService
	Mailer notifications.Sender
	Hub    *websocket.Hub
}

func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("🔥 %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.Validation("Cannot parse request body")
	}
	if err := validate.Struct(out); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}
