package routes

import (
	"log"
	"time"

	config "github.com/anjiri1684/quiz_backend/configs"
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/anjiri1684/quiz_backend/middleware"
	"github.com/anjiri1684/quiz_backend/notifications"
	"github.com/anjiri1684/quiz_backend/repository"
	"github.com/anjiri1684/quiz_backend/services"
	"github.com/anjiri1684/quiz_backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// NewHandler wires the stores and services over db.
func NewHandler(db *gorm.DB, s config.Settings, hasher *services.PasswordHasher, mailer notifications.Sender, hub *websocket.Hub) *handlers.Handler {
	users := repository.NewUserRepository(db)
	quizzes := repository.NewQuizRepository(db)
	results := repository.NewResultRepository(db)
	tokens := services.NewTokenCodec(s.JWTSecret, s.AccessTokenExpire, s.RefreshTokenExpire)

	var publisher services.Publisher
	if hub != nil {
		publisher = hub
	}

	return &handlers.Handler{
		Users:      users,
		Quizzes:    quizzes,
		Questions:  repository.NewQuestionRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Answers:    repository.NewAnswerRepository(db),
		Results:    results,
		Auth:       services.NewAuthenticator(users, hasher, tokens),
		Hasher:     hasher,
		Quiz:       services.NewQuizService(quizzes, results, publisher, s.ScoreClampAtZero),
		Mailer:     mailer,
		Hub:        hub,
	}
}

type guards struct {
	protected fiber.Handler
	superuser fiber.Handler
}

func NewApp(s config.Settings, h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       s.AppName,
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		MaxAge:       86400,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	g := guards{
		protected: middleware.Protected(s.JWTSecret, h.Auth),
		superuser: middleware.SuperuserRequired(),
	}

	PublicRoutes(app)
	AuthRoutes(app, h)
	UserRoutes(app, h, g)
	CatalogRoutes(app, h, g)
	ExamRoutes(app, h, g)
	ResultRoutes(app, h, g)
	WebsocketRoutes(app, h, g)

	return app
}
