package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	config "github.com/anjiri1684/quiz_backend/configs"
	"github.com/anjiri1684/quiz_backend/database"
	"github.com/anjiri1684/quiz_backend/jobs"
	"github.com/anjiri1684/quiz_backend/notifications"
	"github.com/anjiri1684/quiz_backend/routes"
	"github.com/anjiri1684/quiz_backend/services"
	"github.com/anjiri1684/quiz_backend/websocket"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("🔥 Invalid configuration: %v", err)
	}

	db, err := database.Connect(settings.DBDriver, settings.DatabaseURL)
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}
	log.Println("✅ Database connection successfully opened")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	log.Println("✅ Database migrated")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := services.NewPasswordHasher(bcrypt.DefaultCost)
	mailer := notifications.NewSender(settings)
	hub := websocket.NewHub()
	go hub.Run(ctx)

	h := routes.NewHandler(db, settings, hasher, mailer, hub)
	if err := database.SeedAdmin(ctx, h.Users, hasher, settings); err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	c := cron.New()
	notifier := jobs.NewExpiredResultNotifier(h.Results, mailer, settings.ResultExpiry)
	if _, err := notifier.Schedule(c, settings.NotifierSchedule); err != nil {
		log.Fatalf("🔥 Invalid NOTIFIER_SCHEDULE %q: %v", settings.NotifierSchedule, err)
	}
	c.Start()
	defer c.Stop()
	log.Println("✅ Cron job for expired results scheduled successfully.")

	app := routes.NewApp(settings, h)
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("🔥 Server shutdown failed: %v", err)
		}
	}()

	log.Printf("✅ Server is running on port %s", settings.Port)
	if err := app.Listen(":" + settings.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
