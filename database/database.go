package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	config "github.com/anjiri1684/quiz_backend/configs"
	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/models"
	"github.com/anjiri1684/quiz_backend/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Category{},
		&models.Answer{},
		&models.QuizResult{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// SeedAdmin creates the configured superuser unless a user with that email
// already exists. It is a no-op when no admin credentials are configured.
func SeedAdmin(ctx context.Context, users *repository.UserRepository, hasher passwordHasher, s config.Settings) error {
	if s.AdminEmail == "" || s.AdminPassword == "" {
		log.Println("Admin credentials not configured, skipping admin seeding.")
		return nil
	}

	exists, err := users.Exists(ctx, s.AdminEmail)
	if err != nil {
		return fmt.Errorf("check for admin user: %w", err)
	}
	if exists {
		log.Println("Admin user already exists.")
		return nil
	}

	hashed, err := hasher.Hash(s.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = users.Create(ctx, repository.UserCreate{
		Name:         s.AdminName,
		Email:        s.AdminEmail,
		PasswordHash: hashed,
		IsSuperuser:  true,
	})
	if errors.Is(err, apperrors.ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Println("✅ Admin user seeded successfully")
	return nil
}
