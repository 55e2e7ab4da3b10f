package repository

import (
	"context"
	"time"

	"github.com/anjiri1684/quiz_backend/models"
	"gorm.io/gorm"
)

type ResultCreate struct {
	UserID     uint
	QuizID     uint
	UserScore  int
	MaxScore   int
	FinishedAt time.Time
}

type ResultPatch struct {
	UserScore *int
	MaxScore  *int
}

// ExpiredResult is a result old enough to trigger a reminder, joined with
// the quiz title and the user's contact details.
type ExpiredResult struct {
	ResultID   uint
	QuizID     uint
	QuizTitle  string
	FinishedAt time.Time
	UserName   string
	UserEmail  string
}

type ResultRepository struct {
	CRUD[models.QuizResult]
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{CRUD: newCRUD[models.QuizResult](db, "Quiz result")}
}

func (r *ResultRepository) Create(ctx context.Context, in ResultCreate) (*models.QuizResult, error) {
	userID, quizID := in.UserID, in.QuizID
	result := models.QuizResult{
		UserID:     &userID,
		QuizID:     &quizID,
		UserScore:  in.UserScore,
		MaxScore:   in.MaxScore,
		FinishedAt: in.FinishedAt,
	}
	if err := r.create(r.db.WithContext(ctx), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.QuizResult, error) {
	results := make([]models.QuizResult, 0)
	err := page(r.db.WithContext(ctx).Where("user_id = ?", userID), skip, limit).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultRepository) Update(ctx context.Context, result *models.QuizResult, patch ResultPatch) (*models.QuizResult, error) {
	if patch.UserScore != nil {
		result.UserScore = *patch.UserScore
	}
	if patch.MaxScore != nil {
		result.MaxScore = *patch.MaxScore
	}
	if err := r.save(r.db.WithContext(ctx), result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListExpired returns results finished at or before cutoff that have not
// been reminded about yet, skipping rows whose user or quiz was deleted.
func (r *ResultRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]ExpiredResult, error) {
	rows := make([]ExpiredResult, 0)
	err := r.db.WithContext(ctx).
		Table("quiz_results").
		Select("quiz_results.id AS result_id, quizzes.id AS quiz_id, quizzes.title AS quiz_title, quiz_results.finished_at AS finished_at, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = quiz_results.user_id").
		Joins("JOIN quizzes ON quizzes.id = quiz_results.quiz_id").
		Where("quiz_results.finished_at <= ? AND quiz_results.notified_at IS NULL", cutoff).
		Order("quizzes.id, quizzes.title, quiz_results.finished_at, users.name, users.email").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ResultRepository) MarkNotified(ctx context.Context, resultID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.QuizResult{}).
		Where("id = ?", resultID).
		Update("notified_at", at).Error
}
