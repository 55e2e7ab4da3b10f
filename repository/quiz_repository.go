package repository

import (
	"context"
	"strings"

	"github.com/anjiri1684/quiz_backend/models"
	"gorm.io/gorm"
)

type QuizCreate struct {
	Title       string
	Description string
	IsActive    bool
}

type QuizPatch struct {
	Title       *string
	Description *string
	IsActive    *bool
}

type QuizRepository struct {
	CRUD[models.Quiz]
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{CRUD: newCRUD[models.Quiz](db, "Quiz")}
}

func (r *QuizRepository) Exists(ctx context.Context, title, description string) (bool, error) {
	return r.exists(r.db.WithContext(ctx), "title = ? AND description = ?", strings.TrimSpace(title), strings.TrimSpace(description))
}

func (r *QuizRepository) Create(ctx context.Context, in QuizCreate) (*models.Quiz, error) {
	quiz := models.Quiz{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		IsActive:    in.IsActive,
	}
	exists, err := r.Exists(ctx, quiz.Title, quiz.Description)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, r.translate(gorm.ErrDuplicatedKey)
	}
	if err := r.create(r.db.WithContext(ctx), &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions loads the quiz with its questions and their answers in
// insertion order.
func (r *QuizRepository) GetWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id") }).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.id") }).
		First(&quiz, id).Error
	if err != nil {
		return nil, r.translate(err)
	}
	return &quiz, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz *models.Quiz, patch QuizPatch) (*models.Quiz, error) {
	if patch.Title != nil {
		quiz.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		quiz.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.IsActive != nil {
		quiz.IsActive = *patch.IsActive
	}
	if err := r.save(r.db.WithContext(ctx), quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete removes the quiz together with its questions, their answers and
// category links. Results referencing the quiz are kept with quiz_id nulled.
func (r *QuizRepository) Delete(ctx context.Context, id uint) (*models.Quiz, error) {
	var deleted models.Quiz
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, id).Error; err != nil {
			return r.translate(err)
		}

		var questionIDs []uint
		if err := tx.Model(&models.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if err := deleteQuestionDependents(tx, questionIDs); err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("id IN ?", questionIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.QuizResult{}).Where("quiz_id = ?", id).Update("quiz_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&deleted).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func deleteQuestionDependents(tx *gorm.DB, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM questions_categories WHERE question_id IN ?", questionIDs).Error
}
