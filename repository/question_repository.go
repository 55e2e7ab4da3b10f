package repository

import (
	"context"
	"strings"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/models"
	"gorm.io/gorm"
)

type QuestionCreate struct {
	QuizID       uint
	QuestionText string
	CategoryIDs  []uint
}

// QuestionPatch updates a question. A non-nil CategoryIDs replaces the whole
// category set, an empty slice clears it.
type QuestionPatch struct {
	QuizID       *uint
	QuestionText *string
	CategoryIDs  *[]uint
}

type QuestionRepository struct {
	CRUD[models.Question]
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{CRUD: newCRUD[models.Question](db, "Question")}
}

func (r *QuestionRepository) Exists(ctx context.Context, quizID uint, questionText string) (bool, error) {
	return r.exists(r.db.WithContext(ctx), "quiz_id = ? AND question_text = ?", quizID, strings.TrimSpace(questionText))
}

func (r *QuestionRepository) Get(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).Preload("Categories").First(&question, id).Error; err != nil {
		return nil, r.translate(err)
	}
	return &question, nil
}

func (r *QuestionRepository) GetMulti(ctx context.Context, skip, limit int) ([]models.Question, error) {
	questions := make([]models.Question, 0)
	if err := page(r.db.WithContext(ctx).Preload("Categories"), skip, limit).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) Create(ctx context.Context, in QuestionCreate) (*models.Question, error) {
	question := models.Question{
		QuizID:       in.QuizID,
		QuestionText: strings.TrimSpace(in.QuestionText),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Quiz{}, in.QuizID, "Quiz not found"); err != nil {
			return err
		}
		exists, err := r.exists(tx, "quiz_id = ? AND question_text = ?", question.QuizID, question.QuestionText)
		if err != nil {
			return err
		}
		if exists {
			return r.translate(gorm.ErrDuplicatedKey)
		}
		categories, err := loadCategories(tx, in.CategoryIDs)
		if err != nil {
			return err
		}
		question.Categories = categories
		return r.create(tx, &question)
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Update(ctx context.Context, question *models.Question, patch QuestionPatch) (*models.Question, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.QuizID != nil {
			if err := requireRow(tx, &models.Quiz{}, *patch.QuizID, "Quiz not found"); err != nil {
				return err
			}
			question.QuizID = *patch.QuizID
		}
		if patch.QuestionText != nil {
			question.QuestionText = strings.TrimSpace(*patch.QuestionText)
		}
		if err := r.save(tx.Omit("Categories"), question); err != nil {
			return err
		}
		if patch.CategoryIDs == nil {
			return nil
		}
		categories, err := loadCategories(tx, *patch.CategoryIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(question).Association("Categories").Replace(categories); err != nil {
			return err
		}
		question.Categories = categories
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes the question with its answers and category links.
func (r *QuestionRepository) Delete(ctx context.Context, id uint) (*models.Question, error) {
	var deleted models.Question
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Categories").First(&deleted, id).Error; err != nil {
			return r.translate(err)
		}
		if err := deleteQuestionDependents(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func loadCategories(tx *gorm.DB, ids []uint) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, apperrors.NotFound("Category not found")
	}
	return categories, nil
}

func requireRow(tx *gorm.DB, model any, id uint, message string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound(message)
	}
	return nil
}
