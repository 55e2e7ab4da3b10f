package repository

import (
	"context"
	"strings"

	"github.com/anjiri1684/quiz_backend/models"
	"gorm.io/gorm"
)

type AnswerCreate struct {
	QuestionID uint
	AnswerText string
	IsCorrect  bool
}

type AnswerPatch struct {
	QuestionID *uint
	AnswerText *string
	IsCorrect  *bool
}

type AnswerRepository struct {
	CRUD[models.Answer]
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{CRUD: newCRUD[models.Answer](db, "Answer")}
}

func (r *AnswerRepository) Exists(ctx context.Context, questionID uint, answerText string) (bool, error) {
	return r.exists(r.db.WithContext(ctx), "question_id = ? AND answer_text = ?", questionID, strings.TrimSpace(answerText))
}

func (r *AnswerRepository) Create(ctx context.Context, in AnswerCreate) (*models.Answer, error) {
	answer := models.Answer{
		QuestionID: in.QuestionID,
		AnswerText: strings.TrimSpace(in.AnswerText),
		IsCorrect:  in.IsCorrect,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Question{}, in.QuestionID, "Question not found"); err != nil {
			return err
		}
		exists, err := r.exists(tx, "question_id = ? AND answer_text = ?", answer.QuestionID, answer.AnswerText)
		if err != nil {
			return err
		}
		if exists {
			return r.translate(gorm.ErrDuplicatedKey)
		}
		return r.create(tx, &answer)
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) Update(ctx context.Context, answer *models.Answer, patch AnswerPatch) (*models.Answer, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patch.QuestionID != nil {
			if err := requireRow(tx, &models.Question{}, *patch.QuestionID, "Question not found"); err != nil {
				return err
			}
			answer.QuestionID = *patch.QuestionID
		}
		if patch.AnswerText != nil {
			answer.AnswerText = strings.TrimSpace(*patch.AnswerText)
		}
		if patch.IsCorrect != nil {
			answer.IsCorrect = *patch.IsCorrect
		}
		return r.save(tx, answer)
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}
