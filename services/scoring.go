package services

import (
	"fmt"
	"math"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/models"
)

var (
	ErrQuizIDMismatch = apperrors.Validation("Quiz id in the body does not match the quiz in the path")
	ErrQuizInactive   = apperrors.NotFound("Quiz is not active")
	ErrQuizEmpty      = apperrors.Validation("Quiz has no questions or answers")
	ErrUnscoreable    = apperrors.Validation("Quiz has no correct answers and cannot be scored")
	ErrCountMismatch  = apperrors.Validation("Number of submitted answers does not match the quiz")
)

type AnswerVariant struct {
	AnswerID   uint   `json:"answer_id"`
	AnswerText string `json:"answer_text"`
}

type QuestionnaireItem struct {
	QuestionID     uint            `json:"question_id"`
	QuestionText   string          `json:"question_text"`
	AnswerVariants []AnswerVariant `json:"answer_variants"`
}

// Questionnaire is the player-facing view of a quiz. It never carries
// answer correctness.
type Questionnaire struct {
	QuizID          uint                `json:"quiz_id"`
	QuizTitle       string              `json:"quiz_title"`
	QuizDescription string              `json:"quiz_description"`
	Questions       []QuestionnaireItem `json:"questions"`
}

// Judgment is the player's claim about whether one answer is correct.
type Judgment struct {
	AnswerID  uint `json:"answer_id" validate:"required"`
	IsCorrect bool `json:"is_correct"`
}

type Score struct {
	MaxScore        int     `json:"max_score"`
	UserScore       int     `json:"user_score"`
	ScorePercentage float64 `json:"score_percentage"`
}

// BuildQuestionnaire projects quiz, loaded with questions and answers, in
// storage order.
func BuildQuestionnaire(quiz *models.Quiz) Questionnaire {
	out := Questionnaire{
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		QuizDescription: quiz.Description,
		Questions:       make([]QuestionnaireItem, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		item := QuestionnaireItem{
			QuestionID:     q.ID,
			QuestionText:   q.QuestionText,
			AnswerVariants: make([]AnswerVariant, 0, len(q.Answers)),
		}
		for _, a := range q.Answers {
			item.AnswerVariants = append(item.AnswerVariants, AnswerVariant{AnswerID: a.ID, AnswerText: a.AnswerText})
		}
		out.Questions = append(out.Questions, item)
	}
	return out
}

// MaxScore counts correct answers across the quiz. ok is false when there
// are none, which marks the quiz unscoreable rather than worth zero.
func MaxScore(quiz *models.Quiz) (score int, ok bool) {
	for _, q := range quiz.Questions {
		for _, a := range q.Answers {
			if a.IsCorrect {
				score++
			}
		}
	}
	return score, score > 0
}

// Grade scores judgments against quiz. Every judgment that disagrees with
// the stored flag costs one point off the max score. With clampAtZero the
// score never drops below zero.
func Grade(quiz *models.Quiz, judgments []Judgment, clampAtZero bool) (Score, error) {
	truth := make(map[uint]bool)
	for _, q := range quiz.Questions {
		for _, a := range q.Answers {
			truth[a.ID] = a.IsCorrect
		}
	}
	if len(quiz.Questions) == 0 || len(truth) == 0 {
		return Score{}, ErrQuizEmpty
	}

	maxScore, ok := MaxScore(quiz)
	if !ok {
		return Score{}, ErrUnscoreable
	}
	if len(judgments) != len(truth) {
		return Score{}, ErrCountMismatch
	}
	for _, j := range judgments {
		if _, known := truth[j.AnswerID]; !known {
			return Score{}, apperrors.Validation(fmt.Sprintf("Answer %d does not belong to this quiz", j.AnswerID))
		}
	}

	seen := make(map[uint]struct{}, len(judgments))
	userScore := maxScore
	for _, j := range judgments {
		if _, dup := seen[j.AnswerID]; dup {
			return Score{}, apperrors.Validation(fmt.Sprintf("Answer %d is submitted more than once", j.AnswerID))
		}
		seen[j.AnswerID] = struct{}{}
		if truth[j.AnswerID] != j.IsCorrect {
			userScore--
		}
	}
	if clampAtZero && userScore < 0 {
		userScore = 0
	}

	return Score{
		MaxScore:        maxScore,
		UserScore:       userScore,
		ScorePercentage: percentage(userScore, maxScore),
	}, nil
}

func percentage(userScore, maxScore int) float64 {
	return math.Round(float64(userScore)/float64(maxScore)*100*100) / 100
}
