package services

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/quiz_backend/models"
	"github.com/anjiri1684/quiz_backend/repository"
)

type QuizLoader interface {
	GetWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
}

type ResultRecorder interface {
	Create(ctx context.Context, in repository.ResultCreate) (*models.QuizResult, error)
}

// Publisher receives an event for every recorded result, addressed to the
// user who earned it.
type Publisher interface {
	Publish(userID uint, event string, payload any)
}

type SubmittedQuestion struct {
	QuestionID  uint       `json:"question_id"`
	UserAnswers []Judgment `json:"user_answers" validate:"dive"`
}

// Submission accepts judgments either flat or grouped by question.
type Submission struct {
	QuizID    uint                `json:"quiz_id" validate:"required"`
	Answers   []Judgment          `json:"answers" validate:"dive"`
	Questions []SubmittedQuestion `json:"questions" validate:"dive"`
}

func (s Submission) Judgments() []Judgment {
	out := make([]Judgment, 0, len(s.Answers))
	out = append(out, s.Answers...)
	for _, q := range s.Questions {
		out = append(out, q.UserAnswers...)
	}
	return out
}

type QuizService struct {
	quizzes     QuizLoader
	results     ResultRecorder
	publisher   Publisher
	clampAtZero bool
	now         func() time.Time
}

func NewQuizService(quizzes QuizLoader, results ResultRecorder, publisher Publisher, clampAtZero bool) *QuizService {
	return &QuizService{
		quizzes:     quizzes,
		results:     results,
		publisher:   publisher,
		clampAtZero: clampAtZero,
		now:         time.Now,
	}
}

func (s *QuizService) View(ctx context.Context, quizID uint) (Questionnaire, error) {
	quiz, err := s.activeQuiz(ctx, quizID)
	if err != nil {
		return Questionnaire{}, err
	}
	return BuildQuestionnaire(quiz), nil
}

// Submit grades the submission and records the result. Nothing is written
// unless grading succeeds.
func (s *QuizService) Submit(ctx context.Context, user *models.User, quizID uint, sub Submission) (Score, *models.QuizResult, error) {
	if sub.QuizID != quizID {
		return Score{}, nil, ErrQuizIDMismatch
	}
	quiz, err := s.activeQuiz(ctx, quizID)
	if err != nil {
		return Score{}, nil, err
	}

	score, err := Grade(quiz, sub.Judgments(), s.clampAtZero)
	if err != nil {
		return Score{}, nil, err
	}

	result, err := s.results.Create(ctx, repository.ResultCreate{
		UserID:     user.ID,
		QuizID:     quiz.ID,
		UserScore:  score.UserScore,
		MaxScore:   score.MaxScore,
		FinishedAt: s.now().UTC(),
	})
	if err != nil {
		return Score{}, nil, err
	}
	log.Printf("✅ User %d scored %d/%d on quiz %d", user.ID, score.UserScore, score.MaxScore, quiz.ID)

	if s.publisher != nil {
		s.publisher.Publish(user.ID, "quiz_result", map[string]any{
			"result_id":        result.ID,
			"user_id":          user.ID,
			"quiz_id":          quiz.ID,
			"max_score":        score.MaxScore,
			"user_score":       score.UserScore,
			"score_percentage": score.ScorePercentage,
		})
	}
	return score, result, nil
}

func (s *QuizService) activeQuiz(ctx context.Context, quizID uint) (*models.Quiz, error) {
	quiz, err := s.quizzes.GetWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, ErrQuizInactive
	}
	return quiz, nil
}
