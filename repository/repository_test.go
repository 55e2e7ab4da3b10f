package repository_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"github.com/anjiri1684/quiz_backend/database"
	"github.com/anjiri1684/quiz_backend/models"
	"github.com/anjiri1684/quiz_backend/repository"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	users := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	created, err := users.Create(ctx, repository.UserCreate{Name: "Alice", Email: " Alice@Example.com ", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 || created.Email != "alice@example.com" {
		t.Fatalf("unexpected created user: %+v", created)
	}

	got, err := users.GetByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID || got.Password != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = users.Create(ctx, repository.UserCreate{Name: "Other", Email: "alice@example.com", PasswordHash: "x"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestUserRepositoryConcurrentSignupSameEmail(t *testing.T) {
	users := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	const attempts = 2
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = users.Create(ctx, repository.UserCreate{
				Name:         fmt.Sprintf("user-%d", i),
				Email:        "race@example.com",
				PasswordHash: "hash",
			})
		}(i)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicts != 1 {
		t.Fatalf("succeeded=%d conflicts=%d, want 1/1", succeeded, conflicts)
	}
}

func TestUserRepositoryPartialUpdate(t *testing.T) {
	users := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := users.Create(ctx, repository.UserCreate{Name: "Bob", Email: "bob@example.com", PasswordHash: "old"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := users.Update(ctx, user, repository.UserPatch{Name: strPtr("Robert")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Robert" || updated.Email != "bob@example.com" || updated.Password != "old" {
		t.Fatalf("patch touched unrelated fields: %+v", updated)
	}

	reloaded, err := users.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if reloaded.Name != "Robert" {
		t.Fatalf("update not persisted: %+v", reloaded)
	}
}

func TestQuizRepositoryNaturalKeyAndPatch(t *testing.T) {
	quizzes := repository.NewQuizRepository(newTestDB(t))
	ctx := context.Background()

	quiz, err := quizzes.Create(ctx, repository.QuizCreate{Title: "Go", Description: "Basics", IsActive: false})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if quiz.IsActive {
		t.Fatalf("inactive flag lost on create")
	}

	if _, err := quizzes.Create(ctx, repository.QuizCreate{Title: "Go", Description: "Basics"}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := quizzes.Create(ctx, repository.QuizCreate{Title: "Go", Description: "Advanced"}); err != nil {
		t.Fatalf("same title with other description must be allowed: %v", err)
	}

	updated, err := quizzes.Update(ctx, quiz, repository.QuizPatch{IsActive: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.IsActive || updated.Title != "Go" || updated.Description != "Basics" {
		t.Fatalf("unexpected quiz after patch: %+v", updated)
	}

	if _, err := quizzes.Update(ctx, updated, repository.QuizPatch{Description: strPtr("Advanced")}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict when patching onto an existing natural key, got %v", err)
	}
}

type catalog struct {
	db         *gorm.DB
	quizzes    *repository.QuizRepository
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	answers    *repository.AnswerRepository
	results    *repository.ResultRepository
	users      *repository.UserRepository
}

func newCatalog(t *testing.T) catalog {
	db := newTestDB(t)
	return catalog{
		db:         db,
		quizzes:    repository.NewQuizRepository(db),
		questions:  repository.NewQuestionRepository(db),
		categories: repository.NewCategoryRepository(db),
		answers:    repository.NewAnswerRepository(db),
		results:    repository.NewResultRepository(db),
		users:      repository.NewUserRepository(db),
	}
}

func TestQuestionRepositoryCategoriesAndParents(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	quiz, err := c.quizzes.Create(ctx, repository.QuizCreate{Title: "Q", Description: "D", IsActive: true})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	cat1, _ := c.categories.Create(ctx, repository.CategoryCreate{Name: "math"})
	cat2, _ := c.categories.Create(ctx, repository.CategoryCreate{Name: "logic", Description: strPtr("puzzles")})

	if _, err := c.questions.Create(ctx, repository.QuestionCreate{QuizID: quiz.ID + 100, QuestionText: "orphan"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for missing quiz, got %v", err)
	}
	if _, err := c.questions.Create(ctx, repository.QuestionCreate{QuizID: quiz.ID, QuestionText: "x", CategoryIDs: []uint{999}}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for missing category, got %v", err)
	}

	question, err := c.questions.Create(ctx, repository.QuestionCreate{QuizID: quiz.ID, QuestionText: "2+2?", CategoryIDs: []uint{cat1.ID}})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if _, err := c.questions.Create(ctx, repository.QuestionCreate{QuizID: quiz.ID, QuestionText: "2+2?"}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for duplicate question, got %v", err)
	}

	ids := []uint{cat2.ID}
	if _, err := c.questions.Update(ctx, question, repository.QuestionPatch{CategoryIDs: &ids}); err != nil {
		t.Fatalf("update question: %v", err)
	}
	reloaded, err := c.questions.Get(ctx, question.ID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if len(reloaded.Categories) != 1 || reloaded.Categories[0].ID != cat2.ID {
		t.Fatalf("categories not replaced: %+v", reloaded.Categories)
	}
	if reloaded.QuestionText != "2+2?" {
		t.Fatalf("question text changed unexpectedly: %q", reloaded.QuestionText)
	}

	if _, err := c.answers.Create(ctx, repository.AnswerCreate{QuestionID: question.ID + 50, AnswerText: "4"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for missing question, got %v", err)
	}
	answer, err := c.answers.Create(ctx, repository.AnswerCreate{QuestionID: question.ID, AnswerText: "4", IsCorrect: true})
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}
	if _, err := c.answers.Create(ctx, repository.AnswerCreate{QuestionID: question.ID, AnswerText: "4"}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for duplicate answer, got %v", err)
	}

	patched, err := c.answers.Update(ctx, answer, repository.AnswerPatch{IsCorrect: boolPtr(false)})
	if err != nil {
		t.Fatalf("update answer: %v", err)
	}
	if patched.IsCorrect || patched.AnswerText != "4" {
		t.Fatalf("unexpected answer after patch: %+v", patched)
	}
}

func TestQuizRepositoryDeleteCascades(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	user, _ := c.users.Create(ctx, repository.UserCreate{Name: "u", Email: "u@example.com", PasswordHash: "h"})
	quiz, _ := c.quizzes.Create(ctx, repository.QuizCreate{Title: "T", Description: "D", IsActive: true})
	cat, _ := c.categories.Create(ctx, repository.CategoryCreate{Name: "general"})
	question, err := c.questions.Create(ctx, repository.QuestionCreate{QuizID: quiz.ID, QuestionText: "q", CategoryIDs: []uint{cat.ID}})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if _, err := c.answers.Create(ctx, repository.AnswerCreate{QuestionID: question.ID, AnswerText: "a", IsCorrect: true}); err != nil {
		t.Fatalf("create answer: %v", err)
	}
	result, err := c.results.Create(ctx, repository.ResultCreate{UserID: user.ID, QuizID: quiz.ID, UserScore: 1, MaxScore: 1, FinishedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create result: %v", err)
	}

	deleted, err := c.quizzes.Delete(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	if deleted.ID != quiz.ID || deleted.Title != "T" {
		t.Fatalf("unexpected deleted quiz: %+v", deleted)
	}

	var answers, questions, links int64
	c.db.Model(&models.Answer{}).Count(&answers)
	c.db.Model(&models.Question{}).Count(&questions)
	c.db.Table("questions_categories").Count(&links)
	if answers != 0 || questions != 0 || links != 0 {
		t.Fatalf("cascade incomplete: answers=%d questions=%d links=%d", answers, questions, links)
	}

	kept, err := c.results.Get(ctx, result.ID)
	if err != nil {
		t.Fatalf("result must survive quiz deletion: %v", err)
	}
	if kept.QuizID != nil {
		t.Fatalf("quiz_id should be nulled, got %v", *kept.QuizID)
	}

	if _, err := c.categories.Get(ctx, cat.ID); err != nil {
		t.Fatalf("category has an independent lifecycle: %v", err)
	}
	if _, err := c.quizzes.Delete(ctx, quiz.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestQuizRepositoryGetWithQuestionsKeepsInsertionOrder(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	quiz, _ := c.quizzes.Create(ctx, repository.QuizCreate{Title: "T", Description: "D", IsActive: true})
	for _, text := range []string{"first", "second", "third"} {
		q, err := c.questions.Create(ctx, repository.QuestionCreate{QuizID: quiz.ID, QuestionText: text})
		if err != nil {
			t.Fatalf("create question: %v", err)
		}
		for _, a := range []string{"z", "a"} {
			if _, err := c.answers.Create(ctx, repository.AnswerCreate{QuestionID: q.ID, AnswerText: text + "-" + a}); err != nil {
				t.Fatalf("create answer: %v", err)
			}
		}
	}

	loaded, err := c.quizzes.GetWithQuestions(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("GetWithQuestions: %v", err)
	}
	if len(loaded.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(loaded.Questions))
	}
	for i, want := range []string{"first", "second", "third"} {
		q := loaded.Questions[i]
		if q.QuestionText != want {
			t.Fatalf("question %d = %q, want %q", i, q.QuestionText, want)
		}
		if len(q.Answers) != 2 || q.Answers[0].AnswerText != want+"-z" || q.Answers[1].AnswerText != want+"-a" {
			t.Fatalf("answers out of order for %q: %+v", want, q.Answers)
		}
	}
}

func TestResultRepositoryExpiredAndNotified(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	user, _ := c.users.Create(ctx, repository.UserCreate{Name: "Eve", Email: "eve@example.com", PasswordHash: "h"})
	quiz, _ := c.quizzes.Create(ctx, repository.QuizCreate{Title: "Old", Description: "D", IsActive: true})

	old, _ := c.results.Create(ctx, repository.ResultCreate{UserID: user.ID, QuizID: quiz.ID, UserScore: 1, MaxScore: 2, FinishedAt: now.AddDate(0, 0, -8)})
	if _, err := c.results.Create(ctx, repository.ResultCreate{UserID: user.ID, QuizID: quiz.ID, UserScore: 2, MaxScore: 2, FinishedAt: now.AddDate(0, 0, -1)}); err != nil {
		t.Fatalf("create recent result: %v", err)
	}

	expired, err := c.results.ListExpired(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("ListExpired: %v", err)
	}
	if len(expired) != 1 {
		t.Fatalf("expected 1 expired result, got %d", len(expired))
	}
	row := expired[0]
	if row.ResultID != old.ID || row.QuizTitle != "Old" || row.UserEmail != "eve@example.com" || row.UserName != "Eve" {
		t.Fatalf("unexpected expired row: %+v", row)
	}

	if err := c.results.MarkNotified(ctx, old.ID, now); err != nil {
		t.Fatalf("MarkNotified: %v", err)
	}
	expired, err = c.results.ListExpired(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("ListExpired: %v", err)
	}
	if len(expired) != 0 {
		t.Fatalf("notified results must not be listed again: %+v", expired)
	}

	mine, err := c.results.ListByUser(ctx, user.ID, 0, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 results for user, got %d", len(mine))
	}
}

func TestUserRepositoryDeleteKeepsResults(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	user, _ := c.users.Create(ctx, repository.UserCreate{Name: "Del", Email: "del@example.com", PasswordHash: "h"})
	quiz, _ := c.quizzes.Create(ctx, repository.QuizCreate{Title: "T", Description: "D", IsActive: true})
	result, _ := c.results.Create(ctx, repository.ResultCreate{UserID: user.ID, QuizID: quiz.ID, UserScore: 1, MaxScore: 1, FinishedAt: time.Now().UTC()})

	if _, err := c.users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	kept, err := c.results.Get(ctx, result.ID)
	if err != nil {
		t.Fatalf("result must survive user deletion: %v", err)
	}
	if kept.UserID != nil || kept.QuizID == nil || *kept.QuizID != quiz.ID {
		t.Fatalf("unexpected references after user deletion: %+v", kept)
	}
}

func TestCRUDGetMultiPaginates(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := c.categories.Create(ctx, repository.CategoryCreate{Name: fmt.Sprintf("cat-%d", i)}); err != nil {
			t.Fatalf("create category: %v", err)
		}
	}

	page, err := c.categories.GetMulti(ctx, 1, 2)
	if err != nil {
		t.Fatalf("GetMulti: %v", err)
	}
	if len(page) != 2 || page[0].Name != "cat-1" || page[1].Name != "cat-2" {
		t.Fatalf("unexpected page: %+v", page)
	}

	all, err := c.categories.GetMulti(ctx, 0, 0)
	if err != nil {
		t.Fatalf("GetMulti: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("zero limit should fall back to the default, got %d rows", len(all))
	}
}
