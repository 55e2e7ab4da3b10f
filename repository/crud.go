// Package repository implements the stores over gorm: one generic CRUD
// core plus per-entity natural-key lookups and explicit patch types.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/anjiri1684/quiz_backend/apperrors"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// CRUD provides the primitives shared by every store. Rows are returned in
// primary key order, which is insertion order.
type CRUD[T any] struct {
	db       *gorm.DB
	notFound string
	conflict string
}

func newCRUD[T any](db *gorm.DB, entity string) CRUD[T] {
	return CRUD[T]{
		db:       db,
		notFound: entity + " not found",
		conflict: entity + " already exists",
	}
}

func (r CRUD[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, r.translate(err)
	}
	return &item, nil
}

func (r CRUD[T]) GetMulti(ctx context.Context, skip, limit int) ([]T, error) {
	items := make([]T, 0)
	if err := page(r.db.WithContext(ctx), skip, limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func page(db *gorm.DB, skip, limit int) *gorm.DB {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return db.Order("id").Offset(skip).Limit(limit)
}

func (r CRUD[T]) create(tx *gorm.DB, item *T) error {
	return r.translate(tx.Create(item).Error)
}

func (r CRUD[T]) save(tx *gorm.DB, item *T) error {
	return r.translate(tx.Save(item).Error)
}

// Delete removes the row and returns it as it was before deletion.
func (r CRUD[T]) Delete(ctx context.Context, id uint) (*T, error) {
	var deleted *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.First(&item, id).Error; err != nil {
			return r.translate(err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		deleted = &item
		return nil
	})
	return deleted, err
}

func (r CRUD[T]) exists(tx *gorm.DB, query string, args ...any) (bool, error) {
	var count int64
	var model T
	err := tx.Model(&model).Where(query, args...).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r CRUD[T]) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(r.notFound)
	case isDuplicateKey(err):
		return apperrors.Conflict(r.conflict)
	default:
		return err
	}
}

// isDuplicateKey reports unique constraint violations. TranslateError covers
// drivers that implement gorm's ErrorTranslator; the message checks cover
// the rest.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
