package repository

import (
	"context"
	"strings"

	"github.com/anjiri1684/quiz_backend/models"
	"gorm.io/gorm"
)

type CategoryCreate struct {
	Name        string
	Description *string
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

type CategoryRepository struct {
	CRUD[models.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{CRUD: newCRUD[models.Category](db, "Category")}
}

func (r *CategoryRepository) Exists(ctx context.Context, name string) (bool, error) {
	return r.exists(r.db.WithContext(ctx), "name = ?", strings.TrimSpace(name))
}

func (r *CategoryRepository) Create(ctx context.Context, in CategoryCreate) (*models.Category, error) {
	category := models.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
	exists, err := r.Exists(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, r.translate(gorm.ErrDuplicatedKey)
	}
	if err := r.create(r.db.WithContext(ctx), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category, patch CategoryPatch) (*models.Category, error) {
	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		category.Description = patch.Description
	}
	if err := r.save(r.db.WithContext(ctx), category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category and unlinks it from every question.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) (*models.Category, error) {
	var deleted models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, id).Error; err != nil {
			return r.translate(err)
		}
		if err := tx.Exec("DELETE FROM questions_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
