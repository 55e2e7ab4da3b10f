package repository

import (
	"context"
	"strings"

	"github.com/anjiri1684/quiz_backend/models"
	"gorm.io/gorm"
)

type UserCreate struct {
	Name         string
	Email        string
	PasswordHash string
	IsSuperuser  bool
}

// UserPatch lists the fields a user may change about themselves. Nil fields
// are left untouched.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

type UserRepository struct {
	CRUD[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{CRUD: newCRUD[models.User](db, "User")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, r.translate(err)
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	return r.exists(r.db.WithContext(ctx), "email = ?", normalizeEmail(email))
}

// Create inserts a user. The unique index on email is what guarantees that
// two concurrent signups cannot both succeed; the pre-check only gives the
// common case a clean error without a failed insert.
func (r *UserRepository) Create(ctx context.Context, in UserCreate) (*models.User, error) {
	email := normalizeEmail(in.Email)
	exists, err := r.Exists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, r.translate(gorm.ErrDuplicatedKey)
	}

	user := models.User{
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		Password:    in.PasswordHash,
		IsSuperuser: in.IsSuperuser,
	}
	if err := r.create(r.db.WithContext(ctx), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User, patch UserPatch) (*models.User, error) {
	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		user.Email = normalizeEmail(*patch.Email)
	}
	if patch.PasswordHash != nil {
		user.Password = *patch.PasswordHash
	}
	if err := r.save(r.db.WithContext(ctx), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) SetSuperuser(ctx context.Context, user *models.User, isSuperuser bool) (*models.User, error) {
	user.IsSuperuser = isSuperuser
	if err := r.save(r.db.WithContext(ctx), user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user and detaches their results, which stay as
// historical records.
func (r *UserRepository) Delete(ctx context.Context, id uint) (*models.User, error) {
	var deleted models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, id).Error; err != nil {
			return r.translate(err)
		}
		if err := tx.Model(&models.QuizResult{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&deleted).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
