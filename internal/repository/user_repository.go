package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ecotracker/internal/model"
)

// ErrUsernameTaken reports a registration against an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Usernames are matched case-sensitively.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	db := r.db.WithContext(ctx)

	var matched int64
	if err := db.Model(&model.User{}).Where("username = ?", user.Username).Count(&matched).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if matched > 0 {
		return ErrUsernameTaken
	}

	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user together with all owned activities and goals in
// one transaction.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Activity{}).Error; err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Goal{}).Error; err != nil {
			return fmt.Errorf("delete goals: %w", err)
		}
		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
