package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ecotracker/internal/model"
)

// GoalRepository manages reduction goals.
type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	if err := r.db.WithContext(ctx).Create(goal).Error; err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID uint) ([]model.Goal, error) {
	var goals []model.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("deadline ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
