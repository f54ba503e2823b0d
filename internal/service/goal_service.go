package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"ecotracker/internal/model"
	"ecotracker/internal/repository"
)

// GoalInput represents data required to set a reduction goal.
// TargetEmission is deliberately unbounded below: a negative target reads
// as "reduce by X".
type GoalInput struct {
	UserID         uint      `validate:"required"`
	Description    string    `validate:"required"`
	TargetEmission float64
	Deadline       time.Time `validate:"required"`
}

// GoalService wraps goal-related business logic.
type GoalService struct {
	goalRepo *repository.GoalRepository
	userRepo *repository.UserRepository
	validate *validator.Validate
}

func NewGoalService(goalRepo *repository.GoalRepository, userRepo *repository.UserRepository) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// AddGoal stores a goal for an existing user.
func (s *GoalService) AddGoal(ctx context.Context, input GoalInput) (*model.Goal, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid goal input: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	goal := model.Goal{
		UserID:         input.UserID,
		Description:    input.Description,
		TargetEmission: input.TargetEmission,
		Deadline:       input.Deadline,
	}
	if err := s.goalRepo.Create(ctx, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns the user's goals ordered by deadline.
func (s *GoalService) ListGoals(ctx context.Context, userID uint) ([]model.Goal, error) {
	return s.goalRepo.ListByUser(ctx, userID)
}
