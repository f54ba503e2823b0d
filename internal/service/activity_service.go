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

// ErrUserNotFound reports an operation against a user that does not exist.
var ErrUserNotFound = errors.New("user not found")

// ActivityInput represents data required to log an activity.
type ActivityInput struct {
	UserID       uint    `validate:"required"`
	ActivityType string  `validate:"required"`
	Quantity     float64 `validate:"gt=0"`
	// ManualEmission overrides the calculated value when set. Required
	// for activity types without a factor.
	ManualEmission *float64 `validate:"omitempty,gte=0"`
}

// ActivityService wraps activity-related business logic.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	userRepo     *repository.UserRepository
	emissions    *EmissionService
	validate     *validator.Validate
}

func NewActivityService(activityRepo *repository.ActivityRepository, userRepo *repository.UserRepository, emissions *EmissionService) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		emissions:    emissions,
		validate:     validator.New(),
	}
}

// AddActivity records an activity for an existing user. Emission is taken
// from the factor table unless a manual value is supplied; an unknown type
// without a manual value yields ErrUnknownActivityType so the caller can
// ask for one.
func (s *ActivityService) AddActivity(ctx context.Context, input ActivityInput) (*model.Activity, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid activity input: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	emission := 0.0
	if input.ManualEmission != nil {
		emission = *input.ManualEmission
	} else {
		calculated, err := s.emissions.Calculate(input.ActivityType, input.Quantity)
		if err != nil {
			return nil, err
		}
		emission = calculated
	}

	activity := model.Activity{
		UserID:       input.UserID,
		ActivityType: input.ActivityType,
		Quantity:     input.Quantity,
		Emission:     emission,
		ActivityDate: time.Now(),
	}
	if err := s.activityRepo.Create(ctx, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListActivities returns every activity joined with its owner's username.
func (s *ActivityService) ListActivities(ctx context.Context) ([]repository.ActivityRow, error) {
	return s.activityRepo.ListAll(ctx)
}

// DeleteAllActivities clears the activity log for every user.
func (s *ActivityService) DeleteAllActivities(ctx context.Context) (int64, error) {
	return s.activityRepo.DeleteAll(ctx)
}
