package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ecotracker/internal/model"
)

// ActivityRepository handles CRUD for activities.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// ActivityRow is an activity joined with its owner's username for listings.
type ActivityRow struct {
	model.Activity
	Username string
}

func (r *ActivityRepository) ListAll(ctx context.Context) ([]ActivityRow, error) {
	var rows []ActivityRow
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Select("activities.*, users.username AS username").
		Joins("JOIN users ON users.id = activities.user_id").
		Order("activities.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID uint) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// UserTotal is one row of the grouped-sum report query.
type UserTotal struct {
	Username      string
	TotalEmission float64
}

// TotalsByUser sums emissions per user. Users without activities produce
// no row (inner join). Ordered by total descending, username as tiebreak,
// so repeated reports print identically.
func (r *ActivityRepository) TotalsByUser(ctx context.Context) ([]UserTotal, error) {
	var totals []UserTotal
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Select("users.username AS username, SUM(activities.emission) AS total_emission").
		Joins("JOIN users ON users.id = activities.user_id").
		Group("users.id").
		Order("total_emission DESC, username ASC").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// DeleteAll removes every activity and reports how many went away.
func (r *ActivityRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Activity{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete activities: %w", result.Error)
	}
	return result.RowsAffected, nil
}
