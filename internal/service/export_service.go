package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"ecotracker/internal/repository"
)

// ErrNoActivities reports an export attempt for a user with an empty log.
var ErrNoActivities = errors.New("user has no activities to export")

const exportTimeLayout = time.RFC3339

// ExportEntry is one activity in the export document.
type ExportEntry struct {
	ID           uint    `json:"id"`
	ActivityType string  `json:"activity_type"`
	Quantity     float64 `json:"quantity"`
	Emission     float64 `json:"emission"`
	Date         string  `json:"date"`
}

// ExportDocument is the serialized form of a user's activity log.
type ExportDocument struct {
	Username   string        `json:"username"`
	ExportedAt string        `json:"exported_at"`
	Activities []ExportEntry `json:"activities"`
}

// ExportService serializes a user's activities as a JSON document.
type ExportService struct {
	userRepo     *repository.UserRepository
	activityRepo *repository.ActivityRepository
}

func NewExportService(userRepo *repository.UserRepository, activityRepo *repository.ActivityRepository) *ExportService {
	return &ExportService{userRepo: userRepo, activityRepo: activityRepo}
}

// BuildDocument collects the user's activities. Fails with ErrUserNotFound
// or ErrNoActivities rather than producing an empty document.
func (s *ExportService) BuildDocument(ctx context.Context, username string) (*ExportDocument, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	activities, err := s.activityRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if len(activities) == 0 {
		return nil, ErrNoActivities
	}

	doc := ExportDocument{
		Username:   user.Username,
		ExportedAt: time.Now().Format(exportTimeLayout),
		Activities: make([]ExportEntry, 0, len(activities)),
	}
	for _, a := range activities {
		doc.Activities = append(doc.Activities, ExportEntry{
			ID:           a.ID,
			ActivityType: a.ActivityType,
			Quantity:     a.Quantity,
			Emission:     a.Emission,
			Date:         a.ActivityDate.Format(exportTimeLayout),
		})
	}
	return &doc, nil
}

// ExportToFile writes the document to path as indented JSON.
func (s *ExportService) ExportToFile(ctx context.Context, username, path string) error {
	doc, err := s.BuildDocument(ctx, username)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
