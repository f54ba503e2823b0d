package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecotracker/internal/repository"
)

// testEnv wires an in-memory database with every repository and service
// under test.
type testEnv struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	authSvc     *AuthService
	activitySvc *ActivityService
	goalSvc     *GoalService
	reportSvc   *ReportService
	exportSvc   *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.NewDB(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	emissions := NewEmissionService()

	return &testEnv{
		db:          db,
		userRepo:    userRepo,
		authSvc:     NewAuthService(userRepo),
		activitySvc: NewActivityService(activityRepo, userRepo, emissions),
		goalSvc:     NewGoalService(goalRepo, userRepo),
		reportSvc:   NewReportService(activityRepo, 50),
		exportSvc:   NewExportService(userRepo, activityRepo),
	}
}
