package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmissionsByUserGroupsAndSums(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := registerUser(t, env, "alice")
	bob := registerUser(t, env, "bob")
	registerUser(t, env, "idle")

	manual := func(v float64) *float64 { return &v }

	additions := []struct {
		userID   uint
		emission float64
	}{
		{alice.ID, 6.0},
		{alice.ID, 4.0},
		{bob.ID, 5.0},
	}
	for _, add := range additions {
		_, err := env.activitySvc.AddActivity(ctx, ActivityInput{
			UserID:         add.userID,
			ActivityType:   "Custom",
			Quantity:       1,
			ManualEmission: manual(add.emission),
		})
		require.NoError(t, err)
	}

	totals, err := env.reportSvc.EmissionsByUser(ctx)
	require.NoError(t, err)

	// "idle" logged nothing and produces no row; highest total first.
	require.Len(t, totals, 2)
	assert.Equal(t, "alice", totals[0].Username)
	assert.InDelta(t, 10.0, totals[0].TotalEmission, 1e-9)
	assert.Equal(t, "bob", totals[1].Username)
	assert.InDelta(t, 5.0, totals[1].TotalEmission, 1e-9)
}

func TestEmissionsByUserEmpty(t *testing.T) {
	env := newTestEnv(t)

	totals, err := env.reportSvc.EmissionsByUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestBuildChartEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := registerUser(t, env, "alice")
	bob := registerUser(t, env, "bob")

	ten, five := 10.0, 5.0
	_, err := env.activitySvc.AddActivity(ctx, ActivityInput{
		UserID: alice.ID, ActivityType: "Custom", Quantity: 1, ManualEmission: &ten,
	})
	require.NoError(t, err)
	_, err = env.activitySvc.AddActivity(ctx, ActivityInput{
		UserID: bob.ID, ActivityType: "Custom", Quantity: 1, ManualEmission: &five,
	})
	require.NoError(t, err)

	rows, err := env.reportSvc.BuildChart(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 50, len([]rune(rows[0].Bar)))
	assert.Equal(t, 25, len([]rune(rows[1].Bar)))
}

func TestReportIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := registerUser(t, env, "alice")

	_, err := env.activitySvc.AddActivity(ctx, ActivityInput{
		UserID: alice.ID, ActivityType: "Driving", Quantity: 100,
	})
	require.NoError(t, err)

	first, err := env.reportSvc.BuildChart(ctx)
	require.NoError(t, err)
	second, err := env.reportSvc.BuildChart(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstList, err := env.activitySvc.ListActivities(ctx)
	require.NoError(t, err)
	secondList, err := env.activitySvc.ListActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstList, secondList)
}
