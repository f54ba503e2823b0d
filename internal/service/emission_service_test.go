package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateKnownFactors(t *testing.T) {
	svc := NewEmissionService()

	tests := []struct {
		activityType string
		quantity     float64
		want         float64
	}{
		{"Driving", 100, 17.0},
		{"Driving", 1, 0.170},
		{"Flying Domestic", 10, 2.46},
		{"Flying International", 1000, 154.0},
		{"Bus", 50, 4.45},
		{"Train", 200, 7.0},
		{"Electricity", 30, 14.25},
	}

	for _, tt := range tests {
		t.Run(tt.activityType, func(t *testing.T) {
			got, err := svc.Calculate(tt.activityType, tt.quantity)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateUnknownType(t *testing.T) {
	svc := NewEmissionService()

	_, err := svc.Calculate("Skydiving", 10)
	assert.ErrorIs(t, err, ErrUnknownActivityType)

	// Case-sensitive lookup: "driving" is not "Driving".
	_, err = svc.Calculate("driving", 10)
	assert.ErrorIs(t, err, ErrUnknownActivityType)
}

func TestCalculateIsDeterministic(t *testing.T) {
	svc := NewEmissionService()

	first, err := svc.Calculate("Train", 123.4)
	require.NoError(t, err)
	second, err := svc.Calculate("Train", 123.4)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestKnownTypesSorted(t *testing.T) {
	types := NewEmissionService().KnownTypes()
	assert.Equal(t, []string{
		"Bus",
		"Driving",
		"Electricity",
		"Flying Domestic",
		"Flying International",
		"Train",
	}, types)
}

func TestFactorsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.json")
	content := `{"Beef Consumption": 60.0, "Driving": 99.0}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	svc, err := NewEmissionServiceFromFile(path)
	require.NoError(t, err)

	got, err := svc.Calculate("Beef Consumption", 2)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, got, 1e-9)

	// Built-in factors cannot be redefined from configuration.
	got, err = svc.Calculate("Driving", 100)
	require.NoError(t, err)
	assert.InDelta(t, 17.0, got, 1e-9)
}

func TestFactorsFromFileInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := NewEmissionServiceFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"Coal": -1}`), 0o644))
	_, err = NewEmissionServiceFromFile(bad)
	assert.Error(t, err)
}
