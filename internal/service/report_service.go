package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"ecotracker/internal/repository"
)

const barFill = "█"

// BarRow is one rendered line of the emissions chart.
type BarRow struct {
	Username string
	// Total is the summed emission formatted to two decimal places.
	Total string
	Bar   string
}

// ReportService aggregates logged emissions into per-user totals and
// renders them as proportional text bars.
type ReportService struct {
	activityRepo *repository.ActivityRepository
	maxBarWidth  int
}

func NewReportService(activityRepo *repository.ActivityRepository, maxBarWidth int) *ReportService {
	return &ReportService{activityRepo: activityRepo, maxBarWidth: maxBarWidth}
}

// EmissionsByUser sums activity emissions grouped by owning user. Users
// with no activities are omitted.
func (s *ReportService) EmissionsByUser(ctx context.Context) ([]repository.UserTotal, error) {
	return s.activityRepo.TotalsByUser(ctx)
}

// BuildChart runs the aggregation and renders it in one step.
func (s *ReportService) BuildChart(ctx context.Context) ([]BarRow, error) {
	totals, err := s.EmissionsByUser(ctx)
	if err != nil {
		return nil, err
	}
	return RenderBars(totals, s.maxBarWidth), nil
}

// RenderBars scales each total against the maximum and produces bar rows.
// An empty input produces an empty result, the caller decides how to say
// "nothing to display". Negative totals clamp to a zero-length bar.
func RenderBars(totals []repository.UserTotal, maxWidth int) []BarRow {
	if len(totals) == 0 {
		return nil
	}

	max := totals[0].TotalEmission
	for _, t := range totals[1:] {
		if t.TotalEmission > max {
			max = t.TotalEmission
		}
	}

	rows := make([]BarRow, 0, len(totals))
	for _, t := range totals {
		length := 0
		if max > 0 {
			length = int(math.Floor(t.TotalEmission / max * float64(maxWidth)))
		}
		if length < 0 {
			length = 0
		}
		rows = append(rows, BarRow{
			Username: t.Username,
			Total:    fmt.Sprintf("%.2f", t.TotalEmission),
			Bar:      strings.Repeat(barFill, length),
		})
	}
	return rows
}
