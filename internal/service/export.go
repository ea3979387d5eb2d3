package service

import (
	"context"
	"fmt"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/repo"
)

// DateTexter renders a plan's aggregate date range for display.
// *PlanService satisfies it.
type DateTexter interface {
	DateText(plan domain.Plan) string
}

// ExportService assembles a full flat export of all plans and schedules.
type ExportService struct {
	plans repo.PlanRepo
	dates DateTexter
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(plans repo.PlanRepo, dates DateTexter) *ExportService {
	return &ExportService{plans: plans, dates: dates}
}

// Export returns one ExportRow per schedule across all plans.
// Plans with no schedules contribute one row with empty schedule fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(plans))
	for _, plan := range plans {
		base := domain.ExportRow{
			PlanID:    plan.ID.String(),
			PlanTitle: plan.Title,
			PlanDates: s.dates.DateText(plan),
		}

		schedules := plan.Schedules()
		if len(schedules) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, sc := range schedules {
			row := base
			row.Position = i
			row.ScheduleTitle = sc.Title
			row.ScheduleDescription = sc.Description
			lat, lon := sc.Coordinate.Latitude, sc.Coordinate.Longitude
			row.Latitude, row.Longitude = &lat, &lon
			row.FromDate = sc.FromDate
			row.ToDate = sc.ToDate
			rows = append(rows, row)
		}
	}
	return rows, nil
}
