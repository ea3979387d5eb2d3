// Package service contains the business logic for the travel planner.
// Services validate inputs, apply changes through the domain types and
// persist the result. No SQL lives here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/geo"
	"github.com/yeolmok/travel-planner/backend/internal/metrics"
	"github.com/yeolmok/travel-planner/backend/internal/repo"
)

// PlanOptions configures a PlanService. Zero fields take defaults.
type PlanOptions struct {
	// Formatter renders plan dates. Defaults to domain.DefaultDateLayout in UTC.
	Formatter domain.DateFormatter
	// NoDateText is shown for plans without dated schedules.
	NoDateText string
	// Framer holds the map framing constants.
	Framer geo.Framer
	// Metrics receives one call per mutation.
	Metrics metrics.Recorder
}

// PlanService implements business logic for Plans and their schedules.
// Every schedule operation loads the plan, applies the change through
// domain.Plan and writes the whole plan back (last write wins).
type PlanService struct {
	repo       repo.PlanRepo
	formatter  domain.DateFormatter
	noDateText string
	framer     geo.Framer
	metrics    metrics.Recorder
}

// NewPlanService constructs a PlanService backed by the provided PlanRepo.
func NewPlanService(r repo.PlanRepo, opts PlanOptions) *PlanService {
	s := &PlanService{
		repo:       r,
		formatter:  opts.Formatter,
		noDateText: opts.NoDateText,
		framer:     opts.Framer,
		metrics:    opts.Metrics,
	}
	if s.formatter == nil {
		s.formatter = domain.LayoutFormatter{Layout: domain.DefaultDateLayout}
	}
	if s.noDateText == "" {
		s.noDateText = domain.DefaultNoDateText
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	return s
}

// Create validates and persists a new plan.
// Returns domain.ErrValidation (wrapping the specific cause) for invalid input.
func (s *PlanService) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	created, err := s.create(ctx, plan)
	s.metrics.Mutation("plan", "Create", err)
	return created, err
}

func (s *PlanService) create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	if err := plan.Validate(); err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	slog.DebugContext(ctx, "plan created", "plan_id", created.ID, "schedules", created.SchedulesCount())
	return created, nil
}

// GetByID returns a single plan with its schedules.
// Returns domain.ErrNotFound if it does not exist.
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return plan, nil
}

// ListPaged returns one page of plans and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlanService) ListPaged(ctx context.Context, p domain.PageRequest) ([]domain.Plan, int64, error) {
	plans, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlanService.ListPaged: %w", err)
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, total, nil
}

// Update validates and replaces a plan: metadata and the full schedule list.
func (s *PlanService) Update(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	updated, err := s.update(ctx, plan)
	s.metrics.Mutation("plan", "Update", err)
	return updated, err
}

func (s *PlanService) update(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	if err := plan.Validate(); err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	updated, err := s.repo.Update(ctx, plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a plan by ID.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	s.metrics.Mutation("plan", "Delete", err)
	if err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}

// MovePlan takes the plan at list index source and reinserts it at
// destination. Returns domain.ErrIndexOutOfRange for a bad index.
func (s *PlanService) MovePlan(ctx context.Context, source, destination int) error {
	err := s.repo.Move(ctx, source, destination)
	s.metrics.Mutation("plan", "MovePlan", err)
	if err != nil {
		return fmt.Errorf("service.PlanService.MovePlan: %w", err)
	}
	slog.DebugContext(ctx, "plan moved", "source", source, "destination", destination)
	return nil
}

// AddSchedule validates schedule and appends it to the plan.
func (s *PlanService) AddSchedule(ctx context.Context, planID uuid.UUID, schedule domain.Schedule) (domain.Plan, error) {
	return s.mutate(ctx, "AddSchedule", planID, func(p *domain.Plan) error {
		if err := schedule.Validate(); err != nil {
			return err
		}
		p.AddSchedule(schedule)
		return nil
	})
}

// EditSchedule validates schedule and replaces the one at index.
// Returns domain.ErrIndexOutOfRange for a bad index.
func (s *PlanService) EditSchedule(ctx context.Context, planID uuid.UUID, index int, schedule domain.Schedule) (domain.Plan, error) {
	return s.mutate(ctx, "EditSchedule", planID, func(p *domain.Plan) error {
		if err := schedule.Validate(); err != nil {
			return err
		}
		return p.EditSchedule(index, schedule)
	})
}

// RemoveSchedule deletes the schedule at index.
func (s *PlanService) RemoveSchedule(ctx context.Context, planID uuid.UUID, index int) (domain.Plan, error) {
	return s.mutate(ctx, "RemoveSchedule", planID, func(p *domain.Plan) error {
		return p.RemoveSchedule(index)
	})
}

// SwapSchedules moves the schedule at source to destination.
func (s *PlanService) SwapSchedules(ctx context.Context, planID uuid.UUID, source, destination int) (domain.Plan, error) {
	return s.mutate(ctx, "SwapSchedules", planID, func(p *domain.Plan) error {
		return p.SwapSchedules(source, destination)
	})
}

// mutate loads a plan, applies fn and writes the plan back. Nothing is
// written when fn fails.
func (s *PlanService) mutate(ctx context.Context, op string, planID uuid.UUID, fn func(*domain.Plan) error) (domain.Plan, error) {
	plan, err := s.applyAndSave(ctx, planID, fn)
	s.metrics.Mutation("plan", op, err)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.%s: %w", op, err)
	}
	slog.DebugContext(ctx, "plan mutated", "plan_id", planID, "op", op, "schedules", plan.SchedulesCount())
	return plan, nil
}

func (s *PlanService) applyAndSave(ctx context.Context, planID uuid.UUID, fn func(*domain.Plan) error) (domain.Plan, error) {
	plan, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return domain.Plan{}, err
	}
	if err := fn(&plan); err != nil {
		return domain.Plan{}, err
	}
	return s.repo.Update(ctx, plan)
}

// DateText renders the plan's aggregate date range with the configured
// formatter and placeholder.
func (s *PlanService) DateText(plan domain.Plan) string {
	return plan.DateText(s.formatter, s.noDateText)
}

// Frame returns the map region covering every schedule of the plan and the
// annotated coordinates it was computed from.
// Returns domain.ErrEmptyInput when the plan has no schedules.
func (s *PlanService) Frame(ctx context.Context, planID uuid.UUID) (geo.Region, []domain.AnnotatedCoordinate, error) {
	plan, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return geo.Region{}, nil, fmt.Errorf("service.PlanService.Frame: %w", err)
	}
	region, err := s.framer.Frame(plan.Coordinates())
	if err != nil {
		return geo.Region{}, nil, fmt.Errorf("service.PlanService.Frame: %w", err)
	}
	return region, plan.AnnotatedCoordinates(), nil
}

// StepCamera moves a camera pointer positioned at from one step in dir over
// the plan's coordinates and returns the new index and its coordinate.
// A from outside the coordinate list counts as the unset pointer.
func (s *PlanService) StepCamera(ctx context.Context, planID uuid.UUID, from int, dir geo.Direction) (int, domain.AnnotatedCoordinate, error) {
	plan, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return geo.NoIndex, domain.AnnotatedCoordinate{}, fmt.Errorf("service.PlanService.StepCamera: %w", err)
	}
	p := geo.NewPointerAt(plan.AnnotatedCoordinates(), from)
	if err := p.Step(dir); err != nil {
		return geo.NoIndex, domain.AnnotatedCoordinate{}, fmt.Errorf("service.PlanService.StepCamera: %w", err)
	}
	current, err := p.Current()
	if err != nil {
		return geo.NoIndex, domain.AnnotatedCoordinate{}, fmt.Errorf("service.PlanService.StepCamera: %w", err)
	}
	return p.Index(), current, nil
}
