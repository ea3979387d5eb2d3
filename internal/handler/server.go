// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, plan.go, schedule.go, ...) but share the same Server struct so
// they can reach its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/geo"
	"github.com/yeolmok/travel-planner/backend/spec"
)

// PlanServicer defines the business operations the plan handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type PlanServicer interface {
	Create(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error)
	ListPaged(ctx context.Context, p domain.PageRequest) ([]domain.Plan, int64, error)
	Update(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MovePlan(ctx context.Context, source, destination int) error

	AddSchedule(ctx context.Context, planID uuid.UUID, s domain.Schedule) (domain.Plan, error)
	EditSchedule(ctx context.Context, planID uuid.UUID, index int, s domain.Schedule) (domain.Plan, error)
	RemoveSchedule(ctx context.Context, planID uuid.UUID, index int) (domain.Plan, error)
	SwapSchedules(ctx context.Context, planID uuid.UUID, source, destination int) (domain.Plan, error)

	Frame(ctx context.Context, planID uuid.UUID) (geo.Region, []domain.AnnotatedCoordinate, error)
	StepCamera(ctx context.Context, planID uuid.UUID, from int, dir geo.Direction) (int, domain.AnnotatedCoordinate, error)
	DateText(plan domain.Plan) string
}

// MemoryServicer defines the business operations the memory handlers depend on.
type MemoryServicer interface {
	Upload(ctx context.Context, m domain.Memory) (domain.Memory, error)
	GetBySlot(ctx context.Context, slot int) (domain.Memory, error)
	List(ctx context.Context) ([]domain.Memory, error)
	Delete(ctx context.Context, slot int) error
}

// Exporter produces the flat export table.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	plans    PlanServicer
	memories MemoryServicer
	export   Exporter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(plans PlanServicer, memories MemoryServicer, export Exporter) *Server {
	return &Server{plans: plans, memories: memories, export: export}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router with every API endpoint registered.
// Resource routes are only mounted when their service is set, so a
// health-only Server answers 404 for everything but /healthz.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	if s.plans != nil {
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", s.ListPlans)
			r.Post("/", s.CreatePlan)
			r.Post("/move", s.MovePlan)
			r.Route("/{planId}", func(r chi.Router) {
				r.Get("/", s.GetPlan)
				r.Put("/", s.UpdatePlan)
				r.Delete("/", s.DeletePlan)

				r.Post("/schedules", s.AddSchedule)
				r.Post("/schedules/move", s.MoveSchedule)
				r.Put("/schedules/{index}", s.EditSchedule)
				r.Delete("/schedules/{index}", s.RemoveSchedule)

				r.Get("/frame", s.GetFrame)
				r.Get("/camera", s.GetCamera)
			})
		})
	}

	if s.memories != nil {
		r.Route("/memories", func(r chi.Router) {
			r.Get("/", s.ListMemories)
			r.Get("/{slot}", s.GetMemory)
			r.Put("/{slot}", s.PutMemory)
			r.Delete("/{slot}", s.DeleteMemory)
		})
	}

	if s.export != nil {
		r.Get("/export", s.GetExport)
	}

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
