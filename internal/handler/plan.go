package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

// PlanRequest is the body of POST /plans and PUT /plans/{planId}.
// A PUT replaces the title, the description and the whole schedule list.
type PlanRequest struct {
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Schedules   []ScheduleRequest `json:"schedules,omitempty"`
}

// ScheduleRequest is one schedule in a request body.
type ScheduleRequest struct {
	Title       string              `json:"title"`
	Description *string             `json:"description,omitempty"`
	Coordinate  *domain.Coordinate  `json:"coordinate"`
	FromDate    *openapi_types.Date `json:"from_date,omitempty"`
	ToDate      *openapi_types.Date `json:"to_date,omitempty"`
}

// Plan is the JSON representation of a plan. FromDate, ToDate and Date
// describe the aggregate range of its dated schedules.
type Plan struct {
	ID          openapi_types.UUID  `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	FromDate    *openapi_types.Date `json:"from_date"`
	ToDate      *openapi_types.Date `json:"to_date"`
	Date        string              `json:"date"`
	Schedules   []Schedule          `json:"schedules"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Schedule is the JSON representation of a schedule. Index is its current
// position in the plan.
type Schedule struct {
	Index       int                 `json:"index"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Coordinate  domain.Coordinate   `json:"coordinate"`
	FromDate    *openapi_types.Date `json:"from_date"`
	ToDate      *openapi_types.Date `json:"to_date"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// PlanList is the body of GET /plans.
type PlanList struct {
	Data       []Plan     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreatePlan handles POST /plans.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body PlanRequest
	if !decodeBody(w, r, &body) {
		return
	}
	plan, err := requestToPlan(body)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.plans.Create(r.Context(), plan)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusCreated, s.planToResponse(created))
}

// ListPlans handles GET /plans.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	params := domain.NewPageRequest(page, limit)

	plans, total, err := s.plans.ListPaged(r.Context(), params)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}

	data := make([]Plan, len(plans))
	for i, p := range plans {
		data[i] = s.planToResponse(p)
	}
	writeJSON(w, http.StatusOK, PlanList{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetPlan handles GET /plans/{planId}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	plan, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, s.planToResponse(plan))
}

// UpdatePlan handles PUT /plans/{planId}.
func (s *Server) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	var body PlanRequest
	if !decodeBody(w, r, &body) {
		return
	}
	plan, err := requestToPlan(body)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	plan.ID = id

	updated, err := s.plans.Update(r.Context(), plan)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, s.planToResponse(updated))
}

// DeletePlan handles DELETE /plans/{planId}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	if err := s.plans.Delete(r.Context(), id); err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MovePlan handles POST /plans/move. The plan at list index Source is taken
// out and reinserted at Destination.
func (s *Server) MovePlan(w http.ResponseWriter, r *http.Request) {
	var body MoveRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Source == nil || body.Destination == nil {
		requestError(w, "source and destination are required")
		return
	}
	if err := s.plans.MovePlan(r.Context(), *body.Source, *body.Destination); err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// planID parses the {planId} path parameter, writing a 422 when malformed.
func planID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "planId"))
	if err != nil {
		requestError(w, "planId must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalInt reads an integer query parameter; absent means nil.
func optionalInt(r *http.Request, name string) (*int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// requestToPlan converts a request body into a domain.Plan.
func requestToPlan(body PlanRequest) (domain.Plan, error) {
	schedules := make([]domain.Schedule, 0, len(body.Schedules))
	for _, sr := range body.Schedules {
		sc, err := requestToSchedule(sr)
		if err != nil {
			return domain.Plan{}, err
		}
		schedules = append(schedules, sc)
	}
	return domain.NewPlan(body.Title, deref(body.Description), schedules), nil
}

// requestToSchedule converts a request schedule into a domain.Schedule.
// Returns an error if the coordinate is missing; everything else is left to
// domain validation.
func requestToSchedule(body ScheduleRequest) (domain.Schedule, error) {
	if body.Coordinate == nil {
		return domain.Schedule{}, errors.New("coordinate is required")
	}
	return domain.Schedule{
		Title:       body.Title,
		Description: deref(body.Description),
		Coordinate:  *body.Coordinate,
		FromDate:    fromDate(body.FromDate),
		ToDate:      fromDate(body.ToDate),
	}, nil
}

// planToResponse converts a domain.Plan into its JSON representation.
func (s *Server) planToResponse(p domain.Plan) Plan {
	dr := p.DateRange()
	resp := Plan{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		FromDate:    toDate(dr.From),
		ToDate:      toDate(dr.To),
		Date:        s.plans.DateText(p),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	schedules := p.Schedules()
	resp.Schedules = make([]Schedule, len(schedules))
	for i, sc := range schedules {
		resp.Schedules[i] = Schedule{
			Index:       i,
			Title:       sc.Title,
			Description: sc.Description,
			Coordinate:  sc.Coordinate,
			FromDate:    toDate(sc.FromDate),
			ToDate:      toDate(sc.ToDate),
		}
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
