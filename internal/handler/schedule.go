package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// MoveRequest is the body of POST /plans/{planId}/schedules/move and
// POST /plans/move. The item at Source is taken out and reinserted at
// Destination.
type MoveRequest struct {
	Source      *int `json:"source"`
	Destination *int `json:"destination"`
}

// AddSchedule handles POST /plans/{planId}/schedules.
// Responds with the whole updated plan.
func (s *Server) AddSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	var body ScheduleRequest
	if !decodeBody(w, r, &body) {
		return
	}
	sc, err := requestToSchedule(body)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	plan, err := s.plans.AddSchedule(r.Context(), id, sc)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusCreated, s.planToResponse(plan))
}

// EditSchedule handles PUT /plans/{planId}/schedules/{index}.
func (s *Server) EditSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	index, ok := scheduleIndex(w, r)
	if !ok {
		return
	}
	var body ScheduleRequest
	if !decodeBody(w, r, &body) {
		return
	}
	sc, err := requestToSchedule(body)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	plan, err := s.plans.EditSchedule(r.Context(), id, index, sc)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, s.planToResponse(plan))
}

// RemoveSchedule handles DELETE /plans/{planId}/schedules/{index}.
func (s *Server) RemoveSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	index, ok := scheduleIndex(w, r)
	if !ok {
		return
	}

	plan, err := s.plans.RemoveSchedule(r.Context(), id, index)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, s.planToResponse(plan))
}

// MoveSchedule handles POST /plans/{planId}/schedules/move.
func (s *Server) MoveSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	var body MoveRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Source == nil || body.Destination == nil {
		requestError(w, "source and destination are required")
		return
	}

	plan, err := s.plans.SwapSchedules(r.Context(), id, *body.Source, *body.Destination)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, s.planToResponse(plan))
}

// scheduleIndex parses the {index} path parameter. Range checks are left to
// the domain so out-of-range indexes report index_out_of_range.
func scheduleIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		requestError(w, "index must be an integer")
		return 0, false
	}
	return index, true
}
