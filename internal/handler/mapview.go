package handler

import (
	"net/http"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/geo"
)

// Frame is the body of GET /plans/{planId}/frame: the region to show and
// the annotated points it covers, in schedule order.
type Frame struct {
	Center      domain.Coordinate            `json:"center"`
	Span        geo.Span                     `json:"span"`
	Coordinates []domain.AnnotatedCoordinate `json:"coordinates"`
}

// Camera is the body of GET /plans/{planId}/camera.
type Camera struct {
	Index      int               `json:"index"`
	Title      string            `json:"title"`
	Coordinate domain.Coordinate `json:"coordinate"`
}

// GetFrame handles GET /plans/{planId}/frame.
// A plan without schedules answers 409 empty_plan.
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	region, coords, err := s.plans.Frame(r.Context(), id)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, Frame{Center: region.Center, Span: region.Span, Coordinates: coords})
}

// GetCamera handles GET /plans/{planId}/camera?index=&direction=.
// index is the camera's current position (absent means not yet placed) and
// direction is next (default) or previous.
func (s *Server) GetCamera(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	from := geo.NoIndex
	index, err := optionalInt(r, "index")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	if index != nil {
		from = *index
	}
	dir := geo.Next
	if v := r.URL.Query().Get("direction"); v != "" {
		if dir, err = geo.ParseDirection(v); err != nil {
			serviceError(w, r, err, "")
			return
		}
	}

	next, c, err := s.plans.StepCamera(r.Context(), id, from, dir)
	if err != nil {
		serviceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, Camera{Index: next, Title: c.Title, Coordinate: c.Coordinate})
}
