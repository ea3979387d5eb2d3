package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/geo"
	"github.com/yeolmok/travel-planner/backend/internal/handler"
)

func TestGetFrame_200(t *testing.T) {
	p := planFixture()
	svc := &mockPlanServicer{
		frame: func(_ context.Context, _ uuid.UUID) (geo.Region, []domain.AnnotatedCoordinate, error) {
			coords := p.AnnotatedCoordinates()
			region, err := geo.Frame(p.Coordinates())
			return region, coords, err
		},
	}

	rec := do(newPlanHTTPHandler(svc), http.MethodGet, "/plans/"+p.ID.String()+"/frame", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.Frame
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Coordinates, 3)
	assert.Equal(t, "Haeundae", resp.Coordinates[0].Title)
	assert.InDelta(t, 35.1587-35.0966+geo.DefaultPadding, resp.Span.LatitudeDelta, 1e-9)
	assert.InDelta(t, 129.1604-129.0106+geo.DefaultPadding, resp.Span.LongitudeDelta, 1e-9)
}

func TestGetFrame_409_EmptyPlan(t *testing.T) {
	svc := &mockPlanServicer{
		frame: func(_ context.Context, _ uuid.UUID) (geo.Region, []domain.AnnotatedCoordinate, error) {
			return geo.Region{}, nil, fmt.Errorf("service.PlanService.Frame: %w", domain.ErrEmptyInput)
		},
	}

	rec := do(newPlanHTTPHandler(svc), http.MethodGet, "/plans/"+uuid.NewString()+"/frame", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "empty_plan", decodeError(t, rec).Code)
}

func TestGetCamera_DefaultsToNextFromUnset(t *testing.T) {
	var gotFrom int
	var gotDir geo.Direction
	svc := &mockPlanServicer{
		stepCamera: func(_ context.Context, _ uuid.UUID, from int, dir geo.Direction) (int, domain.AnnotatedCoordinate, error) {
			gotFrom, gotDir = from, dir
			return 0, domain.AnnotatedCoordinate{Title: "Haeundae", Coordinate: domain.Coordinate{Latitude: 35.1587, Longitude: 129.1604}}, nil
		},
	}

	rec := do(newPlanHTTPHandler(svc), http.MethodGet, "/plans/"+uuid.NewString()+"/camera", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, geo.NoIndex, gotFrom)
	assert.Equal(t, geo.Next, gotDir)

	var resp handler.Camera
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Index)
	assert.Equal(t, "Haeundae", resp.Title)
	assert.InDelta(t, 129.1604, resp.Coordinate.Longitude, 1e-9)
}

func TestGetCamera_PreviousFromIndex(t *testing.T) {
	p := planFixture()
	svc := &mockPlanServicer{
		stepCamera: func(_ context.Context, _ uuid.UUID, from int, dir geo.Direction) (int, domain.AnnotatedCoordinate, error) {
			ptr := geo.NewPointerAt(p.AnnotatedCoordinates(), from)
			if err := ptr.Step(dir); err != nil {
				return geo.NoIndex, domain.AnnotatedCoordinate{}, err
			}
			c, err := ptr.Current()
			return ptr.Index(), c, err
		},
	}

	rec := do(newPlanHTTPHandler(svc), http.MethodGet, "/plans/"+p.ID.String()+"/camera?index=0&direction=previous", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.Camera
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Index)
	assert.Equal(t, "Jagalchi", resp.Title)
}

func TestGetCamera_422_BadDirection(t *testing.T) {
	rec := do(newPlanHTTPHandler(&mockPlanServicer{}), http.MethodGet, "/plans/"+uuid.NewString()+"/camera?direction=up", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Code)
}

func TestGetCamera_409_EmptyPlan(t *testing.T) {
	svc := &mockPlanServicer{
		stepCamera: func(_ context.Context, _ uuid.UUID, _ int, _ geo.Direction) (int, domain.AnnotatedCoordinate, error) {
			return geo.NoIndex, domain.AnnotatedCoordinate{}, domain.ErrEmptyInput
		},
	}

	rec := do(newPlanHTTPHandler(svc), http.MethodGet, "/plans/"+uuid.NewString()+"/camera?index=1", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
}
