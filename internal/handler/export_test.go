package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/handler"
)

// ---- mock Exporter ---------------------------------------------------------

type mockExporter struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExporter) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time check: mockExporter must satisfy handler.Exporter.
var _ handler.Exporter = (*mockExporter)(nil)

// ---- helpers ---------------------------------------------------------------

func newExportHTTPHandler(svc handler.Exporter) http.Handler {
	return handler.NewServer(nil, nil, svc).Routes()
}

func staticExporter(rows ...domain.ExportRow) *mockExporter {
	return &mockExporter{
		export: func(_ context.Context) ([]domain.ExportRow, error) { return rows, nil },
	}
}

// exportRowFixture returns a fully-populated domain.ExportRow for testing.
func exportRowFixture() domain.ExportRow {
	from := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)
	lat, lon := 33.4996, 126.5312

	return domain.ExportRow{
		PlanID:              uuid.New().String(),
		PlanTitle:           "Jeju Island",
		PlanDates:           "2024.06.15 ~ 2024.06.18",
		Position:            1,
		ScheduleTitle:       "Jeju City",
		ScheduleDescription: "Dongmun market, night food",
		Latitude:            &lat,
		Longitude:           &lon,
		FromDate:            &from,
		ToDate:              &to,
	}
}

// ---- GET /export (JSON) ----------------------------------------------------

func TestGetExport_DefaultJSON_EmptyResult(t *testing.T) {
	rec := do(newExportHTTPHandler(staticExporter()), http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetExport_DefaultJSON_WithRow(t *testing.T) {
	row := exportRowFixture()

	rec := do(newExportHTTPHandler(staticExporter(row)), http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, row.PlanID, rows[0].PlanID.String())
	require.NotNil(t, rows[0].Position)
	assert.Equal(t, 1, *rows[0].Position)
	require.NotNil(t, rows[0].FromDate)
	assert.Equal(t, "2024-06-15", rows[0].FromDate.String())
}

func TestGetExport_JSON_PlanWithoutSchedules(t *testing.T) {
	row := domain.ExportRow{PlanID: uuid.New().String(), PlanTitle: "Someday", PlanDates: "No dates"}

	rec := do(newExportHTTPHandler(staticExporter(row)), http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "schedule_title")
	assert.NotContains(t, body, "position")
}

// ---- GET /export?format=csv ------------------------------------------------

func TestGetExport_CSV(t *testing.T) {
	row := exportRowFixture()
	empty := domain.ExportRow{PlanID: uuid.New().String(), PlanTitle: "Someday", PlanDates: "No dates"}

	rec := do(newExportHTTPHandler(staticExporter(row, empty)), http.MethodGet, "/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "travel-export.csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "plan_id", records[0][0])
	assert.Equal(t, []string{
		row.PlanID, "Jeju Island", "2024.06.15 ~ 2024.06.18",
		"1", "Jeju City", "Dongmun market, night food",
		"33.4996", "126.5312", "2024-06-15", "2024-06-18",
	}, records[1])
	assert.Equal(t, []string{empty.PlanID, "Someday", "No dates", "", "", "", "", "", "", ""}, records[2])
}

func TestGetExport_422_UnknownFormat(t *testing.T) {
	rec := do(newExportHTTPHandler(staticExporter()), http.MethodGet, "/export?format=xml", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetExport_500(t *testing.T) {
	svc := &mockExporter{
		export: func(_ context.Context) ([]domain.ExportRow, error) { return nil, errors.New("boom") },
	}

	rec := do(newExportHTTPHandler(svc), http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
