// Package handler: export.go implements GET /export.
// Returns all plans and schedules as a flat table, as JSON by default or as
// CSV with ?format=csv.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"plan_id", "plan_title", "plan_dates",
	"position", "schedule_title", "schedule_description",
	"latitude", "longitude", "from_date", "to_date",
}

// ExportRow is one row of the JSON export. Schedule fields are omitted for
// plans without schedules.
type ExportRow struct {
	PlanID              openapi_types.UUID  `json:"plan_id"`
	PlanTitle           string              `json:"plan_title"`
	PlanDates           string              `json:"plan_dates"`
	Position            *int                `json:"position,omitempty"`
	ScheduleTitle       *string             `json:"schedule_title,omitempty"`
	ScheduleDescription *string             `json:"schedule_description,omitempty"`
	Latitude            *float64            `json:"latitude,omitempty"`
	Longitude           *float64            `json:"longitude,omitempty"`
	FromDate            *openapi_types.Date `json:"from_date,omitempty"`
	ToDate              *openapi_types.Date `json:"to_date,omitempty"`
}

// GetExport handles GET /export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		requestError(w, "format must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		serviceError(w, r, err, "")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="travel-export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// domainRowToResponse maps a domain.ExportRow to its JSON form.
// A row with no schedule title belongs to a plan without schedules.
func domainRowToResponse(r domain.ExportRow) ExportRow {
	id, _ := uuid.Parse(r.PlanID)
	row := ExportRow{
		PlanID:    id,
		PlanTitle: r.PlanTitle,
		PlanDates: r.PlanDates,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		FromDate:  toDate(r.FromDate),
		ToDate:    toDate(r.ToDate),
	}
	if r.ScheduleTitle != "" {
		pos := r.Position
		row.Position = &pos
		row.ScheduleTitle = &r.ScheduleTitle
		row.ScheduleDescription = &r.ScheduleDescription
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Missing values are encoded as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	position := ""
	if r.ScheduleTitle != "" {
		position = strconv.Itoa(r.Position)
	}
	return []string{
		r.PlanID,
		r.PlanTitle,
		r.PlanDates,
		position,
		r.ScheduleTitle,
		r.ScheduleDescription,
		formatOptionalFloat(r.Latitude),
		formatOptionalFloat(r.Longitude),
		formatOptionalDate(r.FromDate),
		formatOptionalDate(r.ToDate),
	}
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// formatOptionalDate returns the calendar date of t, or "" if t is nil.
func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
