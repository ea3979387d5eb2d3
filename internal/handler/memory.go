package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

// MemoryRequest is the body of PUT /memories/{slot}.
type MemoryRequest struct {
	Title string  `json:"title"`
	Note  *string `json:"note,omitempty"`
}

// Memory is the JSON representation of a stored memory.
type Memory struct {
	ID         openapi_types.UUID `json:"id"`
	Slot       int                `json:"slot"`
	Title      string             `json:"title"`
	Note       string             `json:"note"`
	UploadDate time.Time          `json:"upload_date"`
}

// ListMemories handles GET /memories.
func (s *Server) ListMemories(w http.ResponseWriter, r *http.Request) {
	memories, err := s.memories.List(r.Context())
	if err != nil {
		serviceError(w, r, err, "memory not found")
		return
	}
	out := make([]Memory, len(memories))
	for i, m := range memories {
		out[i] = memoryToResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetMemory handles GET /memories/{slot}.
func (s *Server) GetMemory(w http.ResponseWriter, r *http.Request) {
	slot, ok := memorySlot(w, r)
	if !ok {
		return
	}
	m, err := s.memories.GetBySlot(r.Context(), slot)
	if err != nil {
		serviceError(w, r, err, "memory not found")
		return
	}
	writeJSON(w, http.StatusOK, memoryToResponse(m))
}

// PutMemory handles PUT /memories/{slot}. Uploading into an occupied slot
// replaces the memory there.
func (s *Server) PutMemory(w http.ResponseWriter, r *http.Request) {
	slot, ok := memorySlot(w, r)
	if !ok {
		return
	}
	var body MemoryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	saved, err := s.memories.Upload(r.Context(), domain.Memory{Title: body.Title, Slot: slot, Note: deref(body.Note)})
	if err != nil {
		serviceError(w, r, err, "memory not found")
		return
	}
	writeJSON(w, http.StatusOK, memoryToResponse(saved))
}

// DeleteMemory handles DELETE /memories/{slot}.
func (s *Server) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	slot, ok := memorySlot(w, r)
	if !ok {
		return
	}
	if err := s.memories.Delete(r.Context(), slot); err != nil {
		serviceError(w, r, err, "memory not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func memorySlot(w http.ResponseWriter, r *http.Request) (int, bool) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		requestError(w, "slot must be an integer")
		return 0, false
	}
	return slot, true
}

func memoryToResponse(m domain.Memory) Memory {
	return Memory{ID: m.ID, Slot: m.Slot, Title: m.Title, Note: m.Note, UploadDate: m.UploadDate}
}
