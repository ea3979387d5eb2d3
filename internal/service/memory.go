package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/metrics"
	"github.com/yeolmok/travel-planner/backend/internal/repo"
)

// MemoryService implements business logic for trip memories.
type MemoryService struct {
	repo    repo.MemoryRepo
	metrics metrics.Recorder
}

// NewMemoryService constructs a MemoryService backed by the provided MemoryRepo.
// A nil recorder disables metrics.
func NewMemoryService(r repo.MemoryRepo, rec metrics.Recorder) *MemoryService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &MemoryService{repo: r, metrics: rec}
}

// Upload validates memory and stores it in its slot, replacing any
// previous memory there.
func (s *MemoryService) Upload(ctx context.Context, memory domain.Memory) (domain.Memory, error) {
	saved, err := s.upload(ctx, memory)
	s.metrics.Mutation("memory", "Upload", err)
	return saved, err
}

func (s *MemoryService) upload(ctx context.Context, memory domain.Memory) (domain.Memory, error) {
	if err := memory.Validate(); err != nil {
		return domain.Memory{}, fmt.Errorf("service.MemoryService.Upload: %w", err)
	}
	saved, err := s.repo.Upsert(ctx, memory)
	if err != nil {
		return domain.Memory{}, fmt.Errorf("service.MemoryService.Upload: %w", err)
	}
	slog.DebugContext(ctx, "memory uploaded", "slot", saved.Slot, "memory_id", saved.ID)
	return saved, nil
}

// GetBySlot returns the memory stored in slot.
func (s *MemoryService) GetBySlot(ctx context.Context, slot int) (domain.Memory, error) {
	if slot < 0 {
		return domain.Memory{}, fmt.Errorf("service.MemoryService.GetBySlot: %w", domain.ErrInvalidMemorySlot)
	}
	m, err := s.repo.GetBySlot(ctx, slot)
	if err != nil {
		return domain.Memory{}, fmt.Errorf("service.MemoryService.GetBySlot: %w", err)
	}
	return m, nil
}

// List returns every stored memory ordered by slot.
func (s *MemoryService) List(ctx context.Context) ([]domain.Memory, error) {
	memories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.MemoryService.List: %w", err)
	}
	if memories == nil {
		memories = []domain.Memory{}
	}
	return memories, nil
}

// Delete empties slot.
func (s *MemoryService) Delete(ctx context.Context, slot int) error {
	err := s.delete(ctx, slot)
	s.metrics.Mutation("memory", "Delete", err)
	if err != nil {
		return fmt.Errorf("service.MemoryService.Delete: %w", err)
	}
	return nil
}

func (s *MemoryService) delete(ctx context.Context, slot int) error {
	if slot < 0 {
		return domain.ErrInvalidMemorySlot
	}
	return s.repo.Delete(ctx, slot)
}
