package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

// MemoryRepo defines the persistence operations for Memories.
// Memories are addressed by slot; each slot holds at most one memory.
type MemoryRepo interface {
	// Upsert stores memory in its slot, replacing whatever was there.
	// The upload date is set by the database.
	Upsert(ctx context.Context, memory domain.Memory) (domain.Memory, error)

	// GetBySlot returns the memory in slot.
	// Returns domain.ErrNotFound if the slot is empty.
	GetBySlot(ctx context.Context, slot int) (domain.Memory, error)

	// List returns all memories ordered by slot.
	List(ctx context.Context) ([]domain.Memory, error)

	// Delete empties slot. Returns domain.ErrNotFound if it was already empty.
	Delete(ctx context.Context, slot int) error
}

type pgMemoryRepo struct {
	db db
}

// NewMemoryRepo constructs a MemoryRepo backed by the provided db connection.
func NewMemoryRepo(db db) MemoryRepo {
	return &pgMemoryRepo{db: db}
}

const memoryColumns = `id, slot, title, note, upload_date`

// Upsert inserts into the slot or overwrites the existing row on conflict.
// The row keeps its id across overwrites.
func (r *pgMemoryRepo) Upsert(ctx context.Context, memory domain.Memory) (domain.Memory, error) {
	const q = `
		INSERT INTO memories (slot, title, note)
		VALUES (@slot, @title, @note)
		ON CONFLICT (slot) DO UPDATE
		SET title       = EXCLUDED.title,
		    note        = EXCLUDED.note,
		    upload_date = now()
		RETURNING ` + memoryColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"slot":  memory.Slot,
		"title": memory.Title,
		"note":  memory.Note,
	})
	result, err := scanMemory(row)
	if err != nil {
		return domain.Memory{}, fmt.Errorf("repo.MemoryRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgMemoryRepo) GetBySlot(ctx context.Context, slot int) (domain.Memory, error) {
	const q = `SELECT ` + memoryColumns + ` FROM memories WHERE slot = @slot`

	result, err := scanMemory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slot": slot}))
	if err != nil {
		return domain.Memory{}, fmt.Errorf("repo.MemoryRepo.GetBySlot: %w", err)
	}
	return result, nil
}

func (r *pgMemoryRepo) List(ctx context.Context) ([]domain.Memory, error) {
	const q = `SELECT ` + memoryColumns + ` FROM memories ORDER BY slot`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.MemoryRepo.List: %w", err)
	}
	defer rows.Close()

	memories := []domain.Memory{}
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MemoryRepo.List: scan: %w", err)
		}
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MemoryRepo.List: rows: %w", err)
	}
	return memories, nil
}

func (r *pgMemoryRepo) Delete(ctx context.Context, slot int) error {
	const q = `DELETE FROM memories WHERE slot = @slot`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"slot": slot})
	if err != nil {
		return fmt.Errorf("repo.MemoryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MemoryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanMemory(s scanner) (domain.Memory, error) {
	var (
		m  domain.Memory
		id pgtype.UUID
	)
	err := s.Scan(&id, &m.Slot, &m.Title, &m.Note, &m.UploadDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Memory{}, domain.ErrNotFound
		}
		return domain.Memory{}, err
	}
	m.ID = uuid.UUID(id.Bytes)
	return m, nil
}
