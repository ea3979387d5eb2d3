// Package repo contains all database access logic for the travel planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test;
// Begin on a pgx.Tx opens a savepoint, so repo transactions nest inside it.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepo defines the persistence operations for Plans.
// A plan is always read and written whole: metadata plus its ordered
// schedule list. Concurrent writers are not merged; the last Update wins.
type PlanRepo interface {
	// Create inserts a plan at the end of the plan list together with its
	// schedules and returns the persisted record with DB-generated id and
	// timestamps.
	Create(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// GetByID retrieves a plan with its schedules in position order.
	// Returns domain.ErrNotFound if no plan with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error)

	// List returns every plan in list order.
	List(ctx context.Context) ([]domain.Plan, error)

	// ListPaged returns one page of plans in list order and the total count.
	ListPaged(ctx context.Context, p domain.PageRequest) ([]domain.Plan, int64, error)

	// Move takes the plan at list index source and reinserts it at
	// destination, shifting the plans in between.
	// Returns domain.ErrIndexOutOfRange if either index is outside the list.
	Move(ctx context.Context, source, destination int) error

	// Update overwrites the plan's metadata and replaces its schedule list.
	// Returns domain.ErrNotFound if no plan with that ID exists.
	Update(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// Delete removes a plan and its schedules.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, title, description, created_at, updated_at`

// Create inserts the plan row and its schedules in one transaction.
func (r *pgPlanRepo) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		INSERT INTO plans (title, description, position)
		SELECT @title, @description, coalesce(max(position) + 1, 0) FROM plans
		RETURNING ` + planColumns

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	row := tx.QueryRow(ctx, q, pgx.NamedArgs{
		"title":       plan.Title,
		"description": plan.Description,
	})
	created, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}

	schedules := plan.Schedules()
	if err := insertSchedules(ctx, tx, created.ID, schedules); err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: commit: %w", err)
	}

	created.ReplaceSchedules(schedules)
	return created, nil
}

// GetByID retrieves a plan and its schedules.
func (r *pgPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Plan, error) {
	const q = `SELECT ` + planColumns + ` FROM plans WHERE id = @id`

	plan, err := scanPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}

	byPlan, err := loadSchedules(ctx, r.db, []uuid.UUID{plan.ID})
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}
	plan.ReplaceSchedules(byPlan[plan.ID])
	return plan, nil
}

// List returns all plans ordered by position.
func (r *pgPlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	const q = `SELECT ` + planColumns + ` FROM plans ORDER BY position, created_at, id`

	plans, err := r.queryPlans(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.List: %w", err)
	}
	return plans, nil
}

// ListPaged returns one page of plans ordered by position.
func (r *pgPlanRepo) ListPaged(ctx context.Context, p domain.PageRequest) ([]domain.Plan, int64, error) {
	const countQ = `SELECT count(*) FROM plans`
	const q = `
		SELECT ` + planColumns + `
		FROM plans
		ORDER BY position, created_at, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: count: %w", err)
	}

	plans, err := r.queryPlans(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlanRepo.ListPaged: %w", err)
	}
	return plans, total, nil
}

// Update overwrites the plan row and rewrites its schedules in one transaction.
func (r *pgPlanRepo) Update(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		UPDATE plans
		SET title       = @title,
		    description = @description,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + planColumns
	const clear = `DELETE FROM schedules WHERE plan_id = @plan_id`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Update: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	row := tx.QueryRow(ctx, q, pgx.NamedArgs{
		"id":          plan.ID,
		"title":       plan.Title,
		"description": plan.Description,
	})
	updated, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Update: %w", err)
	}

	if _, err := tx.Exec(ctx, clear, pgx.NamedArgs{"plan_id": plan.ID}); err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Update: clear schedules: %w", err)
	}
	schedules := plan.Schedules()
	if err := insertSchedules(ctx, tx, plan.ID, schedules); err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Update: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Update: commit: %w", err)
	}

	updated.ReplaceSchedules(schedules)
	return updated, nil
}

// Delete removes a plan by primary key. Schedules go with it via ON DELETE CASCADE.
func (r *pgPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM plans WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Move reorders the plan list in one transaction. The rows are locked, the
// move is applied to their ids and positions are rewritten densely from 0.
func (r *pgPlanRepo) Move(ctx context.Context, source, destination int) error {
	const lock = `SELECT id FROM plans ORDER BY position, created_at, id FOR UPDATE`
	const renumber = `
		UPDATE plans p
		SET position = ordered.n - 1
		FROM unnest(@ids::uuid[]) WITH ORDINALITY AS ordered(id, n)
		WHERE p.id = ordered.id`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Move: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after Commit

	rows, err := tx.Query(ctx, lock)
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Move: %w", err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id pgtype.UUID
		if err := row.Scan(&id); err != nil {
			return "", err
		}
		return uuid.UUID(id.Bytes).String(), nil
	})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Move: scan: %w", err)
	}

	if err := domain.MoveItem(ids, source, destination); err != nil {
		return fmt.Errorf("repo.PlanRepo.Move: %w", err)
	}
	if _, err := tx.Exec(ctx, renumber, pgx.NamedArgs{"ids": ids}); err != nil {
		return fmt.Errorf("repo.PlanRepo.Move: renumber: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.PlanRepo.Move: commit: %w", err)
	}
	return nil
}

// queryPlans runs a plan query and attaches the schedules of every returned
// plan with a single follow-up query.
func (r *pgPlanRepo) queryPlans(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Plan, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if len(plans) == 0 {
		return plans, nil
	}

	ids := make([]uuid.UUID, len(plans))
	for i := range plans {
		ids[i] = plans[i].ID
	}
	byPlan, err := loadSchedules(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].ReplaceSchedules(byPlan[plans[i].ID])
	}
	return plans, nil
}

// insertSchedules writes schedules with dense positions starting at 0.
func insertSchedules(ctx context.Context, tx pgx.Tx, planID uuid.UUID, schedules []domain.Schedule) error {
	const q = `
		INSERT INTO schedules (plan_id, position, title, description, latitude, longitude, from_date, to_date)
		VALUES (@plan_id, @position, @title, @description, @latitude, @longitude, @from_date, @to_date)`

	for i, s := range schedules {
		_, err := tx.Exec(ctx, q, pgx.NamedArgs{
			"plan_id":     planID,
			"position":    i,
			"title":       s.Title,
			"description": s.Description,
			"latitude":    s.Coordinate.Latitude,
			"longitude":   s.Coordinate.Longitude,
			"from_date":   s.FromDate, // nil becomes NULL
			"to_date":     s.ToDate,
		})
		if err != nil {
			return fmt.Errorf("insert schedule %d: %w", i, err)
		}
	}
	return nil
}

// loadSchedules returns the schedules of each plan keyed by plan ID, each
// list in position order.
func loadSchedules(ctx context.Context, db db, planIDs []uuid.UUID) (map[uuid.UUID][]domain.Schedule, error) {
	const q = `
		SELECT plan_id, title, description, latitude, longitude, from_date, to_date
		FROM schedules
		WHERE plan_id = ANY(@plan_ids::uuid[])
		ORDER BY plan_id, position`

	ids := make([]string, len(planIDs))
	for i, id := range planIDs {
		ids[i] = id.String()
	}

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"plan_ids": ids})
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.Schedule, len(planIDs))
	for rows.Next() {
		var (
			s        domain.Schedule
			planID   pgtype.UUID
			from, to pgtype.Date
		)
		err := rows.Scan(&planID, &s.Title, &s.Description,
			&s.Coordinate.Latitude, &s.Coordinate.Longitude, &from, &to)
		if err != nil {
			return nil, fmt.Errorf("load schedules: scan: %w", err)
		}
		if from.Valid {
			d := from.Time
			s.FromDate = &d
		}
		if to.Valid {
			d := to.Time
			s.ToDate = &d
		}
		id := uuid.UUID(planID.Bytes)
		out[id] = append(out[id], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load schedules: rows: %w", err)
	}
	return out, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlan maps a single plans row into a domain.Plan without schedules.
func scanPlan(s scanner) (domain.Plan, error) {
	var (
		p  domain.Plan
		id pgtype.UUID
	)
	err := s.Scan(&id, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
