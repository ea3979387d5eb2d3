package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
	"github.com/yeolmok/travel-planner/backend/internal/repo"
	"github.com/yeolmok/travel-planner/backend/testutil"
)

// newTestPlanRepo returns a PlanRepo backed by a transaction that is rolled
// back when the test finishes.
func newTestPlanRepo(t *testing.T) repo.PlanRepo {
	t.Helper()
	return repo.NewPlanRepo(testutil.NewTx(t))
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func planFixture() domain.Plan {
	return domain.NewPlan("Jeju Island", "spring trip", []domain.Schedule{
		{
			Title:      "Seongsan Ilchulbong",
			Coordinate: domain.Coordinate{Latitude: 33.4590, Longitude: 126.9425},
			FromDate:   date(2023, 4, 2),
			ToDate:     date(2023, 4, 2),
		},
		{
			Title:       "Hallasan",
			Description: "early start",
			Coordinate:  domain.Coordinate{Latitude: 33.3617, Longitude: 126.5292},
		},
		{
			Title:      "Hyeopjae Beach",
			Coordinate: domain.Coordinate{Latitude: 33.3940, Longitude: 126.2397},
			FromDate:   date(2023, 4, 4),
			ToDate:     date(2023, 4, 5),
		},
	})
}

func TestPlanRepo_CreateAndGet(t *testing.T) {
	r := newTestPlanRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, planFixture())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Jeju Island", got.Title)
	require.Equal(t, 3, got.SchedulesCount())
	second, err := got.Schedule(1)
	require.NoError(t, err)
	assert.Equal(t, "Hallasan", second.Title)
	assert.Equal(t, "early start", second.Description)
	assert.Nil(t, second.FromDate)
	assert.InDelta(t, 126.5292, second.Coordinate.Longitude, 1e-9)

	r2 := got.DateRange()
	require.NotNil(t, r2.From)
	require.NotNil(t, r2.To)
	assert.True(t, r2.From.Equal(*date(2023, 4, 2)))
	assert.True(t, r2.To.Equal(*date(2023, 4, 5)))
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	r := newTestPlanRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_Update_ReplacesSchedules(t *testing.T) {
	r := newTestPlanRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, planFixture())
	require.NoError(t, err)

	require.NoError(t, created.SwapSchedules(2, 0))
	require.NoError(t, created.RemoveSchedule(2))
	created.SetMetadata("Jeju again", "")

	_, err = r.Update(ctx, created)
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jeju again", got.Title)
	require.Equal(t, 2, got.SchedulesCount())
	first, _ := got.Schedule(0)
	second, _ := got.Schedule(1)
	assert.Equal(t, "Hyeopjae Beach", first.Title)
	assert.Equal(t, "Seongsan Ilchulbong", second.Title)
}

func TestPlanRepo_Update_NotFound(t *testing.T) {
	r := newTestPlanRepo(t)
	p := planFixture()
	p.ID = uuid.New()

	_, err := r.Update(context.Background(), p)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_ListPaged(t *testing.T) {
	r := newTestPlanRepo(t)
	ctx := context.Background()

	for range 3 {
		_, err := r.Create(ctx, planFixture())
		require.NoError(t, err)
	}

	plans, total, err := r.ListPaged(ctx, domain.PageRequest{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(3))
	assert.Len(t, plans, 2)
	for _, p := range plans {
		assert.Equal(t, 3, p.SchedulesCount(), "schedules are attached to listed plans")
	}
}

func TestPlanRepo_Delete(t *testing.T) {
	r := newTestPlanRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, planFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}

func titles(plans []domain.Plan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.Title
	}
	return out
}

func TestPlanRepo_Create_AppendsToList(t *testing.T) {
	r := newTestPlanRepo(t)
	ctx := context.Background()

	for _, title := range []string{"Seoul", "Busan", "Jeju"} {
		_, err := r.Create(ctx, domain.NewPlan(title, "", nil))
		require.NoError(t, err)
	}

	plans, err := r.List(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(plans), 3)
	assert.Equal(t, []string{"Seoul", "Busan", "Jeju"}, titles(plans[len(plans)-3:]))
}

func TestPlanRepo_Move(t *testing.T) {
	r := newTestPlanRepo(t)
	ctx := context.Background()

	for _, title := range []string{"Seoul", "Busan", "Jeju"} {
		_, err := r.Create(ctx, domain.NewPlan(title, "", nil))
		require.NoError(t, err)
	}
	before, err := r.List(ctx)
	require.NoError(t, err)
	n := len(before)

	require.NoError(t, r.Move(ctx, n-1, n-3))

	after, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jeju", "Seoul", "Busan"}, titles(after[n-3:]))

	paged, _, err := r.ListPaged(ctx, domain.PageRequest{Page: 1, Limit: n})
	require.NoError(t, err)
	assert.Equal(t, titles(after), titles(paged), "paged listing follows the same order")
}

func TestPlanRepo_Move_OutOfRange(t *testing.T) {
	r := newTestPlanRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, planFixture())
	require.NoError(t, err)
	before, err := r.List(ctx)
	require.NoError(t, err)

	err = r.Move(ctx, 0, len(before))
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.Move(ctx, -1, 0), domain.ErrIndexOutOfRange)

	after, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, titles(before), titles(after))
}
