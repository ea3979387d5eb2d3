package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

func titles(s []domain.Schedule) []string {
	out := make([]string, len(s))
	for i, sc := range s {
		out[i] = sc.Title
	}
	return out
}

func newSet(names ...string) domain.ScheduleSet {
	var s domain.ScheduleSet
	for _, n := range names {
		s.Add(domain.Schedule{Title: n})
	}
	return s
}

func TestScheduleSet_Add(t *testing.T) {
	s := newSet("a", "b")

	s.Add(domain.Schedule{Title: "c"})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"a", "b", "c"}, titles(s.All()))
}

func TestScheduleSet_Edit(t *testing.T) {
	s := newSet("a", "b")

	require.NoError(t, s.Edit(1, domain.Schedule{Title: "B"}))

	assert.Equal(t, []string{"a", "B"}, titles(s.All()))
}

func TestScheduleSet_Remove(t *testing.T) {
	s := newSet("a", "b", "c")

	require.NoError(t, s.Remove(1))

	assert.Equal(t, []string{"a", "c"}, titles(s.All()))
}

func TestScheduleSet_Move(t *testing.T) {
	tests := []struct {
		name     string
		src, dst int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"adjacent", 1, 2, []string{"a", "c", "b", "d"}},
		{"same index", 2, 2, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSet("a", "b", "c", "d")

			require.NoError(t, s.Move(tt.src, tt.dst))

			assert.Equal(t, tt.want, titles(s.All()))
		})
	}
}

func TestScheduleSet_IndexBounds(t *testing.T) {
	s := newSet("a", "b", "c")
	count := s.Len()

	assert.ErrorIs(t, s.Edit(count, domain.Schedule{Title: "x"}), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Remove(-1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Move(0, count), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Move(-1, 0), domain.ErrIndexOutOfRange)
	_, err := s.At(count)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	// Failed operations leave the set untouched.
	assert.Equal(t, []string{"a", "b", "c"}, titles(s.All()))
}

func TestMoveItem(t *testing.T) {
	ids := []int{10, 20, 30}

	require.NoError(t, domain.MoveItem(ids, 2, 0))
	assert.Equal(t, []int{30, 10, 20}, ids)

	err := domain.MoveItem(ids, 0, 3)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.EqualError(t, err, "index out of range: index 3, count 3")
	assert.Equal(t, []int{30, 10, 20}, ids)

	assert.ErrorIs(t, domain.MoveItem([]int{}, 0, 0), domain.ErrIndexOutOfRange)
}

func TestScheduleSet_CopiesInput(t *testing.T) {
	in := []domain.Schedule{{Title: "a"}}
	s := domain.NewScheduleSet(in)

	in[0].Title = "changed"
	out := s.All()
	out[0].Title = "also changed"

	got, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)
}

func TestScheduleSet_ZeroValueAllIsEmpty(t *testing.T) {
	var s domain.ScheduleSet

	assert.NotNil(t, s.All())
	assert.Empty(t, s.All())
}
