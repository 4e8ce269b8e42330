package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

func day(s string) *time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return &d
}

func TestUserRepository_UniqueEmailUnderConcurrency(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ok  int
		dup int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := users.Create(ctx, &entity.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "h"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, repository.ErrDuplicate) {
				dup++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, dup)
}

func TestUserRepository_Lookup(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	u := &entity.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	byEmail, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = users.GetByEmail(ctx, "grace@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_ListOrdering(t *testing.T) {
	s := NewStore()
	tasks := s.Tasks()
	ctx := context.Background()
	base := time.Now()

	mk := func(title string, due *time.Time, offset int) *entity.Task {
		task := &entity.Task{UserID: "u1", Title: title, DueDate: due, CreatedAt: base.Add(time.Duration(offset) * time.Second)}
		require.NoError(t, tasks.Create(ctx, task))
		return task
	}
	mk("undated", nil, 0)
	late := mk("late", day("2025-03-01"), 1)
	mk("early", day("2025-01-01"), 2)
	require.NoError(t, tasks.Create(ctx, &entity.Task{UserID: "u2", Title: "foreign", DueDate: day("2024-01-01")}))

	all, err := tasks.ListByUser(ctx, "u1", entity.FilterAll)
	require.NoError(t, err)
	titles := make([]string, 0, len(all))
	for _, task := range all {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"early", "late", "undated"}, titles)

	require.NoError(t, tasks.SetCompleted(ctx, "u1", late.ID, true))

	pending, err := tasks.ListByUser(ctx, "u1", entity.FilterPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "undated", pending[0].Title, "filtered views keep insertion order")

	done, err := tasks.ListByUser(ctx, "u1", entity.FilterCompleted)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "late", done[0].Title)
}

func TestTaskRepository_OwnershipScoping(t *testing.T) {
	tasks := NewStore().Tasks()
	ctx := context.Background()

	task := &entity.Task{UserID: "owner", Title: "mine"}
	require.NoError(t, tasks.Create(ctx, task))

	_, err := tasks.GetForUser(ctx, "intruder", task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, tasks.UpdateForUser(ctx, &entity.Task{ID: task.ID, UserID: "intruder", Title: "x"}), repository.ErrNotFound)
	assert.ErrorIs(t, tasks.SetCompleted(ctx, "intruder", task.ID, true), repository.ErrNotFound)
	assert.ErrorIs(t, tasks.DeleteForUser(ctx, "intruder", task.ID), repository.ErrNotFound)

	got, err := tasks.GetForUser(ctx, "owner", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.False(t, got.Completed)

	require.NoError(t, tasks.DeleteForUser(ctx, "owner", task.ID))
	assert.ErrorIs(t, tasks.DeleteForUser(ctx, "owner", task.ID), repository.ErrNotFound)
}

func TestTaskRepository_UpdateLeavesCompletion(t *testing.T) {
	tasks := NewStore().Tasks()
	ctx := context.Background()

	task := &entity.Task{UserID: "owner", Title: "before"}
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, tasks.SetCompleted(ctx, "owner", task.ID, true))

	require.NoError(t, tasks.UpdateForUser(ctx, &entity.Task{ID: task.ID, UserID: "owner", Title: "after", Completed: false}))

	got, err := tasks.GetForUser(ctx, "owner", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.Completed)
}

func TestTaskRepository_ReturnsCopies(t *testing.T) {
	tasks := NewStore().Tasks()
	ctx := context.Background()

	task := &entity.Task{UserID: "owner", Title: "t", DueDate: day("2025-01-01")}
	require.NoError(t, tasks.Create(ctx, task))

	got, err := tasks.GetForUser(ctx, "owner", task.ID)
	require.NoError(t, err)
	*got.DueDate = got.DueDate.AddDate(1, 0, 0)
	got.Title = "mutated"

	again, err := tasks.GetForUser(ctx, "owner", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", again.Title)
	assert.Equal(t, 2025, again.DueDate.Year())
}
