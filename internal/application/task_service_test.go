package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

func TestTaskLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.register(t, "Ada", "ada@example.com")

	id, err := f.tasks.Create(ctx, uid, TaskInput{Title: "  Write report ", Description: " draft "})
	require.NoError(t, err)

	task, err := f.tasks.Get(ctx, uid, id)
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "draft", task.Description)
	assert.False(t, task.Completed)
	assert.Nil(t, task.DueDate)

	done, err := f.tasks.ToggleCompletion(ctx, uid, id)
	require.NoError(t, err)
	assert.True(t, done)

	completed, err := f.tasks.List(ctx, uid, entity.FilterCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, id, completed[0].ID)

	pending, err := f.tasks.List(ctx, uid, entity.FilterPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	done, err = f.tasks.ToggleCompletion(ctx, uid, id)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, f.tasks.Delete(ctx, uid, id))
	_, err = f.tasks.Get(ctx, uid, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskCreate_DueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.register(t, "Ada", "ada@example.com")

	id, err := f.tasks.Create(ctx, uid, TaskInput{Title: "Ship", DueDate: "2030-01-15"})
	require.NoError(t, err)
	task, err := f.tasks.Get(ctx, uid, id)
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC), *task.DueDate)

	_, err = f.tasks.Create(ctx, uid, TaskInput{Title: "Ship", DueDate: "15/01/2030"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Invalid date format"}, verr.Messages())
}

func TestTaskCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.register(t, "Ada", "ada@example.com")

	tests := []struct {
		name string
		in   TaskInput
		want string
	}{
		{name: "empty title", in: TaskInput{Title: "   "}, want: "Title is required"},
		{name: "long title", in: TaskInput{Title: strings.Repeat("a", 201)}, want: "Title must be between 1 and 200 characters"},
		{name: "long description", in: TaskInput{Title: "ok", Description: strings.Repeat("d", 1001)}, want: "Description must not exceed 1000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tasks.Create(ctx, uid, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.First())
		})
	}

	all, err := f.tasks.List(ctx, uid, entity.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.register(t, "Ada", "ada@example.com")

	id, err := f.tasks.Create(ctx, uid, TaskInput{Title: "Old", DueDate: "2030-01-01"})
	require.NoError(t, err)
	_, err = f.tasks.ToggleCompletion(ctx, uid, id)
	require.NoError(t, err)

	err = f.tasks.Update(ctx, uid, id, TaskInput{Title: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	task, err := f.tasks.Get(ctx, uid, id)
	require.NoError(t, err)
	assert.Equal(t, "Old", task.Title, "failed update leaves the task unchanged")

	require.NoError(t, f.tasks.Update(ctx, uid, id, TaskInput{Title: "New", Description: "more"}))
	task, err = f.tasks.Get(ctx, uid, id)
	require.NoError(t, err)
	assert.Equal(t, "New", task.Title)
	assert.Equal(t, "more", task.Description)
	assert.Nil(t, task.DueDate, "empty due date clears it")
	assert.True(t, task.Completed, "update keeps completion")
}

func TestTasks_OwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")

	id, err := f.tasks.Create(ctx, alice, TaskInput{Title: "Private"})
	require.NoError(t, err)

	_, err = f.tasks.Get(ctx, bob, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.tasks.Update(ctx, bob, id, TaskInput{Title: "Mine"}), ErrNotFound)
	_, err = f.tasks.ToggleCompletion(ctx, bob, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.tasks.Delete(ctx, bob, id), ErrNotFound)

	bobs, err := f.tasks.List(ctx, bob, entity.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	task, err := f.tasks.Get(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, "Private", task.Title)
	assert.False(t, task.Completed)
}

func TestTaskDelete_Missing(t *testing.T) {
	f := newFixture(t)
	uid := f.register(t, "Ada", "ada@example.com")

	err := f.tasks.Delete(context.Background(), uid, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskList_AllOrderedByDueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := f.register(t, "Ada", "ada@example.com")

	for _, in := range []TaskInput{
		{Title: "none"},
		{Title: "late", DueDate: "2031-05-01"},
		{Title: "soon", DueDate: "2030-05-01"},
	} {
		_, err := f.tasks.Create(ctx, uid, in)
		require.NoError(t, err)
	}

	all, err := f.tasks.List(ctx, uid, entity.FilterAll)
	require.NoError(t, err)
	titles := make([]string, 0, len(all))
	for _, task := range all {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"soon", "late", "none"}, titles)
}

func TestTasks_RequireUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tasks.Create(ctx, "", TaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.tasks.List(ctx, "", entity.FilterAll)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
