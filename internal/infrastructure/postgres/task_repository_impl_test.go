package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/internal/infrastructure/postgres"
)

const taskID = "0b9d2a5c-3f7e-4e2a-8f61-5c1d9e7a4b22"

var taskCols = []string{"id", "user_id", "title", "description", "due_date", "completed", "created_at"}

func TestTaskRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Now().UTC()
	task := &entity.Task{UserID: userID, Title: "Write report", DueDate: &due, CreatedAt: created}

	mock.ExpectQuery("INSERT INTO tasks .+").
		WithArgs(userID, "Write report", "", due, false, created).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(taskID))

	require.NoError(t, postgres.NewTaskRepository(mock).Create(context.Background(), task))
	assert.Equal(t, taskID, task.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Now().UTC()

	t.Run("all is ordered by due date", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM tasks WHERE user_id = \\$1\\s+ORDER BY due_date ASC NULLS LAST").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(taskCols).
				AddRow(taskID, userID, "Write report", "", pgtype.Date{Time: due, Valid: true}, false, created).
				AddRow("c3e0f5a1-1111-4b2a-9c3d-000000000001", userID, "Someday", "", nil, false, created))

		tasks, err := postgres.NewTaskRepository(mock).ListByUser(ctx, userID, entity.FilterAll)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		require.NotNil(t, tasks[0].DueDate)
		assert.True(t, due.Equal(*tasks[0].DueDate))
		assert.Nil(t, tasks[1].DueDate)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completed filter", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM tasks WHERE user_id = \\$1 AND completed = \\$2").
			WithArgs(userID, true).
			WillReturnRows(pgxmock.NewRows(taskCols).
				AddRow(taskID, userID, "Done", "", nil, true, created))

		tasks, err := postgres.NewTaskRepository(mock).ListByUser(ctx, userID, entity.FilterCompleted)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.True(t, tasks[0].Completed)
	})

	t.Run("pending filter", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM tasks WHERE user_id = \\$1 AND completed = \\$2").
			WithArgs(userID, false).
			WillReturnRows(pgxmock.NewRows(taskCols))

		tasks, err := postgres.NewTaskRepository(mock).ListByUser(ctx, userID, entity.FilterPending)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("query failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM tasks").
			WithArgs(userID).
			WillReturnError(errors.New("timeout"))

		_, err = postgres.NewTaskRepository(mock).ListByUser(ctx, userID, entity.FilterAll)
		assert.ErrorContains(t, err, "list tasks")
	})
}

func TestTaskRepository_GetForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("other owner looks missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		other := "9a9a9a9a-9a9a-4a9a-9a9a-9a9a9a9a9a9a"
		mock.ExpectQuery("SELECT .+ FROM tasks WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(taskID, other).
			WillReturnError(pgx.ErrNoRows)

		task, err := postgres.NewTaskRepository(mock).GetForUser(ctx, other, taskID)
		assert.Nil(t, task)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		_, err = postgres.NewTaskRepository(mock).GetForUser(ctx, userID, "42")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskRepository_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("update keeps completion out of the statement", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE tasks\\s+SET title = \\$1, description = \\$2, due_date = \\$3\\s+WHERE id = \\$4 AND user_id = \\$5").
			WithArgs("New title", "desc", nil, taskID, userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		task := &entity.Task{ID: taskID, UserID: userID, Title: "New title", Description: "desc"}
		require.NoError(t, postgres.NewTaskRepository(mock).UpdateForUser(ctx, task))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update of foreign task", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE tasks").
			WithArgs("t", "", nil, taskID, userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		task := &entity.Task{ID: taskID, UserID: userID, Title: "t"}
		err = postgres.NewTaskRepository(mock).UpdateForUser(ctx, task)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("set completed", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE tasks SET completed = \\$1 WHERE id = \\$2 AND user_id = \\$3").
			WithArgs(true, taskID, userID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, postgres.NewTaskRepository(mock).SetCompleted(ctx, userID, taskID, true))
	})

	t.Run("delete missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM tasks WHERE id = \\$1 AND user_id = \\$2").
			WithArgs(taskID, userID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = postgres.NewTaskRepository(mock).DeleteForUser(ctx, userID, taskID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete driver error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(taskID, userID).
			WillReturnError(errors.New("broken pipe"))

		err = postgres.NewTaskRepository(mock).DeleteForUser(ctx, userID, taskID)
		assert.ErrorContains(t, err, "delete task")
		assert.NotErrorIs(t, err, repository.ErrNotFound)
	})
}
