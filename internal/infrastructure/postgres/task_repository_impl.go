package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

const taskColumns = `id, user_id, title, description, due_date, completed, created_at`

type TaskRepository struct {
	db DB
}

func NewTaskRepository(db DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO tasks (user_id, title, description, due_date, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, t.UserID, t.Title, t.Description, dateArg(t.DueDate), t.Completed, t.CreatedAt)

	if err := row.Scan(&t.ID); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string, filter entity.TaskFilter) ([]*entity.Task, error) {
	if !validID(userID) {
		return []*entity.Task{}, nil
	}

	var (
		rows pgx.Rows
		err  error
	)
	switch filter {
	case entity.FilterPending, entity.FilterCompleted:
		rows, err = r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND completed = $2`,
			userID, filter == entity.FilterCompleted)
	default:
		rows, err = r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1
			ORDER BY due_date ASC NULLS LAST, created_at ASC`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (r *TaskRepository) GetForUser(ctx context.Context, userID, id string) (*entity.Task, error) {
	if !validID(id) || !validID(userID) {
		return nil, repository.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateForUser rewrites title, description and due date; completion is
// left untouched.
func (r *TaskRepository) UpdateForUser(ctx context.Context, t *entity.Task) error {
	if !validID(t.ID) || !validID(t.UserID) {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3
		WHERE id = $4 AND user_id = $5
	`, t.Title, t.Description, dateArg(t.DueDate), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	if !validID(id) || !validID(userID) {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET completed = $1 WHERE id = $2 AND user_id = $3`, completed, id, userID)
	if err != nil {
		return fmt.Errorf("set task completion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteForUser(ctx context.Context, userID, id string) error {
	if !validID(id) || !validID(userID) {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var (
		t   entity.Task
		due pgtype.Date
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &due, &t.Completed, &t.CreatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return &t, nil
}

func dateArg(d *time.Time) any {
	if d == nil {
		return nil
	}
	return *d
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
