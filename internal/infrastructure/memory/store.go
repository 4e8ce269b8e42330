// Package memory keeps users and tasks in process memory with the same
// ownership and uniqueness rules as the Postgres store. It backs
// STORE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

type Store struct {
	mu      sync.RWMutex
	users   map[string]entity.User
	byEmail map[string]string
	tasks   map[string]entity.Task
	order   []string // task ids in insertion order
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]entity.User),
		byEmail: make(map[string]string),
		tasks:   make(map[string]entity.Task),
		now:     time.Now,
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.byEmail[u.Email]; taken {
		return repository.ErrDuplicate
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.now()
	r.s.users[u.ID] = *u
	r.s.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

type TaskRepository struct{ s *Store }

func (r *TaskRepository) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = uuid.NewString()
	r.s.tasks[t.ID] = cloneTask(*t)
	r.s.order = append(r.s.order, t.ID)
	return nil
}

func (r *TaskRepository) ListByUser(_ context.Context, userID string, filter entity.TaskFilter) ([]*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Task, 0)
	for _, id := range r.s.order {
		t := r.s.tasks[id]
		if t.UserID != userID || !filter.Matches(&t) {
			continue
		}
		c := cloneTask(t)
		out = append(out, &c)
	}
	if filter == entity.FilterAll {
		sort.SliceStable(out, func(i, j int) bool { return dueBefore(out[i], out[j]) })
	}
	return out, nil
}

func (r *TaskRepository) GetForUser(_ context.Context, userID, id string) (*entity.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	c := cloneTask(t)
	return &c, nil
}

func (r *TaskRepository) UpdateForUser(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[t.ID]
	if !ok || cur.UserID != t.UserID {
		return repository.ErrNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.DueDate = cloneTime(t.DueDate)
	r.s.tasks[t.ID] = cur
	return nil
}

func (r *TaskRepository) SetCompleted(_ context.Context, userID, id string, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	cur.Completed = completed
	r.s.tasks[id] = cur
	return nil
}

func (r *TaskRepository) DeleteForUser(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	for i, oid := range r.s.order {
		if oid == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return nil
}

// dueBefore matches the Postgres ordering: due date ascending, undated last.
func dueBefore(a, b *entity.Task) bool {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return a.CreatedAt.Before(b.CreatedAt)
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	case a.DueDate.Equal(*b.DueDate):
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}

func cloneTask(t entity.Task) entity.Task {
	t.DueDate = cloneTime(t.DueDate)
	return t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.TaskRepository = (*TaskRepository)(nil)
)
