package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type TaskService struct {
	Tasks        repo.TaskRepository
	Validator    *validation.Validator
	Logger       *logrus.Logger
	StoreTimeout time.Duration
	Now          func() time.Time
}

func NewTaskService(tasks repo.TaskRepository, logger *logrus.Logger, storeTimeout time.Duration) *TaskService {
	return &TaskService{
		Tasks:        tasks,
		Validator:    validation.New(),
		Logger:       logger,
		StoreTimeout: storeTimeout,
		Now:          time.Now,
	}
}

// TaskInput is a task form submission. DueDate is empty, YYYY-MM-DD or
// RFC 3339.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
}

type taskFields struct {
	title       string
	description string
	due         *time.Time
}

func (s *TaskService) validate(in TaskInput) (taskFields, error) {
	f := taskFields{
		title:       strings.TrimSpace(in.Title),
		description: strings.TrimSpace(in.Description),
	}
	chk := s.Validator.Check().
		Field("title", f.title, titleRules...).
		Field("description", f.description, descriptionRules...)

	due, ok := helpers.ParseDueDate(in.DueDate)
	if !ok {
		chk.Fail("dueDate", msgInvalidDate)
	}
	f.due = due
	return f, asValidationError(chk.Err())
}

func (s *TaskService) Create(ctx context.Context, userID string, in TaskInput) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	f, err := s.validate(in)
	if err != nil {
		return "", err
	}

	t := &entity.Task{
		UserID:      userID,
		Title:       f.title,
		Description: f.description,
		DueDate:     f.due,
		Completed:   false,
		CreatedAt:   s.Now().UTC(),
	}
	sctx, cancel := boundedStoreCtx(ctx, s.StoreTimeout)
	defer cancel()
	if err := s.Tasks.Create(sctx, t); err != nil {
		return "", storeErr(err)
	}

	metrics.TasksCreated.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "task_id": t.ID}).Debug("task created")
	}
	return t.ID, nil
}

// List returns the user's tasks. FilterAll is ordered by due date; the
// filtered views come back in store order.
func (s *TaskService) List(ctx context.Context, userID string, filter entity.TaskFilter) ([]*entity.Task, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	sctx, cancel := boundedStoreCtx(ctx, s.StoreTimeout)
	defer cancel()
	tasks, err := s.Tasks.ListByUser(sctx, userID, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}

// Get returns ErrNotFound alike for missing tasks and tasks of other users.
func (s *TaskService) Get(ctx context.Context, userID, id string) (*entity.Task, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	sctx, cancel := boundedStoreCtx(ctx, s.StoreTimeout)
	defer cancel()
	t, err := s.Tasks.GetForUser(sctx, userID, id)
	if err != nil {
		return nil, mapTaskErr(err)
	}
	return t, nil
}

// Update rewrites title, description and due date. Completion is unchanged.
func (s *TaskService) Update(ctx context.Context, userID, id string, in TaskInput) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	f, err := s.validate(in)
	if err != nil {
		return err
	}
	sctx, cancel := boundedStoreCtx(ctx, s.StoreTimeout)
	defer cancel()
	err = s.Tasks.UpdateForUser(sctx, &entity.Task{
		ID:          id,
		UserID:      userID,
		Title:       f.title,
		Description: f.description,
		DueDate:     f.due,
	})
	return mapTaskErr(err)
}

// ToggleCompletion flips the completion flag and returns the new value.
func (s *TaskService) ToggleCompletion(ctx context.Context, userID, id string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}
	sctx, cancel := boundedStoreCtx(ctx, s.StoreTimeout)
	defer cancel()
	t, err := s.Tasks.GetForUser(sctx, userID, id)
	if err != nil {
		return false, mapTaskErr(err)
	}
	next := !t.Completed
	if err := s.Tasks.SetCompleted(sctx, userID, id, next); err != nil {
		return false, mapTaskErr(err)
	}
	return next, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	sctx, cancel := boundedStoreCtx(ctx, s.StoreTimeout)
	defer cancel()
	return mapTaskErr(s.Tasks.DeleteForUser(sctx, userID, id))
}

func mapTaskErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	default:
		return storeErr(err)
	}
}
