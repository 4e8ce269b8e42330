package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/interface/web"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
)

type TaskHandler struct {
	pages
	Svc    *application.TaskService
	Flash  *web.Flashes
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, flash *web.Flashes, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{pages: pages{flash: flash}, Svc: svc, Flash: flash, Logger: logger}
}

type taskForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	DueDate     string `form:"dueDate"`
}

func (f taskForm) input() application.TaskInput {
	return application.TaskInput{Title: f.Title, Description: f.Description, DueDate: f.DueDate}
}

// TaskList is the data of the list pages.
type TaskList struct {
	Filter string
	Tasks  []*entity.Task
}

var listTitles = map[entity.TaskFilter]string{
	entity.FilterAll:       "All tasks",
	entity.FilterPending:   "Pending tasks",
	entity.FilterCompleted: "Completed tasks",
}

var listErrors = map[entity.TaskFilter]string{
	entity.FilterAll:       "Error fetching tasks",
	entity.FilterPending:   "Error fetching pending tasks",
	entity.FilterCompleted: "Error fetching completed tasks",
}

// List returns the handler of one filtered list page.
func (h *TaskHandler) List(filter entity.TaskFilter) HandlerFunc {
	return func(c *gin.Context, rs *web.Request) error {
		tasks, err := h.Svc.List(c.Request.Context(), rs.UserID(), filter)
		if err != nil {
			return Fail("/", listErrors[filter], err)
		}
		h.render(c, rs, http.StatusOK, "tasks/index", response.Page{
			Title: listTitles[filter],
			Data:  TaskList{Filter: filter.String(), Tasks: tasks},
		})
		return nil
	}
}

func (h *TaskHandler) New(c *gin.Context, rs *web.Request) error {
	h.render(c, rs, http.StatusOK, "tasks/new", response.Page{Title: "New task"})
	return nil
}

func (h *TaskHandler) Create(c *gin.Context, rs *web.Request) error {
	var req taskForm
	if err := c.ShouldBind(&req); err != nil {
		return Fail("/tasks/new", "Error creating task", err)
	}
	if _, err := h.Svc.Create(c.Request.Context(), rs.UserID(), req.input()); err != nil {
		return Fail("/tasks/new", "Error creating task", err)
	}
	h.Flash.Success(c, "Task created successfully")
	response.Redirect(c, "/tasks")
	return nil
}

func (h *TaskHandler) Edit(c *gin.Context, rs *web.Request) error {
	id := c.Param("id")
	t, err := h.Svc.Get(c.Request.Context(), rs.UserID(), id)
	if err != nil {
		return Fail("/tasks", "Error fetching task", err)
	}
	h.render(c, rs, http.StatusOK, "tasks/edit", response.Page{
		Title: "Edit task",
		Form: map[string]string{
			"id":          t.ID,
			"title":       t.Title,
			"description": t.Description,
			"dueDate":     helpers.FormatDate(t.DueDate),
		},
		Data: t,
	})
	return nil
}

// Update sends validation failures back to the edit form.
func (h *TaskHandler) Update(c *gin.Context, rs *web.Request) error {
	id := c.Param("id")
	var req taskForm
	if err := c.ShouldBind(&req); err != nil {
		return Fail("/tasks/"+id+"/edit", "Error updating task", err)
	}
	err := h.Svc.Update(c.Request.Context(), rs.UserID(), id, req.input())
	var verr *application.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		return Fail("/tasks/"+id+"/edit", "", err)
	default:
		return Fail("/tasks", "Error updating task", err)
	}
	h.Flash.Success(c, "Task updated successfully")
	response.Redirect(c, "/tasks")
	return nil
}

func (h *TaskHandler) Toggle(c *gin.Context, rs *web.Request) error {
	done, err := h.Svc.ToggleCompletion(c.Request.Context(), rs.UserID(), c.Param("id"))
	if err != nil {
		return Fail("/tasks", "Error updating task completion status", err)
	}
	state := "incomplete"
	if done {
		state = "complete"
	}
	h.Flash.Success(c, "Task marked as "+state)
	response.Redirect(c, "/tasks")
	return nil
}

func (h *TaskHandler) Delete(c *gin.Context, rs *web.Request) error {
	if err := h.Svc.Delete(c.Request.Context(), rs.UserID(), c.Param("id")); err != nil {
		return Fail("/tasks", "Error deleting task", err)
	}
	h.Flash.Success(c, "Task deleted successfully")
	response.Redirect(c, "/tasks")
	return nil
}
