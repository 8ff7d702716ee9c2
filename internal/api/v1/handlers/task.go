package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/logbookhq/logbook/internal/api/v1/services"
	"github.com/logbookhq/logbook/internal/types"
)

// TaskHandler handles HTTP requests for tasks
type TaskHandler struct {
	service  *services.Task
	projects *services.Project
}

// NewTaskHandler creates a new instance of TaskHandler
func NewTaskHandler(service *services.Task, projects *services.Project) *TaskHandler {
	return &TaskHandler{
		service:  service,
		projects: projects,
	}
}

// ListTasks handles retrieving all tasks
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(tasks))
}

// GetTask handles retrieving a task by ID
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid task id"))
	}

	task, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(err.Error()))
	}
	return c.JSON(types.Success(task))
}

// CreateTask handles creating a new task. An unresolvable project reference
// leaves the task ownerless rather than failing the creation.
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req types.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid request body"))
	}

	task := req.Task
	task.ID = 0
	task.ProjectID = nil
	if id := h.resolveProject(c, req.Proyecto); id != nil {
		task.ProjectID = id
	}

	if err := h.service.Save(c.Context(), &task); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(types.Success(task))
}

// UpdateTask handles updating an existing task with partial semantics: only
// the non-null fields of the body are applied, and the project association
// is only replaced when the body names a different resolvable project.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid task id"))
	}

	task, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(err.Error()))
	}

	var req types.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid request body"))
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		task.EndDate = req.EndDate
	}
	if req.DurationHours != nil {
		task.DurationHours = req.DurationHours
	}
	if req.Notes != nil {
		task.Notes = req.Notes
	}
	if newOwner := h.resolveProject(c, req.Proyecto); newOwner != nil {
		if task.ProjectID == nil || *task.ProjectID != *newOwner {
			task.ProjectID = newOwner
		}
	}

	if err := h.service.Save(c.Context(), task); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(task))
}

// DeleteTask handles deleting a task
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid task id"))
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(err.Error()))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// resolveProject resolves a request's project reference to a project ID, by
// ID first and then by name, case-insensitively. Returns nil on a miss.
func (h *TaskHandler) resolveProject(c *fiber.Ctx, ref *types.ProjectRef) *uint {
	if ref == nil {
		return nil
	}
	if ref.ID != nil {
		if project, err := h.projects.Get(c.Context(), *ref.ID); err == nil {
			return &project.ID
		}
		return nil
	}
	if ref.Nombre != nil && *ref.Nombre != "" {
		if project, err := h.projects.FindByName(c.Context(), *ref.Nombre); err == nil && project != nil {
			return &project.ID
		}
	}
	return nil
}
