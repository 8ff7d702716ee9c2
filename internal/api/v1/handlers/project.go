// Package handlers provides HTTP request handling
package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/logbookhq/logbook/internal/api/v1/services"
	"github.com/logbookhq/logbook/internal/db/models"
	"github.com/logbookhq/logbook/internal/types"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	service *services.Project
}

// NewProjectHandler creates a new instance of ProjectHandler
func NewProjectHandler(service *services.Project) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// ListProjects handles retrieving all projects
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(projects))
}

// GetProject handles retrieving a project by ID
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid project id"))
	}

	project, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(err.Error()))
	}
	return c.JSON(types.Success(project))
}

// CreateProject handles creating a new project
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid request body"))
	}
	project.ID = 0

	if err := h.service.Save(c.Context(), &project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(types.Success(project))
}

// UpdateProject handles updating the mutable fields of an existing project.
// The stored duration is recomputed on save regardless of what the caller
// supplied.
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid project id"))
	}

	project, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(err.Error()))
	}

	var body models.Project
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid request body"))
	}

	project.Name = body.Name
	project.Description = body.Description
	project.StartDate = body.StartDate
	project.EndDate = body.EndDate
	project.Tasks = nil

	if err := h.service.Save(c.Context(), project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(project))
}

// DeleteProject handles deleting a project and all the tasks it owns
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput("invalid project id"))
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrNotFound(err.Error()))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
