// Package routes registers the versioned API routes
package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logbookhq/logbook/internal/api/v1/handlers"
)

// Handlers bundles the handler set the router mounts
type Handlers struct {
	Projects *handlers.ProjectHandler
	Tasks    *handlers.TaskHandler
	Chat     *handlers.ChatHandler
	Reports  *handlers.ReportHandler
}

// SetupRoutes configures all the v1 routes
func SetupRoutes(router fiber.Router, h Handlers) {
	projects := router.Group("/projects")
	projects.Get("/", h.Projects.ListProjects)
	projects.Post("/", h.Projects.CreateProject)
	projects.Get("/:id", h.Projects.GetProject)
	projects.Put("/:id", h.Projects.UpdateProject)
	projects.Delete("/:id", h.Projects.DeleteProject)

	tasks := router.Group("/tasks")
	tasks.Get("/", h.Tasks.ListTasks)
	tasks.Post("/", h.Tasks.CreateTask)
	tasks.Get("/:id", h.Tasks.GetTask)
	tasks.Put("/:id", h.Tasks.UpdateTask)
	tasks.Delete("/:id", h.Tasks.DeleteTask)

	router.Post("/chat", h.Chat.Chat)

	reports := router.Group("/reports")
	reports.Get("/projects", h.Reports.ProjectReport)
}

// Register registers the v1 routes
func Register(app *fiber.App, h Handlers) {
	v1Group := app.Group("/api/v1")
	SetupRoutes(v1Group, h)
}
