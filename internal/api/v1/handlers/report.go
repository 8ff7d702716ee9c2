package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/logbookhq/logbook/internal/api/v1/services"
	"github.com/logbookhq/logbook/internal/types"
)

// ReportHandler handles the progress report endpoints
type ReportHandler struct {
	projects *services.Project
}

// NewReportHandler creates a new instance of ReportHandler
func NewReportHandler(projects *services.Project) *ReportHandler {
	return &ReportHandler{
		projects: projects,
	}
}

// ProjectReport handles retrieving the per-project progress rows
func (h *ReportHandler) ProjectReport(c *fiber.Ctx) error {
	rows, err := h.projects.BuildProjectReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(rows))
}
