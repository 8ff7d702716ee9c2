package types

import "github.com/logbookhq/logbook/internal/db/models"

// ProjectRef identifies an existing project inside a task request, by ID or
// by name
type ProjectRef struct {
	ID     *uint   `json:"id"`
	Nombre *string `json:"nombre"`
}

// TaskRequest is the body of the task create and update endpoints: the task
// fields plus an optional reference to the owning project
type TaskRequest struct {
	models.Task
	Proyecto *ProjectRef `json:"proyecto"`
}
