// Package services provides business logic for project and task operations
package services

import (
	"context"
	"errors"

	"github.com/logbookhq/logbook/internal/db/models"
	"github.com/logbookhq/logbook/internal/db/repos"
	"github.com/logbookhq/logbook/internal/logger"
	"github.com/logbookhq/logbook/internal/types"
)

// Project service errors
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectSaveFailed = errors.New("failed to save project")
)

// Project provides business logic for project operations. Every save passes
// through duration reconciliation: the stored DurationHours is always derived
// from the project's own date range or its tasks, never taken from the caller.
type Project struct {
	repo  *repos.ProjectRepository
	tasks *repos.TaskRepository
}

// NewProjectService creates a new project service instance
func NewProjectService(repo *repos.ProjectRepository, tasks *repos.TaskRepository) *Project {
	return &Project{
		repo:  repo,
		tasks: tasks,
	}
}

// List retrieves all projects with their tasks attached
func (s *Project) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		tasks, err := s.tasks.ListByProject(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Tasks = tasks
	}
	return projects, nil
}

// Get retrieves a project by ID with its tasks attached
func (s *Project) Get(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}
	tasks, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Tasks = tasks
	return project, nil
}

// FindByName retrieves a project by name, case-insensitively. Returns nil
// without an error when no project matches.
func (s *Project) FindByName(ctx context.Context, name string) (*models.Project, error) {
	return s.repo.FindByName(ctx, name)
}

// Save validates and persists a project after recomputing its duration from
// the current task set. A new project's embedded tasks are persisted with it.
func (s *Project) Save(ctx context.Context, project *models.Project) error {
	if err := project.Validate(); err != nil {
		return errors.Join(ErrProjectSaveFailed, err)
	}

	embedded := project.Tasks
	project.Tasks = nil

	if err := s.repo.Save(ctx, project); err != nil {
		return errors.Join(ErrProjectSaveFailed, err)
	}

	for i := range embedded {
		embedded[i].ProjectID = &project.ID
		embedded[i].NormalizeDuration()
		if err := s.tasks.Save(ctx, &embedded[i]); err != nil {
			return errors.Join(ErrProjectSaveFailed, err)
		}
	}
	project.Tasks = embedded

	return s.Reconcile(ctx, project.ID)
}

// Delete removes a project and all the tasks it owns
func (s *Project) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return errors.Join(ErrProjectNotFound, err)
	}
	if err := s.tasks.DeleteByProject(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Reconcile recomputes and persists the derived duration of a project from
// its current task set. It is triggered by every task mutation touching the
// project and by every project save; a stale aggregate left by a failure in
// between heals on the next call.
func (s *Project) Reconcile(ctx context.Context, projectID uint) error {
	project, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return errors.Join(ErrProjectNotFound, err)
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}

	project.DurationHours = ComputeProjectDuration(project, tasks)
	if err := s.repo.Save(ctx, project); err != nil {
		return errors.Join(ErrProjectSaveFailed, err)
	}
	logger.Debugf("reconciled duration for project %d", projectID)
	return nil
}

// ComputeProjectDuration applies the duration priority rule: the project's
// own date range wins; otherwise the sum of the tasks' non-null hours; when
// neither yields a value the duration is null ("unknown" is distinct from
// zero).
func ComputeProjectDuration(project *models.Project, tasks []models.Task) *float64 {
	if project.StartDate != nil && project.EndDate != nil {
		hours := models.Hours(*project.StartDate, *project.EndDate)
		return &hours
	}

	total := 0.0
	counted := false
	for i := range tasks {
		if tasks[i].DurationHours != nil {
			total += *tasks[i].DurationHours
			counted = true
		}
	}
	if !counted {
		return nil
	}
	return &total
}

// BuildProjectReport builds the per-project progress rows exposed by the
// reports endpoint
func (s *Project) BuildProjectReport(ctx context.Context) ([]types.ProjectReportRow, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]types.ProjectReportRow, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		completed := 0
		for j := range p.Tasks {
			if p.Tasks[j].Status.Is(models.TaskStatusCompleted) {
				completed++
			}
		}
		progress := 0.0
		if len(p.Tasks) > 0 {
			progress = float64(completed) * 100.0 / float64(len(p.Tasks))
		}
		rows = append(rows, types.ProjectReportRow{
			ID:            p.ID,
			Nombre:        p.Name,
			TotalHoras:    p.DurationHours,
			TareasTotales: len(p.Tasks),
			TareasHechas:  completed,
			Progreso:      progress,
		})
	}
	return rows, nil
}
