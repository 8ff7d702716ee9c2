package services

import (
	"context"
	"errors"

	"github.com/logbookhq/logbook/internal/db/models"
	"github.com/logbookhq/logbook/internal/db/repos"
	"github.com/logbookhq/logbook/internal/logger"
)

// Task service errors
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskSaveFailed = errors.New("failed to save task")
)

// ProjectReconciler recomputes a project's derived duration. The task service
// depends on this narrow interface rather than the full project service.
type ProjectReconciler interface {
	Reconcile(ctx context.Context, projectID uint) error
}

// Task provides business logic for task operations. Saving or deleting a task
// re-aggregates the owning project's duration; the two writes are not atomic,
// so a failure in between leaves a stale aggregate that heals on the next
// mutation of the same project.
type Task struct {
	repo     *repos.TaskRepository
	projects ProjectReconciler
}

// NewTaskService creates a new task service instance
func NewTaskService(repo *repos.TaskRepository, projects ProjectReconciler) *Task {
	return &Task{
		repo:     repo,
		projects: projects,
	}
}

// List retrieves all tasks
func (s *Task) List(ctx context.Context) ([]models.Task, error) {
	return s.repo.List(ctx)
}

// Get retrieves a task by ID
func (s *Task) Get(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.Join(ErrTaskNotFound, err)
	}
	return task, nil
}

// FindByTitle retrieves a task by title, case-insensitively. Returns nil
// without an error when no task matches.
func (s *Task) FindByTitle(ctx context.Context, title string) (*models.Task, error) {
	return s.repo.FindByTitle(ctx, title)
}

// ListByProject retrieves all tasks owned by a project
func (s *Task) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Save validates and persists a task, then reconciles the duration of its
// owner. When the save moved the task between projects the former owner is
// reconciled as well.
func (s *Task) Save(ctx context.Context, task *models.Task) error {
	if err := task.Validate(); err != nil {
		return errors.Join(ErrTaskSaveFailed, err)
	}

	var formerOwner *uint
	if task.ID != 0 {
		if stored, err := s.repo.Get(ctx, task.ID); err == nil {
			formerOwner = stored.ProjectID
		}
	}

	task.NormalizeDuration()
	if err := s.repo.Save(ctx, task); err != nil {
		return errors.Join(ErrTaskSaveFailed, err)
	}

	if task.ProjectID != nil {
		if err := s.projects.Reconcile(ctx, *task.ProjectID); err != nil {
			return err
		}
	}
	if formerOwner != nil && (task.ProjectID == nil || *formerOwner != *task.ProjectID) {
		if err := s.projects.Reconcile(ctx, *formerOwner); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a task and re-aggregates its former owner's duration
func (s *Task) Delete(ctx context.Context, id uint) error {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return errors.Join(ErrTaskNotFound, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if task.ProjectID != nil {
		if err := s.projects.Reconcile(ctx, *task.ProjectID); err != nil {
			return err
		}
	}
	logger.Debugf("deleted task %d", id)
	return nil
}
