package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/logbookhq/logbook/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Save inserts or updates a task in the database
func (r *TaskRepository) Save(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Get retrieves a task by ID from the database
func (r *TaskRepository) Get(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves all tasks from the database
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error
	return tasks, err
}

// ListByProject retrieves all tasks owned by a specific project
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&tasks).Error
	return tasks, err
}

// FindByTitle retrieves a task by title using a case-insensitive full scan.
// Returns nil without an error when no task matches.
func (r *TaskRepository) FindByTitle(ctx context.Context, title string) (*models.Task, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if strings.EqualFold(tasks[i].Title, title) {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

// Delete removes a task by ID from the database
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

// DeleteByProject removes all tasks owned by a project
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.Task{}).Error
}
