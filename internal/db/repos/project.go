// Package repos provides database repository implementations
package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/logbookhq/logbook/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Save inserts or updates a project in the database
func (r *ProjectRepository) Save(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Get retrieves a project by ID from the database
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects from the database
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("id").Find(&projects).Error
	return projects, err
}

// FindByName retrieves a project by name using a case-insensitive full scan.
// Returns nil without an error when no project matches.
func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*models.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if strings.EqualFold(projects[i].Name, name) {
			return &projects[i], nil
		}
	}
	return nil, nil
}

// Delete removes a project by ID from the database
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}
