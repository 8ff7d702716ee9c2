package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TaskStatus is the lifecycle label of a task. The set is open: the
// extraction model and API callers may introduce new labels, so comparisons
// are case-insensitive and unknown values are stored as-is.
type TaskStatus string

// Well-known task statuses, as they appear on the wire
const (
	// TaskStatusPending indicates the task has not been started
	TaskStatusPending TaskStatus = "pendiente"
	// TaskStatusInProgress indicates the task is being worked on
	TaskStatusInProgress TaskStatus = "En progreso"
	// TaskStatusCompleted indicates the task is done
	TaskStatusCompleted TaskStatus = "Completada"
)

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// Is compares two statuses case-insensitively
func (s TaskStatus) Is(other TaskStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// Task is a unit of work, optionally owned by a project. ProjectID is a weak
// back-reference resolved through the store; a nil ProjectID means the task
// is ownerless. Title uniqueness is scoped to the owning project (or to "no
// project"), not global.
type Task struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Title         string     `json:"titulo" gorm:"not null;index"`
	Description   *string    `json:"descripcion" gorm:"type:text"`
	Status        TaskStatus `json:"estado" gorm:"index"`
	StartDate     *LocalTime `json:"fechaInicio"`
	EndDate       *LocalTime `json:"fechaFin"`
	DurationHours *float64   `json:"duracionHoras"`
	Notes         *string    `json:"observaciones" gorm:"type:text"`
	CreatedAt     time.Time  `json:"fechaCreacion" gorm:"index"`
	ProjectID     *uint      `json:"-" gorm:"index"`
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return t.Validate()
}

// NormalizeDuration recomputes DurationHours from the task's own date pair.
// When both dates are present the computed span is authoritative and
// overrides any supplied value; otherwise the supplied value is kept.
func (t *Task) NormalizeDuration() {
	if t.StartDate != nil && t.EndDate != nil {
		hours := Hours(*t.StartDate, *t.EndDate)
		t.DurationHours = &hours
	}
}

// SameScope reports whether both tasks live in the same ownership scope:
// both ownerless, or both owned by the same project
func (t *Task) SameScope(other *Task) bool {
	if t.ProjectID == nil || other.ProjectID == nil {
		return t.ProjectID == nil && other.ProjectID == nil
	}
	return *t.ProjectID == *other.ProjectID
}
