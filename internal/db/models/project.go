package models

import (
	"fmt"
	"time"
)

// Project is a top-level logbook entry that owns zero or more tasks.
// DurationHours is derived: the project's own date range wins, otherwise the
// sum of the owned tasks' hours, otherwise null. Services recompute it on
// every save; a value supplied by a caller is never trusted.
type Project struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"nombre" gorm:"not null;index"`
	Description   *string    `json:"descripcion" gorm:"type:text"`
	StartDate     *LocalTime `json:"fechaInicio"`
	EndDate       *LocalTime `json:"fechaFin"`
	DurationHours *float64   `json:"duracionHoras"`
	CreatedAt     time.Time  `json:"fechaCreacion" gorm:"index"`
	Tasks         []Task     `json:"tareas" gorm:"foreignKey:ProjectID"`
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return nil
}
