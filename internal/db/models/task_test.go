package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskStatusIs(t *testing.T) {
	require.True(t, TaskStatus("completada").Is(TaskStatusCompleted))
	require.True(t, TaskStatus("EN PROGRESO").Is(TaskStatusInProgress))
	require.False(t, TaskStatus("pendiente").Is(TaskStatusCompleted))
}

func TestTaskNormalizeDuration(t *testing.T) {
	start := NewLocalTime(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	end := NewLocalTime(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	supplied := 99.0

	task := Task{Title: "Design", StartDate: &start, EndDate: &end, DurationHours: &supplied}
	task.NormalizeDuration()
	require.Equal(t, 3.0, *task.DurationHours, "date span overrides the supplied value")

	// With an incomplete date pair the supplied value survives
	task = Task{Title: "Design", StartDate: &start, DurationHours: &supplied}
	task.NormalizeDuration()
	require.Equal(t, 99.0, *task.DurationHours)

	task = Task{Title: "Design"}
	task.NormalizeDuration()
	require.Nil(t, task.DurationHours)
}

func TestTaskSameScope(t *testing.T) {
	one, two := uint(1), uint(2)

	require.True(t, (&Task{}).SameScope(&Task{}), "both ownerless")
	require.True(t, (&Task{ProjectID: &one}).SameScope(&Task{ProjectID: &one}))
	require.False(t, (&Task{ProjectID: &one}).SameScope(&Task{ProjectID: &two}))
	require.False(t, (&Task{ProjectID: &one}).SameScope(&Task{}))
	require.False(t, (&Task{}).SameScope(&Task{ProjectID: &two}))
}

func TestTaskValidate(t *testing.T) {
	require.Error(t, (&Task{}).Validate())
	require.NoError(t, (&Task{Title: "Design"}).Validate())
}
