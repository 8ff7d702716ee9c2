package interpreter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logbookhq/logbook/internal/db/models"
)

func TestParseActionCreateProject(t *testing.T) {
	action, err := ParseAction(`{
		"accion": "crear",
		"tipo": "proyecto",
		"proyecto": {
			"nombre": "Alpha",
			"descripcion": "platform rewrite",
			"fechaInicio": "2026-09-01T09:00:00",
			"tareas": [{"titulo": "Design", "estado": "pendiente"}]
		}
	}`)
	require.NoError(t, err)
	require.True(t, action.Is(ActionCreate))
	require.True(t, action.IsProject())
	require.NotNil(t, action.Proyecto)

	project := action.Proyecto.ToProject()
	require.Equal(t, "Alpha", project.Name)
	require.Equal(t, "platform rewrite", *project.Description)
	require.NotNil(t, project.StartDate)
	require.Nil(t, project.EndDate)
	require.Len(t, project.Tasks, 1)
	require.Equal(t, "Design", project.Tasks[0].Title)
	require.Equal(t, models.TaskStatusPending, project.Tasks[0].Status)
}

func TestParseActionCaseInsensitiveVerbs(t *testing.T) {
	action, err := ParseAction(`{"accion":"CREAR","tipo":"Proyecto","proyecto":{"nombre":"Alpha"}}`)
	require.NoError(t, err)
	require.True(t, action.Is(ActionCreate))
	require.True(t, action.IsProject())
	require.False(t, action.IsTask())
}

func TestTaskPatchPresence(t *testing.T) {
	action, err := ParseAction(`{"accion":"actualizar","tipo":"tarea","titulo":"Design","tarea":{"estado":"Completada"}}`)
	require.NoError(t, err)
	patch := action.Tarea
	require.NotNil(t, patch)

	require.True(t, patch.Has(FieldEstado))
	require.Equal(t, "Completada", *patch.Estado)

	require.False(t, patch.Has(FieldTitulo))
	require.False(t, patch.Has(FieldFechaFin))
	require.False(t, patch.Has(FieldProyecto))
}

func TestTaskPatchExplicitNulls(t *testing.T) {
	action, err := ParseAction(`{"accion":"actualizar","tipo":"tarea","titulo":"Design","tarea":{"fechaFin":null,"proyecto":null}}`)
	require.NoError(t, err)
	patch := action.Tarea

	// present but nil: an explicit clear, distinct from absent
	require.True(t, patch.Has(FieldFechaFin))
	require.Nil(t, patch.FechaFin)
	require.True(t, patch.Has(FieldProyecto))
	require.Nil(t, patch.Proyecto)
}

func TestTaskPatchTolerantValues(t *testing.T) {
	action, err := ParseAction(`{"accion":"crear","tipo":"tarea","tarea":{
		"titulo": "Review",
		"duracionHoras": "12.5",
		"fechaInicio": "not a date",
		"fechaFin": "null",
		"sorpresa": true
	}}`)
	require.NoError(t, err)
	patch := action.Tarea

	require.Equal(t, 12.5, *patch.DuracionHoras)
	require.Nil(t, patch.FechaInicio, "unparseable date degrades to absent")
	require.Nil(t, patch.FechaFin, "literal string null degrades to absent")
	require.True(t, patch.Has("sorpresa"), "unknown fields are recorded but ignored")
}

func TestTaskPatchNumericHours(t *testing.T) {
	action, err := ParseAction(`{"accion":"crear","tipo":"tarea","tarea":{"titulo":"Review","duracionHoras":3}}`)
	require.NoError(t, err)
	require.Equal(t, 3.0, *action.Tarea.DuracionHoras)
}

func TestTaskPatchProjectRef(t *testing.T) {
	action, err := ParseAction(`{"accion":"crear","tipo":"tarea","tarea":{"titulo":"Review","proyecto":{"nombre":"Alpha"}}}`)
	require.NoError(t, err)
	ref := action.Tarea.Proyecto
	require.NotNil(t, ref)
	require.Nil(t, ref.ID)
	require.Equal(t, "Alpha", *ref.Nombre)
}

func TestParseActionMalformed(t *testing.T) {
	_, err := ParseAction(`I could not extract any command from that.`)
	require.Error(t, err)
}

func TestParseActionList(t *testing.T) {
	actions, err := ParseActionList(`[
		{"accion":"crear","tipo":"proyecto","proyecto":{"nombre":"Alpha"}},
		{"accion":"crear","tipo":"tarea","tarea":{"titulo":"Design","proyecto":{"nombre":"Alpha"}}}
	]`)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	require.True(t, actions[0].IsProject())
	require.True(t, actions[1].IsTask())
	require.Equal(t, "Design", actions[1].TargetTitle())

	_, err = ParseActionList(`{"accion":"crear"}`)
	require.Error(t, err, "a single object is not a transcript reply")
}

func TestTargetTitleFallsBackToNombre(t *testing.T) {
	action, err := ParseAction(`{"accion":"eliminar","tipo":"tarea","nombre":"Design"}`)
	require.NoError(t, err)
	require.Equal(t, "Design", action.TargetTitle())
}
