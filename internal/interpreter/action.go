package interpreter

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/logbookhq/logbook/internal/db/models"
)

// Action verbs and entity kinds as they appear on the wire
const (
	ActionCreate = "crear"
	ActionUpdate = "actualizar"
	ActionDelete = "eliminar"

	KindProject = "proyecto"
	KindTask    = "tarea"
)

// Wire field names of the entity payloads
const (
	FieldNombre        = "nombre"
	FieldTitulo        = "titulo"
	FieldDescripcion   = "descripcion"
	FieldEstado        = "estado"
	FieldFechaInicio   = "fechaInicio"
	FieldFechaFin      = "fechaFin"
	FieldDuracionHoras = "duracionHoras"
	FieldObservaciones = "observaciones"
	FieldProyecto      = "proyecto"
	FieldTareas        = "tareas"
)

// Action is one extracted command: a verb, an entity kind, an identifying
// name or title for update/delete, and a partial payload for the entity.
type Action struct {
	Accion   string        `json:"accion"`
	Tipo     string        `json:"tipo"`
	Nombre   string        `json:"nombre"`
	Titulo   string        `json:"titulo"`
	Proyecto *ProjectPatch `json:"proyecto"`
	Tarea    *TaskPatch    `json:"tarea"`
}

// Is compares the action verb case-insensitively
func (a *Action) Is(verb string) bool {
	return strings.EqualFold(a.Accion, verb)
}

// IsProject reports whether the action targets a project
func (a *Action) IsProject() bool {
	return strings.EqualFold(a.Tipo, KindProject)
}

// IsTask reports whether the action targets a task
func (a *Action) IsTask() bool {
	return strings.EqualFold(a.Tipo, KindTask)
}

// TargetTitle returns the identifying title of a task action; the model
// sometimes puts it under "nombre" instead of "titulo"
func (a *Action) TargetTitle() string {
	if a.Titulo != "" {
		return a.Titulo
	}
	return a.Nombre
}

// ParseAction decodes a single action object
func ParseAction(content string) (*Action, error) {
	var action Action
	if err := json.Unmarshal([]byte(content), &action); err != nil {
		return nil, err
	}
	return &action, nil
}

// ParseActionList decodes an array of action objects (transcript mode)
func ParseActionList(content string) ([]Action, error) {
	var actions []Action
	if err := json.Unmarshal([]byte(content), &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// ProjectRef is a by-name (or by-ID) reference to a project embedded in a
// task payload. It identifies the project; it never owns it.
type ProjectRef struct {
	ID     *uint   `json:"id"`
	Nombre *string `json:"nombre"`
}

// ProjectPatch is the partial project payload of an action. Every field is
// optional; Has reports whether a field appeared in the JSON at all, which
// is distinct from it being null.
type ProjectPatch struct {
	Nombre      *string
	Descripcion *string
	FechaInicio *models.LocalTime
	FechaFin    *models.LocalTime
	Tareas      []TaskPatch

	present map[string]bool
}

// Has reports whether the field appeared in the payload
func (p *ProjectPatch) Has(field string) bool {
	return p.present[field]
}

// UnmarshalJSON decodes the payload tolerantly: unknown fields are ignored,
// malformed values degrade to absent, and field presence is recorded.
// The wire's duracionHoras is deliberately dropped: project duration is
// derived, never caller-supplied.
func (p *ProjectPatch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	p.present = make(map[string]bool, len(fields))
	for key, raw := range fields {
		p.present[key] = true
		switch key {
		case FieldNombre:
			p.Nombre = decodeString(raw)
		case FieldDescripcion:
			p.Descripcion = decodeString(raw)
		case FieldFechaInicio:
			p.FechaInicio = decodeDate(raw)
		case FieldFechaFin:
			p.FechaFin = decodeDate(raw)
		case FieldTareas:
			_ = json.Unmarshal(raw, &p.Tareas)
		}
	}
	return nil
}

// ToProject builds a new project entity from the patch, embedded tasks
// included
func (p *ProjectPatch) ToProject() *models.Project {
	project := &models.Project{}
	if p.Nombre != nil {
		project.Name = strings.TrimSpace(*p.Nombre)
	}
	project.Description = p.Descripcion
	project.StartDate = p.FechaInicio
	project.EndDate = p.FechaFin
	for i := range p.Tareas {
		project.Tasks = append(project.Tasks, *p.Tareas[i].ToTask())
	}
	return project
}

// TaskPatch is the partial task payload of an action, with the same
// presence-tracking semantics as ProjectPatch. Proyecto may be present and
// nil, which means an explicit detach.
type TaskPatch struct {
	Titulo        *string
	Descripcion   *string
	Estado        *string
	FechaInicio   *models.LocalTime
	FechaFin      *models.LocalTime
	DuracionHoras *float64
	Observaciones *string
	Proyecto      *ProjectRef

	present map[string]bool
}

// Has reports whether the field appeared in the payload
func (p *TaskPatch) Has(field string) bool {
	return p.present[field]
}

// UnmarshalJSON decodes the payload tolerantly, recording field presence
func (p *TaskPatch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	p.present = make(map[string]bool, len(fields))
	for key, raw := range fields {
		p.present[key] = true
		switch key {
		case FieldTitulo:
			p.Titulo = decodeString(raw)
		case FieldDescripcion:
			p.Descripcion = decodeString(raw)
		case FieldEstado:
			p.Estado = decodeString(raw)
		case FieldFechaInicio:
			p.FechaInicio = decodeDate(raw)
		case FieldFechaFin:
			p.FechaFin = decodeDate(raw)
		case FieldDuracionHoras:
			p.DuracionHoras = decodeHours(raw)
		case FieldObservaciones:
			p.Observaciones = decodeString(raw)
		case FieldProyecto:
			var ref ProjectRef
			if err := json.Unmarshal(raw, &ref); err == nil && (ref.ID != nil || ref.Nombre != nil) {
				p.Proyecto = &ref
			}
		}
	}
	return nil
}

// ToTask builds a new task entity from the patch. The project reference is
// not resolved here; that is the engine's job.
func (p *TaskPatch) ToTask() *models.Task {
	task := &models.Task{}
	if p.Titulo != nil {
		task.Title = strings.TrimSpace(*p.Titulo)
	}
	task.Description = p.Descripcion
	if p.Estado != nil {
		task.Status = models.TaskStatus(*p.Estado)
	}
	task.StartDate = p.FechaInicio
	task.EndDate = p.FechaFin
	task.DurationHours = p.DuracionHoras
	task.Notes = p.Observaciones
	return task
}

func decodeString(raw json.RawMessage) *string {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}

// decodeDate parses a wire timestamp. Null, the literal string "null", the
// empty string and unparseable values all degrade to absent.
func decodeDate(raw json.RawMessage) *models.LocalTime {
	s := decodeString(raw)
	if s == nil || *s == "" || strings.EqualFold(*s, "null") {
		return nil
	}
	parsed, err := models.ParseLocalTime(*s)
	if err != nil {
		return nil
	}
	return &parsed
}

// decodeHours accepts a JSON number or a numeric string
func decodeHours(raw json.RawMessage) *float64 {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	s := decodeString(raw)
	if s == nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil
	}
	return &n
}
