package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/logbookhq/logbook/internal/db/models"
	"github.com/logbookhq/logbook/internal/llm"
	"github.com/logbookhq/logbook/internal/logger"
)

// ProjectStore is the slice of the project service the engine needs.
// Saving reconciles the project's derived duration; deleting cascades to the
// owned tasks.
type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id uint) (*models.Project, error)
	FindByName(ctx context.Context, name string) (*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
}

// TaskStore is the slice of the task service the engine needs. Saving and
// deleting re-aggregate the owning project's duration.
type TaskStore interface {
	List(ctx context.Context) ([]models.Task, error)
	FindByTitle(ctx context.Context, title string) (*models.Task, error)
	Save(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
}

// Completer is the language-model collaborator: text in, text out, untrusted
type Completer interface {
	Complete(ctx context.Context, system, user string, params llm.Params) (string, error)
}

// Completion tuning per interpretation path
var (
	commandParams = llm.Params{Temperature: 0.0, MaxTokens: 1000}
	meetingParams = llm.Params{Temperature: 0.1, MaxTokens: 2000}
)

// Engine interprets free-form user messages as project and task mutations.
// It is invoked synchronously per request, holds no locks, and performs no
// internal parallelism; concurrent instances rely on the storage layer to
// serialize conflicting writes.
type Engine struct {
	projects ProjectStore
	tasks    TaskStore
	llm      Completer
	now      func() time.Time
}

// NewEngine creates an engine. A nil clock defaults to time.Now; tests pass
// a fixed clock to pin prompt rendering and date normalization.
func NewEngine(projects ProjectStore, tasks TaskStore, completer Completer, clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		projects: projects,
		tasks:    tasks,
		llm:      completer,
		now:      clock,
	}
}

// Interpret processes one user message and always returns a human-readable
// report; every failure is converted to a descriptive string, never raised
// past this boundary.
func (e *Engine) Interpret(ctx context.Context, message string) string {
	if IsMeetingTranscript(message) {
		return e.interpretTranscript(ctx, message)
	}
	return e.interpretCommand(ctx, message)
}

// interpretCommand runs the single-command path: one prompt, one extracted
// action, one mutation.
func (e *Engine) interpretCommand(ctx context.Context, message string) string {
	now := e.now().Truncate(time.Second).Format(models.Layout)

	prompt, err := renderPrompt("command.tmpl", promptData{Now: now})
	if err != nil {
		return fmt.Sprintf("%s Could not build the instruction prompt: %v", warnMark, err)
	}

	raw, err := e.llm.Complete(ctx, fmt.Sprintf(commandSystemPrompt, now), prompt+"\n\n"+message, commandParams)
	if err != nil {
		return e.upstreamError(err)
	}

	content := NormalizeDates(StripFences(raw), e.now())
	return e.executeAction(ctx, content)
}

// interpretTranscript runs the meeting path: extract an array of creation
// actions and apply them in two passes, projects before loose tasks, so that
// a project created in pass one is visible to task resolution in pass two.
func (e *Engine) interpretTranscript(ctx context.Context, transcript string) string {
	now := e.now().Truncate(time.Second).Format(models.Layout)

	prompt, err := renderPrompt("meeting.tmpl", promptData{Now: now, Text: transcript})
	if err != nil {
		return fmt.Sprintf("%s Could not build the meeting prompt: %v", warnMark, err)
	}

	raw, err := e.llm.Complete(ctx, meetingSystemPrompt, prompt, meetingParams)
	if err != nil {
		return e.upstreamError(err)
	}

	content := NormalizeDates(StripFences(raw), e.now())
	actions, err := ParseActionList(content)
	if err != nil {
		// The extraction was unusable as a batch; the message may still work
		// as a single command.
		return fmt.Sprintf("%s Could not analyze the meeting. Error: %v\n\nTrying to process it as a single command...\n\n%s",
			warnMark, err, e.interpretCommand(ctx, transcript))
	}

	report := NewReport()
	report.Linef("📋 **Meeting analysis completed:**\n")

	projectsCreated := 0
	tasksCreated := 0
	batch := map[string]*models.Project{}

	for i := range actions {
		action := &actions[i]
		if !action.Is(ActionCreate) || !action.IsProject() || action.Proyecto == nil {
			continue
		}
		project := action.Proyecto.ToProject()
		if project.Name == "" {
			report.Linef("%s Skipped a project without a name", warnMark)
			continue
		}

		exists, err := e.projectExists(ctx, project.Name, 0)
		if err != nil {
			report.Linef("%s Storage error checking project %s: %v", warnMark, project.Name, err)
			continue
		}
		if exists {
			report.Linef("%s A project with the name %s already exists", warnMark, project.Name)
			continue
		}

		if err := e.projects.Save(ctx, project); err != nil {
			report.Linef("%s Could not save project %s: %v", warnMark, project.Name, err)
			continue
		}
		batch[strings.ToLower(project.Name)] = project
		projectsCreated++

		if len(project.Tasks) > 0 {
			report.Linef("%s **Project created:** %s with %d tasks", okMark, project.Name, len(project.Tasks))
			tasksCreated += len(project.Tasks)
		} else {
			report.Linef("%s **Project created:** %s", okMark, project.Name)
		}
		if project.Description != nil {
			report.Linef("   📝 %s", *project.Description)
		}
	}

	for i := range actions {
		action := &actions[i]
		if !action.Is(ActionCreate) || !action.IsTask() || action.Tarea == nil {
			continue
		}
		patch := action.Tarea
		task := patch.ToTask()
		if task.Title == "" {
			report.Linef("%s Skipped a task without a title", warnMark)
			continue
		}

		if owner := e.resolveProjectRef(ctx, batch, patch.Proyecto); owner != nil {
			task.ProjectID = &owner.ID
		}

		exists, err := e.taskExists(ctx, task.Title, task.ProjectID, 0)
		if err != nil {
			report.Linef("%s Storage error checking task %s: %v", warnMark, task.Title, err)
			continue
		}
		if exists {
			report.Linef("%s A task with the title %s already exists", warnMark, task.Title)
			continue
		}

		if err := e.tasks.Save(ctx, task); err != nil {
			report.Linef("%s Could not save task %s: %v", warnMark, task.Title, err)
			continue
		}
		tasksCreated++

		if task.ProjectID != nil {
			if owner, err := e.projects.Get(ctx, *task.ProjectID); err == nil {
				report.Linef("%s **Task identified:** %s (Project: %s)", okMark, task.Title, owner.Name)
			}
		} else {
			report.Linef("%s **Task identified:** %s", okMark, task.Title)
		}
		if task.Notes != nil {
			report.Linef("   👤 %s", *task.Notes)
		}
	}

	report.Linef("\n📊 **Summary:** %d projects and %d tasks processed from the meeting.\n", projectsCreated, tasksCreated)
	report.Linef("💡 **Tip:** Review the created tasks and adjust owners or dates if needed.")
	return report.String()
}

// upstreamError maps failures of the language-model collaborator to the
// user-facing strings, never to exceptions
func (e *Engine) upstreamError(err error) string {
	if errors.Is(err, llm.ErrRateLimited) {
		return fmt.Sprintf("%s The language model API usage limit was exceeded. Please wait a while or add a payment method to the account.", warnMark)
	}
	logger.Errorf("language model call failed: %v", err)
	return fmt.Sprintf("%s Error talking to the language model API: %v", warnMark, err)
}

// executeAction parses a single extracted action and applies it. Malformed
// JSON is a hard failure for this input, echoed back verbatim for prompt
// debugging.
func (e *Engine) executeAction(ctx context.Context, content string) string {
	action, err := ParseAction(content)
	if err != nil {
		return fmt.Sprintf("%s Error processing JSON: %v\nJSON received:\n%s", warnMark, err, content)
	}

	switch {
	case action.Is(ActionCreate) && action.IsProject():
		return e.createProject(ctx, action)
	case action.Is(ActionCreate) && action.IsTask():
		return e.createTask(ctx, action)
	case action.Is(ActionUpdate) && action.IsProject():
		return e.updateProject(ctx, action)
	case action.Is(ActionUpdate) && action.IsTask():
		return e.updateTask(ctx, action)
	case action.Is(ActionDelete) && action.IsProject():
		return e.deleteProject(ctx, action)
	case action.Is(ActionDelete) && action.IsTask():
		return e.deleteTask(ctx, action)
	default:
		return fmt.Sprintf("%s Unrecognized action or type.", warnMark)
	}
}

func (e *Engine) createProject(ctx context.Context, action *Action) string {
	if action.Proyecto == nil {
		return fmt.Sprintf("%s The project name is required", warnMark)
	}
	project := action.Proyecto.ToProject()
	if project.Name == "" {
		return fmt.Sprintf("%s The project name is required", warnMark)
	}

	exists, err := e.projectExists(ctx, project.Name, 0)
	if err != nil {
		return e.storageError(err)
	}
	if exists {
		return fmt.Sprintf("%s A project with the name %s already exists", warnMark, project.Name)
	}

	if err := e.projects.Save(ctx, project); err != nil {
		return e.storageError(err)
	}
	return fmt.Sprintf("%s Project created: %s", okMark, project.Name)
}

func (e *Engine) createTask(ctx context.Context, action *Action) string {
	if action.Tarea == nil {
		return fmt.Sprintf("%s The task title is required", warnMark)
	}
	patch := action.Tarea
	task := patch.ToTask()
	if task.Title == "" {
		return fmt.Sprintf("%s The task title is required", warnMark)
	}

	// A missing or unresolvable reference degrades to an ownerless task.
	var ownerName string
	if owner := e.resolveProjectRef(ctx, nil, patch.Proyecto); owner != nil {
		task.ProjectID = &owner.ID
		ownerName = owner.Name
	}

	exists, err := e.taskExists(ctx, task.Title, task.ProjectID, 0)
	if err != nil {
		return e.storageError(err)
	}
	if exists {
		msg := fmt.Sprintf("%s A task with the title %s already exists", warnMark, task.Title)
		if ownerName != "" {
			msg += " in the project: " + ownerName
		}
		return msg
	}

	if err := e.tasks.Save(ctx, task); err != nil {
		return e.storageError(err)
	}
	if ownerName != "" {
		return fmt.Sprintf("%s Task created: %s in project: %s", okMark, task.Title, ownerName)
	}
	return fmt.Sprintf("%s Task created: %s (no project)", okMark, task.Title)
}

func (e *Engine) updateProject(ctx context.Context, action *Action) string {
	if action.Nombre == "" {
		return fmt.Sprintf("%s The project name is required to update", warnMark)
	}
	project, err := e.projects.FindByName(ctx, action.Nombre)
	if err != nil {
		return e.storageError(err)
	}
	if project == nil {
		return fmt.Sprintf("%s Project not found: %s", warnMark, action.Nombre)
	}
	patch := action.Proyecto
	if patch == nil {
		return fmt.Sprintf("%s No data provided to update the project", warnMark)
	}

	changed := false

	// The rename guard runs before any field is applied so a collision
	// leaves the project untouched.
	if patch.Has(FieldNombre) && patch.Nombre != nil {
		newName := strings.TrimSpace(*patch.Nombre)
		if newName != "" && !strings.EqualFold(newName, project.Name) {
			taken, err := e.projectExists(ctx, newName, project.ID)
			if err != nil {
				return e.storageError(err)
			}
			if taken {
				return fmt.Sprintf("%s Another project with the name %s already exists", warnMark, newName)
			}
			project.Name = newName
			changed = true
		}
	}

	if patch.Has(FieldDescripcion) && !eqStringPtr(patch.Descripcion, project.Description) {
		project.Description = patch.Descripcion
		changed = true
	}
	if patch.Has(FieldFechaInicio) && patch.FechaInicio != nil && !eqTimePtr(patch.FechaInicio, project.StartDate) {
		project.StartDate = patch.FechaInicio
		changed = true
	}
	if patch.Has(FieldFechaFin) {
		if patch.FechaFin == nil {
			if project.EndDate != nil {
				project.EndDate = nil
				changed = true
			}
		} else if !eqTimePtr(patch.FechaFin, project.EndDate) {
			project.EndDate = patch.FechaFin
			changed = true
		}
	}

	if !changed {
		return fmt.Sprintf("%s No changes made to the project: %s", infoMark, project.Name)
	}
	if err := e.projects.Save(ctx, project); err != nil {
		return e.storageError(err)
	}
	return fmt.Sprintf("%s Project updated: %s", okMark, project.Name)
}

func (e *Engine) updateTask(ctx context.Context, action *Action) string {
	title := action.TargetTitle()
	if title == "" {
		return fmt.Sprintf("%s The task name/title is required to update", warnMark)
	}
	task, err := e.tasks.FindByTitle(ctx, title)
	if err != nil {
		return e.storageError(err)
	}
	if task == nil {
		return fmt.Sprintf("%s Task not found: %s", warnMark, title)
	}
	patch := action.Tarea
	if patch == nil {
		return fmt.Sprintf("%s No data provided to update the task", warnMark)
	}

	changed := false

	if patch.Has(FieldTitulo) && patch.Titulo != nil {
		newTitle := strings.TrimSpace(*patch.Titulo)
		if newTitle != "" && !strings.EqualFold(newTitle, task.Title) {
			taken, err := e.taskExists(ctx, newTitle, task.ProjectID, task.ID)
			if err != nil {
				return e.storageError(err)
			}
			if taken {
				msg := fmt.Sprintf("%s Another task with the title %s already exists", warnMark, newTitle)
				if task.ProjectID != nil {
					if owner, err := e.projects.Get(ctx, *task.ProjectID); err == nil {
						msg += " in the project: " + owner.Name
					}
				}
				return msg
			}
			task.Title = newTitle
			changed = true
		}
	}

	// The project reference is only replaced when the payload names a
	// different resolvable project; an explicit null detaches the task.
	if patch.Has(FieldProyecto) {
		if patch.Proyecto == nil {
			if task.ProjectID != nil {
				task.ProjectID = nil
				changed = true
			}
		} else if owner := e.resolveProjectRef(ctx, nil, patch.Proyecto); owner != nil {
			if task.ProjectID == nil || *task.ProjectID != owner.ID {
				task.ProjectID = &owner.ID
				changed = true
			}
		}
	}

	if patch.Has(FieldDescripcion) && !eqStringPtr(patch.Descripcion, task.Description) {
		task.Description = patch.Descripcion
		changed = true
	}
	if patch.Has(FieldEstado) && patch.Estado != nil && !task.Status.Is(models.TaskStatus(*patch.Estado)) {
		task.Status = models.TaskStatus(*patch.Estado)
		changed = true
	}
	if patch.Has(FieldFechaInicio) && patch.FechaInicio != nil && !eqTimePtr(patch.FechaInicio, task.StartDate) {
		task.StartDate = patch.FechaInicio
		changed = true
	}
	if patch.Has(FieldFechaFin) {
		if patch.FechaFin == nil {
			if task.EndDate != nil {
				task.EndDate = nil
				changed = true
			}
		} else if !eqTimePtr(patch.FechaFin, task.EndDate) {
			task.EndDate = patch.FechaFin
			changed = true
		}
	}
	if patch.Has(FieldDuracionHoras) && patch.DuracionHoras != nil {
		current := 0.0
		if task.DurationHours != nil {
			current = *task.DurationHours
		}
		if *patch.DuracionHoras != current {
			task.DurationHours = patch.DuracionHoras
			changed = true
		}
	}
	if patch.Has(FieldObservaciones) && !eqStringPtr(patch.Observaciones, task.Notes) {
		task.Notes = patch.Observaciones
		changed = true
	}

	if !changed {
		return fmt.Sprintf("%s No changes made to the task: %s", infoMark, task.Title)
	}
	if err := e.tasks.Save(ctx, task); err != nil {
		return e.storageError(err)
	}
	return fmt.Sprintf("%s Task updated: %s", okMark, task.Title)
}

func (e *Engine) deleteProject(ctx context.Context, action *Action) string {
	if action.Nombre == "" {
		return fmt.Sprintf("%s The project name is required to delete", warnMark)
	}
	project, err := e.projects.FindByName(ctx, action.Nombre)
	if err != nil {
		return e.storageError(err)
	}
	if project == nil {
		return fmt.Sprintf("%s Project not found: %s", warnMark, action.Nombre)
	}
	if err := e.projects.Delete(ctx, project.ID); err != nil {
		return e.storageError(err)
	}
	return fmt.Sprintf("%s Project deleted: %s", okMark, action.Nombre)
}

func (e *Engine) deleteTask(ctx context.Context, action *Action) string {
	title := action.TargetTitle()
	if title == "" {
		return fmt.Sprintf("%s The task name/title is required to delete", warnMark)
	}
	task, err := e.tasks.FindByTitle(ctx, title)
	if err != nil {
		return e.storageError(err)
	}
	if task == nil {
		return fmt.Sprintf("%s Task not found: %s", warnMark, title)
	}
	if err := e.tasks.Delete(ctx, task.ID); err != nil {
		return e.storageError(err)
	}
	return fmt.Sprintf("%s Task deleted: %s", okMark, title)
}

// resolveProjectRef resolves a task's project reference: first against the
// projects created earlier in this same batch, then against the full project
// collection, both case-insensitively. A miss returns nil; the task stays
// ownerless.
func (e *Engine) resolveProjectRef(ctx context.Context, batch map[string]*models.Project, ref *ProjectRef) *models.Project {
	if ref == nil {
		return nil
	}
	if ref.Nombre != nil && *ref.Nombre != "" {
		if batch != nil {
			if project, ok := batch[strings.ToLower(*ref.Nombre)]; ok {
				return project
			}
		}
		project, err := e.projects.FindByName(ctx, *ref.Nombre)
		if err != nil || project == nil {
			return nil
		}
		return project
	}
	if ref.ID != nil {
		project, err := e.projects.Get(ctx, *ref.ID)
		if err != nil {
			return nil
		}
		return project
	}
	return nil
}

// projectExists reports whether any project other than excludeID already
// uses the name, case-insensitively
func (e *Engine) projectExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	projects, err := e.projects.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range projects {
		if projects[i].ID != excludeID && strings.EqualFold(projects[i].Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// taskExists reports whether any task other than excludeID already uses the
// title within the same ownership scope ("no project" is a scope of its own)
func (e *Engine) taskExists(ctx context.Context, title string, projectID *uint, excludeID uint) (bool, error) {
	tasks, err := e.tasks.List(ctx)
	if err != nil {
		return false, err
	}
	probe := models.Task{ProjectID: projectID}
	for i := range tasks {
		if tasks[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(tasks[i].Title, title) && tasks[i].SameScope(&probe) {
			return true, nil
		}
	}
	return false, nil
}

func (e *Engine) storageError(err error) string {
	logger.Errorf("storage operation failed: %v", err)
	return fmt.Sprintf("%s Storage error: %v", warnMark, err)
}

func eqStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqTimePtr(a, b *models.LocalTime) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b.Time)
}
