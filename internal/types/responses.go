// Package types defines the request and response shapes of the HTTP API
package types

// Slug identifies the class of an API response
type Slug string

const (
	// SuccessSlug marks a successful response
	SuccessSlug Slug = "success"
	// ErrorSlug marks a generic error response
	ErrorSlug Slug = "error"
	// InvalidInputSlug marks a request validation failure
	InvalidInputSlug Slug = "invalid-input"
	// NotFoundSlug marks a missing resource
	NotFoundSlug Slug = "not-found"
	// ServerErrorSlug marks an internal failure
	ServerErrorSlug Slug = "server-error"
)

// Response is the envelope returned by every API endpoint
type Response struct {
	Slug  Slug        `json:"slug"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// Success wraps data in a success envelope
func Success(data interface{}) Response {
	return Response{
		Slug: SuccessSlug,
		Data: data,
	}
}

// ErrInvalidInput builds an invalid-input error response
func ErrInvalidInput(msg string) Response {
	return Response{
		Slug:  InvalidInputSlug,
		Error: msg,
	}
}

// ErrNotFound builds a not-found error response
func ErrNotFound(msg string) Response {
	return Response{
		Slug:  NotFoundSlug,
		Error: msg,
	}
}

// ErrServer builds a server-error response
func ErrServer(msg string) Response {
	return Response{
		Slug:  ServerErrorSlug,
		Error: msg,
	}
}

// ChatRequest is the body of the chat endpoint
type ChatRequest struct {
	// Mensaje is the free-form instruction or meeting transcript
	Mensaje string `json:"mensaje"`
}

// ChatResponse is the reply of the chat endpoint
type ChatResponse struct {
	// Respuesta is the human-readable report produced by the engine
	Respuesta string `json:"respuesta"`
}

// ProjectReportRow is one row of the per-project progress report
type ProjectReportRow struct {
	ID            uint     `json:"id"`
	Nombre        string   `json:"nombre"`
	TotalHoras    *float64 `json:"totalHoras"`
	TareasTotales int      `json:"tareasTotales"`
	TareasHechas  int      `json:"tareasCompletadas"`
	Progreso      float64  `json:"progreso"`
}
