// Package client provides a typed HTTP client for the logbook API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/logbookhq/logbook/internal/db/models"
	"github.com/logbookhq/logbook/internal/types"
)

// DefaultBaseURL is the default address of the API server
const DefaultBaseURL = "http://localhost:8080"

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client defines the interface for interacting with the logbook API
type Client interface {
	// Project methods
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	DeleteProject(ctx context.Context, id uint) error

	// Task methods
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id uint) (*models.Task, error)
	DeleteTask(ctx context.Context, id uint) error

	// Chat sends a natural-language message and returns the engine's report
	Chat(ctx context.Context, message string) (string, error)

	// ProjectReport retrieves the per-project progress rows
	ProjectReport(ctx context.Context) ([]types.ProjectReportRow, error)

	// HealthCheck verifies the server is reachable
	HealthCheck(ctx context.Context) error
}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API server
	BaseURL string
	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// envelope mirrors types.Response with the data left raw for typed decoding
type envelope struct {
	Slug  types.Slug      `json:"slug"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) *fiber.Agent {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		agent = fiber.Get(fullURL)
	}

	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	if body != nil {
		agent.JSON(body)
	}
	return agent
}

// doEnvelope performs a request and decodes the enveloped payload into out
func (c *APIClient) doEnvelope(ctx context.Context, method, endpoint string, body, out interface{}) error {
	agent := c.createAgent(ctx, method, endpoint, body)
	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errs[0])
	}

	if status == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if status < 200 || status >= 300 {
		if env.Error != "" {
			return fmt.Errorf("server returned %d: %s", status, env.Error)
		}
		return fmt.Errorf("server returned %d", status)
	}
	if out == nil || env.Data == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// ListProjects retrieves all projects
func (c *APIClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := c.doEnvelope(ctx, http.MethodGet, "/api/v1/projects", nil, &projects)
	return projects, err
}

// GetProject retrieves a project by ID
func (c *APIClient) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := c.doEnvelope(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project by ID
func (c *APIClient) DeleteProject(ctx context.Context, id uint) error {
	return c.doEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", id), nil, nil)
}

// ListTasks retrieves all tasks
func (c *APIClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := c.doEnvelope(ctx, http.MethodGet, "/api/v1/tasks", nil, &tasks)
	return tasks, err
}

// GetTask retrieves a task by ID
func (c *APIClient) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := c.doEnvelope(ctx, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task by ID
func (c *APIClient) DeleteTask(ctx context.Context, id uint) error {
	return c.doEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", id), nil, nil)
}

// Chat sends a natural-language message and returns the engine's report
func (c *APIClient) Chat(ctx context.Context, message string) (string, error) {
	agent := c.createAgent(ctx, http.MethodPost, "/api/v1/chat", types.ChatRequest{Mensaje: message})
	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("request failed: %w", errs[0])
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("server returned %d: %s", status, string(respBody))
	}

	var resp types.ChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return resp.Respuesta, nil
}

// ProjectReport retrieves the per-project progress rows
func (c *APIClient) ProjectReport(ctx context.Context) ([]types.ProjectReportRow, error) {
	var rows []types.ProjectReportRow
	err := c.doEnvelope(ctx, http.MethodGet, "/api/v1/reports/projects", nil, &rows)
	return rows, err
}

// HealthCheck verifies the server is reachable
func (c *APIClient) HealthCheck(ctx context.Context) error {
	agent := c.createAgent(ctx, http.MethodGet, "/health", nil)
	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errs[0])
	}
	if status != http.StatusOK {
		return fmt.Errorf("server returned %d", status)
	}
	return nil
}
