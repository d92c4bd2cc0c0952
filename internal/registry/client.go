package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
)

// API is the set of backend operations the console depends on. Stores and
// workflows take this interface so tests can substitute a fake transport.
type API interface {
	ListPeople(ctx context.Context) ([]model.Person, error)
	CreatePerson(ctx context.Context, p model.Person) (model.Person, error)
	UpdatePerson(ctx context.Context, id string, patch map[string]any) (model.Person, error)
	DeletePerson(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, p model.Project) (model.Project, error)
	UpdateProject(ctx context.Context, id string, patch map[string]any) (model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	UpdateProjectStatus(ctx context.Context, id string, status model.ProjectStatus) error

	ListProjectSubscribers(ctx context.Context, projectID string) ([]model.Subscriber, error)
	UpdateSubscriptionStatus(ctx context.Context, id string, status model.SubscriptionStatus) error

	DashboardSummary(ctx context.Context) (model.DashboardSummary, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the registry backend. Failed requests are never retried
// automatically; every failure surfaces to the caller exactly once.
type Client struct {
	http *resty.Client
	log  *zerolog.Logger
}

func New(cfg Config, log *zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: rc, log: log}
}

// do issues one request and decodes the normalized payload into out.
// fallback is the operation's operator-facing message used when an error body
// carries no message of its own.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return &UnreachableError{Cause: err}
	}

	payload, message, ok := normalize(resp.Body())
	if resp.IsError() {
		if !ok || message == "" {
			message = fallback
		}
		c.log.Warn().Int("status", resp.StatusCode()).Str("path", path).Msg("backend returned error status")
		return &ApiError{Status: resp.StatusCode(), Message: message}
	}
	if !ok {
		return &UnreachableError{Cause: errNotJSON{}}
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return &UnreachableError{Cause: err}
		}
	}
	return nil
}

type errNotJSON struct{}

func (errNotJSON) Error() string { return "response body is not JSON" }

func (c *Client) ListPeople(ctx context.Context) ([]model.Person, error) {
	var people []model.Person
	if err := c.do(ctx, http.MethodGet, "/people", nil, &people, "Error al cargar personas"); err != nil {
		return nil, err
	}
	return people, nil
}

func (c *Client) CreatePerson(ctx context.Context, p model.Person) (model.Person, error) {
	var created model.Person
	if err := c.do(ctx, http.MethodPost, "/people", p, &created, "Error al crear persona"); err != nil {
		return model.Person{}, err
	}
	return created, nil
}

func (c *Client) UpdatePerson(ctx context.Context, id string, patch map[string]any) (model.Person, error) {
	var updated model.Person
	if err := c.do(ctx, http.MethodPut, "/people/"+id, patch, &updated, "Error al actualizar persona"); err != nil {
		return model.Person{}, err
	}
	return updated, nil
}

func (c *Client) DeletePerson(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/people/"+id, nil, nil, "Error al eliminar persona")
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects, "Error al cargar proyectos"); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	var created model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", p, &created, "Error al crear proyecto"); err != nil {
		return model.Project{}, err
	}
	return created, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch map[string]any) (model.Project, error) {
	var updated model.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+id, patch, &updated, "Error al actualizar proyecto"); err != nil {
		return model.Project{}, err
	}
	return updated, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil, "Error al eliminar proyecto")
}

func (c *Client) UpdateProjectStatus(ctx context.Context, id string, status model.ProjectStatus) error {
	body := map[string]any{"status": status}
	return c.do(ctx, http.MethodPatch, "/projects/"+id+"/status", body, nil, "Error al cambiar estado del proyecto")
}

func (c *Client) ListProjectSubscribers(ctx context.Context, projectID string) ([]model.Subscriber, error) {
	var subs []model.Subscriber
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID+"/subscribers", nil, &subs, "Error al cargar suscriptores"); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) UpdateSubscriptionStatus(ctx context.Context, id string, status model.SubscriptionStatus) error {
	body := map[string]any{"status": status}
	return c.do(ctx, http.MethodPatch, "/subscriptions/"+id+"/status", body, nil, "Error al actualizar suscripción")
}

func (c *Client) DashboardSummary(ctx context.Context) (model.DashboardSummary, error) {
	var summary model.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/summary", nil, &summary, "Error al cargar el resumen"); err != nil {
		return model.DashboardSummary{}, err
	}
	return summary, nil
}
