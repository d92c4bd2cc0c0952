package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/awscbba/registry-frontend-sub000/internal/audit"
	"github.com/awscbba/registry-frontend-sub000/internal/model"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
	"github.com/awscbba/registry-frontend-sub000/internal/store"
	"github.com/awscbba/registry-frontend-sub000/internal/workflow"
)

// Console is one admin session: the view state machine, the entity stores,
// the subscriber review workflow and the status banner, wired to the same
// backend client. Person operations never touch the project cache and vice
// versa; only the dashboard summary refresh spans entities.
type Console struct {
	ID string

	Views       *ViewController
	Banner      *Banner
	People      *store.Collection[model.Person]
	Projects    *store.Collection[model.Project]
	Subscribers *workflow.Subscribers

	api     registry.API
	auditor *audit.Publisher
	log     *zerolog.Logger

	mu      sync.Mutex
	summary model.DashboardSummary
}

func New(id string, api registry.API, auditor *audit.Publisher, log *zerolog.Logger) *Console {
	banner := NewBanner(0)
	return &Console{
		ID:          id,
		Views:       NewViewController(),
		Banner:      banner,
		People:      store.NewPeople(api, banner, log),
		Projects:    store.NewProjects(api, banner, log),
		Subscribers: workflow.NewSubscribers(api, banner, log),
		api:         api,
		auditor:     auditor,
		log:         log,
	}
}

// Navigate switches the current view and kicks off the view's collection
// load in the background. contextID selects the entity required by edit and
// subscriber views; it must already be in the corresponding cache.
func (c *Console) Navigate(view View, contextID string) error {
	var person *model.Person
	var project *model.Project

	switch view {
	case ViewEditPerson:
		p, ok := c.People.Get(contextID)
		if !ok {
			return fmt.Errorf("person %q not loaded", contextID)
		}
		person = &p
	case ViewEditProject, ViewProjectSubscribers:
		p, ok := c.Projects.Get(contextID)
		if !ok {
			return fmt.Errorf("project %q not loaded", contextID)
		}
		project = &p
	}

	if _, err := c.Views.Navigate(view, person, project); err != nil {
		return err
	}

	// List views reload their collection; the load is asynchronous so one
	// slow list never blocks the rest of the console. Stale results are
	// discarded inside the stores.
	switch view {
	case ViewPeople:
		go func() { _ = c.People.Load(context.Background()) }()
	case ViewProjects:
		go func() { _ = c.Projects.Load(context.Background()) }()
	case ViewProjectSubscribers:
		projectID := project.ID
		go func() { _ = c.Subscribers.Load(context.Background(), projectID) }()
	case ViewDashboard:
		go func() { _ = c.RefreshSummary(context.Background()) }()
	}
	return nil
}

// GoBack returns to the parent view, clearing held context and the error
// scoped to the child view.
func (c *Console) GoBack() View {
	view, _ := c.Views.GoBack()
	c.Banner.ClearError()
	return view
}

func (c *Console) CreatePerson(ctx context.Context, p model.Person) (model.Person, error) {
	created, err := c.People.Create(ctx, p)
	if err != nil {
		return model.Person{}, err
	}
	c.recordMutation(ctx, "create", "person", created.ID)
	return created, nil
}

func (c *Console) UpdatePerson(ctx context.Context, id string, patch map[string]any) (model.Person, error) {
	updated, err := c.People.Update(ctx, id, patch)
	if err != nil {
		return model.Person{}, err
	}
	c.recordMutation(ctx, "update", "person", id)
	return updated, nil
}

func (c *Console) DeletePerson(ctx context.Context, id string, confirmed bool) error {
	if err := c.People.Delete(ctx, id, confirmed); err != nil {
		return err
	}
	c.recordMutation(ctx, "delete", "person", id)
	return nil
}

func (c *Console) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	created, err := c.Projects.Create(ctx, p)
	if err != nil {
		return model.Project{}, err
	}
	c.recordMutation(ctx, "create", "project", created.ID)
	return created, nil
}

func (c *Console) UpdateProject(ctx context.Context, id string, patch map[string]any) (model.Project, error) {
	updated, err := c.Projects.Update(ctx, id, patch)
	if err != nil {
		return model.Project{}, err
	}
	c.recordMutation(ctx, "update", "project", id)
	return updated, nil
}

func (c *Console) DeleteProject(ctx context.Context, id string, confirmed bool) error {
	if err := c.Projects.Delete(ctx, id, confirmed); err != nil {
		return err
	}
	c.recordMutation(ctx, "delete", "project", id)
	return nil
}

func (c *Console) UpdateProjectStatus(ctx context.Context, id string, status model.ProjectStatus, confirmed bool) (store.StatusResult, error) {
	result, err := c.Projects.UpdateStatus(ctx, id, status, confirmed)
	if err == nil && result.Applied {
		c.recordMutation(ctx, "status:"+string(status), "project", id)
	}
	return result, err
}

func (c *Console) AcceptSubscriber(ctx context.Context, id string) error {
	if err := c.Subscribers.Accept(ctx, id); err != nil && !errors.Is(err, store.ErrStaleLoad) {
		return err
	}
	c.recordMutation(ctx, "accept", "subscription", id)
	return nil
}

func (c *Console) DeclineSubscriber(ctx context.Context, id string, confirmed bool) error {
	if err := c.Subscribers.Decline(ctx, id, confirmed); err != nil && !errors.Is(err, store.ErrStaleLoad) {
		return err
	}
	c.recordMutation(ctx, "decline", "subscription", id)
	return nil
}

func (c *Console) DeactivateSubscriber(ctx context.Context, id string, confirmed bool) error {
	if err := c.Subscribers.Deactivate(ctx, id, confirmed); err != nil && !errors.Is(err, store.ErrStaleLoad) {
		return err
	}
	c.recordMutation(ctx, "deactivate", "subscription", id)
	return nil
}

// recordMutation publishes the audit event and refreshes the dependent
// dashboard aggregates. The refresh is an explicit step after each mutation,
// not a reactive subscription.
func (c *Console) recordMutation(ctx context.Context, action, entityType, entityID string) {
	_ = c.auditor.Publish(audit.Event{
		SessionID:  c.ID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	})
	if err := c.RefreshSummary(ctx); err != nil {
		c.log.Warn().Err(err).Msg("dashboard summary refresh failed after mutation")
	}
}

// RefreshSummary rebuilds the dashboard summary. The summary endpoint may
// legitimately not exist: a 404 yields the zero summary. The people total is
// cross-checked against a direct people fetch because the endpoint is known
// to omit fields.
func (c *Console) RefreshSummary(ctx context.Context) error {
	summary, err := c.api.DashboardSummary(ctx)
	if err != nil {
		var apiErr *registry.ApiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			summary = model.DashboardSummary{}
		} else {
			// Keep the previous summary visible rather than blanking the
			// dashboard.
			c.Banner.Error(store.Humanize(err))
			return err
		}
	}

	if summary.TotalPeople == 0 {
		if people, err := c.api.ListPeople(ctx); err == nil {
			summary.TotalPeople = len(people)
		}
	}
	summary.GeneratedAt = time.Now()

	c.mu.Lock()
	c.summary = summary
	c.mu.Unlock()
	return nil
}

func (c *Console) Summary() model.DashboardSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}
