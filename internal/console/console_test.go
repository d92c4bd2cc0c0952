package console_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/awscbba/registry-frontend-sub000/internal/console"
	"github.com/awscbba/registry-frontend-sub000/internal/model"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
)

var nopLog = zerolog.Nop()

// fakeBackend implements registry.API for console-level tests.
type fakeBackend struct {
	mu           sync.Mutex
	people       []model.Person
	projects     []model.Project
	subscribers  []model.Subscriber
	summaryFn    func() (model.DashboardSummary, error)
	summaryCalls int
}

func (f *fakeBackend) ListPeople(context.Context) ([]model.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.people, nil
}

func (f *fakeBackend) CreatePerson(_ context.Context, p model.Person) (model.Person, error) {
	p.ID = "p-new"
	f.mu.Lock()
	f.people = append(f.people, p)
	f.mu.Unlock()
	return p, nil
}

func (f *fakeBackend) UpdatePerson(context.Context, string, map[string]any) (model.Person, error) {
	return model.Person{}, nil
}

func (f *fakeBackend) DeletePerson(context.Context, string) error { return nil }

func (f *fakeBackend) ListProjects(context.Context) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projects, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, p model.Project) (model.Project, error) {
	p.ID = "pr-new"
	return p, nil
}

func (f *fakeBackend) UpdateProject(context.Context, string, map[string]any) (model.Project, error) {
	return model.Project{}, nil
}

func (f *fakeBackend) DeleteProject(context.Context, string) error { return nil }

func (f *fakeBackend) UpdateProjectStatus(context.Context, string, model.ProjectStatus) error {
	return nil
}

func (f *fakeBackend) ListProjectSubscribers(context.Context, string) ([]model.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribers, nil
}

func (f *fakeBackend) UpdateSubscriptionStatus(context.Context, string, model.SubscriptionStatus) error {
	return nil
}

func (f *fakeBackend) DashboardSummary(context.Context) (model.DashboardSummary, error) {
	f.mu.Lock()
	f.summaryCalls++
	fn := f.summaryFn
	f.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return model.DashboardSummary{}, nil
}

func TestDashboardSummaryNotFoundYieldsZeroValues(t *testing.T) {
	backend := &fakeBackend{
		summaryFn: func() (model.DashboardSummary, error) {
			return model.DashboardSummary{}, &registry.ApiError{Status: http.StatusNotFound, Message: "not found"}
		},
	}
	c := console.New("test", backend, nil, &nopLog)

	require.NoError(t, c.RefreshSummary(context.Background()))

	summary := c.Summary()
	require.Zero(t, summary.TotalPeople)
	require.Zero(t, summary.TotalProjects)
	require.Zero(t, summary.TotalSubscriptions)
	require.False(t, summary.GeneratedAt.IsZero())

	_, errMsg := c.Banner.Messages()
	require.Empty(t, errMsg, "a missing summary endpoint is not an error state")
}

func TestDashboardSummaryMergesPeopleCount(t *testing.T) {
	backend := &fakeBackend{
		people: []model.Person{{ID: "p-1"}, {ID: "p-2"}, {ID: "p-3"}},
		summaryFn: func() (model.DashboardSummary, error) {
			// The endpoint omits the people total.
			return model.DashboardSummary{TotalProjects: 2, TotalSubscriptions: 5}, nil
		},
	}
	c := console.New("test", backend, nil, &nopLog)

	require.NoError(t, c.RefreshSummary(context.Background()))

	summary := c.Summary()
	require.Equal(t, 3, summary.TotalPeople)
	require.Equal(t, 2, summary.TotalProjects)
	require.Equal(t, 5, summary.TotalSubscriptions)
}

func TestDashboardSummaryFailureKeepsPrevious(t *testing.T) {
	backend := &fakeBackend{
		summaryFn: func() (model.DashboardSummary, error) {
			return model.DashboardSummary{TotalProjects: 4}, nil
		},
	}
	c := console.New("test", backend, nil, &nopLog)
	require.NoError(t, c.RefreshSummary(context.Background()))
	require.Equal(t, 4, c.Summary().TotalProjects)

	backend.mu.Lock()
	backend.summaryFn = func() (model.DashboardSummary, error) {
		return model.DashboardSummary{}, &registry.UnreachableError{Cause: errors.New("refused")}
	}
	backend.mu.Unlock()

	require.Error(t, c.RefreshSummary(context.Background()))
	require.Equal(t, 4, c.Summary().TotalProjects, "previous summary stays visible")

	_, errMsg := c.Banner.Messages()
	require.NotEmpty(t, errMsg)
}

func TestMutationRefreshesSummary(t *testing.T) {
	backend := &fakeBackend{}
	c := console.New("test", backend, nil, &nopLog)

	_, err := c.CreatePerson(context.Background(), model.Person{
		FirstName: "Ana",
		LastName:  "Quispe",
		Email:     "ana@example.org",
		Address:   model.Address{Street: "Calle 1", City: "Cochabamba", Country: "Bolivia"},
	})
	require.NoError(t, err)

	backend.mu.Lock()
	calls := backend.summaryCalls
	backend.mu.Unlock()
	require.GreaterOrEqual(t, calls, 1, "dependent aggregate must be refreshed after a mutation")
}

func TestNavigateEditRequiresLoadedEntity(t *testing.T) {
	backend := &fakeBackend{}
	c := console.New("test", backend, nil, &nopLog)

	err := c.Navigate(console.ViewEditPerson, "ghost")
	require.Error(t, err)
	require.Equal(t, console.ViewDashboard, c.Views.Current())
}

func TestNavigateToListTriggersAsyncLoad(t *testing.T) {
	backend := &fakeBackend{people: []model.Person{{ID: "p-1"}}}
	c := console.New("test", backend, nil, &nopLog)

	require.NoError(t, c.Navigate(console.ViewPeople, ""))
	require.Equal(t, console.ViewPeople, c.Views.Current())

	require.Eventually(t, func() bool {
		return len(c.People.Snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNavigateToSubscribersLoadsProjectList(t *testing.T) {
	backend := &fakeBackend{
		projects: []model.Project{{ID: "pr-1", Name: "Huertos", Status: model.ProjectActive}},
		subscribers: []model.Subscriber{{
			Subscription: model.Subscription{ID: "s-1", ProjectID: "pr-1", Status: model.SubscriptionPending},
			Person:       model.Person{FirstName: "Ana"},
		}},
	}
	c := console.New("test", backend, nil, &nopLog)
	require.NoError(t, c.Projects.Load(context.Background()))

	require.NoError(t, c.Navigate(console.ViewProjectSubscribers, "pr-1"))
	require.Equal(t, "pr-1", c.Views.ProjectContext().ID)

	require.Eventually(t, func() bool {
		return len(c.Subscribers.Visible()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestGoBackClearsChildScopedError(t *testing.T) {
	backend := &fakeBackend{people: []model.Person{{ID: "p-1"}}}
	c := console.New("test", backend, nil, &nopLog)
	require.NoError(t, c.People.Load(context.Background()))
	require.NoError(t, c.Navigate(console.ViewEditPerson, "p-1"))

	c.Banner.SetError("fallo al guardar")
	view := c.GoBack()

	require.Equal(t, console.ViewPeople, view)
	_, errMsg := c.Banner.Messages()
	require.Empty(t, errMsg)
}
