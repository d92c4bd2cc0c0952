package store_test

import (
	"context"
	"sync"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
)

// fakeAPI implements registry.API with overridable behavior and counts every
// call, so tests can assert that an operation never reached the transport.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	listPeople    func() ([]model.Person, error)
	createPerson  func(model.Person) (model.Person, error)
	updatePerson  func(string, map[string]any) (model.Person, error)
	deletePerson  func(string) error
	listProjects  func() ([]model.Project, error)
	createProject func(model.Project) (model.Project, error)
	updateProject func(string, map[string]any) (model.Project, error)
	deleteProject func(string) error
	projectStatus func(string, model.ProjectStatus) error
	listSubs      func(string) ([]model.Subscriber, error)
	subStatus     func(string, model.SubscriptionStatus) error
	summary       func() (model.DashboardSummary, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ListPeople(context.Context) ([]model.Person, error) {
	f.count("ListPeople")
	if f.listPeople != nil {
		return f.listPeople()
	}
	return nil, nil
}

func (f *fakeAPI) CreatePerson(_ context.Context, p model.Person) (model.Person, error) {
	f.count("CreatePerson")
	if f.createPerson != nil {
		return f.createPerson(p)
	}
	return p, nil
}

func (f *fakeAPI) UpdatePerson(_ context.Context, id string, patch map[string]any) (model.Person, error) {
	f.count("UpdatePerson")
	if f.updatePerson != nil {
		return f.updatePerson(id, patch)
	}
	return model.Person{}, nil
}

func (f *fakeAPI) DeletePerson(_ context.Context, id string) error {
	f.count("DeletePerson")
	if f.deletePerson != nil {
		return f.deletePerson(id)
	}
	return nil
}

func (f *fakeAPI) ListProjects(context.Context) ([]model.Project, error) {
	f.count("ListProjects")
	if f.listProjects != nil {
		return f.listProjects()
	}
	return nil, nil
}

func (f *fakeAPI) CreateProject(_ context.Context, p model.Project) (model.Project, error) {
	f.count("CreateProject")
	if f.createProject != nil {
		return f.createProject(p)
	}
	return p, nil
}

func (f *fakeAPI) UpdateProject(_ context.Context, id string, patch map[string]any) (model.Project, error) {
	f.count("UpdateProject")
	if f.updateProject != nil {
		return f.updateProject(id, patch)
	}
	return model.Project{}, nil
}

func (f *fakeAPI) DeleteProject(_ context.Context, id string) error {
	f.count("DeleteProject")
	if f.deleteProject != nil {
		return f.deleteProject(id)
	}
	return nil
}

func (f *fakeAPI) UpdateProjectStatus(_ context.Context, id string, status model.ProjectStatus) error {
	f.count("UpdateProjectStatus")
	if f.projectStatus != nil {
		return f.projectStatus(id, status)
	}
	return nil
}

func (f *fakeAPI) ListProjectSubscribers(_ context.Context, projectID string) ([]model.Subscriber, error) {
	f.count("ListProjectSubscribers")
	if f.listSubs != nil {
		return f.listSubs(projectID)
	}
	return nil, nil
}

func (f *fakeAPI) UpdateSubscriptionStatus(_ context.Context, id string, status model.SubscriptionStatus) error {
	f.count("UpdateSubscriptionStatus")
	if f.subStatus != nil {
		return f.subStatus(id, status)
	}
	return nil
}

func (f *fakeAPI) DashboardSummary(context.Context) (model.DashboardSummary, error) {
	f.count("DashboardSummary")
	if f.summary != nil {
		return f.summary()
	}
	return model.DashboardSummary{}, nil
}

// recorder collects banner messages.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}
