package console

import (
	"fmt"
	"sync"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
)

type View string

const (
	ViewDashboard          View = "dashboard"
	ViewPeople             View = "people"
	ViewCreatePerson       View = "create-person"
	ViewEditPerson         View = "edit-person"
	ViewProjects           View = "projects"
	ViewCreateProject      View = "create-project"
	ViewEditProject        View = "edit-project"
	ViewProjectSubscribers View = "project-subscribers"
)

func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewPeople, ViewCreatePerson, ViewEditPerson,
		ViewProjects, ViewCreateProject, ViewEditProject, ViewProjectSubscribers:
		return true
	}
	return false
}

// viewParents maps every child view to the single parent it returns to on
// cancel or success.
var viewParents = map[View]View{
	ViewCreatePerson:       ViewPeople,
	ViewEditPerson:         ViewPeople,
	ViewCreateProject:      ViewProjects,
	ViewEditProject:        ViewProjects,
	ViewProjectSubscribers: ViewProjects,
}

// Parent returns the designated parent view; top-level views return to the
// dashboard.
func (v View) Parent() View {
	if p, ok := viewParents[v]; ok {
		return p
	}
	return ViewDashboard
}

// ViewController tracks the single current view of the admin surface and the
// entity context held while a child view is open. The machine is long-lived
// for the session; there is no terminal state.
type ViewController struct {
	mu      sync.Mutex
	current View
	epoch   uint64

	personCtx  *model.Person
	projectCtx *model.Project
}

func NewViewController() *ViewController {
	return &ViewController{current: ViewDashboard}
}

func (vc *ViewController) Current() View {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.current
}

// Epoch increments on every navigation; async loads capture it to detect
// that the view they were started for has been left.
func (vc *ViewController) Epoch() uint64 {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.epoch
}

func (vc *ViewController) PersonContext() *model.Person {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.personCtx
}

func (vc *ViewController) ProjectContext() *model.Project {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.projectCtx
}

// Navigate sets the current view. Edit views require the entity being
// edited; the subscriber view requires the project whose subscribers are
// shown. Context is retained until the next navigation away.
func (vc *ViewController) Navigate(view View, person *model.Person, project *model.Project) (uint64, error) {
	if !view.Valid() {
		return 0, fmt.Errorf("unknown view %q", view)
	}
	switch view {
	case ViewEditPerson:
		if person == nil {
			return 0, fmt.Errorf("view %q requires a person context", view)
		}
	case ViewEditProject, ViewProjectSubscribers:
		if project == nil {
			return 0, fmt.Errorf("view %q requires a project context", view)
		}
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.current = view
	vc.epoch++
	vc.personCtx = person
	vc.projectCtx = project
	return vc.epoch, nil
}

// GoBack returns to the current view's parent, dropping any held context.
func (vc *ViewController) GoBack() (View, uint64) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.current = vc.current.Parent()
	vc.epoch++
	vc.personCtx = nil
	vc.projectCtx = nil
	return vc.current, vc.epoch
}
