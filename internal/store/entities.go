package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
	"github.com/awscbba/registry-frontend-sub000/pkg/validator"
)

// personForm mirrors the required fields of the person create form.
type personForm struct {
	FirstName string `validate:"required,max=255"`
	LastName  string `validate:"required,max=255"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"phone"`
	Street    string `validate:"required"`
	City      string `validate:"required"`
	Country   string `validate:"required"`
}

func validatePerson(ctx context.Context, p model.Person) error {
	form := personForm{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Street:    p.Address.Street,
		City:      p.Address.City,
		Country:   p.Address.Country,
	}
	if err := validator.Validate(ctx, form); err != nil {
		return &registry.ValidationError{Message: err.Error()}
	}
	return nil
}

type projectForm struct {
	Name      string    `validate:"required,max=255"`
	Status    string    `validate:"projstatus"`
	StartDate time.Time `validate:"required"`
	MaxPart   int       `validate:"gte=0"`
}

func validateProject(ctx context.Context, p model.Project) error {
	status := p.Status
	if status == "" {
		status = model.ProjectPending
	}
	form := projectForm{
		Name:      p.Name,
		Status:    string(status),
		StartDate: p.StartDate,
		MaxPart:   p.MaxParticipants,
	}
	if err := validator.Validate(ctx, form); err != nil {
		return &registry.ValidationError{Message: err.Error()}
	}
	return nil
}

func mergePerson(cached model.Person, patch map[string]any) model.Person {
	for key, raw := range patch {
		s, _ := raw.(string)
		switch key {
		case "first_name":
			cached.FirstName = s
		case "last_name":
			cached.LastName = s
		case "email":
			cached.Email = s
		case "phone":
			cached.Phone = s
		case "date_of_birth":
			cached.DateOfBirth = s
		case "is_admin":
			if b, ok := raw.(bool); ok {
				cached.IsAdmin = b
			}
		}
	}
	return cached
}

func mergeProject(cached model.Project, patch map[string]any) model.Project {
	for key, raw := range patch {
		switch key {
		case "name":
			if s, ok := raw.(string); ok {
				cached.Name = s
			}
		case "description":
			if s, ok := raw.(string); ok {
				cached.Description = s
			}
		case "status":
			if s, ok := raw.(string); ok {
				cached.Status = model.ProjectStatus(s)
			}
		case "max_participants":
			switch v := raw.(type) {
			case int:
				cached.MaxParticipants = v
			case float64:
				cached.MaxParticipants = int(v)
			}
		}
	}
	return cached
}

// NewPeople builds the person collection store over the backend API.
func NewPeople(api registry.API, reporter Reporter, log *zerolog.Logger) *Collection[model.Person] {
	ops := Ops[model.Person]{
		List:     api.ListPeople,
		Create:   api.CreatePerson,
		Update:   api.UpdatePerson,
		Delete:   api.DeletePerson,
		Validate: validatePerson,
		Merge:    mergePerson,
		Describe: func(p model.Person) string { return p.FullName() },
	}
	msg := Messages{
		Created: "Persona creada correctamente",
		Updated: "Persona actualizada correctamente",
		Deleted: "Persona eliminada correctamente",
	}
	return NewCollection(ops, msg, reporter, log)
}

// NewProjects builds the project collection store, including optimistic
// status updates.
func NewProjects(api registry.API, reporter Reporter, log *zerolog.Logger) *Collection[model.Project] {
	ops := Ops[model.Project]{
		List:     api.ListProjects,
		Create:   api.CreateProject,
		Update:   api.UpdateProject,
		Delete:   api.DeleteProject,
		Validate: validateProject,
		Merge:    mergeProject,
		Describe: func(p model.Project) string { return p.Name },
	}
	msg := Messages{
		Created: "Proyecto creado correctamente",
		Updated: "Proyecto actualizado correctamente",
		Deleted: "Proyecto eliminado correctamente",
	}
	return NewCollection(ops, msg, reporter, log).WithStatusOps(StatusOps[model.Project]{
		Current: func(p model.Project) model.ProjectStatus { return p.Status },
		Apply: func(p model.Project, s model.ProjectStatus) model.Project {
			p.Status = s
			return p
		},
		Send: api.UpdateProjectStatus,
	})
}
