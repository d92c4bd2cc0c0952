package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/awscbba/registry-frontend-sub000/internal/console"
	"github.com/awscbba/registry-frontend-sub000/internal/dto"
	"github.com/awscbba/registry-frontend-sub000/internal/model"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
	"github.com/awscbba/registry-frontend-sub000/internal/store"
	"github.com/awscbba/registry-frontend-sub000/pkg/validator"
)

type Service interface {
	OpenSession(ctx *ginext.Context)
	GetState(ctx *ginext.Context)
	Navigate(ctx *ginext.Context)
	GoBack(ctx *ginext.Context)
	GetDashboard(ctx *ginext.Context)
	GetBanner(ctx *ginext.Context)
	ClearBanner(ctx *ginext.Context)

	ListPeople(ctx *ginext.Context)
	CreatePerson(ctx *ginext.Context)
	UpdatePerson(ctx *ginext.Context)
	DeletePerson(ctx *ginext.Context)

	ListProjects(ctx *ginext.Context)
	CreateProject(ctx *ginext.Context)
	UpdateProject(ctx *ginext.Context)
	DeleteProject(ctx *ginext.Context)
	ChangeProjectStatus(ctx *ginext.Context)

	ListSubscribers(ctx *ginext.Context)
	AcceptSubscriber(ctx *ginext.Context)
	DeclineSubscriber(ctx *ginext.Context)
	DeactivateSubscriber(ctx *ginext.Context)
}

type service struct {
	sessions *console.Manager
	log      *zerolog.Logger
}

func NewService(sessions *console.Manager, logger *zerolog.Logger) Service {
	return &service{
		sessions: sessions,
		log:      logger,
	}
}

const sessionHeader = "X-Session-ID"

func (s *service) session(ctx *ginext.Context) (*console.Console, bool) {
	c, ok := s.sessions.Resolve(ctx.GetHeader(sessionHeader))
	if !ok {
		dto.NotFoundError(ctx, dto.SessionNotFound, "Unknown session")
		return nil, false
	}
	return c, true
}

// respondOpError maps an orchestration error to the console API response.
// Confirmation prompts are not errors: nothing was executed yet.
func (s *service) respondOpError(ctx *ginext.Context, err error) {
	var confirm *store.ConfirmationRequired
	if errors.As(err, &confirm) {
		dto.ConfirmationNeededResponse(ctx, confirm.Prompt)
		return
	}
	var valErr *registry.ValidationError
	if errors.As(err, &valErr) {
		dto.BadResponseError(ctx, dto.FieldIncorrect, valErr.Error())
		return
	}
	var defect *registry.KnownBackendDefect
	if errors.As(err, &defect) {
		ctx.JSON(502, dto.Response{
			Status: "error",
			Error:  &dto.Error{Code: dto.BackendKnownDefect, Desc: defect.Guidance},
			Data: map[string]string{
				"subscriber_name":  defect.SubscriberName,
				"subscriber_email": defect.SubscriberEmail,
			},
		})
		return
	}
	if errors.Is(err, store.ErrOperationInFlight) {
		dto.ConflictError(ctx, dto.OperationInFlight, "The operation is already running")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		dto.NotFoundError(ctx, dto.EntityNotFound, "Entity is not in the loaded list")
		return
	}
	var apiErr *registry.ApiError
	if errors.As(err, &apiErr) {
		dto.BadResponseError(ctx, dto.BackendError, store.Humanize(err))
		return
	}
	var unreachable *registry.UnreachableError
	if errors.As(err, &unreachable) {
		ctx.JSON(502, dto.Response{
			Status: "error",
			Error:  &dto.Error{Code: dto.BackendUnreachable, Desc: store.Humanize(err)},
		})
		return
	}
	s.log.Error().Err(err).Msg("unhandled console error")
	dto.InternalServerError(ctx)
}

func (s *service) OpenSession(ctx *ginext.Context) {
	c := s.sessions.Open()
	dto.SuccessCreatedResponse(ctx, dto.SessionResponse{SessionID: c.ID})
}

func (s *service) GetState(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	success, errMsg := c.Banner.Messages()
	dto.SuccessResponse(ctx, dto.StateResponse{
		View:            string(c.Views.Current()),
		Banner:          dto.BannerResponse{Success: success, Error: errMsg},
		PeopleLoading:   c.People.Loading(),
		ProjectsLoading: c.Projects.Loading(),
		PersonContext:   c.Views.PersonContext(),
		ProjectContext:  c.Views.ProjectContext(),
	})
}

func (s *service) Navigate(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.NavigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if err := c.Navigate(console.View(req.View), req.ContextID); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, err.Error())
		return
	}
	dto.SuccessResponse(ctx, map[string]string{"view": string(c.Views.Current())})
}

func (s *service) GoBack(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	view := c.GoBack()
	dto.SuccessResponse(ctx, map[string]string{"view": string(view)})
}

func (s *service) GetDashboard(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	if err := c.RefreshSummary(ctx.Request.Context()); err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, c.Summary())
}

func (s *service) GetBanner(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	success, errMsg := c.Banner.Messages()
	dto.SuccessResponse(ctx, dto.BannerResponse{Success: success, Error: errMsg})
}

func (s *service) ClearBanner(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	c.Banner.Clear()
	dto.SuccessResponse(ctx, nil)
}

func (s *service) ListPeople(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	if err := c.People.Load(ctx.Request.Context()); err != nil && !errors.Is(err, store.ErrStaleLoad) {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, c.People.Snapshot())
}

func (s *service) CreatePerson(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.CreatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	person := model.Person{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		IsAdmin:     req.IsAdmin,
		Roles:       req.Roles,
	}
	created, err := c.CreatePerson(ctx.Request.Context(), person)
	if err != nil {
		s.respondOpError(ctx, err)
		return
	}
	s.log.Info().Str("person_id", created.ID).Msg("person created successfully")
	dto.SuccessCreatedResponse(ctx, created)
}

func (s *service) UpdatePerson(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.UpdateEntityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	updated, err := c.UpdatePerson(ctx.Request.Context(), ctx.Param("id"), req.Patch)
	if err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, updated)
}

func (s *service) DeletePerson(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if err := c.DeletePerson(ctx.Request.Context(), ctx.Param("id"), req.Confirm); err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, nil)
}

func (s *service) ListProjects(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	if err := c.Projects.Load(ctx.Request.Context()); err != nil && !errors.Is(err, store.ErrStaleLoad) {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, c.Projects.Snapshot())
}

func (s *service) CreateProject(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	project := model.Project{
		Name:            req.Name,
		Description:     req.Description,
		Status:          model.ProjectPending,
		MaxParticipants: req.MaxParticipants,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	created, err := c.CreateProject(ctx.Request.Context(), project)
	if err != nil {
		s.respondOpError(ctx, err)
		return
	}
	s.log.Info().Str("project_id", created.ID).Msg("project created successfully")
	dto.SuccessCreatedResponse(ctx, created)
}

func (s *service) UpdateProject(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.UpdateEntityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	updated, err := c.UpdateProject(ctx.Request.Context(), ctx.Param("id"), req.Patch)
	if err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, updated)
}

func (s *service) DeleteProject(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if err := c.DeleteProject(ctx.Request.Context(), ctx.Param("id"), req.Confirm); err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, nil)
}

func (s *service) ChangeProjectStatus(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	result, err := c.UpdateProjectStatus(ctx.Request.Context(), ctx.Param("id"), model.ProjectStatus(req.Status), req.Confirm)
	if err != nil {
		var confirm *store.ConfirmationRequired
		if errors.As(err, &confirm) {
			dto.ConfirmationNeededResponse(ctx, confirm.Prompt)
			return
		}
		// A rolled-back update still answers with the tagged result so the
		// browser can show the revert.
		if result.RolledBack {
			dto.SuccessResponse(ctx, dto.StatusChangeResponse{
				RolledBack: true,
				Reason:     result.Reason,
			})
			return
		}
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, dto.StatusChangeResponse{Applied: result.Applied})
}

func (s *service) ListSubscribers(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	projectID := ctx.Param("id")
	if err := c.Subscribers.Load(ctx.Request.Context(), projectID); err != nil && !errors.Is(err, store.ErrStaleLoad) {
		s.respondOpError(ctx, err)
		return
	}
	if ctx.Query("raw") == "true" {
		dto.SuccessResponse(ctx, c.Subscribers.Raw())
		return
	}
	dto.SuccessResponse(ctx, c.Subscribers.Visible())
}

func (s *service) AcceptSubscriber(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	if err := c.AcceptSubscriber(ctx.Request.Context(), ctx.Param("id")); err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, c.Subscribers.Visible())
}

func (s *service) DeclineSubscriber(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if err := c.DeclineSubscriber(ctx.Request.Context(), ctx.Param("id"), req.Confirm); err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, c.Subscribers.Visible())
}

func (s *service) DeactivateSubscriber(ctx *ginext.Context) {
	c, ok := s.session(ctx)
	if !ok {
		return
	}
	var req dto.ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if err := c.DeactivateSubscriber(ctx.Request.Context(), ctx.Param("id"), req.Confirm); err != nil {
		s.respondOpError(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, c.Subscribers.Visible())
}
