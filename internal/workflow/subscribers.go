package workflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
	"github.com/awscbba/registry-frontend-sub000/internal/store"
)

// defectGuidance is the operator instruction for the documented 500 on the
// subscription status endpoint: the registration itself is valid even though
// the status change likely did not apply.
const defectGuidance = "El servidor falló al actualizar el estado, pero la inscripción del " +
	"suscriptor sigue siendo válida y puede participar. Contacte al suscriptor " +
	"manualmente y reporte el incidente al equipo del backend."

// Subscribers manages the reviewer flow for one project's subscriber list.
type Subscribers struct {
	mu        sync.Mutex
	projectID string
	list      []model.Subscriber
	loadGen   uint64
	inFlight  map[string]bool

	api      registry.API
	reporter store.Reporter
	log      *zerolog.Logger
}

func NewSubscribers(api registry.API, reporter store.Reporter, log *zerolog.Logger) *Subscribers {
	return &Subscribers{
		inFlight: make(map[string]bool),
		api:      api,
		reporter: reporter,
		log:      log,
	}
}

func (s *Subscribers) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// Load fetches the full subscriber list for the project and replaces the
// local list wholesale. Results from a superseded load are discarded.
func (s *Subscribers) Load(ctx context.Context, projectID string) error {
	s.mu.Lock()
	s.projectID = projectID
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	subs, err := s.api.ListProjectSubscribers(ctx, projectID)
	if err != nil {
		s.report(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen || projectID != s.projectID {
		s.log.Debug().Str("project_id", projectID).Msg("discarding stale subscriber load")
		return store.ErrStaleLoad
	}
	s.list = subs
	return nil
}

// Visible returns the subscriber list with cancelled entries filtered out.
// Cancelled records are hidden, never deleted; Raw still carries them.
func (s *Subscribers) Visible() []model.Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Subscriber, 0, len(s.list))
	for _, sub := range s.list {
		if sub.Status != model.SubscriptionCancelled {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Subscribers) Raw() []model.Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Subscriber, len(s.list))
	copy(out, s.list)
	return out
}

func (s *Subscribers) get(id string) (model.Subscriber, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.list {
		if sub.ID == id {
			return sub, true
		}
	}
	return model.Subscriber{}, false
}

// Accept moves a pending subscription to active and reloads the list so
// server-derived counts stay consistent. The endpoint's documented 500 is
// surfaced as KnownBackendDefect carrying the subscriber for display.
func (s *Subscribers) Accept(ctx context.Context, id string) error {
	sub, found := s.get(id)
	if !found {
		s.report(store.ErrNotFound)
		return store.ErrNotFound
	}
	if sub.Status != model.SubscriptionPending {
		err := &registry.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("solo se puede aceptar una suscripción pendiente (estado actual: %s)", sub.Status),
		}
		s.report(err)
		return err
	}

	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	if err := s.api.UpdateSubscriptionStatus(ctx, id, model.SubscriptionActive); err != nil {
		var apiErr *registry.ApiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusInternalServerError {
			defect := &registry.KnownBackendDefect{
				SubscriberName:  sub.Person.FullName(),
				SubscriberEmail: sub.Person.Email,
				Guidance:        defectGuidance,
			}
			s.log.Warn().Str("subscription_id", id).Msg("known backend defect on subscription accept")
			s.reporter.Error(defect.Error())
			return defect
		}
		s.report(err)
		return err
	}

	s.reporter.Success("Suscriptor aceptado correctamente")
	return s.reloadCurrent(ctx)
}

// Decline cancels a pending subscription after confirmation. The entry is
// filtered from the visible list after the reload, not deleted.
func (s *Subscribers) Decline(ctx context.Context, id string, confirmed bool) error {
	return s.cancel(ctx, id, confirmed, model.SubscriptionPending,
		"¿Rechazar la solicitud de %s?", "Suscriptor rechazado")
}

// Deactivate cancels an active subscription after confirmation.
func (s *Subscribers) Deactivate(ctx context.Context, id string, confirmed bool) error {
	return s.cancel(ctx, id, confirmed, model.SubscriptionActive,
		"¿Dar de baja a %s?", "Suscriptor dado de baja")
}

func (s *Subscribers) cancel(ctx context.Context, id string, confirmed bool, required model.SubscriptionStatus, promptFmt, successMsg string) error {
	sub, found := s.get(id)
	if !found {
		s.report(store.ErrNotFound)
		return store.ErrNotFound
	}
	if sub.Status != required {
		err := &registry.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("la suscripción debe estar en estado %q (estado actual: %s)", required, sub.Status),
		}
		s.report(err)
		return err
	}
	if !confirmed {
		return &store.ConfirmationRequired{Prompt: fmt.Sprintf(promptFmt, sub.Person.FullName())}
	}

	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	if err := s.api.UpdateSubscriptionStatus(ctx, id, model.SubscriptionCancelled); err != nil {
		s.report(err)
		return err
	}

	s.reporter.Success(successMsg)
	return s.reloadCurrent(ctx)
}

func (s *Subscribers) reloadCurrent(ctx context.Context) error {
	s.mu.Lock()
	projectID := s.projectID
	s.mu.Unlock()
	if projectID == "" {
		return nil
	}
	return s.Load(ctx, projectID)
}

func (s *Subscribers) begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[id] {
		return store.ErrOperationInFlight
	}
	s.inFlight[id] = true
	return nil
}

func (s *Subscribers) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

func (s *Subscribers) report(err error) {
	s.log.Error().Err(err).Msg("subscriber operation failed")
	s.reporter.Error(store.Humanize(err))
}
