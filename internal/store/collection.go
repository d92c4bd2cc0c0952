package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
)

var (
	// ErrNoCreatedID means the backend acknowledged a create but returned no
	// usable identifier, so the created entity cannot be referenced afterwards.
	ErrNoCreatedID = errors.New("backend returned no id for created entity")

	// ErrOperationInFlight refuses a duplicate of an operation that is still
	// running, standing in for the disabled submit button of the browser UI.
	ErrOperationInFlight = errors.New("operation already in flight")

	// ErrStaleLoad marks a load whose result arrived after a newer load had
	// already started; its result was discarded, not applied.
	ErrStaleLoad = errors.New("stale load result discarded")

	ErrNotFound = errors.New("entity not in cache")
)

// ConfirmationRequired is returned by destructive operations that were called
// without prior operator confirmation. Prompt is the human-readable question
// to show before the confirmed retry.
type ConfirmationRequired struct {
	Prompt string
}

func (e *ConfirmationRequired) Error() string {
	return "confirmation required: " + e.Prompt
}

// StatusResult reports how an optimistic status update ended, so callers and
// tests can distinguish an applied change from a rolled-back one without
// inspecting the cache.
type StatusResult struct {
	Applied    bool
	RolledBack bool
	Reason     string
}

// Reporter receives the operator-facing outcome of every store operation.
// The console's status banner implements it.
type Reporter interface {
	Success(msg string)
	Error(msg string)
}

type Entity interface {
	EntityID() string
}

// Ops binds one entity collection to its backend operations. Validate runs
// before any network call and should return *registry.ValidationError.
type Ops[T Entity] struct {
	List     func(ctx context.Context) ([]T, error)
	Create   func(ctx context.Context, input T) (T, error)
	Update   func(ctx context.Context, id string, patch map[string]any) (T, error)
	Delete   func(ctx context.Context, id string) error
	Validate func(ctx context.Context, input T) error

	// Merge applies a patch over a cached entry; used when the backend
	// acknowledges an update without echoing the entity back.
	Merge func(cached T, patch map[string]any) T

	// Describe names an entity in confirmation prompts and messages.
	Describe func(T) string
}

// StatusOps is only wired for the project collection; status changes are the
// one operation with true optimistic-rollback semantics.
type StatusOps[T Entity] struct {
	Current func(T) model.ProjectStatus
	Apply   func(T, model.ProjectStatus) T
	Send    func(ctx context.Context, id string, status model.ProjectStatus) error
}

type Messages struct {
	Created string
	Updated string
	Deleted string
}

// Collection owns the authoritative client-side cache of one entity list and
// mediates every mutation against it. Except for status changes, the cache is
// only touched after the backend has acknowledged the operation.
type Collection[T Entity] struct {
	mu       sync.Mutex
	items    []T
	loadGen  uint64
	loading  int
	inFlight map[string]bool

	ops      Ops[T]
	status   *StatusOps[T]
	msg      Messages
	reporter Reporter
	log      *zerolog.Logger
}

func NewCollection[T Entity](ops Ops[T], msg Messages, reporter Reporter, log *zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		inFlight: make(map[string]bool),
		ops:      ops,
		msg:      msg,
		reporter: reporter,
		log:      log,
	}
}

// WithStatusOps enables optimistic status updates on this collection.
func (c *Collection[T]) WithStatusOps(s StatusOps[T]) *Collection[T] {
	c.status = &s
	return c
}

// Snapshot returns a copy of the cached collection.
func (c *Collection[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading > 0
}

func (c *Collection[T]) begin(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[key] {
		return ErrOperationInFlight
	}
	c.inFlight[key] = true
	return nil
}

func (c *Collection[T]) end(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, key)
}

// Load fetches the full collection and replaces the cache wholesale. On
// failure the previous cache is left untouched. Loads may overlap (a user
// can leave a view and come back mid-request); only the newest load is
// allowed to replace the cache, earlier results are discarded.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.loading++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading--
		c.mu.Unlock()
	}()

	items, err := c.ops.List(ctx)
	if err != nil {
		c.report(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.loadGen {
		c.log.Debug().Uint64("gen", gen).Msg("discarding stale collection load")
		return ErrStaleLoad
	}
	c.items = items
	return nil
}

// Create validates the input client-side, then asks the backend to create the
// entity and appends the returned value to the cache. A response without a
// usable id is surfaced as an error and nothing is appended.
func (c *Collection[T]) Create(ctx context.Context, input T) (T, error) {
	var zero T
	if c.ops.Validate != nil {
		if err := c.ops.Validate(ctx, input); err != nil {
			c.report(err)
			return zero, err
		}
	}
	if err := c.begin("create"); err != nil {
		return zero, err
	}
	defer c.end("create")

	created, err := c.ops.Create(ctx, input)
	if err != nil {
		c.report(err)
		return zero, err
	}
	if created.EntityID() == "" {
		c.report(ErrNoCreatedID)
		return zero, ErrNoCreatedID
	}

	c.mu.Lock()
	c.items = append(c.items, created)
	c.mu.Unlock()

	c.reporter.Success(c.msg.Created)
	return created, nil
}

// Update sends a partial update and replaces the cached entry with the
// merged result. Patch fields win over stale cached fields until the backend
// echoes the authoritative entity.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T
	key := "update:" + id
	if err := c.begin(key); err != nil {
		return zero, err
	}
	defer c.end(key)

	cached, found := c.Get(id)
	if !found {
		c.report(ErrNotFound)
		return zero, ErrNotFound
	}

	updated, err := c.ops.Update(ctx, id, patch)
	if err != nil {
		c.report(err)
		return zero, err
	}

	merged := updated
	if updated.EntityID() == "" {
		merged = cached
		if c.ops.Merge != nil {
			merged = c.ops.Merge(cached, patch)
		}
	}

	c.replace(id, merged)
	c.reporter.Success(c.msg.Updated)
	return merged, nil
}

// Delete removes the entity after backend acknowledgment. The first call
// without confirmation performs nothing and returns the prompt to show.
func (c *Collection[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	cached, found := c.Get(id)
	if !found {
		c.report(ErrNotFound)
		return ErrNotFound
	}
	if !confirmed {
		return &ConfirmationRequired{
			Prompt: fmt.Sprintf("¿Eliminar %s? Esta acción no se puede deshacer.", c.describe(cached)),
		}
	}

	key := "delete:" + id
	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	if err := c.ops.Delete(ctx, id); err != nil {
		c.report(err)
		return err
	}

	c.mu.Lock()
	for i, it := range c.items {
		if it.EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.reporter.Success(c.msg.Deleted)
	return nil
}

// UpdateStatus applies the new status to the cache immediately, then issues
// the request; on failure the entry reverts to its pre-change status. Any
// transition outside the adjacency table is rejected before the network call.
func (c *Collection[T]) UpdateStatus(ctx context.Context, id string, newStatus model.ProjectStatus, confirmed bool) (StatusResult, error) {
	if c.status == nil {
		return StatusResult{}, errors.New("status updates not supported for this collection")
	}

	cached, found := c.Get(id)
	if !found {
		c.report(ErrNotFound)
		return StatusResult{}, ErrNotFound
	}
	current := c.status.Current(cached)

	if !current.CanTransition(newStatus) {
		err := &registry.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("transición no permitida: %s → %s", current, newStatus),
		}
		c.report(err)
		return StatusResult{}, err
	}
	if !confirmed {
		return StatusResult{}, &ConfirmationRequired{
			Prompt: fmt.Sprintf("¿Cambiar el estado de %s de \"%s\" a \"%s\"?", c.describe(cached), current, newStatus),
		}
	}

	key := "status:" + id
	if err := c.begin(key); err != nil {
		return StatusResult{}, err
	}
	defer c.end(key)

	// Optimistic apply.
	c.replace(id, c.status.Apply(cached, newStatus))

	if err := c.status.Send(ctx, id, newStatus); err != nil {
		c.replace(id, cached)
		c.report(err)
		return StatusResult{RolledBack: true, Reason: Humanize(err)}, err
	}

	c.reporter.Success(c.msg.Updated)
	return StatusResult{Applied: true}, nil
}

func (c *Collection[T]) replace(id string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if it.EntityID() == id {
			c.items[i] = item
			return
		}
	}
}

func (c *Collection[T]) describe(item T) string {
	if c.ops.Describe != nil {
		return c.ops.Describe(item)
	}
	return item.EntityID()
}

func (c *Collection[T]) report(err error) {
	c.log.Error().Err(err).Msg("collection operation failed")
	c.reporter.Error(Humanize(err))
}

// Humanize turns an operation error into the operator-facing message,
// keeping backend errors with their status code distinct from unreachable or
// malformed-response failures.
func Humanize(err error) string {
	var apiErr *registry.ApiError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
	}
	var valErr *registry.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	var unreachable *registry.UnreachableError
	if errors.As(err, &unreachable) {
		return "Error desconocido: no se pudo contactar al servidor"
	}
	if errors.Is(err, ErrNoCreatedID) {
		return "El servidor no devolvió un identificador para la entidad creada"
	}
	if errors.Is(err, ErrNotFound) {
		return "La entidad ya no existe en la lista"
	}
	return err.Error()
}
