package registry

import "fmt"

// ValidationError is raised client-side, before any request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ApiError means the backend was reached and answered with a non-success
// status. Message carries the backend's own message when the body had one,
// otherwise the caller's per-operation fallback.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
}

// UnreachableError means the backend could not be reached at all, or its
// response could not be decoded. It deliberately carries no HTTP status so a
// misleading code is never shown to the operator.
type UnreachableError struct {
	Cause error
}

func (e *UnreachableError) Error() string {
	if e.Cause == nil {
		return "backend unreachable"
	}
	return "backend unreachable: " + e.Cause.Error()
}

func (e *UnreachableError) Unwrap() error { return e.Cause }

// KnownBackendDefect marks the documented failure mode of the subscription
// status update endpoint: an HTTP 500 whose underlying registration is still
// valid. It is warning-level and carries operator guidance, because the
// recovery path (contact the subscriber, treat the registration as valid)
// differs from a plain retryable failure.
type KnownBackendDefect struct {
	SubscriberName  string
	SubscriberEmail string
	Guidance        string
}

func (e *KnownBackendDefect) Error() string {
	return fmt.Sprintf("known backend defect updating subscription for %s <%s>: %s",
		e.SubscriberName, e.SubscriberEmail, e.Guidance)
}
