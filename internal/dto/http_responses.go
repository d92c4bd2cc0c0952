package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	SessionNotFound      = "SESSION_NOT_FOUND"
	EntityNotFound       = "ENTITY_NOT_FOUND"
	ConfirmationNeeded   = "CONFIRMATION_NEEDED"
	OperationInFlight    = "OPERATION_IN_FLIGHT"
	TransitionNotAllowed = "TRANSITION_NOT_ALLOWED"
	BackendError         = "BACKEND_ERROR"
	BackendUnreachable   = "BACKEND_UNREACHABLE"
	BackendKnownDefect   = "BACKEND_KNOWN_DEFECT"
)

type NavigateRequest struct {
	View      string `json:"view" validate:"required"`
	ContextID string `json:"context_id"`
}

type CreatePersonRequest struct {
	FirstName   string        `json:"first_name" validate:"required,max=255"`
	LastName    string        `json:"last_name" validate:"required,max=255"`
	Email       string        `json:"email" validate:"required,email"`
	Phone       string        `json:"phone" validate:"phone"`
	DateOfBirth string        `json:"date_of_birth"`
	Address     model.Address `json:"address"`
	IsAdmin     bool          `json:"is_admin"`
	Roles       []string      `json:"roles"`
}

type CreateProjectRequest struct {
	Name            string    `json:"name" validate:"required,max=255"`
	Description     string    `json:"description"`
	MaxParticipants int       `json:"max_participants" validate:"gte=0"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date"`
}

type UpdateEntityRequest struct {
	Patch map[string]any `json:"patch" validate:"required"`
}

type ChangeStatusRequest struct {
	Status  string `json:"status" validate:"required,projstatus"`
	Confirm bool   `json:"confirm"`
}

type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// ConfirmationResponse carries the prompt for a destructive operation that
// was called without confirmation; nothing has been executed yet.
type ConfirmationResponse struct {
	Prompt string `json:"prompt"`
}

type StatusChangeResponse struct {
	Applied    bool   `json:"applied"`
	RolledBack bool   `json:"rolled_back"`
	Reason     string `json:"reason,omitempty"`
}

type BannerResponse struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// StateResponse is the console snapshot the browser renders from.
type StateResponse struct {
	View            string          `json:"view"`
	Banner          BannerResponse  `json:"banner"`
	PeopleLoading   bool            `json:"people_loading"`
	ProjectsLoading bool            `json:"projects_loading"`
	PersonContext   *model.Person   `json:"person_context,omitempty"`
	ProjectContext  *model.Project  `json:"project_context,omitempty"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func NotFoundError(c *ginext.Context, code, desc string) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func ConflictError(c *ginext.Context, code, desc string) {
	c.JSON(409, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

// ConfirmationNeededResponse answers a destructive call that still needs the
// operator's explicit confirmation.
func ConfirmationNeededResponse(c *ginext.Context, prompt string) {
	c.JSON(200, Response{
		Status: "confirm",
		Data:   ConfirmationResponse{Prompt: prompt},
	})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
