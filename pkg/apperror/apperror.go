package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the closed failure taxonomy exposed to callers.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not-found"
	KindAIService      Kind = "ai-service"
	KindDatabase       Kind = "database"
	KindInternal       Kind = "internal"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrAIService    = errors.New("ai service error")
	ErrDatabase     = errors.New("database error")
	ErrInternal     = errors.New("internal server error")
)

const (
	MsgAuthentication     = "Authentication required"
	MsgAIConfiguration    = "AI service is not configured correctly"
	MsgAIRateLimit        = "AI service rate limit exceeded, please try again later"
	MsgAITimeout          = "AI service request timed out, please try again"
	MsgAIService          = "AI service error occurred"
	MsgDatabaseConnection = "Database connection error"
	MsgDatabase           = "Database operation failed"
	MsgAlreadyExists      = "Record already exists"
	MsgInternal           = "An internal server error occurred"
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error

	// Fields lists offending field names for validation failures.
	Fields []string
	// Entity and ID identify the missing record for not-found failures.
	Entity string
	ID     string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.BaseError, e.Err}
	}
	return []error{e.BaseError}
}

func (e *AppError) Kind() Kind {
	switch e.BaseError {
	case ErrUnauthorized:
		return KindAuthentication
	case ErrInvalidInput:
		return KindValidation
	case ErrNotFound:
		return KindNotFound
	case ErrAIService:
		return KindAIService
	case ErrDatabase:
		return KindDatabase
	default:
		return KindInternal
	}
}

func newAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(entity, id string) *AppError {
	msg := fmt.Sprintf("%s with id '%s' not found", entity, id)
	e := newAppError(ErrNotFound, msg, msg, nil)
	e.Entity = entity
	e.ID = id
	return e
}

// NewValidation reports every offending field at once.
func NewValidation(msg string, fields ...string) *AppError {
	e := newAppError(ErrInvalidInput, msg, strings.Join(fields, ","), nil)
	e.Fields = fields
	return e
}

// NewMissingFields builds the validation failure raised when required fields are absent.
func NewMissingFields(entity string, fields []string) *AppError {
	msg := fmt.Sprintf("Missing required %s fields: %s", entity, strings.Join(fields, ", "))
	return NewValidation(msg, fields...)
}

// NewInvalidInput wraps a decoding or binding failure; msg must be safe to show.
func NewInvalidInput(msg string, err error) *AppError {
	return newAppError(ErrInvalidInput, msg, "", err)
}

func NewConflict(details string, err error) *AppError {
	return newAppError(ErrInvalidInput, MsgAlreadyExists, details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return newAppError(ErrUnauthorized, MsgAuthentication, details, err)
}

func NewAIService(details string, err error) *AppError {
	return newAppError(ErrAIService, MsgAIService, details, err)
}

func NewDatabase(details string, err error) *AppError {
	return newAppError(ErrDatabase, MsgDatabase, details, err)
}

func NewInternal(details string, err error) *AppError {
	return newAppError(ErrInternal, MsgInternal, details, err)
}

// KindOf reports the taxonomy kind of err; anything unclassified is internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

func ToHTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAIService:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
