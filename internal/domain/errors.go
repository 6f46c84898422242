package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
//
// Every entry except ErrValidation and ErrUnauthorized belongs to the
// caller-correctable taxonomy of the content store. Infrastructure failures
// (database, content store I/O) are never wrapped with these.
var (
	ErrInvalidName           = errors.New("invalid name")
	ErrDuplicateName         = errors.New("duplicate name")
	ErrParentNotFound        = errors.New("parent not found")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file too large")
	ErrNoSearchScopeSelected = errors.New("no search scope selected")
	ErrEmptyQuery            = errors.New("empty query")
	ErrCycleDetected         = errors.New("cycle detected")

	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		ResourceType string
		ResourceID   string
	}

	// ForbiddenError indicates the caller does not own the room
	ForbiddenError struct {
		ResourceType string
		ResourceID   string
	}

	// ValidationError carries a caller-correctable rejection. Kind is one of
	// the sentinel errors above and drives errors.Is matching.
	ValidationError struct {
		Kind    error
		Message string
	}
)

func (e *NotFoundError) Error() string {
	return e.ResourceType + " " + e.ResourceID + ": not found"
}

func (e *ForbiddenError) Error() string {
	return "access denied to " + e.ResourceType + " " + e.ResourceID
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *NotFoundError) StatusCode() int  { return http.StatusNotFound }
func (e *ForbiddenError) StatusCode() int { return http.StatusForbidden }

// StatusCode maps the validation kind to its HTTP status
func (e *ValidationError) StatusCode() int {
	switch e.Kind {
	case ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrUnsupportedFileType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

func (e *NotFoundError) Is(target error) bool  { return target == ErrNotFound }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }
func (e *ValidationError) Is(target error) bool {
	return target == e.Kind || target == ErrValidation
}

// NewNotFound builds a NotFoundError for the given resource
func NewNotFound(resourceType, id string) error {
	return &NotFoundError{ResourceType: resourceType, ResourceID: id}
}

// NewForbidden builds a ForbiddenError for the given resource
func NewForbidden(resourceType, id string) error {
	return &ForbiddenError{ResourceType: resourceType, ResourceID: id}
}

// NewValidation builds a ValidationError of the given kind
func NewValidation(kind error, message string) error {
	return &ValidationError{Kind: kind, Message: message}
}

// ConflictError represents a name collision with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // folder or file
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrDuplicateName
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicateName
}

// UserMessage returns the actionable message shown to end users for a domain
// error. Unknown errors get a generic message so infrastructure details never leak.
func UserMessage(err error) string {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		switch conflictErr.ResourceType {
		case "folder":
			return "A folder with this name already exists in this location"
		case "file":
			return "A file with this name already exists in this location"
		}
	}

	switch {
	case errors.Is(err, ErrDuplicateName):
		return "An item with this name already exists in this location"
	case errors.Is(err, ErrInvalidName):
		return `Names must be 1-255 characters and cannot contain / \ : * ? " < > |`
	case errors.Is(err, ErrParentNotFound):
		return "The target folder does not exist in this data room"
	case errors.Is(err, ErrCycleDetected):
		return "A folder cannot be moved into itself or one of its subfolders"
	case errors.Is(err, ErrUnsupportedFileType):
		return "Only PDF files are allowed"
	case errors.Is(err, ErrFileTooLarge):
		return "File exceeds the maximum upload size"
	case errors.Is(err, ErrEmptyQuery):
		return "Search query is required"
	case errors.Is(err, ErrNoSearchScopeSelected):
		return "At least one search type must be selected"
	case errors.Is(err, ErrNotFound):
		return "Resource not found"
	case errors.Is(err, ErrForbidden):
		return "Access denied"
	case errors.Is(err, ErrUnauthorized):
		return "Authentication required"
	case errors.Is(err, ErrValidation):
		// Validation messages are written for callers and carry no internals
		return err.Error()
	default:
		return "Something went wrong, please retry"
	}
}

// StatusCode maps any error to an HTTP status. Typed errors report their own;
// bare sentinels wrapped with %w are mapped by kind; anything else is a 500.
func StatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrParentNotFound),
		errors.Is(err, ErrCycleDetected),
		errors.Is(err, ErrEmptyQuery),
		errors.Is(err, ErrNoSearchScopeSelected),
		errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
