package failure

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind is the machine-readable classification of a Failure. Handlers and
// clients branch on Kind; Code is only the HTTP projection of it.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindTransient         Kind = "transient"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindInternal          Kind = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Every rejection carries a Kind and a human-readable message; validation
// failures additionally name the offending field.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Validation returns a Failure naming the field that violated a business
// rule, so the caller can highlight the exact problem.
func Validation(field, reason string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Field:   field,
		Message: reason,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// Transient marks a timeout or connection failure. The whole operation is
// safe to retry from the top; a stale decision must not be replayed.
func Transient(err error) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    KindTransient,
		Message: fmt.Sprintf("temporary storage failure: %v", err),
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// RoomConflict reports that a room is unavailable for the requested range,
// with enough detail for the client to suggest alternatives.
func RoomConflict(roomID string, checkIn, checkOut time.Time) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Field:   "room_id",
		Message: fmt.Sprintf("room %s is already booked between %s and %s", roomID, checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02")),
	}
}

// InvalidTransition reports a lifecycle rule violation, naming the current
// and the requested state.
func InvalidTransition(from, to string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot transition booking from %s to %s", from, to),
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the classification of an error interface. Errors that are
// not Failures are treated as internal.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) && fail.Kind != "" {
		return fail.Kind
	}

	return KindInternal
}

// IsTransient reports whether the operation that produced err may be
// retried from the top.
func IsTransient(err error) bool {
	return GetKind(err) == KindTransient
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
