package types

import "fmt"

// Error taxonomy codes carried in the response envelope "type" field.
const (
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrForbidden       = "FORBIDDEN"
	ErrBadRequest      = "BAD_REQUEST"
	ErrInvalidID       = "INVALID_ID"
	ErrNotFound        = "NOT_FOUND"
	ErrConflict        = "CONFLICT"
	ErrPayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrInternal        = "INTERNAL"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Constructors for the taxonomy. Services return these; the global fiber
// error handler maps them onto the response envelope.

func Unauthenticated(message string) *CustomError {
	return &CustomError{Code: 401, Message: message, Type: ErrUnauthenticated}
}

func Forbidden(message string) *CustomError {
	return &CustomError{Code: 403, Message: message, Type: ErrForbidden}
}

func BadRequest(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: ErrBadRequest}
}

func InvalidID(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: ErrInvalidID}
}

func NotFound(message string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: ErrNotFound}
}

func Conflict(message string) *CustomError {
	return &CustomError{Code: 409, Message: message, Type: ErrConflict}
}

func PayloadTooLarge(message string) *CustomError {
	return &CustomError{Code: 413, Message: message, Type: ErrPayloadTooLarge}
}

func Internal(message string) *CustomError {
	return &CustomError{Code: 500, Message: message, Type: ErrInternal}
}
