package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a failure so the HTTP boundary can map it to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// Error is the error type returned by store, policy and middleware code.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// NotFound reports that a referenced entity does not exist.
func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Conflict reports a uniqueness or state violation.
func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// Forbidden reports that an authenticated actor lacks permission.
func Forbidden(format string, args ...interface{}) *Error {
	return newf(KindForbidden, format, args...)
}

// Unauthorized reports a missing, invalid or expired credential.
func Unauthorized(format string, args ...interface{}) *Error {
	return newf(KindUnauthorized, format, args...)
}

// TooManyRequests reports an admission-control rejection.
func TooManyRequests(format string, args ...interface{}) *Error {
	return newf(KindTooManyRequests, format, args...)
}

// Invalid reports malformed or rule-violating input.
func Invalid(format string, args ...interface{}) *Error {
	return newf(KindInvalid, format, args...)
}

// Internal wraps an unclassified failure. The detail is generic on purpose.
func Internal() *Error {
	return &Error{Kind: KindInternal, Detail: "internal server error"}
}

// Status returns the HTTP status code for an error kind.
func Status(kind Kind) int {
	switch kind {
	case KindInvalid:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindTooManyRequests:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler maps errors to JSON {"detail": ...} responses. Unclassified
// errors become a generic 500 so storage internals never leak to clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return c.Status(Status(appErr.Kind)).JSON(fiber.Map{"detail": appErr.Detail})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "internal server error"})
}
