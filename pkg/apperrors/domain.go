package apperrors

import "net/http"

// Factories wrapping repository errors.

// ErrNotFound converts a repository "no rows" error into a 404.
func ErrNotFound(err error, message string) *AppError {
	return Wrap(err, CodeNotFound, "resource", message, http.StatusNotFound)
}

// ErrAlreadyExists converts a unique-constraint violation into a 409.
func ErrAlreadyExists(err error, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", message, http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// Factories for new business-rule errors.

// ErrInvalidOperation is a business-rule rejection (400).
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus rejects a disallowed status value or transition (400).
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Upload errors.

func ErrPayloadTooLarge(message string) *AppError {
	return New(CodePayloadTooLarge, "upload", message, http.StatusRequestEntityTooLarge)
}

func ErrUnsupportedMediaType(message string) *AppError {
	return New(CodeUnsupportedMediaType, "upload", message, http.StatusUnsupportedMediaType)
}

// Frequently used static errors.

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrIncompleteProfile = New(
	CodeForbidden,
	"profile",
	"Complete your profile before applying to gigs",
	http.StatusForbidden,
)
