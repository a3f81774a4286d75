package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorEnvelope is the uniform failure body: every endpoint answers
// {success, message, error} on failure.
type ErrorEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// HandleError renders err as the failure envelope. Non-AppError values
// are wrapped as internal errors first.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	body := ErrorEnvelope{
		Success: false,
		Message: appErr.Message,
		Error:   string(appErr.Code),
		Details: appErr.Details,
	}

	c.JSON(appErr.HTTPCode, body)
}

// AsAppError attempts to convert err into *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
