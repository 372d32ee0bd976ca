package response

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

// AppError is the error type returned by the service layer.
type AppError struct {
	Code    Code
	Message string
	Details string
	Err     error
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError carrying the table message for code.
func New(code Code) *AppError {
	return &AppError{Code: code, Message: Lookup(code).Message}
}

// NewAppError creates an AppError with an explicit message.
func NewAppError(code Code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation AppError.
func NewValidationError(message, details string) *AppError {
	return NewAppError(CodeValidation, message, details)
}

// Wrap creates an internal AppError around err.
func Wrap(message string, err error) *AppError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &AppError{Code: CodeInternal, Message: message, Details: details, Err: err}
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ErrorDetail is the body of an error response.
type ErrorDetail struct {
	Code    Code   `json:"code"`
	Number  int    `json:"number"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// SendSuccess writes data wrapped in a success envelope.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// SendAppError writes err using its ResponseCode table entry.
func SendAppError(c *gin.Context, err *AppError) {
	entry := Lookup(err.Code)
	detail := ErrorDetail{
		Code:    err.Code,
		Number:  entry.Number,
		Message: err.Message,
	}
	if detail.Message == "" {
		detail.Message = entry.Message
	}
	// internal details never reach the client
	if entry.Status < 500 {
		detail.Details = err.Details
	}
	c.JSON(entry.Status, ErrorResponse{Error: detail})
}

// SendError writes a table code with an optional message override.
func SendError(c *gin.Context, code Code, message string) {
	if message == "" {
		message = Lookup(code).Message
	}
	SendAppError(c, NewAppError(code, message, ""))
}
