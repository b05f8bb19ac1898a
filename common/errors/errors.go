package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by code and message so wrapped copies of a sentinel
// still compare equal under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code && e.Message == t.Message
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of the sentinel carrying err as its cause. The
// sentinel itself is never mutated.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusForbidden, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Checkout and invoice error types
var (
	ErrEmptyCart         = New(http.StatusBadRequest, "Cart is empty", nil)
	ErrInvalidPrice      = New(http.StatusUnprocessableEntity, "Invalid product price", nil)
	ErrPaymentProvider   = New(http.StatusBadGateway, "Payment provider failure", nil)
	ErrInvoiceGeneration = New(http.StatusInternalServerError, "Invoice generation failed", nil)
	ErrStorage           = New(http.StatusInternalServerError, "Storage failure", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// HandleError writes err as a JSON response on a plain http.ResponseWriter.
func HandleError(w http.ResponseWriter, err error) {
	appErr := asAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware converts gin errors collected during the request into a
// single JSON response.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			if c.Writer.Written() {
				// Headers already flushed (e.g. aborted stream); nothing
				// more we can send on this connection.
				return
			}
			appErr := asAppError(c.Errors.Last().Err)
			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}

func asAppError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Wrap(ErrInternalServer, err)
}
