package weberror

import "fmt"

// Error is the payload rendered in case of error.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

// New returns a new Error.
func New(code int, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error stringifies the error.
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}
