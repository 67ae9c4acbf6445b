package app_error

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

func New(message string, status int) error {
	return statusError{error: errors.New(message), status: status}
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// HTTPStatus returns the status attached to err, or fallback when none is set.
func HTTPStatus(err error, fallback int) int {
	var statusErr statusError
	if errors.As(err, &statusErr) {
		return statusErr.HTTPStatus()
	}
	return fallback
}
