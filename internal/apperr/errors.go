package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sharath018/potluck-rsvp-backend/utils"
)

var ErrNotFound = errors.New("not found")

// LoadError means reading from the persistence gateway failed. Views stay
// usable and report the failure to the caller.
type LoadError struct {
	What string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.What, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// WriteError means a create, update or delete was rejected. It is retryable.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ValidationError is raised before anything reaches storage.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func Load(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &LoadError{What: what, Err: err}
}

func Write(op string, err error) error {
	return &WriteError{Op: op, Err: err}
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

const (
	msgLoadFailed  = "Die Daten konnten nicht geladen werden. Bitte versuche es erneut."
	msgWriteFailed = "Die Änderung konnte nicht gespeichert werden. Bitte versuche es erneut."
)

// Status maps an error of this package onto an HTTP status code.
func Status(err error) int {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the JSON error body for err and logs server side failures.
func Respond(c *gin.Context, err error) {
	var vErr *ValidationError
	var wErr *WriteError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &wErr):
		utils.Log.Error("write failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgWriteFailed, "retryable": true})
	default:
		utils.Log.Error("load failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgLoadFailed})
	}
}
