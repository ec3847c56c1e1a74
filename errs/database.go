package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Repository outcome errors
var (
	// ErrNoChanges is returned by update operations given an empty field set.
	// Nothing is sent to the database when it is returned.
	ErrNoChanges                 = errors.New("no fields to update")
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrNoRowsAffected            = errors.New("no rows affected")
)

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	// Errors that already carry a status pass through untouched
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	if cause != nil {
		errStr := cause.Error()
		switch {
		case errors.Is(cause, ErrUniqueConstraintViolation):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
				Details:    details,
				Cause:      cause,
			}
		case errors.Is(cause, ErrNotFound):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s %w", entity, ErrNotFound),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

func NewUniqueConstraintViolationError(entity, field string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrUniqueConstraintViolation,
		Details:    fmt.Sprintf("Unique constraint violation on %s.%s", entity, field),
		Cause:      cause,
		Field:      field,
	}
}

func NewNoRowsAffectedError(operation, entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrNoRowsAffected,
		Details:    fmt.Sprintf("%s %s affected no rows", operation, entity),
	}
}

func IsNoChanges(err error) bool {
	return errors.Is(err, ErrNoChanges)
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsNoRowsAffected(err error) bool {
	return errors.Is(err, ErrNoRowsAffected)
}
