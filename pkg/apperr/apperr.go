package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrMigration  = errors.New("migration error")
	ErrExport     = errors.New("nothing to export")
)

func Validation(format string, args ...any) error { return wrap(ErrValidation, format, args...) }

func NotFound(format string, args ...any) error { return wrap(ErrNotFound, format, args...) }

func Migration(format string, args ...any) error { return wrap(ErrMigration, format, args...) }

func Export(format string, args ...any) error { return wrap(ErrExport, format, args...) }

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)
}

// Status maps an error onto the HTTP status the boundary should answer with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrExport):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
