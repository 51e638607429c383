package http

import (
	"errors"
	"net/http"

	"github.com/vogiaan1904/branchqueue/internal/service"
	pkgErrors "github.com/vogiaan1904/branchqueue/pkg/errors"
)

var (
	errDepartmentNotFound  = pkgErrors.NewHTTPError("BRQ001", "Department not found", http.StatusNotFound)
	errInvalidInput        = pkgErrors.NewHTTPError("BRQ002", "Invalid input", http.StatusBadRequest)
	errInvalidDepartment   = pkgErrors.NewHTTPError("BRQ003", "Invalid department", http.StatusBadRequest)
	errDuplicateDepartment = pkgErrors.NewHTTPError("BRQ004", "Department already exists", http.StatusConflict)
	errInvalidMedia        = pkgErrors.NewHTTPError("BRQ005", "Invalid media", http.StatusBadRequest)
	errInvalidBody         = pkgErrors.NewHTTPError("BRQ006", "Invalid request body", http.StatusBadRequest)
	errMediaNotFound       = pkgErrors.NewHTTPError("BRQ007", "Media not found", http.StatusNotFound)
)

func mapHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		return errDepartmentNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return errInvalidInput
	case errors.Is(err, service.ErrInvalidDepartment):
		return errInvalidDepartment
	case errors.Is(err, service.ErrDuplicateDepartment):
		return errDuplicateDepartment
	case errors.Is(err, service.ErrInvalidMedia):
		return errInvalidMedia
	default:
		return err
	}
}
