package grpc

import (
	"errors"

	"github.com/vogiaan1904/branchqueue/internal/service"
	pkgErrors "github.com/vogiaan1904/branchqueue/pkg/errors"
	"google.golang.org/grpc/codes"
)

var (
	errDepartmentNotFound  = pkgErrors.NewGRPCError("BRQ001", "Department not found", codes.NotFound)
	errInvalidInput        = pkgErrors.NewGRPCError("BRQ002", "Invalid input", codes.InvalidArgument)
	errInvalidDepartment   = pkgErrors.NewGRPCError("BRQ003", "Invalid department", codes.InvalidArgument)
	errDuplicateDepartment = pkgErrors.NewGRPCError("BRQ004", "Department already exists", codes.AlreadyExists)
	errInvalidMedia        = pkgErrors.NewGRPCError("BRQ005", "Invalid media", codes.InvalidArgument)
)

func mapGRPCError(err error) error {
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
