package service

import (
	"errors"

	"github.com/vogiaan1904/branchqueue/internal/queue"
)

var (
	ErrDepartmentNotFound  = queue.ErrDepartmentNotFound
	ErrInvalidDepartment   = queue.ErrInvalidDepartment
	ErrDuplicateDepartment = queue.ErrDuplicateDepartment
	ErrInvalidMedia        = queue.ErrInvalidMedia

	ErrInvalidInput = errors.New("invalid input")
)
