package queue

import "errors"

var (
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrInvalidDepartment   = errors.New("invalid department")
	ErrDuplicateDepartment = errors.New("department already exists")
	ErrInvalidMedia        = errors.New("invalid marketing media")
)
