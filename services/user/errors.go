package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrNoUpdatableFields = errors.New("no updatable fields provided")
	ErrMissingAuthUID    = errors.New("auth uid is required")
)
