package templates

import "errors"

var (
	ErrNotFound        = errors.New("template not found")
	ErrDuplicate       = errors.New("template already exists")
	ErrInvalidTemplate = errors.New("invalid template")
)
