package captions

import "errors"

var (
	ErrNotFound  = errors.New("caption not found")
	ErrDuplicate = errors.New("caption already exists")
)
