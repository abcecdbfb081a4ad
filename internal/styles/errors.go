package styles

import "errors"

var (
	ErrNotFound  = errors.New("style profile not found")
	ErrDuplicate = errors.New("style profile already exists")
)
