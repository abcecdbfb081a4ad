package assets

import "errors"

var (
	ErrNotFound  = errors.New("asset not found")
	ErrDuplicate = errors.New("asset already exists")
)
