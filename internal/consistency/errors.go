package consistency

import "errors"

var (
	ErrUnknownDepth   = errors.New("unknown analysis depth")
	ErrInvalidWeights = errors.New("invalid consistency weights")
)
