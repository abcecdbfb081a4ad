package learning

import "errors"

var (
	// ErrInsufficientEvidence marks a cluster too small to synthesize from.
	// Learn never returns it.
	ErrInsufficientEvidence = errors.New("insufficient evidence")
	ErrLearningFailed       = errors.New("template learning failed")
)
