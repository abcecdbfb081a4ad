package campaigns

import "errors"

var (
	ErrUnknownObjective   = errors.New("unknown objective")
	ErrUnknownFunnelStage = errors.New("unknown funnel stage")
	ErrUnknownPlatform    = errors.New("unknown platform")
)
